package guildservice

import (
	"context"
	"fmt"

	guilddomain "github.com/Black-And-White-Club/guildkeeper/app/modules/guild/domain"
	guilddb "github.com/Black-And-White-Club/guildkeeper/app/modules/guild/infrastructure/repositories"
)

// CreateGuildConfig creates the configuration for a guild. It fails with
// ErrGuildConfigAlreadyExists when one exists; the existing row is left as is.
func (s *GuildService) CreateGuildConfig(ctx context.Context, config guilddomain.NewGuildConfig) (*guilddomain.GuildConfig, error) {
	return withTelemetry(s, ctx, "CreateGuildConfig", config.GuildID, func(ctx context.Context) (*guilddomain.GuildConfig, error) {
		if err := guilddomain.ValidateMessage(config.WelcomeMessage); err != nil {
			return nil, fmt.Errorf("welcome message for guild %s: %w", config.GuildID, err)
		}
		if err := guilddomain.ValidateMessage(config.GoodbyeMessage); err != nil {
			return nil, fmt.Errorf("goodbye message for guild %s: %w", config.GuildID, err)
		}

		row := &guilddb.GuildConfig{
			GuildID:        config.GuildID,
			Advertise:      config.Advertise,
			WelcomeMessage: config.WelcomeMessage,
			GoodbyeMessage: config.GoodbyeMessage,
		}
		if err := s.repo.InsertConfig(ctx, nil, row); err != nil {
			return nil, mapRepoErr("InsertConfig", config.GuildID, err)
		}

		s.publish(ctx, guilddomain.GuildConfigCreatedV1, guilddomain.GuildConfigCreatedPayload{
			GuildID:   config.GuildID,
			Advertise: config.Advertise,
		})

		return toDomainConfig(row, nil), nil
	})
}
