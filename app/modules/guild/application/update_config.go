package guildservice

import (
	"context"
	"fmt"

	guilddomain "github.com/Black-And-White-Club/guildkeeper/app/modules/guild/domain"
	sharedtypes "github.com/Black-And-White-Club/guildkeeper/app/types/shared"
)

// Setting names used in update events and the HTTP API.
const (
	FieldAdminChannel   = "admin_channel"
	FieldAdvertise      = "advertise"
	FieldWelcomeMessage = "welcome_message"
	FieldGoodbyeMessage = "goodbye_message"
)

// SetAdminChannel sets or, with nil, clears the admin channel.
func (s *GuildService) SetAdminChannel(ctx context.Context, guildID sharedtypes.GuildID, channel *sharedtypes.ChannelID) error {
	_, err := withTelemetry(s, ctx, "SetAdminChannel", guildID, func(ctx context.Context) (struct{}, error) {
		if err := s.repo.SetAdminChannel(ctx, nil, guildID, channel); err != nil {
			return struct{}{}, mapRepoErr("SetAdminChannel", guildID, err)
		}
		s.publishUpdated(ctx, guildID, FieldAdminChannel)
		return struct{}{}, nil
	})
	return err
}

func (s *GuildService) SetAdvertise(ctx context.Context, guildID sharedtypes.GuildID, advertise bool) error {
	_, err := withTelemetry(s, ctx, "SetAdvertise", guildID, func(ctx context.Context) (struct{}, error) {
		if err := s.repo.SetAdvertise(ctx, nil, guildID, advertise); err != nil {
			return struct{}{}, mapRepoErr("SetAdvertise", guildID, err)
		}
		s.publishUpdated(ctx, guildID, FieldAdvertise)
		return struct{}{}, nil
	})
	return err
}

// SetWelcomeMessage validates and stores the welcome text. It never touches
// the goodbye text.
func (s *GuildService) SetWelcomeMessage(ctx context.Context, guildID sharedtypes.GuildID, message *string) error {
	_, err := withTelemetry(s, ctx, "SetWelcomeMessage", guildID, func(ctx context.Context) (struct{}, error) {
		if err := guilddomain.ValidateMessage(message); err != nil {
			return struct{}{}, fmt.Errorf("welcome message for guild %s: %w", guildID, err)
		}
		if err := s.repo.SetWelcomeMessage(ctx, nil, guildID, message); err != nil {
			return struct{}{}, mapRepoErr("SetWelcomeMessage", guildID, err)
		}
		s.publishUpdated(ctx, guildID, FieldWelcomeMessage)
		return struct{}{}, nil
	})
	return err
}

func (s *GuildService) SetGoodbyeMessage(ctx context.Context, guildID sharedtypes.GuildID, message *string) error {
	_, err := withTelemetry(s, ctx, "SetGoodbyeMessage", guildID, func(ctx context.Context) (struct{}, error) {
		if err := guilddomain.ValidateMessage(message); err != nil {
			return struct{}{}, fmt.Errorf("goodbye message for guild %s: %w", guildID, err)
		}
		if err := s.repo.SetGoodbyeMessage(ctx, nil, guildID, message); err != nil {
			return struct{}{}, mapRepoErr("SetGoodbyeMessage", guildID, err)
		}
		s.publishUpdated(ctx, guildID, FieldGoodbyeMessage)
		return struct{}{}, nil
	})
	return err
}

func (s *GuildService) publishUpdated(ctx context.Context, guildID sharedtypes.GuildID, field string) {
	s.publish(ctx, guilddomain.GuildConfigUpdatedV1, guilddomain.GuildConfigUpdatedPayload{
		GuildID: guildID,
		Field:   field,
	})
}
