package guildservice

import (
	"context"

	guilddomain "github.com/Black-And-White-Club/guildkeeper/app/modules/guild/domain"
	guilddb "github.com/Black-And-White-Club/guildkeeper/app/modules/guild/infrastructure/repositories"
	sharedtypes "github.com/Black-And-White-Club/guildkeeper/app/types/shared"
	"github.com/uptrace/bun"
)

// GetGuildConfig returns the full configuration, role privileges included.
func (s *GuildService) GetGuildConfig(ctx context.Context, guildID sharedtypes.GuildID) (*guilddomain.GuildConfig, error) {
	return withTelemetry(s, ctx, "GetGuildConfig", guildID, func(ctx context.Context) (*guilddomain.GuildConfig, error) {
		// Config and privileges are read in one transaction so they agree.
		return runInTx(s, ctx, func(ctx context.Context, db bun.IDB) (*guilddomain.GuildConfig, error) {
			row, err := s.repo.GetConfig(ctx, db, guildID)
			if err != nil {
				return nil, mapRepoErr("GetConfig", guildID, err)
			}
			grants, err := s.repo.ListRolePrivileges(ctx, db, guildID)
			if err != nil {
				return nil, mapRepoErr("ListRolePrivileges", guildID, err)
			}
			return toDomainConfig(row, grants), nil
		})
	})
}

// ListGuildIDs returns every configured guild, ascending.
func (s *GuildService) ListGuildIDs(ctx context.Context) ([]sharedtypes.GuildID, error) {
	return withTelemetry(s, ctx, "ListGuildIDs", 0, func(ctx context.Context) ([]sharedtypes.GuildID, error) {
		ids, err := s.repo.ListGuildIDs(ctx, nil)
		if err != nil {
			return nil, mapRepoErr("ListGuildIDs", 0, err)
		}
		if ids == nil {
			ids = []sharedtypes.GuildID{}
		}
		return ids, nil
	})
}

func (s *GuildService) GetAdminChannel(ctx context.Context, guildID sharedtypes.GuildID) (*sharedtypes.ChannelID, error) {
	row, err := s.getConfigRow(ctx, "GetAdminChannel", guildID)
	if err != nil {
		return nil, err
	}
	return row.AdminChannel, nil
}

func (s *GuildService) GetAdvertise(ctx context.Context, guildID sharedtypes.GuildID) (bool, error) {
	row, err := s.getConfigRow(ctx, "GetAdvertise", guildID)
	if err != nil {
		return false, err
	}
	return row.Advertise, nil
}

func (s *GuildService) GetWelcomeMessage(ctx context.Context, guildID sharedtypes.GuildID) (*string, error) {
	row, err := s.getConfigRow(ctx, "GetWelcomeMessage", guildID)
	if err != nil {
		return nil, err
	}
	return row.WelcomeMessage, nil
}

func (s *GuildService) GetGoodbyeMessage(ctx context.Context, guildID sharedtypes.GuildID) (*string, error) {
	row, err := s.getConfigRow(ctx, "GetGoodbyeMessage", guildID)
	if err != nil {
		return nil, err
	}
	return row.GoodbyeMessage, nil
}

func (s *GuildService) getConfigRow(ctx context.Context, op string, guildID sharedtypes.GuildID) (*guilddb.GuildConfig, error) {
	return withTelemetry(s, ctx, op, guildID, func(ctx context.Context) (*guilddb.GuildConfig, error) {
		row, err := s.repo.GetConfig(ctx, nil, guildID)
		if err != nil {
			return nil, mapRepoErr("GetConfig", guildID, err)
		}
		return row, nil
	})
}

// toDomainConfig groups the privilege rows by role. grants must be sorted
// by role then privilege.
func toDomainConfig(row *guilddb.GuildConfig, grants []guilddb.RolePrivilege) *guilddomain.GuildConfig {
	cfg := &guilddomain.GuildConfig{
		GuildID:        row.GuildID,
		AdminChannel:   row.AdminChannel,
		Advertise:      row.Advertise,
		WelcomeMessage: row.WelcomeMessage,
		GoodbyeMessage: row.GoodbyeMessage,
		Roles:          []guilddomain.RolePrivileges{},
		CreatedAt:      row.CreatedAt,
		UpdatedAt:      row.UpdatedAt,
	}
	for _, g := range grants {
		n := len(cfg.Roles)
		if n == 0 || cfg.Roles[n-1].RoleID != g.RoleID {
			cfg.Roles = append(cfg.Roles, guilddomain.RolePrivileges{RoleID: g.RoleID})
			n++
		}
		cfg.Roles[n-1].Privileges = append(cfg.Roles[n-1].Privileges, g.Privilege)
	}
	return cfg
}
