package guildservice

import (
	"context"

	guilddomain "github.com/Black-And-White-Club/guildkeeper/app/modules/guild/domain"
	sharedtypes "github.com/Black-And-White-Club/guildkeeper/app/types/shared"
)

// Authorizer answers privilege questions for a guild.
type Authorizer interface {
	// PrivilegesFor returns the privileges held by role, sorted. Unknown
	// roles and guilds yield an empty slice.
	PrivilegesFor(ctx context.Context, guildID sharedtypes.GuildID, roleID sharedtypes.RoleID) ([]guilddomain.Privilege, error)

	// RolesWith returns the roles holding privilege, sorted.
	RolesWith(ctx context.Context, guildID sharedtypes.GuildID, privilege guilddomain.Privilege) ([]sharedtypes.RoleID, error)

	// HasPrivileges reports whether role holds every one of required.
	HasPrivileges(ctx context.Context, guildID sharedtypes.GuildID, roleID sharedtypes.RoleID, required ...guilddomain.Privilege) (bool, error)

	// HavePrivilege reports whether any of roles holds privilege.
	HavePrivilege(ctx context.Context, guildID sharedtypes.GuildID, roles []sharedtypes.RoleID, privilege guilddomain.Privilege) (bool, error)

	// Exists reports whether the guild has a configuration.
	Exists(ctx context.Context, guildID sharedtypes.GuildID) (bool, error)

	GrantPrivilege(ctx context.Context, guildID sharedtypes.GuildID, roleID sharedtypes.RoleID, privilege guilddomain.Privilege) error
	RevokePrivilege(ctx context.Context, guildID sharedtypes.GuildID, roleID sharedtypes.RoleID, privilege guilddomain.Privilege) error
}

// Service defines the interface for guild operations.
type Service interface {
	Authorizer

	CreateGuildConfig(ctx context.Context, config guilddomain.NewGuildConfig) (*guilddomain.GuildConfig, error)
	GetGuildConfig(ctx context.Context, guildID sharedtypes.GuildID) (*guilddomain.GuildConfig, error)
	ListGuildIDs(ctx context.Context) ([]sharedtypes.GuildID, error)

	GetAdminChannel(ctx context.Context, guildID sharedtypes.GuildID) (*sharedtypes.ChannelID, error)
	GetAdvertise(ctx context.Context, guildID sharedtypes.GuildID) (bool, error)
	GetWelcomeMessage(ctx context.Context, guildID sharedtypes.GuildID) (*string, error)
	GetGoodbyeMessage(ctx context.Context, guildID sharedtypes.GuildID) (*string, error)

	SetAdminChannel(ctx context.Context, guildID sharedtypes.GuildID, channel *sharedtypes.ChannelID) error
	SetAdvertise(ctx context.Context, guildID sharedtypes.GuildID, advertise bool) error
	SetWelcomeMessage(ctx context.Context, guildID sharedtypes.GuildID, message *string) error
	SetGoodbyeMessage(ctx context.Context, guildID sharedtypes.GuildID, message *string) error
}
