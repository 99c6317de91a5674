package guilddb

import (
	"context"

	guilddomain "github.com/Black-And-White-Club/guildkeeper/app/modules/guild/domain"
	sharedtypes "github.com/Black-And-White-Club/guildkeeper/app/types/shared"
	"github.com/uptrace/bun"
)

// Repository defines the contract for guild configuration persistence.
// Every method takes an optional bun.IDB so callers can run it inside a
// transaction; nil uses the repository's own handle.
//
// Error semantics:
//   - ErrNotFound: the guild has no config row
//   - ErrAlreadyExists: InsertConfig hit an existing row
//   - Other errors: infrastructure failures (connection, query errors)
type Repository interface {
	// GetConfig retrieves the config row for a guild.
	GetConfig(ctx context.Context, db bun.IDB, guildID sharedtypes.GuildID) (*GuildConfig, error)

	// Exists reports whether a config row exists.
	Exists(ctx context.Context, db bun.IDB, guildID sharedtypes.GuildID) (bool, error)

	// InsertConfig inserts a new row, leaving any existing row untouched.
	InsertConfig(ctx context.Context, db bun.IDB, config *GuildConfig) error

	// ListGuildIDs returns every configured guild in ascending order.
	ListGuildIDs(ctx context.Context, db bun.IDB) ([]sharedtypes.GuildID, error)

	// Single-field setters. Each is one UPDATE; a nil pointer clears the field.
	SetAdminChannel(ctx context.Context, db bun.IDB, guildID sharedtypes.GuildID, channel *sharedtypes.ChannelID) error
	SetAdvertise(ctx context.Context, db bun.IDB, guildID sharedtypes.GuildID, advertise bool) error
	SetWelcomeMessage(ctx context.Context, db bun.IDB, guildID sharedtypes.GuildID, message *string) error
	SetGoodbyeMessage(ctx context.Context, db bun.IDB, guildID sharedtypes.GuildID, message *string) error

	// PrivilegesForRole returns the privileges held by a role, sorted.
	PrivilegesForRole(ctx context.Context, db bun.IDB, guildID sharedtypes.GuildID, roleID sharedtypes.RoleID) ([]guilddomain.Privilege, error)

	// RolesWithPrivilege returns the roles holding a privilege, sorted.
	RolesWithPrivilege(ctx context.Context, db bun.IDB, guildID sharedtypes.GuildID, privilege guilddomain.Privilege) ([]sharedtypes.RoleID, error)

	// ListRolePrivileges returns every role-privilege pair of a guild.
	ListRolePrivileges(ctx context.Context, db bun.IDB, guildID sharedtypes.GuildID) ([]RolePrivilege, error)

	// AnyRoleHasPrivilege reports whether at least one of roleIDs holds the
	// privilege, using a single EXISTS query.
	AnyRoleHasPrivilege(ctx context.Context, db bun.IDB, guildID sharedtypes.GuildID, roleIDs []sharedtypes.RoleID, privilege guilddomain.Privilege) (bool, error)

	// AddRolePrivilege inserts the pair if absent.
	AddRolePrivilege(ctx context.Context, db bun.IDB, guildID sharedtypes.GuildID, roleID sharedtypes.RoleID, privilege guilddomain.Privilege) error

	// RemoveRolePrivilege deletes the pair if present.
	RemoveRolePrivilege(ctx context.Context, db bun.IDB, guildID sharedtypes.GuildID, roleID sharedtypes.RoleID, privilege guilddomain.Privilege) error
}
