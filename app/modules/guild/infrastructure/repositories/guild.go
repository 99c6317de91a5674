package guilddb

import (
	"cmp"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"slices"
	"time"

	guilddomain "github.com/Black-And-White-Club/guildkeeper/app/modules/guild/domain"
	sharedtypes "github.com/Black-And-White-Club/guildkeeper/app/types/shared"
	"github.com/uptrace/bun"
)

// Impl implements the Repository interface using Bun ORM.
type Impl struct {
	db bun.IDB
}

// NewRepository creates a new guild repository.
func NewRepository(db bun.IDB) Repository {
	return &Impl{db: db}
}

// resolveDB returns the provided db handle, falling back to the repository's
// default connection if db is nil.
func (r *Impl) resolveDB(db bun.IDB) bun.IDB {
	if db == nil {
		return r.db
	}
	return db
}

// GetConfig retrieves the config row for a guild.
func (r *Impl) GetConfig(ctx context.Context, db bun.IDB, guildID sharedtypes.GuildID) (*GuildConfig, error) {
	db = r.resolveDB(db)
	config := new(GuildConfig)
	err := db.NewSelect().
		Model(config).
		Where("guild_id = ?", guildID).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get guild config: %w", err)
	}
	return config, nil
}

// Exists reports whether a config row exists.
func (r *Impl) Exists(ctx context.Context, db bun.IDB, guildID sharedtypes.GuildID) (bool, error) {
	db = r.resolveDB(db)
	exists, err := db.NewSelect().
		Model((*GuildConfig)(nil)).
		Where("guild_id = ?", guildID).
		Exists(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to check guild config: %w", err)
	}
	return exists, nil
}

// InsertConfig inserts a new row. The primary key decides races between
// concurrent creates: exactly one insert affects a row.
func (r *Impl) InsertConfig(ctx context.Context, db bun.IDB, config *GuildConfig) error {
	db = r.resolveDB(db)
	now := time.Now().UTC()
	config.CreatedAt = now
	config.UpdatedAt = now

	result, err := db.NewInsert().
		Model(config).
		On("CONFLICT (guild_id) DO NOTHING").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to insert guild config: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return ErrAlreadyExists
	}
	return nil
}

// ListGuildIDs returns every configured guild in ascending numeric order.
func (r *Impl) ListGuildIDs(ctx context.Context, db bun.IDB) ([]sharedtypes.GuildID, error) {
	db = r.resolveDB(db)
	var ids []sharedtypes.GuildID
	err := db.NewSelect().
		Model((*GuildConfig)(nil)).
		Column("guild_id").
		Scan(ctx, &ids)
	if err != nil {
		return nil, fmt.Errorf("failed to list guild ids: %w", err)
	}
	// Stored as text, so the database order is lexical.
	slices.Sort(ids)
	return ids, nil
}

func (r *Impl) SetAdminChannel(ctx context.Context, db bun.IDB, guildID sharedtypes.GuildID, channel *sharedtypes.ChannelID) error {
	var value any
	if channel != nil {
		value = channel.String()
	}
	return r.setField(ctx, db, guildID, "admin_channel", value)
}

func (r *Impl) SetAdvertise(ctx context.Context, db bun.IDB, guildID sharedtypes.GuildID, advertise bool) error {
	return r.setField(ctx, db, guildID, "advertise", advertise)
}

func (r *Impl) SetWelcomeMessage(ctx context.Context, db bun.IDB, guildID sharedtypes.GuildID, message *string) error {
	return r.setField(ctx, db, guildID, "welcome_message", textOrNull(message))
}

func (r *Impl) SetGoodbyeMessage(ctx context.Context, db bun.IDB, guildID sharedtypes.GuildID, message *string) error {
	return r.setField(ctx, db, guildID, "goodbye_message", textOrNull(message))
}

// setField writes one column (plus updated_at) in a single statement.
func (r *Impl) setField(ctx context.Context, db bun.IDB, guildID sharedtypes.GuildID, column string, value any) error {
	db = r.resolveDB(db)
	result, err := db.NewUpdate().
		Model((*GuildConfig)(nil)).
		Set("? = ?", bun.Ident(column), value).
		Set("updated_at = ?", time.Now().UTC()).
		Where("guild_id = ?", guildID).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to update %s: %w", column, err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

func textOrNull(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}

// PrivilegesForRole returns the privileges held by a role, sorted.
func (r *Impl) PrivilegesForRole(ctx context.Context, db bun.IDB, guildID sharedtypes.GuildID, roleID sharedtypes.RoleID) ([]guilddomain.Privilege, error) {
	db = r.resolveDB(db)
	var privileges []guilddomain.Privilege
	err := db.NewSelect().
		Model((*RolePrivilege)(nil)).
		Column("privilege").
		Where("guild_id = ?", guildID).
		Where("role_id = ?", roleID).
		Scan(ctx, &privileges)
	if err != nil {
		return nil, fmt.Errorf("failed to get role privileges: %w", err)
	}
	slices.Sort(privileges)
	return privileges, nil
}

// RolesWithPrivilege returns the roles holding a privilege, sorted.
func (r *Impl) RolesWithPrivilege(ctx context.Context, db bun.IDB, guildID sharedtypes.GuildID, privilege guilddomain.Privilege) ([]sharedtypes.RoleID, error) {
	db = r.resolveDB(db)
	var roles []sharedtypes.RoleID
	err := db.NewSelect().
		Model((*RolePrivilege)(nil)).
		Column("role_id").
		Where("guild_id = ?", guildID).
		Where("privilege = ?", privilege).
		Scan(ctx, &roles)
	if err != nil {
		return nil, fmt.Errorf("failed to get roles with privilege: %w", err)
	}
	slices.Sort(roles)
	return roles, nil
}

// ListRolePrivileges returns every role-privilege pair of a guild.
func (r *Impl) ListRolePrivileges(ctx context.Context, db bun.IDB, guildID sharedtypes.GuildID) ([]RolePrivilege, error) {
	db = r.resolveDB(db)
	var rows []RolePrivilege
	err := db.NewSelect().
		Model(&rows).
		Where("guild_id = ?", guildID).
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list role privileges: %w", err)
	}
	slices.SortFunc(rows, func(a, b RolePrivilege) int {
		if a.RoleID != b.RoleID {
			return cmp.Compare(a.RoleID, b.RoleID)
		}
		return cmp.Compare(a.Privilege, b.Privilege)
	})
	return rows, nil
}

// AnyRoleHasPrivilege runs one EXISTS query over the whole role set.
func (r *Impl) AnyRoleHasPrivilege(ctx context.Context, db bun.IDB, guildID sharedtypes.GuildID, roleIDs []sharedtypes.RoleID, privilege guilddomain.Privilege) (bool, error) {
	if len(roleIDs) == 0 {
		return false, nil
	}
	db = r.resolveDB(db)
	ids := make([]string, len(roleIDs))
	for i, id := range roleIDs {
		ids[i] = id.String()
	}
	exists, err := db.NewSelect().
		Model((*RolePrivilege)(nil)).
		Where("guild_id = ?", guildID).
		Where("privilege = ?", privilege).
		Where("role_id IN (?)", bun.In(ids)).
		Exists(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to check role privileges: %w", err)
	}
	return exists, nil
}

// AddRolePrivilege inserts the pair if absent.
func (r *Impl) AddRolePrivilege(ctx context.Context, db bun.IDB, guildID sharedtypes.GuildID, roleID sharedtypes.RoleID, privilege guilddomain.Privilege) error {
	db = r.resolveDB(db)
	row := &RolePrivilege{
		GuildID:   guildID,
		RoleID:    roleID,
		Privilege: privilege,
		CreatedAt: time.Now().UTC(),
	}
	_, err := db.NewInsert().
		Model(row).
		On("CONFLICT (guild_id, role_id, privilege) DO NOTHING").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to add role privilege: %w", err)
	}
	return nil
}

// RemoveRolePrivilege deletes the pair if present.
func (r *Impl) RemoveRolePrivilege(ctx context.Context, db bun.IDB, guildID sharedtypes.GuildID, roleID sharedtypes.RoleID, privilege guilddomain.Privilege) error {
	db = r.resolveDB(db)
	_, err := db.NewDelete().
		Model((*RolePrivilege)(nil)).
		Where("guild_id = ?", guildID).
		Where("role_id = ?", roleID).
		Where("privilege = ?", privilege).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to remove role privilege: %w", err)
	}
	return nil
}
