package slapdb

import (
	"context"
	"fmt"

	sharedtypes "github.com/Black-And-White-Club/guildkeeper/app/types/shared"
	"github.com/uptrace/bun"
)

// Impl implements the Repository interface using Bun ORM.
type Impl struct {
	db bun.IDB
}

// NewRepository creates a new ledger repository.
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

func (r *Impl) Insert(ctx context.Context, db bun.IDB, slap *SlapReport) error {
	db = r.resolveDB(db)
	err := db.NewInsert().
		Model(slap).
		ExcludeColumn("id", "created_at").
		Returning("id, created_at").
		Scan(ctx, &slap.ID, &slap.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert slap: %w", err)
	}
	return nil
}

func (r *Impl) CountGuild(ctx context.Context, db bun.IDB, guildID sharedtypes.GuildID) (int, error) {
	db = r.resolveDB(db)
	n, err := db.NewSelect().
		Model((*SlapReport)(nil)).
		Where("guild_id = ?", guildID).
		Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to count guild slaps: %w", err)
	}
	return n, nil
}

func (r *Impl) ListGuild(ctx context.Context, db bun.IDB, guildID sharedtypes.GuildID, limit int) ([]SlapReport, error) {
	db = r.resolveDB(db)
	var slaps []SlapReport
	err := db.NewSelect().
		Model(&slaps).
		Where("guild_id = ?", guildID).
		Order("id ASC").
		Limit(limit).
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list guild slaps: %w", err)
	}
	return slaps, nil
}

func (r *Impl) CountMember(ctx context.Context, db bun.IDB, guildID sharedtypes.GuildID, offender sharedtypes.UserID) (int, error) {
	db = r.resolveDB(db)
	n, err := db.NewSelect().
		Model((*SlapReport)(nil)).
		Where("guild_id = ?", guildID).
		Where("offender = ?", offender).
		Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to count member slaps: %w", err)
	}
	return n, nil
}

func (r *Impl) ListMember(ctx context.Context, db bun.IDB, guildID sharedtypes.GuildID, offender sharedtypes.UserID, limit int) ([]SlapReport, error) {
	db = r.resolveDB(db)
	var slaps []SlapReport
	err := db.NewSelect().
		Model(&slaps).
		Where("guild_id = ?", guildID).
		Where("offender = ?", offender).
		Order("id ASC").
		Limit(limit).
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list member slaps: %w", err)
	}
	return slaps, nil
}

func (r *Impl) ListOffenders(ctx context.Context, db bun.IDB, guildID sharedtypes.GuildID, limit int) ([]sharedtypes.UserID, error) {
	db = r.resolveDB(db)
	var offenders []sharedtypes.UserID
	err := db.NewSelect().
		Model((*SlapReport)(nil)).
		Column("offender").
		Where("guild_id = ?", guildID).
		Order("id ASC").
		Limit(limit).
		Scan(ctx, &offenders)
	if err != nil {
		return nil, fmt.Errorf("failed to list offenders: %w", err)
	}
	return offenders, nil
}
