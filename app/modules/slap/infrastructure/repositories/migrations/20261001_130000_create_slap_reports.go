package slapmigrations

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Creating slap_reports table...")

		return db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
			if _, err := tx.ExecContext(ctx, `
				CREATE TABLE IF NOT EXISTS slap_reports (
					id BIGSERIAL PRIMARY KEY,
					guild_id VARCHAR(20) NOT NULL,
					sentence NUMERIC(20,0) NOT NULL CHECK (sentence >= 0),
					offender VARCHAR(20) NOT NULL,
					enforcer VARCHAR(20),
					reason TEXT,
					created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
				);
				CREATE INDEX IF NOT EXISTS idx_slap_reports_guild_id ON slap_reports(guild_id, id);
				CREATE INDEX IF NOT EXISTS idx_slap_reports_guild_offender ON slap_reports(guild_id, offender, id);
			`); err != nil {
				return fmt.Errorf("failed to create slap_reports table: %w", err)
			}
			return nil
		})
	}, func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Dropping slap_reports table...")
		if _, err := db.ExecContext(ctx, `DROP TABLE IF EXISTS slap_reports;`); err != nil {
			return fmt.Errorf("failed to drop slap_reports table: %w", err)
		}
		return nil
	})
}
