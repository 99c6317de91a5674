package guildmigrations

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Creating guild_configs and role_privileges tables...")

		return db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
			if _, err := tx.ExecContext(ctx, `
				CREATE TABLE IF NOT EXISTS guild_configs (
					guild_id VARCHAR(20) PRIMARY KEY,
					admin_channel VARCHAR(20),
					advertise BOOLEAN NOT NULL DEFAULT FALSE,
					welcome_message TEXT,
					goodbye_message TEXT,
					created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
					updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
				);
			`); err != nil {
				return fmt.Errorf("failed to create guild_configs table: %w", err)
			}

			if _, err := tx.ExecContext(ctx, `
				CREATE TABLE IF NOT EXISTS role_privileges (
					guild_id VARCHAR(20) NOT NULL REFERENCES guild_configs(guild_id),
					role_id VARCHAR(20) NOT NULL,
					privilege VARCHAR(16) NOT NULL CHECK (privilege IN ('admin', 'manager', 'event')),
					created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
					PRIMARY KEY (guild_id, role_id, privilege)
				);
				CREATE INDEX IF NOT EXISTS idx_role_privileges_guild_privilege
					ON role_privileges(guild_id, privilege);
			`); err != nil {
				return fmt.Errorf("failed to create role_privileges table: %w", err)
			}

			return nil
		})
	}, func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Dropping role_privileges and guild_configs tables...")

		return db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
			if _, err := tx.ExecContext(ctx, `DROP TABLE IF EXISTS role_privileges;`); err != nil {
				return fmt.Errorf("failed to drop role_privileges table: %w", err)
			}
			if _, err := tx.ExecContext(ctx, `DROP TABLE IF EXISTS guild_configs;`); err != nil {
				return fmt.Errorf("failed to drop guild_configs table: %w", err)
			}
			return nil
		})
	})
}
