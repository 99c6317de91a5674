package bundb

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	guildmigrations "github.com/Black-And-White-Club/guildkeeper/app/modules/guild/infrastructure/repositories/migrations"
	slapmigrations "github.com/Black-And-White-Club/guildkeeper/app/modules/slap/infrastructure/repositories/migrations"
	"github.com/Black-And-White-Club/guildkeeper/internal/observability/attr"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/migrate"
)

// Migrators returns one migrator per module. Each module keeps its own
// migration table so modules migrate independently.
func Migrators(db *bun.DB) map[string]*migrate.Migrator {
	return map[string]*migrate.Migrator{
		"guild": migrate.NewMigrator(db, guildmigrations.Migrations,
			migrate.WithTableName("bun_migrations_guild"),
			migrate.WithLocksTableName("bun_migration_locks_guild")),
		"slap": migrate.NewMigrator(db, slapmigrations.Migrations,
			migrate.WithTableName("bun_migrations_slap"),
			migrate.WithLocksTableName("bun_migration_locks_slap")),
	}
}

// ModuleNames returns the migrator keys in a stable order.
func ModuleNames(migrators map[string]*migrate.Migrator) []string {
	names := make([]string, 0, len(migrators))
	for name := range migrators {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// MigrateAll initializes and applies every module's pending migrations.
func MigrateAll(ctx context.Context, db *bun.DB, logger *slog.Logger) error {
	migrators := Migrators(db)
	for _, name := range ModuleNames(migrators) {
		migrator := migrators[name]
		if err := migrator.Init(ctx); err != nil {
			return fmt.Errorf("failed to init migrations for %s: %w", name, err)
		}
		if err := migrator.Lock(ctx); err != nil {
			return fmt.Errorf("failed to lock migrations for %s: %w", name, err)
		}
		group, err := migrator.Migrate(ctx)
		if unlockErr := migrator.Unlock(ctx); unlockErr != nil && err == nil {
			err = unlockErr
		}
		if err != nil {
			return fmt.Errorf("failed to migrate %s: %w", name, err)
		}
		if group.IsZero() {
			logger.InfoContext(ctx, "No new migrations", attr.String("module", name))
		} else {
			logger.InfoContext(ctx, "Migrated module",
				attr.String("module", name),
				attr.String("group", group.String()),
			)
		}
	}
	return nil
}
