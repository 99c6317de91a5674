//go:build integration

package testutils

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"testing"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/uptrace/bun"

	"github.com/Black-And-White-Club/guildkeeper/integration_tests/containers"
	"github.com/Black-And-White-Club/guildkeeper/internal/db/bundb"
	"github.com/Black-And-White-Club/guildkeeper/internal/eventbus"
)

// resetTables lists every table a test may write to.
var resetTables = []string{"slap_reports", "role_privileges", "guild_configs"}

// TestEnvironment holds a migrated database and an in-memory event bus.
type TestEnvironment struct {
	Ctx         context.Context
	PgContainer *postgres.PostgresContainer
	DB          *bun.DB
	EventBus    *eventbus.EventBus
	Logger      *slog.Logger
}

var (
	sharedEnv     *TestEnvironment
	sharedEnvErr  error
	sharedEnvOnce sync.Once
)

// GetTestEnv returns the package-wide environment, starting it on first use.
func GetTestEnv(t *testing.T) *TestEnvironment {
	t.Helper()
	sharedEnvOnce.Do(func() {
		sharedEnv, sharedEnvErr = NewTestEnvironment(context.Background())
	})
	if sharedEnvErr != nil {
		t.Fatalf("failed to set up test environment: %v", sharedEnvErr)
	}
	return sharedEnv
}

// NewTestEnvironment starts Postgres and applies every module migration.
func NewTestEnvironment(ctx context.Context) (*TestEnvironment, error) {
	pgContainer, connStr, err := containers.SetupPostgresContainer(ctx)
	if err != nil {
		return nil, err
	}

	sqlDB, err := sql.Open("pgx", connStr)
	if err != nil {
		_ = pgContainer.Terminate(ctx)
		return nil, fmt.Errorf("failed to open sql DB connection: %w", err)
	}
	db := bundb.New(sqlDB)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	if err := bundb.MigrateAll(ctx, db, logger); err != nil {
		db.Close()
		_ = pgContainer.Terminate(ctx)
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &TestEnvironment{
		Ctx:         ctx,
		PgContainer: pgContainer,
		DB:          db,
		EventBus:    eventbus.NewInMemory(logger),
		Logger:      logger,
	}, nil
}

// Reset truncates every table so each test starts from an empty store.
func (env *TestEnvironment) Reset(ctx context.Context) error {
	for _, table := range resetTables {
		if _, err := env.DB.ExecContext(ctx, fmt.Sprintf("TRUNCATE TABLE %s RESTART IDENTITY CASCADE", table)); err != nil {
			return fmt.Errorf("failed to truncate %s: %w", table, err)
		}
	}
	return nil
}

// Cleanup closes the database and stops the container.
func (env *TestEnvironment) Cleanup() {
	if env == nil {
		return
	}
	if env.EventBus != nil {
		_ = env.EventBus.Close()
	}
	if env.DB != nil {
		_ = env.DB.Close()
	}
	if env.PgContainer != nil {
		_ = env.PgContainer.Terminate(context.Background())
	}
}

// CleanupShared tears down the environment created by GetTestEnv, if any.
func CleanupShared() {
	if sharedEnv != nil {
		sharedEnv.Cleanup()
	}
}
