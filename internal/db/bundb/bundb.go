// Package bundb opens the shared Postgres handle.
package bundb

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/Black-And-White-Club/guildkeeper/internal/observability/attr"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
)

const pingTimeout = 10 * time.Second

// Open connects to Postgres with pgdriver and returns a bun.DB. The handle
// is shared by every module and closed once at shutdown.
func Open(ctx context.Context, dsn string, logger *slog.Logger) (*bun.DB, error) {
	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(dsn)))

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := sqldb.PingContext(pingCtx); err != nil {
		sqldb.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	db := New(sqldb)
	logger.InfoContext(ctx, "Database connection established",
		attr.Int("max_open_conns", sqldb.Stats().MaxOpenConnections),
	)
	return db, nil
}

// New wraps an open sql.DB. Integration tests use it with the pgx stdlib
// driver.
func New(sqldb *sql.DB) *bun.DB {
	return bun.NewDB(sqldb, pgdialect.New())
}
