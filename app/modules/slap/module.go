package slap

import (
	"context"
	"log/slog"
	"net/http"

	slapservice "github.com/Black-And-White-Club/guildkeeper/app/modules/slap/application"
	slaphandlers "github.com/Black-And-White-Club/guildkeeper/app/modules/slap/infrastructure/handlers"
	slapdb "github.com/Black-And-White-Club/guildkeeper/app/modules/slap/infrastructure/repositories"
	slaprouter "github.com/Black-And-White-Club/guildkeeper/app/modules/slap/infrastructure/router"
	"github.com/Black-And-White-Club/guildkeeper/internal/eventbus"
	"github.com/Black-And-White-Club/guildkeeper/internal/observability"
	"github.com/go-chi/chi/v5"
	"github.com/uptrace/bun"
)

// Module represents the slap ledger module.
type Module struct {
	SlapService slapservice.Service
	handlers    *slaphandlers.SlapHandlers
	logger      *slog.Logger
}

// NewSlapModule creates a new instance of the slap module.
func NewSlapModule(
	ctx context.Context,
	obs observability.Observability,
	db *bun.DB,
	publisher eventbus.Publisher,
) *Module {
	logger := obs.Logger.With(slog.String("module", "slap"))
	logger.InfoContext(ctx, "slap.NewSlapModule called")

	slapService := slapservice.NewSlapService(
		slapdb.NewRepository(db),
		logger,
		obs.Metrics,
		obs.Tracer("slap"),
		publisher,
	)

	return &Module{
		SlapService: slapService,
		handlers:    slaphandlers.NewSlapHandlers(slapService, logger),
		logger:      logger,
	}
}

// Name identifies the module in logs.
func (m *Module) Name() string { return "slap" }

// RegisterRoutes attaches the ledger routes under /api/guilds.
func (m *Module) RegisterRoutes(r chi.Router, guardWrites func(http.Handler) http.Handler) {
	slaprouter.Register(r, m.handlers, guardWrites)
}

// Close stops the slap module.
func (m *Module) Close() error {
	m.logger.Info("Slap module stopped")
	return nil
}
