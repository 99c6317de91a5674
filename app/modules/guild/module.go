package guild

import (
	"context"
	"log/slog"
	"net/http"

	guildservice "github.com/Black-And-White-Club/guildkeeper/app/modules/guild/application"
	guildhandlers "github.com/Black-And-White-Club/guildkeeper/app/modules/guild/infrastructure/handlers"
	guilddb "github.com/Black-And-White-Club/guildkeeper/app/modules/guild/infrastructure/repositories"
	guildrouter "github.com/Black-And-White-Club/guildkeeper/app/modules/guild/infrastructure/router"
	"github.com/Black-And-White-Club/guildkeeper/internal/eventbus"
	"github.com/Black-And-White-Club/guildkeeper/internal/observability"
	"github.com/go-chi/chi/v5"
	"github.com/uptrace/bun"
)

// Module represents the guild module.
type Module struct {
	GuildService guildservice.Service
	handlers     *guildhandlers.GuildHandlers
	logger       *slog.Logger
}

// NewGuildModule creates a new instance of the Guild module.
func NewGuildModule(
	ctx context.Context,
	obs observability.Observability,
	db *bun.DB,
	publisher eventbus.Publisher,
) *Module {
	logger := obs.Logger.With(slog.String("module", "guild"))
	logger.InfoContext(ctx, "guild.NewGuildModule called")

	guildService := guildservice.NewGuildService(
		guilddb.NewRepository(db),
		logger,
		obs.Metrics,
		obs.Tracer("guild"),
		db,
		publisher,
	)

	return &Module{
		GuildService: guildService,
		handlers:     guildhandlers.NewGuildHandlers(guildService, logger),
		logger:       logger,
	}
}

// Name identifies the module in logs.
func (m *Module) Name() string { return "guild" }

// RegisterRoutes attaches the guild routes under /api/guilds.
func (m *Module) RegisterRoutes(r chi.Router, guardWrites func(http.Handler) http.Handler) {
	guildrouter.Register(r, m.handlers, guardWrites)
}

// Close stops the guild module. The shared database handle is closed by
// the application.
func (m *Module) Close() error {
	m.logger.Info("Guild module stopped")
	return nil
}
