package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"slices"
	"sync"

	"github.com/Black-And-White-Club/guildkeeper/app/modules/guild"
	guilddomain "github.com/Black-And-White-Club/guildkeeper/app/modules/guild/domain"
	"github.com/Black-And-White-Club/guildkeeper/app/modules/slap"
	slapdomain "github.com/Black-And-White-Club/guildkeeper/app/modules/slap/domain"
	"github.com/Black-And-White-Club/guildkeeper/config"
	"github.com/Black-And-White-Club/guildkeeper/internal/db/bundb"
	"github.com/Black-And-White-Club/guildkeeper/internal/eventbus"
	"github.com/Black-And-White-Club/guildkeeper/internal/httpapi"
	"github.com/Black-And-White-Club/guildkeeper/internal/modules"
	"github.com/Black-And-White-Club/guildkeeper/internal/observability"
	"github.com/go-chi/chi/v5"
	"github.com/uptrace/bun"
	"golang.org/x/time/rate"
)

// EventTopics lists every topic the modules publish, guild first.
func EventTopics() []string {
	return slices.Concat(guilddomain.Topics(), slapdomain.Topics())
}

// App wires the shared infrastructure and the feature modules.
type App struct {
	Config        *config.Config
	Observability observability.Observability
	DB            *bun.DB
	EventBus      *eventbus.EventBus
	GuildModule   *guild.Module
	SlapModule    *slap.Module

	modules *modules.Registry
	router  *chi.Mux
	wg      sync.WaitGroup
}

// NewApp initializes the application with the necessary services and configuration.
func NewApp(ctx context.Context, cfg *config.Config, logOutput io.Writer) (*App, error) {
	obs, err := observability.New(ctx, logOutput, config.ToObsConfig(cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize observability: %w", err)
	}
	logger := obs.Logger

	db, err := bundb.Open(ctx, cfg.Postgres.DSN, logger)
	if err != nil {
		return nil, err
	}

	if cfg.Postgres.AutoMigrate {
		if err := bundb.MigrateAll(ctx, db, logger); err != nil {
			db.Close()
			return nil, err
		}
	}

	bus, err := eventbus.New(cfg.NATS.URL, logger)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize event bus: %w", err)
	}

	app := &App{
		Config:        cfg,
		Observability: obs,
		DB:            db,
		EventBus:      bus,
		GuildModule:   guild.NewGuildModule(ctx, obs, db, bus),
		SlapModule:    slap.NewSlapModule(ctx, obs, db, bus),
	}
	app.modules = modules.NewRegistry(app.GuildModule, app.SlapModule)
	app.router = app.buildRouter()

	return app, nil
}

func (app *App) buildRouter() *chi.Mux {
	logger := app.Observability.Logger
	httpCfg := app.Config.HTTP

	r := httpapi.NewRouter(logger, app.Observability.Registry, app.Config.Observability.MetricsPath)

	clientLimiter := httpapi.NewRateLimiter(httpapi.RateLimitConfig{
		Rate:      rate.Limit(httpCfg.RateLimit),
		Burst:     httpCfg.RateBurst,
		IdleAfter: httpCfg.RateLimitIdle,
		MaxKeys:   httpCfg.RateLimitMaxClients,
	})
	guildLimiter := httpapi.NewRateLimiter(httpapi.RateLimitConfig{
		Rate:      rate.Limit(httpCfg.GuildWriteRate),
		Burst:     httpCfg.GuildWriteBurst,
		IdleAfter: httpCfg.RateLimitIdle,
		MaxKeys:   httpCfg.RateLimitMaxClients,
	})

	auth := httpapi.NewTokenAuthenticator(httpCfg.JWTSecret)
	if auth == nil {
		logger.Warn("No JWT secret configured; mutating routes are unauthenticated")
	}
	requireBearer := auth.RequireBearer(logger)
	limitGuildWrites := httpapi.RateLimitMiddleware(guildLimiter, httpapi.GuildKey, logger)
	// Writes authenticate first so anonymous callers cannot drain a guild's budget.
	guardWrites := func(next http.Handler) http.Handler {
		return requireBearer(limitGuildWrites(next))
	}

	r.Route("/api", func(r chi.Router) {
		r.Use(httpapi.CORSMiddleware(httpCfg.AllowedOrigins))
		r.Use(httpapi.RateLimitMiddleware(clientLimiter, httpapi.ClientKey, logger))
		r.Get("/langs", httpapi.LangsHandler(app.Config.AllowedLangs))
		r.Route("/guilds", func(r chi.Router) {
			app.modules.Mount(r, guardWrites)
		})
	})
	return r
}

// Router returns the root HTTP handler.
func (app *App) Router() http.Handler {
	return app.router
}

// Close releases modules, the event bus, the database and the trace
// exporter, in that order.
func (app *App) Close() error {
	var errs []error
	if err := app.modules.Close(); err != nil {
		errs = append(errs, err)
	}
	if err := app.EventBus.Close(); err != nil {
		errs = append(errs, fmt.Errorf("failed to close event bus: %w", err))
	}
	app.wg.Wait()
	if err := app.DB.Close(); err != nil {
		errs = append(errs, fmt.Errorf("failed to close database: %w", err))
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := app.Observability.Shutdown(shutdownCtx); err != nil {
		errs = append(errs, fmt.Errorf("failed to flush traces: %w", err))
	}
	return errors.Join(errs...)
}
