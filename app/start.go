package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/Black-And-White-Club/guildkeeper/internal/observability/attr"
)

const (
	readHeaderTimeout = 5 * time.Second
	readTimeout       = 15 * time.Second
	writeTimeout      = 30 * time.Second
	idleTimeout       = 60 * time.Second
	shutdownTimeout   = 10 * time.Second
)

// Start serves HTTP until ctx is canceled, then shuts the server down
// gracefully.
func (app *App) Start(ctx context.Context) error {
	logger := app.Observability.Logger

	if err := app.EventBus.Audit(ctx, &app.wg, EventTopics()...); err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              app.Config.HTTP.Address,
		Handler:           app.Router(),
		ReadHeaderTimeout: readHeaderTimeout,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("Starting HTTP server", attr.String("address", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("http server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	return app.WaitForShutdown(srv)
}

// WaitForShutdown drains in-flight requests within shutdownTimeout.
func (app *App) WaitForShutdown(srv *http.Server) error {
	logger := app.Observability.Logger
	logger.Info("Shutting down HTTP server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http server shutdown: %w", err)
	}
	logger.Info("HTTP server stopped")
	return nil
}
