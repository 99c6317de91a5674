package httpapi

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/Black-And-White-Club/guildkeeper/internal/observability/attr"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewRouter builds the root router with the process-wide middleware, the
// health probe and the metrics endpoint. Modules attach their routes to it.
func NewRouter(logger *slog.Logger, registry *prometheus.Registry, metricsPath string) *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(CorrelationMiddleware)
	r.Use(RequestLogger(logger))
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	if registry != nil && metricsPath != "" {
		r.Handle(metricsPath, promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	}
	return r
}

// RequestLogger logs one line per request at debug level.
func RequestLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)
			logger.DebugContext(r.Context(), "HTTP request",
				attr.ExtractCorrelationID(r.Context()),
				attr.String("method", r.Method),
				attr.String("path", r.URL.Path),
				attr.Int("status", ww.Status()),
				attr.Int("bytes", ww.BytesWritten()),
				attr.Any("duration", time.Since(start)),
			)
		})
	}
}
