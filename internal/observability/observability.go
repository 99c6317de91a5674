// Package observability wires logging, metrics and tracing for the service.
package observability

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// ServiceName is used as the metric namespace and tracer prefix.
const ServiceName = "guildkeeper"

// Config selects the logging environment and level and, when OTLPEndpoint
// is set, where spans are exported.
type Config struct {
	Environment      string
	LogLevel         string
	OTLPEndpoint     string
	OTLPInsecure     bool
	TraceSampleRatio float64
}

// Observability bundles the handles every module receives.
type Observability struct {
	Logger   *slog.Logger
	Metrics  Metrics
	Registry *prometheus.Registry
	tracers  trace.TracerProvider
	shutdown func(context.Context) error
}

// New builds the process-wide observability stack.
func New(ctx context.Context, w io.Writer, cfg Config) (Observability, error) {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	metrics, err := NewMetrics(reg)
	if err != nil {
		return Observability{}, fmt.Errorf("failed to register metrics: %w", err)
	}

	tracers, shutdown, err := newTracerProvider(ctx, cfg)
	if err != nil {
		return Observability{}, err
	}

	return Observability{
		Logger:   NewLogger(w, cfg.Environment, cfg.LogLevel),
		Metrics:  metrics,
		Registry: reg,
		tracers:  tracers,
		shutdown: shutdown,
	}, nil
}

// Shutdown flushes pending spans.
func (o Observability) Shutdown(ctx context.Context) error {
	if o.shutdown == nil {
		return nil
	}
	return o.shutdown(ctx)
}

// NewNoop returns an Observability that discards all signals.
func NewNoop() Observability {
	return Observability{
		Logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		Metrics:  NoOpMetrics{},
		Registry: prometheus.NewRegistry(),
		tracers:  noop.NewTracerProvider(),
	}
}

// Tracer returns a named tracer for a module.
func (o Observability) Tracer(name string) trace.Tracer {
	if o.tracers == nil {
		return otel.Tracer(ServiceName + "/" + name)
	}
	return o.tracers.Tracer(ServiceName + "/" + name)
}
