package observability

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics records service-level operation outcomes.
type Metrics interface {
	RecordOperationAttempt(ctx context.Context, operation, service string)
	RecordOperationSuccess(ctx context.Context, operation, service string)
	RecordOperationFailure(ctx context.Context, operation, service string)
	RecordOperationDuration(ctx context.Context, operation, service string, d time.Duration)
	RecordSlapCreated(ctx context.Context)
}

type prometheusMetrics struct {
	attempts *prometheus.CounterVec
	success  *prometheus.CounterVec
	failure  *prometheus.CounterVec
	duration *prometheus.HistogramVec
	slaps    prometheus.Counter
}

// NewMetrics registers the service collectors on reg.
func NewMetrics(reg prometheus.Registerer) (Metrics, error) {
	m := &prometheusMetrics{
		attempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: ServiceName,
			Name:      "operation_attempts_total",
			Help:      "Service operations started.",
		}, []string{"service", "operation"}),
		success: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: ServiceName,
			Name:      "operation_success_total",
			Help:      "Service operations that completed without error.",
		}, []string{"service", "operation"}),
		failure: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: ServiceName,
			Name:      "operation_failure_total",
			Help:      "Service operations that returned an error.",
		}, []string{"service", "operation"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: ServiceName,
			Name:      "operation_duration_seconds",
			Help:      "Service operation latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"service", "operation"}),
		slaps: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: ServiceName,
			Name:      "slaps_created_total",
			Help:      "Ledger entries appended.",
		}),
	}

	for _, c := range []prometheus.Collector{m.attempts, m.success, m.failure, m.duration, m.slaps} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *prometheusMetrics) RecordOperationAttempt(_ context.Context, operation, service string) {
	m.attempts.WithLabelValues(service, operation).Inc()
}

func (m *prometheusMetrics) RecordOperationSuccess(_ context.Context, operation, service string) {
	m.success.WithLabelValues(service, operation).Inc()
}

func (m *prometheusMetrics) RecordOperationFailure(_ context.Context, operation, service string) {
	m.failure.WithLabelValues(service, operation).Inc()
}

func (m *prometheusMetrics) RecordOperationDuration(_ context.Context, operation, service string, d time.Duration) {
	m.duration.WithLabelValues(service, operation).Observe(d.Seconds())
}

func (m *prometheusMetrics) RecordSlapCreated(_ context.Context) {
	m.slaps.Inc()
}

// NoOpMetrics discards everything. Used by tests and tools.
type NoOpMetrics struct{}

func (NoOpMetrics) RecordOperationAttempt(context.Context, string, string)                 {}
func (NoOpMetrics) RecordOperationSuccess(context.Context, string, string)                 {}
func (NoOpMetrics) RecordOperationFailure(context.Context, string, string)                 {}
func (NoOpMetrics) RecordOperationDuration(context.Context, string, string, time.Duration) {}
func (NoOpMetrics) RecordSlapCreated(context.Context)                                      {}
