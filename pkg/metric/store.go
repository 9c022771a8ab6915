package metric

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var _ Store = (*storeMetrics)(nil)

type storeMetrics struct {
	duration *prometheus.HistogramVec
	failures *prometheus.CounterVec
}

func newStoreMetrics(registry *promRegistry) *storeMetrics {
	duration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "store_operation_duration_seconds",
			Help:    "Duration of document store operations in seconds",
			Buckets: []float64{0.005, 0.01, 0.05, 0.1, 0.2, 0.5, 1.0, 2.0},
		},
		[]string{"operation"},
	)

	failures := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "store_operation_failures_total",
			Help: "Total number of failed document store operations",
		},
		[]string{"operation"},
	)

	registry.registry.MustRegister(duration, failures)

	return &storeMetrics{
		duration: duration,
		failures: failures,
	}
}

func (m *storeMetrics) ObserveDuration(operation string, duration time.Duration) {
	m.duration.WithLabelValues(operation).Observe(duration.Seconds())
}

func (m *storeMetrics) IncrementFailures(operation string) {
	m.failures.WithLabelValues(operation).Add(1)
}
