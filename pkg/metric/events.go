package metric

import (
	"github.com/prometheus/client_golang/prometheus"
)

var _ Events = (*eventMetrics)(nil)

type eventMetrics struct {
	published *prometheus.CounterVec
	failed    *prometheus.CounterVec
}

func newEventMetrics(registry *promRegistry) *eventMetrics {
	published := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "events_published_total",
			Help: "Total number of order events published",
		},
		[]string{"topic"},
	)

	failed := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "events_failed_total",
			Help: "Total number of order events that failed to publish",
		},
		[]string{"topic", "reason"},
	)

	registry.registry.MustRegister(published, failed)

	return &eventMetrics{
		published: published,
		failed:    failed,
	}
}

func (m *eventMetrics) Published(topic string) {
	m.published.WithLabelValues(topic).Add(1)
}

func (m *eventMetrics) Failed(topic string, reason string) {
	m.failed.WithLabelValues(topic, reason).Add(1)
}
