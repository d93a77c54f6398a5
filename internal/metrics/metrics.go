// Package metrics exposes Prometheus collectors for stream resolution and the event store.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Resolve outcomes
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
	OutcomeEmpty   = "empty"
	OutcomeTimeout = "timeout"
)

var (
	// ResolveAttempts counts resolver calls per provider and outcome
	ResolveAttempts = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "sportslive_resolve_attempts_total",
		Help: "Total number of provider resolve attempts",
	}, []string{"provider", "outcome"})

	// ResolveDuration tracks how long resolver calls take
	ResolveDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "sportslive_resolve_duration_seconds",
		Help:    "Duration of provider resolve attempts",
		Buckets: []float64{0.1, 0.25, 0.5, 1, 2, 4, 8, 16},
	}, []string{"provider"})

	// EventGroups is the number of event groups in the current snapshot
	EventGroups = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "sportslive_event_groups",
		Help: "Number of event groups in the published snapshot",
	})

	// RefreshFailures counts failed event feed refreshes
	RefreshFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "sportslive_event_refresh_failures_total",
		Help: "Total number of failed event feed refreshes",
	})
)

// RecordResolve records the outcome and latency of one resolver call
func RecordResolve(provider, outcome string, elapsed time.Duration) {
	ResolveAttempts.WithLabelValues(provider, outcome).Inc()
	ResolveDuration.WithLabelValues(provider).Observe(elapsed.Seconds())
}
