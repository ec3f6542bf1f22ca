// Package metrics holds the Prometheus collectors shared by the refresh and
// notification pipeline.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RefreshOutcomes = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "updatechecker_refresh_outcomes_total",
		Help: "Refresh outcomes per software id and status",
	}, []string{"software", "status"})

	RefreshCycleDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "updatechecker_refresh_cycle_duration_seconds",
		Help:    "Duration of a full refresh cycle",
		Buckets: prometheus.ExponentialBuckets(0.05, 2, 12),
	})

	FilteredEvents = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "updatechecker_mutation_events_total",
		Help: "Mutation events seen by the filter, by verdict",
	}, []string{"verdict"})

	Publishes = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "updatechecker_publishes_total",
		Help: "Notification publish attempts by result",
	}, []string{"result"})
)
