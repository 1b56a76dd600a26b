package telemetry

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	// SessionsStarted counts sessions by how the user location was resolved
	SessionsStarted = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "nursery",
			Name:      "sessions_started_total",
			Help:      "Total number of sessions started, by location source",
		},
		[]string{"source"},
	)

	// Clicks counts map clicks by whether they matched a facility
	Clicks = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "nursery",
			Name:      "clicks_total",
			Help:      "Total number of map clicks, by outcome",
		},
		[]string{"outcome"},
	)

	// NearestQueries counts stateless nearest-facility lookups
	NearestQueries = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "nursery",
			Name:      "nearest_queries_total",
			Help:      "Total number of nearest-facility queries",
		},
	)

	// OpDuration records timed operations
	OpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "nursery",
			Name:      "op_duration_seconds",
			Help:      "Duration of timed operations",
			Buckets:   []float64{.0005, .001, .005, .01, .05, .1, .5, 1},
		},
		[]string{"op", "result"},
	)

	once sync.Once
)

// InitMetrics registers all metrics with the default registry. Safe to call
// more than once.
func InitMetrics() {
	once.Do(func() {
		prometheus.DefaultRegisterer.MustRegister(
			SessionsStarted,
			Clicks,
			NearestQueries,
			OpDuration,
		)
	})
}
