package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	QueriesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dashboard_queries_total",
			Help: "Dashboard read operations by operation and outcome",
		},
		[]string{"op", "outcome"}, // ok|error
	)

	QueryDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "dashboard_query_duration_seconds",
			Help:    "Latency of dashboard read operations",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"op"},
	)

	IngestEventsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dashboard_ingest_events_total",
			Help: "Billing events consumed by the ingest worker",
		},
		[]string{"kind", "outcome"}, // stored|invalid|failed
	)
)

var registerOnce sync.Once

// MustRegister registers all collectors on r. Repeated calls are no-ops.
func MustRegister(r prometheus.Registerer) {
	registerOnce.Do(func() {
		r.MustRegister(
			QueriesTotal,
			QueryDuration,
			IngestEventsTotal,
		)
	})
}
