package metrics

import "github.com/prometheus/client_golang/prometheus"

// Search outcomes.
const (
	OutcomeRemote   = "remote"
	OutcomeFallback = "fallback"
	OutcomeFailed   = "failed"
)

// Search Prometheus metrics.
var (
	SearchRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "catalog",
			Name:      "search_requests_total",
			Help:      "Product searches by the path that produced the answer",
		},
		[]string{"outcome"}, // remote / fallback / failed
	)

	RemoteQueryDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "catalog",
			Name:      "remote_query_duration_seconds",
			Help:      "Remote content store query duration in seconds",
			Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
		[]string{"status"}, // ok / error
	)

	PostFilterDropped = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "catalog",
			Name:      "post_filter_dropped_total",
			Help:      "Remote results removed by the in-process post-filter",
		},
	)

	SnapshotProducts = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "catalog",
			Name:      "snapshot_products",
			Help:      "Products held by the local catalog snapshot",
		},
	)
)

var searchMetricsRegistered bool

// RegisterSearchMetrics registers Prometheus search metrics. Must be called once from main.
func RegisterSearchMetrics() {
	if searchMetricsRegistered {
		return
	}
	prometheus.MustRegister(SearchRequestsTotal)
	prometheus.MustRegister(RemoteQueryDuration)
	prometheus.MustRegister(PostFilterDropped)
	prometheus.MustRegister(SnapshotProducts)
	searchMetricsRegistered = true
}
