package obs

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "HTTP requests processed, by method, path and status.",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	opDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "op_duration_seconds",
			Help:    "Internal and outbound operation latency, by op name.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"op", "outcome"},
	)

	queriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "queries_total",
			Help: "Dispatched queries, by resolved request kind.",
		},
		[]string{"kind"},
	)
)

// ObserveHTTP records one served HTTP request.
func ObserveHTTP(method, path, status string, dur time.Duration) {
	httpRequestsTotal.WithLabelValues(method, path, status).Inc()
	httpRequestDuration.WithLabelValues(method, path).Observe(dur.Seconds())
}

// CountQuery records one dispatched query by kind.
func CountQuery(kind string) {
	queriesTotal.WithLabelValues(kind).Inc()
}

func observeOp(name string, dur time.Duration, failed bool) {
	outcome := "ok"
	if failed {
		outcome = "error"
	}
	opDuration.WithLabelValues(name, outcome).Observe(dur.Seconds())
}
