// Package metrics provides Prometheus metrics for the part counter
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP metrics
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "partcounter_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "partcounter_http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	// Aggregation metrics
	CountsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "partcounter_counts_total",
			Help: "Total number of aggregation runs by outcome",
		},
		[]string{"outcome"},
	)

	CountSelections = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "partcounter_count_selections",
			Help:    "Number of selections per aggregation run",
			Buckets: []float64{1, 2, 5, 10, 25, 50, 100, 500},
		},
	)

	CountDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "partcounter_count_duration_seconds",
			Help:    "Time taken to snapshot the catalog and aggregate totals",
			Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		},
	)

	// Catalog metrics
	CatalogMutationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "partcounter_catalog_mutations_total",
			Help: "Total number of successful catalog mutations",
		},
		[]string{"kind"},
	)
)

// RecordHTTPRequest records one served request
func RecordHTTPRequest(method, route, status string, duration time.Duration) {
	HTTPRequestsTotal.WithLabelValues(method, route, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// RecordCount records one aggregation run; outcome is "ok" or an error code
func RecordCount(outcome string, selections int, duration time.Duration) {
	CountsTotal.WithLabelValues(outcome).Inc()
	CountSelections.Observe(float64(selections))
	CountDuration.Observe(duration.Seconds())
}

// RecordMutation records a successful catalog mutation
func RecordMutation(kind string) {
	CatalogMutationsTotal.WithLabelValues(kind).Inc()
}
