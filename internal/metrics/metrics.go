// Package metrics provides Prometheus metrics collection for the catalog service.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Cache operation results
const (
	ResultHit    = "hit"
	ResultMiss   = "miss"
	ResultBypass = "bypass"
	ResultError  = "error"
)

var (
	// HTTPRequestDuration tracks HTTP request duration by method, route, and status code.
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status_code"},
	)

	// HTTPRequestTotal tracks total HTTP requests by method, route, and status code.
	HTTPRequestTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status_code"},
	)

	// CacheOperationsTotal tracks cache lookups by namespace and result.
	CacheOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_cache_operations_total",
			Help: "Total number of catalog cache lookups",
		},
		[]string{"namespace", "result"},
	)

	// CacheInvalidationsTotal tracks invalidation rounds by outcome.
	CacheInvalidationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_cache_invalidations_total",
			Help: "Total number of catalog cache invalidations",
		},
		[]string{"status"},
	)

	// CacheInvalidatedEntries tracks how many entries invalidation removed.
	CacheInvalidatedEntries = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "catalog_cache_invalidated_entries_total",
			Help: "Total number of cache entries removed by invalidation",
		},
	)

	// CacheSize tracks current in-memory cache size.
	CacheSize = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "catalog_cache_size",
			Help: "Current number of in-memory cache entries",
		},
	)

	// StoreQueryDuration tracks report and listing query duration.
	StoreQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "catalog_store_query_duration_seconds",
			Help:    "Catalog store query duration in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0},
		},
		[]string{"query"},
	)
)

// RecordHTTPRequest records metrics for one served request.
func RecordHTTPRequest(method, path string, statusCode int, duration time.Duration) {
	status := strconv.Itoa(statusCode)
	HTTPRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())
	HTTPRequestTotal.WithLabelValues(method, path, status).Inc()
}

// RecordCacheOperation records metrics for a cache lookup.
func RecordCacheOperation(namespace, result string) {
	CacheOperationsTotal.WithLabelValues(namespace, result).Inc()
}

// RecordInvalidation records an invalidation round and the entries it removed.
func RecordInvalidation(removed int, err error) {
	if err != nil {
		CacheInvalidationsTotal.WithLabelValues("failed").Inc()
		return
	}
	CacheInvalidationsTotal.WithLabelValues("success").Inc()
	CacheInvalidatedEntries.Add(float64(removed))
}

// RecordStoreQuery records the duration of a store query.
func RecordStoreQuery(query string, duration time.Duration) {
	StoreQueryDuration.WithLabelValues(query).Observe(duration.Seconds())
}

// UpdateCacheSize updates the cache size gauge.
func UpdateCacheSize(size int) {
	CacheSize.Set(float64(size))
}
