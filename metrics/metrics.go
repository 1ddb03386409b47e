package metrics

import (
	"log"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsPrefix is the prefix used for all metrics
const MetricsPrefix = "market_data_"

// Operation constants, used as the "operation" label
const (
	OpTopCoins = "top_coins"
	OpSearch   = "search"
	OpDetail   = "coin_detail"
	OpChart    = "coin_chart"
	OpTrending = "trending"
	OpByIDs    = "coins_by_ids"
)

var (
	// Global Coingecko request counter across all operations
	// Cardinality: ~4 (success, error, rate_limited, timeout)
	CoingeckoRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricsPrefix + "coingecko_requests_total",
			Help: "Total number of HTTP requests to Coingecko API across all operations",
		},
		[]string{"status"},
	)

	// Per-operation Coingecko request counter
	// Cardinality: ~24 (6 operations x 4 statuses)
	OperationRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricsPrefix + "operation_requests_total",
			Help: "Total number of HTTP requests to Coingecko API per operation",
		},
		[]string{"operation", "status"},
	)

	// Retry attempts counter
	// Cardinality: ~6 (number of operations)
	RetryAttemptsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricsPrefix + "retry_attempts_total",
			Help: "Total number of retry attempts per operation",
		},
		[]string{"operation"},
	)

	// Cache lookup counter
	// Cardinality: ~18 (6 operations x 3 outcomes: hit, stale, miss)
	CacheLookupsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricsPrefix + "cache_lookups_total",
			Help: "Cache lookups per operation by outcome",
		},
		[]string{"operation", "outcome"},
	)

	// Fetch duration per operation
	// Cardinality: ~6 (number of operations)
	FetchDurationHistogram = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: MetricsPrefix + "fetch_duration_seconds",
			Help: "Time taken to load data through the fetcher",
		},
		[]string{"operation"},
	)

	// Rate limit hits counter
	// Cardinality: ~6 (number of operations)
	RateLimitHitsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricsPrefix + "rate_limit_hits_total",
			Help: "Total number of upstream rate limit rejections per operation",
		},
		[]string{"operation"},
	)
)

// MetricsWriter provides a unified interface for recording per-operation metrics
type MetricsWriter struct {
	operation string
}

// NewMetricsWriter creates a new MetricsWriter for the specified operation
func NewMetricsWriter(operation string) *MetricsWriter {
	return &MetricsWriter{operation: operation}
}

// GetOperation returns the operation name
func (mw *MetricsWriter) GetOperation() string {
	return mw.operation
}

// RecordRequest records a Coingecko API request with its status
func (mw *MetricsWriter) RecordRequest(status string) {
	CoingeckoRequestsTotal.WithLabelValues(status).Inc()
	OperationRequestsTotal.WithLabelValues(mw.operation, status).Inc()
	if status == "rate_limited" {
		RateLimitHitsTotal.WithLabelValues(mw.operation).Inc()
	}
}

// RecordCacheLookup records a cache lookup outcome: hit, stale or miss
func (mw *MetricsWriter) RecordCacheLookup(outcome string) {
	CacheLookupsTotal.WithLabelValues(mw.operation, outcome).Inc()
}

// RecordFetchDuration records how long a load through the fetcher took
func (mw *MetricsWriter) RecordFetchDuration(start time.Time) {
	duration := time.Since(start)
	FetchDurationHistogram.WithLabelValues(mw.operation).Observe(duration.Seconds())
	log.Printf("Metrics: %s fetch took %.2fs", mw.operation, duration.Seconds())
}

// Implement the coingecko status handler interface

// OnRequest records an HTTP request with its status
func (mw *MetricsWriter) OnRequest(status string) {
	mw.RecordRequest(status)
}

// OnRetry records an HTTP retry attempt
func (mw *MetricsWriter) OnRetry() {
	RetryAttemptsTotal.WithLabelValues(mw.operation).Inc()
}
