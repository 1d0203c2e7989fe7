// Package metrics provides Prometheus metrics collection for the rental BFF.
package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequestDuration tracks HTTP request duration by method, path, and status code.
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status_code"},
	)

	// HTTPRequestTotal tracks total HTTP requests by method, path, and status code.
	HTTPRequestTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status_code"},
	)

	// GraphQLRequestsTotal tracks upstream GraphQL calls by operation and outcome.
	GraphQLRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "graphql_requests_total",
			Help: "Total number of GraphQL API calls",
		},
		[]string{"operation", "outcome"},
	)

	// GraphQLRequestDuration tracks upstream GraphQL call latency.
	GraphQLRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "graphql_request_duration_seconds",
			Help:    "GraphQL API call duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"},
	)

	// QueryCacheOperationsTotal tracks query cache lookups, fetches and invalidations.
	QueryCacheOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "query_cache_operations_total",
			Help: "Total number of query cache operations",
		},
		[]string{"operation", "result"},
	)

	// QueryRetriesTotal tracks retried query fetches by domain.
	QueryRetriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "query_retries_total",
			Help: "Total number of retried query fetches",
		},
		[]string{"domain"},
	)

	// QueryCacheSize tracks current query cache size.
	QueryCacheSize = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "query_cache_size",
			Help: "Current query cache size",
		},
	)

	// QueryCacheCapacity tracks query cache capacity.
	QueryCacheCapacity = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "query_cache_capacity",
			Help: "Query cache capacity",
		},
	)

	// ContractQuotesTotal tracks contract quotes by status.
	ContractQuotesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "contract_quotes_total",
			Help: "Total number of contract quotes",
		},
		[]string{"status"},
	)

	// ContractQuoteDuration tracks contract quote duration.
	ContractQuoteDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "contract_quote_duration_seconds",
			Help:    "Contract quote duration in seconds",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1},
		},
	)

	// ContractDraftOperationsTotal tracks contract draft operations.
	ContractDraftOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "contract_draft_operations_total",
			Help: "Total number of contract draft operations",
		},
		[]string{"operation", "result"},
	)

	// CircuitBreakerState tracks circuit breaker state (0 closed, 1 open, 2 half-open).
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0 closed, 1 open, 2 half-open)",
		},
		[]string{"name"},
	)
)

// PrometheusMiddleware returns a Gin middleware that collects HTTP metrics.
func PrometheusMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}

		c.Next()

		duration := time.Since(start).Seconds()
		statusCode := strconv.Itoa(c.Writer.Status())
		method := c.Request.Method

		HTTPRequestDuration.WithLabelValues(method, path, statusCode).Observe(duration)
		HTTPRequestTotal.WithLabelValues(method, path, statusCode).Inc()
	}
}

// RecordGraphQLRequest records metrics for one GraphQL API call.
func RecordGraphQLRequest(operation, outcome string, duration time.Duration) {
	GraphQLRequestsTotal.WithLabelValues(operation, outcome).Inc()
	GraphQLRequestDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// RecordQueryCacheOperation records metrics for a query cache operation.
func RecordQueryCacheOperation(operation, result string) {
	QueryCacheOperationsTotal.WithLabelValues(operation, result).Inc()
}

// RecordQueryRetry records a retried fetch.
func RecordQueryRetry(domain string) {
	QueryRetriesTotal.WithLabelValues(domain).Inc()
}

// UpdateQueryCacheMetrics updates query cache size and capacity metrics.
func UpdateQueryCacheMetrics(size, capacity int) {
	QueryCacheSize.Set(float64(size))
	QueryCacheCapacity.Set(float64(capacity))
}

// RecordContractQuote records metrics for a contract quote.
func RecordContractQuote(duration time.Duration, status string) {
	ContractQuoteDuration.Observe(duration.Seconds())
	ContractQuotesTotal.WithLabelValues(status).Inc()
}

// RecordContractDraftOperation records metrics for a contract draft operation.
func RecordContractDraftOperation(operation, result string) {
	ContractDraftOperationsTotal.WithLabelValues(operation, result).Inc()
}

// SetCircuitBreakerState records the state of a named circuit breaker.
func SetCircuitBreakerState(name string, state int) {
	CircuitBreakerState.WithLabelValues(name).Set(float64(state))
}
