// Package metrics provides Prometheus metrics collection for the package form service.
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

	// UpstreamRequestsTotal counts calls to the package API by endpoint and outcome.
	UpstreamRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "upstream_requests_total",
			Help: "Total number of requests sent to the package API",
		},
		[]string{"endpoint", "outcome"},
	)

	// UpstreamRequestDuration tracks package API latency by endpoint.
	UpstreamRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "upstream_request_duration_seconds",
			Help:    "Package API request duration in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
		[]string{"endpoint"},
	)

	// FormSubmissionsTotal counts package submissions by result.
	FormSubmissionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "form_submissions_total",
			Help: "Total number of package form submissions",
		},
		[]string{"result"},
	)

	// FormStaleResponsesTotal counts option list responses discarded because a newer load superseded them.
	FormStaleResponsesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "form_stale_responses_total",
			Help: "Total number of superseded option list responses discarded",
		},
		[]string{"list"},
	)

	// CircuitBreakerState reports breaker state (0 closed, 1 open, 2 half-open).
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0 closed, 1 open, 2 half-open)",
		},
		[]string{"name"},
	)

	// SessionOperationsTotal tracks session store operations.
	SessionOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "session_operations_total",
			Help: "Total number of session store operations",
		},
		[]string{"operation", "result"},
	)

	// SessionsActive tracks the number of live form sessions.
	SessionsActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "sessions_active",
			Help: "Number of live form sessions",
		},
	)
)

// PrometheusMiddleware returns a Gin middleware that collects HTTP metrics.
func PrometheusMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}

		c.Next()

		duration := time.Since(start).Seconds()
		statusCode := strconv.Itoa(c.Writer.Status())
		method := c.Request.Method

		HTTPRequestDuration.WithLabelValues(method, path, statusCode).Observe(duration)
		HTTPRequestTotal.WithLabelValues(method, path, statusCode).Inc()
	}
}

// RecordUpstreamRequest records the outcome and latency of a package API call.
func RecordUpstreamRequest(endpoint, outcome string, duration time.Duration) {
	UpstreamRequestDuration.WithLabelValues(endpoint).Observe(duration.Seconds())
	UpstreamRequestsTotal.WithLabelValues(endpoint, outcome).Inc()
}

// RecordSubmission records a form submission result.
func RecordSubmission(result string) {
	FormSubmissionsTotal.WithLabelValues(result).Inc()
}

// RecordStaleResponse records a discarded superseded response for list.
func RecordStaleResponse(list string) {
	FormStaleResponsesTotal.WithLabelValues(list).Inc()
}

// SetCircuitBreakerState publishes the numeric state of a named breaker.
func SetCircuitBreakerState(name string, state int) {
	CircuitBreakerState.WithLabelValues(name).Set(float64(state))
}

// RecordSessionOperation records metrics for a session store operation.
func RecordSessionOperation(operation, result string) {
	SessionOperationsTotal.WithLabelValues(operation, result).Inc()
}

// UpdateSessionCount updates the live session gauge.
func UpdateSessionCount(n int) {
	SessionsActive.Set(float64(n))
}
