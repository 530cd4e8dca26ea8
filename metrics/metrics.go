// Package metrics defines the workspace-api Prometheus metrics.
package metrics

import (
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/eoplatform/workspace-api/go-pkg/util"
)

var (
	httpReqsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "workspace_api",
			Subsystem: "http_requests",
			Name:      "total",
			Help:      "Tracks all HTTP requests",
		},
		[]string{"api", "method", "status_code"},
	)
	httpReqsLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "workspace_api",
			Subsystem: "http_requests",
			Name:      "latency_seconds",

			// lowest bucket start of upper bound 0.001 sec (1 ms) with factor 2
			// highest bucket start of 8.192 sec = 0.001 * pow(2, 13).
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 14),
		},
		[]string{"api", "method", "status_code"},
	)
	conflictRetriesExhausted = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "workspace_api",
			Subsystem: "mutations",
			Name:      "conflict_retries_exhausted_total",
			Help:      "Tracks mutations surfaced as 409 after the local retry budget",
		},
	)
)

func init() {
	prometheus.MustRegister(
		httpReqsTotal,
		httpReqsLatency,
		conflictRetriesExhausted,
	)
}

// IncrementConflictRetriesExhausted counts a mutation that lost the
// optimistic-concurrency race three times in a row.
func IncrementConflictRetriesExhausted() {
	conflictRetriesExhausted.Inc()
}

// PrometheusMiddlewareForGin is a Gin middleware that exports Prometheus metrics.
func PrometheusMiddlewareForGin() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		took := time.Since(start)

		api, componentsN := deriveAPIPrefix(c.FullPath())
		if componentsN < 1 { // do not log special endpoints
			return
		}

		method := c.Request.Method
		statusCode := strconv.Itoa(c.Writer.Status())

		httpReqsTotal.WithLabelValues(api, method, statusCode).Inc()
		httpReqsLatency.WithLabelValues(api, method, statusCode).Observe(took.Seconds())
	}
}

// deriveAPIPrefix returns up to the first element of the path, so
// "/workspaces/:name/register" and "/workspaces/:name" share a label.
func deriveAPIPrefix(fullPath string) (string, int) {
	splits := util.RemoveEmptyStringFromSlice(strings.Split(fullPath, "/"))
	n := len(splits)
	if n > 1 {
		splits = splits[:1]
	}
	return "/" + strings.Join(splits, "/"), n
}
