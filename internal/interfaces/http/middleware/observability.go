// Package middleware contains the Gin middleware chain.
package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/openshelf/shelfd/pkg/metrics"
)

// Metric names maintained by the instrumentation middleware.
const (
	MetricRequestsTotal      = "http_requests_total"
	MetricRequestDuration    = "http_request_duration_seconds"
	MetricRequestsInProgress = "http_requests_in_progress"
)

// RouteUnmatched is the route label for requests that matched no registered
// route. A fixed sentinel keeps arbitrary unknown paths from exploding label
// cardinality.
const RouteUnmatched = "unmatched"

// Observability returns the request instrumentation middleware. For every
// request it records the total counter (method, route template, status class)
// and the latency histogram (method, route template), and tracks in-flight
// requests in a gauge. Requests to metricsPath are skipped entirely: scrapes
// are not application traffic. A downstream panic is still observed with a
// 5xx status class before it is re-raised for the recovery middleware.
func Observability(registry *metrics.Registry, metricsPath string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.FullPath() == metricsPath {
			c.Next()
			return
		}

		start := time.Now()
		registry.GaugeAdd(MetricRequestsInProgress, nil, 1)

		defer func() {
			registry.GaugeAdd(MetricRequestsInProgress, nil, -1)

			method := c.Request.Method
			// The registered template (e.g. /items/:id), never the raw path.
			route := c.FullPath()
			if route == "" {
				route = RouteUnmatched
			}

			elapsed := time.Since(start)
			if r := recover(); r != nil {
				// The handler died before producing a status; observe the
				// failure, then hand the panic back untouched.
				record(registry, method, route, "5xx", elapsed)
				panic(r)
			}
			record(registry, method, route, statusClass(c.Writer.Status()), elapsed)
		}()

		c.Next()
	}
}

func record(registry *metrics.Registry, method, route, class string, elapsed time.Duration) {
	registry.CounterInc(MetricRequestsTotal, metrics.Labels{
		"method":       method,
		"route":        route,
		"status_class": class,
	})
	registry.HistogramObserve(MetricRequestDuration, metrics.Labels{
		"method": method,
		"route":  route,
	}, elapsed.Seconds())
}

// statusClass collapses a status code into 1xx..5xx.
func statusClass(status int) string {
	if status < 100 || status > 599 {
		return "5xx"
	}
	return strconv.Itoa(status/100) + "xx"
}
