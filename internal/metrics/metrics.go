package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	// HTTPRequestsTotal counts all HTTP requests processed by the service.
	HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests handled by the service.",
		},
		[]string{"path", "method", "status"},
	)

	// HTTPRequestDuration measures how long HTTP handlers take to respond.
	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Histogram of latencies for HTTP requests.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"path", "method"},
	)

	// UpstreamRequests counts calls to the upstream catalog API.
	UpstreamRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "upstream_requests_total",
			Help: "Count of requests to the upstream catalog API.",
		},
		[]string{"category", "status"},
	)

	// UpstreamRequestDuration measures duration of upstream catalog calls.
	UpstreamRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "upstream_request_duration_seconds",
			Help:    "Histogram of upstream catalog request durations.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"category"},
	)

	// CategoriesLoaded tracks how many categories are warm.
	CategoriesLoaded = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "cache_categories_loaded",
			Help: "Number of categories whose collection is fully cached.",
		},
	)
)

// Register registers all metrics in the default registry.
func Register() {
	prometheus.MustRegister(
		HTTPRequestsTotal,
		HTTPRequestDuration,
		UpstreamRequests,
		UpstreamRequestDuration,
		CategoriesLoaded,
	)
}

// RecordUpstreamRequest records metrics for one upstream catalog call.
func RecordUpstreamRequest(category string, err error, durationSeconds float64) {
	status := "success"
	if err != nil {
		status = "error"
	}
	UpstreamRequests.WithLabelValues(category, status).Inc()
	UpstreamRequestDuration.WithLabelValues(category).Observe(durationSeconds)
}

// Middleware collects Prometheus metrics for each HTTP request. The route
// template is used as the path label to keep cardinality bounded.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		HTTPRequestsTotal.WithLabelValues(path, c.Request.Method, strconv.Itoa(c.Writer.Status())).Inc()
		HTTPRequestDuration.WithLabelValues(path, c.Request.Method).Observe(time.Since(start).Seconds())
	}
}
