package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Import orchestrator
	ImportCandidates = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "import_candidates_total",
			Help: "Candidates processed by the importer, by mode and outcome",
		},
		[]string{"mode", "outcome"}, // mode: manual|auto, outcome: created|duplicate|skipped|failed
	)

	ImportBatchDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "import_batch_duration_seconds",
			Help:    "Wall time of one import batch",
			Buckets: []float64{0.5, 1, 2.5, 5, 10, 30, 60, 120, 300},
		},
		[]string{"mode"},
	)

	// External catalog
	CatalogRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_requests_total",
			Help: "Catalog searches by result",
		},
		[]string{"result"}, // success|failure|rejected|cache_hit
	)

	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	// Media mirror and text generation
	MediaUploads = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "media_uploads_total",
			Help: "Media mirror uploads by result",
		},
		[]string{"result"},
	)

	TextgenRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "textgen_requests_total",
			Help: "Review text generation calls by result",
		},
		[]string{"result"},
	)

	// HTTP
	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)
)

// GinMiddleware records request latency by route template.
func GinMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		APIRequestDuration.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).
			Observe(time.Since(start).Seconds())
	}
}
