package monitoring

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Inquiry pipeline result labels
const (
	ResultAccepted       = "accepted"
	ResultMissingFields  = "missing_fields"
	ResultInvalidEmail   = "invalid_email"
	ResultInvalidFormat  = "invalid_format"
	ResultRateLimited    = "rate_limited"
	ResultDispatchFailed = "dispatch_failed"
	ResultInternalError  = "internal_error"
)

// Email kind/status labels
const (
	EmailKindNotification = "notification"
	EmailKindConfirmation = "confirmation"
	EmailStatusSent       = "sent"
	EmailStatusFailed     = "failed"
)

// Metrics holds the Prometheus collectors for the intake API
type Metrics struct {
	registry *prometheus.Registry

	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	InquiriesTotal  *prometheus.CounterVec
	EmailsTotal     *prometheus.CounterVec
	RateLimitBlocks prometheus.Counter

	AnalyticsEventsTotal *prometheus.CounterVec
}

// NewMetrics creates and registers all collectors on a fresh registry
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	return &Metrics{
		registry: registry,

		HTTPRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "intake_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status_code"},
		),

		HTTPRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "intake_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),

		InquiriesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "intake_inquiries_total",
				Help: "Inquiry submissions by pipeline result",
			},
			[]string{"result"},
		),

		EmailsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "intake_emails_total",
				Help: "Outbound emails by kind and status",
			},
			[]string{"kind", "status"},
		),

		RateLimitBlocks: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "intake_rate_limit_blocks_total",
				Help: "Submissions rejected by the per-address rate limit",
			},
		),

		AnalyticsEventsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "intake_analytics_events_total",
				Help: "Analytics events forwarded by destination and status",
			},
			[]string{"destination", "status"},
		),
	}
}

// HTTPHandler returns the /metrics endpoint handler
func (m *Metrics) HTTPHandler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Middleware records request counts and durations per route
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		// FullPath is the route template, so label cardinality stays
		// bounded even under URL scanning
		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}

		m.HTTPRequestsTotal.WithLabelValues(
			c.Request.Method,
			path,
			strconv.Itoa(c.Writer.Status()),
		).Inc()
		m.HTTPRequestDuration.WithLabelValues(c.Request.Method, path).
			Observe(time.Since(start).Seconds())
	}
}
