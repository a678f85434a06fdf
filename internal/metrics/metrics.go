package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the SwiftShip API metrics
type Metrics struct {
	registry *prometheus.Registry

	// HTTP metrics
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	// Business metrics
	QuotesCreated   prometheus.Counter
	QuotesConverted prometheus.Counter
	TrackingLookups *prometheus.CounterVec
}

// New creates a new Metrics instance with its own registry
func New(serviceName string) *Metrics {
	registry := prometheus.NewRegistry()

	registry.MustRegister(prometheus.NewGoCollector())
	registry.MustRegister(prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}))

	m := &Metrics{
		registry: registry,
		HTTPRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   "swiftship",
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests",
			ConstLabels: prometheus.Labels{"service": serviceName},
		}, []string{"method", "path", "status"}),
		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   "swiftship",
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request duration in seconds",
			ConstLabels: prometheus.Labels{"service": serviceName},
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "path"}),
		QuotesCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   "swiftship",
			Name:        "quotes_created_total",
			Help:        "Total number of quotes created",
			ConstLabels: prometheus.Labels{"service": serviceName},
		}),
		QuotesConverted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   "swiftship",
			Name:        "quotes_converted_total",
			Help:        "Total number of quotes converted into shipments",
			ConstLabels: prometheus.Labels{"service": serviceName},
		}),
		TrackingLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   "swiftship",
			Name:        "tracking_lookups_total",
			Help:        "Total number of tracking lookups by result",
			ConstLabels: prometheus.Labels{"service": serviceName},
		}, []string{"result"}),
	}

	registry.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.QuotesCreated,
		m.QuotesConverted,
		m.TrackingLookups,
	)

	return m
}

// Handler returns the HTTP handler serving the metrics endpoint
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// GinMiddleware returns a gin middleware recording request counts and
// durations. The route template is used as the path label so IDs do not
// explode cardinality.
func (m *Metrics) GinMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}

		m.HTTPRequestsTotal.WithLabelValues(
			c.Request.Method,
			path,
			strconv.Itoa(c.Writer.Status()),
		).Inc()
		m.HTTPRequestDuration.WithLabelValues(
			c.Request.Method,
			path,
		).Observe(time.Since(start).Seconds())
	}
}
