package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/yigit/studyhub/internal/app/workspace"
	"github.com/yigit/studyhub/internal/pkg/notification"
)

var (
	// HTTP request metrics
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "studyhub_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "studyhub_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	// Workspace metrics
	entitiesCreatedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "studyhub_entities_created_total",
			Help: "Total number of entities created by kind",
		},
		[]string{"kind"},
	)

	entitiesDeletedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "studyhub_entities_deleted_total",
			Help: "Total number of delete requests by kind",
		},
		[]string{"kind"},
	)

	notificationsPushedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "studyhub_notifications_pushed_total",
			Help: "Total number of notifications pushed by type",
		},
		[]string{"type"},
	)

	// Error metrics
	errorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "studyhub_errors_total",
			Help: "Total number of errors by type",
		},
		[]string{"type"},
	)
)

// Metrics returns a middleware that records Prometheus metrics.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		// Use the route pattern to avoid cardinality explosion
		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		status := c.Writer.Status()

		httpRequestsTotal.WithLabelValues(c.Request.Method, path, strconv.Itoa(status)).Inc()
		httpRequestDuration.WithLabelValues(c.Request.Method, path).Observe(time.Since(start).Seconds())

		if status >= 400 {
			errorType := "client_error"
			if status >= 500 {
				errorType = "server_error"
			}
			errorsTotal.WithLabelValues(errorType).Inc()
		}
	}
}

// WorkspaceMetrics records workspace mutations as Prometheus counters.
type WorkspaceMetrics struct{}

var _ workspace.Recorder = WorkspaceMetrics{}

// EntityCreated implements workspace.Recorder.
func (WorkspaceMetrics) EntityCreated(kind string) {
	entitiesCreatedTotal.WithLabelValues(kind).Inc()
}

// EntityDeleted implements workspace.Recorder.
func (WorkspaceMetrics) EntityDeleted(kind string) {
	entitiesDeletedTotal.WithLabelValues(kind).Inc()
}

// NotificationPushed implements workspace.Recorder.
func (WorkspaceMetrics) NotificationPushed(kind notification.Kind) {
	notificationsPushedTotal.WithLabelValues(string(kind)).Inc()
}
