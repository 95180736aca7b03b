package monitoring

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog/log"
)

var (
	RequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests by method, path and status",
		},
		[]string{"method", "path", "status"},
	)
	RequestDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)
	BackupsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "backups_total",
			Help: "Total number of backup runs by status",
		},
		[]string{"status"},
	)
)

func InitMetrics() {
	if err := prometheus.Register(RequestsTotal); err != nil {
		log.Error().Err(err).Msg("Failed to register RequestsTotal metric")
	}
	if err := prometheus.Register(RequestDuration); err != nil {
		log.Error().Err(err).Msg("Failed to register RequestDuration metric")
	}
	if err := prometheus.Register(BackupsTotal); err != nil {
		log.Error().Err(err).Msg("Failed to register BackupsTotal metric")
	}
}

// Middleware records per-request counters and latency.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		RequestsTotal.WithLabelValues(c.Request.Method, path, strconv.Itoa(c.Writer.Status())).Inc()
		RequestDuration.Observe(time.Since(start).Seconds())
	}
}
