package middleware

import (
	"fmt"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/North-Head-Digital/nhd-website/pkg/metrics"
)

type MetricsMiddleware struct {
	logger *logrus.Logger
}

func NewMetricsMiddleware(logger *logrus.Logger) *MetricsMiddleware {
	return &MetricsMiddleware{
		logger: logger,
	}
}

func (m *MetricsMiddleware) MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		duration := float64(time.Since(start).Milliseconds())
		if metrics.Config.EnableLatency {
			metrics.RequestLatency.WithLabelValues(c.Request.Method).Observe(duration)
		}

		status := metrics.GetStatusClass(fmt.Sprint(c.Writer.Status()))
		metrics.RequestsTotal.WithLabelValues(c.Request.Method, status).Inc()

		m.logger.WithFields(logrus.Fields{
			"method":      c.Request.Method,
			"path":        c.Request.URL.Path,
			"status":      c.Writer.Status(),
			"duration_ms": duration,
		}).Debug("Request served")
	}
}

// JavaScriptContentType forces the module-friendly MIME type on every .js
// response; file serving keeps a Content-Type that is already set.
func JavaScriptContentType() gin.HandlerFunc {
	return func(c *gin.Context) {
		if strings.HasSuffix(c.Request.URL.Path, ".js") {
			c.Header("Content-Type", "application/javascript")
		}
		c.Next()
	}
}
