package middleware

import (
	"time"

	"github.com/SscSPs/gym_management_app/internal/platform/metrics"
	"github.com/gin-gonic/gin"
)

// MetricsMiddleware records request latency per matched route.
func MetricsMiddleware(m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		m.ObserveHTTPRequest(c.Request.Method, c.FullPath(), c.Writer.Status(), time.Since(start))
	}
}
