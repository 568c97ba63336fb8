package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/skillsenselab/meetscribe/internal/logger"
	"github.com/skillsenselab/meetscribe/internal/observability"
)

// RequestLogger returns middleware that logs every request with method, path,
// status code, and latency, and records request metrics when metrics is
// non-nil. Health-check paths are silently skipped.
func RequestLogger(metrics *observability.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		if isHealthEndpoint(c.Request.URL.Path) {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()

		latency := time.Since(start)
		status := c.Writer.Status()
		path := c.Request.URL.Path
		if q := c.Request.URL.RawQuery; q != "" {
			path = path + "?" + q
		}

		if metrics != nil {
			metrics.RecordRequest(c.Request.Context(), c.Request.Method, c.Request.URL.Path, status, latency)
		}

		fields := map[string]interface{}{
			"method":  c.Request.Method,
			"path":    path,
			"status":  status,
			"latency": latency.String(),
			"client":  c.ClientIP(),
		}
		if id := c.GetString("request_id"); id != "" {
			fields["request_id"] = id
		}
		if latency > 500*time.Millisecond {
			fields["slow"] = true
		}

		switch {
		case status >= 500:
			logger.Error("Request completed", fields)
		case status >= 400:
			logger.Warn("Request completed", fields)
		default:
			logger.Debug("Request completed", fields)
		}
	}
}

func isHealthEndpoint(path string) bool {
	for _, hp := range []string{"/health", "/version"} {
		if path == hp {
			return true
		}
	}
	return false
}
