package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"voicenote/internal/logger"
)

// RequestLogger returns a gin middleware that logs every request with
// method, path, status, duration, and request id. Health probes are
// silently skipped.
func RequestLogger(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.URL.Path == "/health" {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()
		duration := time.Since(start)

		status := c.Writer.Status()
		path := c.Request.URL.Path
		if q := c.Request.URL.RawQuery; q != "" {
			path = path + "?" + q
		}

		fields := map[string]interface{}{
			"method":              c.Request.Method,
			"path":                path,
			logger.FieldStatus:    status,
			logger.FieldDuration:  duration.Milliseconds(),
			logger.FieldRequestID: GetRequestID(c),
			"client":              c.ClientIP(),
		}

		switch {
		case status >= 500:
			log.Error("Request completed", fields)
		case status >= 400:
			log.Warn("Request completed", fields)
		default:
			log.Info("Request completed", fields)
		}
	}
}
