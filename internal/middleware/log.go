package middleware

import (
	"time"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
)

// RequestLogger logs one line per request through the application logger.
// Server errors log at error level, client errors at warn.
func RequestLogger(logger *log.Logger) gin.HandlerFunc {
	l := logger.WithPrefix("http")
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		if raw := c.Request.URL.RawQuery; raw != "" {
			path += "?" + raw
		}

		c.Next()

		status := c.Writer.Status()
		keyvals := []interface{}{
			"method", c.Request.Method,
			"path", path,
			"status", status,
			"latency", time.Since(start),
			"ip", c.ClientIP(),
		}
		if len(c.Errors) > 0 {
			keyvals = append(keyvals, "errors", c.Errors.String())
		}

		switch {
		case status >= 500:
			l.Error("request", keyvals...)
		case status >= 400:
			l.Warn("request", keyvals...)
		default:
			l.Info("request", keyvals...)
		}
	}
}
