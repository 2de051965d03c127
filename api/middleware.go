package api

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// slowRequest is the duration above which a request is logged as slow.
// Process calls routinely take minutes, so only the other routes are held
// to it.
const slowRequest = time.Second

// requestLogger logs one line per request, at a level chosen by status.
func requestLogger(log *zap.SugaredLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		duration := time.Since(start)
		status := c.Writer.Status()
		fields := []interface{}{
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", status,
			"size", c.Writer.Size(),
			"duration", duration,
		}
		if id := c.Writer.Header().Get(requestIDHeader); id != "" {
			fields = append(fields, "request_id", id)
		}

		switch {
		case status >= 500:
			log.Errorw("Request failed with server error", fields...)
		case status >= 400:
			log.Warnw("Request failed with client error", fields...)
		default:
			log.Infow("Request completed", fields...)
		}

		if duration > slowRequest && c.FullPath() != processRoute {
			log.Warnf("Slow request detected: %s %v", c.Request.URL.Path, duration)
		}
	}
}
