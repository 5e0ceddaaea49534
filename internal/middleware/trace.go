package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"productivity/internal/logger"
)

const TraceHeader = "X-Trace-ID"

// Trace propagates the caller's X-Trace-ID or mints a new one, exposing it on
// the gin context, the request context and the response.
func Trace() gin.HandlerFunc {
	return func(c *gin.Context) {
		traceID := c.GetHeader(TraceHeader)
		if traceID == "" {
			traceID = uuid.New().String()
		}

		c.Set(logger.TraceIDKey, traceID)
		c.Request = c.Request.WithContext(logger.WithTraceID(c.Request.Context(), traceID))

		c.Header(TraceHeader, traceID)
		c.Next()
	}
}
