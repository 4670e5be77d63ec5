package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/platekeep/recipedocs-backend/internal/logger"
)

const RequestIDHeader = "X-Request-ID"

// RequestID tags every request with an id (honoring an inbound header) and
// logs the request line with it.
func RequestID(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set("request_id", id)
		c.Writer.Header().Set(RequestIDHeader, id)
		if log != nil {
			log.Debug("Request received", "request_id", id, "method", c.Request.Method, "path", c.Request.URL.Path)
		}
		c.Next()
	}
}
