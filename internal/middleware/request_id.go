package middleware

import (
	"postman-backend/internal/helper"
	"postman-backend/internal/logger"

	"github.com/gin-gonic/gin"
)

const (
	RequestIDHeader = "X-Request-ID"
	RequestIDKey    = "request_id"
)

// RequestID tags every request with an id, reusing the caller's when present,
// and attaches a logger carrying it to the request context.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" || len(id) > 128 {
			id = helper.GenerateUID()
		}

		c.Set(RequestIDKey, id)
		c.Header(RequestIDHeader, id)

		reqLogger := logger.AppLogger.With().Str(RequestIDKey, id).Logger()
		c.Request = c.Request.WithContext(reqLogger.WithContext(c.Request.Context()))

		c.Next()
	}
}
