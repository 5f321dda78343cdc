package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/openshelf/shelfd/pkg/constants"
	"github.com/openshelf/shelfd/pkg/logger"
)

// RequestID assigns every request an ID, reusing the client-provided
// X-Request-ID when present, and makes it available to handlers, logs and the
// response headers.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(constants.HeaderRequestID)
		if requestID == "" {
			requestID = uuid.NewString()
		}

		ctx := context.WithValue(c.Request.Context(), constants.ContextKeyRequestID, requestID)
		c.Request = c.Request.WithContext(ctx)
		c.Header(constants.HeaderRequestID, requestID)
		c.Next()
	}
}

// Logging logs one line per completed request. The line is emitted from a
// defer so panicking requests still leave an access-log entry.
func Logging(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			log.Info(c.Request.Context(), "request processed", logger.Fields{
				"method":    c.Request.Method,
				"path":      c.Request.URL.Path,
				"status":    c.Writer.Status(),
				"client_ip": c.ClientIP(),
			})
		}()
		c.Next()
	}
}

// Recovery converts a panic into a 500 response. It must sit outside the
// instrumentation middleware so the panic is observed before being handled
// here.
func Recovery(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				log.Error(c.Request.Context(), "panic recovered", nil, logger.Fields{"panic": r})
				c.AbortWithStatusJSON(500, gin.H{
					"error":             "internal_error",
					"error_description": "internal server error",
				})
			}
		}()
		c.Next()
	}
}
