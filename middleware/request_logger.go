package middleware

import (
	"cardioconsult/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const RequestIDHeader = "X-Request-ID"

// RequestLogger tags each request with an id and stores a scoped logger
// under "logger" for the handlers.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Header(RequestIDHeader, id)
		c.Set("logger", utils.GetLogger().With(
			zap.String("requestId", id),
			zap.String("path", c.FullPath()),
		))
		c.Next()
	}
}
