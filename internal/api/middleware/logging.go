package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ctisourcing/intake-api/internal/logging"
	"github.com/ctisourcing/intake-api/internal/utils"
)

// RequestLogger is a middleware that logs request information through
// the application logger
func RequestLogger(logger *logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		method := c.Request.Method

		c.Next()

		latency := time.Since(start)
		statusCode := c.Writer.Status()
		clientIP := utils.GetRealIP(c)

		logger.Info("%3d | %13v | %15s | %-7s %s",
			statusCode,
			latency,
			clientIP,
			method,
			path,
		)
	}
}
