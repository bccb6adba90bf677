package middleware

import (
	"bytes"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ctisourcing/intake-api/internal/api/constants"
)

// maxBodySize bounds inbound request bodies. The largest legitimate
// payload is an inquiry with a full-length message, well under this.
const maxBodySize = 64 * 1024

// PreserveRequestBody middleware reads the request body once, enforces
// the size limit, and restores the body so validators and handlers can
// both read it
func PreserveRequestBody() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Body == nil || c.Request.Method != http.MethodPost {
			c.Next()
			return
		}

		bodyBytes, err := io.ReadAll(io.LimitReader(c.Request.Body, maxBodySize+1))
		if err != nil {
			c.AbortWithStatus(http.StatusBadRequest)
			return
		}

		if len(bodyBytes) > maxBodySize {
			c.AbortWithStatus(http.StatusRequestEntityTooLarge)
			return
		}

		// Restore the body for subsequent middleware
		c.Request.Body = io.NopCloser(bytes.NewBuffer(bodyBytes))
		c.Set(constants.ContextKeyRawBody, bodyBytes)

		c.Next()
	}
}
