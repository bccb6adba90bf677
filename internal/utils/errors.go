package utils

import (
	"github.com/ctisourcing/intake-api/internal/api/dto/common"
	"github.com/ctisourcing/intake-api/internal/logging"

	"github.com/gin-gonic/gin"
)

// HandleAPIError is a utility function for consistent error handling
// across the API. The underlying error is logged for diagnosis but
// only exposed in the response outside release mode.
func HandleAPIError(c *gin.Context, err error, status int, code common.ErrorCode, message string) {
	logger := logging.GetGlobalLogger()
	logger.LogHTTPError(
		c.Request.Method,
		c.Request.URL.Path,
		GetRealIP(c),
		status,
		message,
		err,
	)

	// In production, don't expose error details
	var errorDetails interface{}
	if gin.Mode() != gin.ReleaseMode {
		errorDetails = err
	}

	c.JSON(status, common.NewErrorResponse(code, message, errorDetails))
}
