package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/ctisourcing/intake-api/internal/api/constants"
	"github.com/ctisourcing/intake-api/internal/api/dto/common"
	"github.com/ctisourcing/intake-api/internal/api/dto/v1/analytics"
	"github.com/ctisourcing/intake-api/internal/api/dto/v1/inquiry"
	"github.com/ctisourcing/intake-api/internal/api/validation"
)

// ValidationMiddleware handles request binding and validation
type ValidationMiddleware struct {
	validate *validator.Validate
}

// NewValidationMiddleware creates a new validation middleware
func NewValidationMiddleware() *ValidationMiddleware {
	return &ValidationMiddleware{
		validate: validation.New(),
	}
}

// ValidateInquiryRequest decodes the inquiry payload and stashes it in
// the context. Field-level gates run inside the intake pipeline so
// rejections follow the documented order; this middleware only rejects
// bodies that are not valid JSON for the expected shape.
func (m *ValidationMiddleware) ValidateInquiryRequest() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req inquiry.InquiryRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, common.NewErrorResponse(
				common.ErrCodeBadRequest,
				"Invalid request body",
				nil,
			))
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyInquiry, &req)
		c.Next()
	}
}

// ValidateTrackEventRequest decodes and validates an analytics event
func (m *ValidationMiddleware) ValidateTrackEventRequest() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req analytics.TrackEventRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, common.NewErrorResponse(
				common.ErrCodeBadRequest,
				"Invalid request body",
				nil,
			))
			c.Abort()
			return
		}

		if err := m.validate.Struct(&req); err != nil {
			c.JSON(http.StatusBadRequest, common.NewErrorResponse(
				common.ErrCodeValidation,
				"Validation failed",
				validation.FormatValidationError(err),
			))
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyTrackEvent, &req)
		c.Next()
	}
}
