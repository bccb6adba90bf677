package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ctisourcing/intake-api/internal/api/constants"
	"github.com/ctisourcing/intake-api/internal/api/dto/common"
	"github.com/ctisourcing/intake-api/internal/api/dto/v1/inquiry"
	"github.com/ctisourcing/intake-api/internal/api/validation"
	"github.com/ctisourcing/intake-api/internal/service"
	"github.com/ctisourcing/intake-api/internal/utils"
)

// InquiryHandler serves the public inquiry submission endpoint
type InquiryHandler struct {
	inquiryService *service.InquiryService
}

// NewInquiryHandler creates a new inquiry handler
func NewInquiryHandler(inquiryService *service.InquiryService) *InquiryHandler {
	return &InquiryHandler{inquiryService: inquiryService}
}

// Submit processes one inquiry submission
func (h *InquiryHandler) Submit(c *gin.Context) {
	// Get inquiry data from context (set by validation middleware)
	data, exists := c.Get(constants.ContextKeyInquiry)
	if !exists {
		utils.HandleAPIError(c, nil, http.StatusInternalServerError, common.ErrCodeInternalServer, "Inquiry data not found in context")
		return
	}

	req, ok := data.(*inquiry.InquiryRequest)
	if !ok {
		utils.HandleAPIError(c, nil, http.StatusInternalServerError, common.ErrCodeInternalServer, "Invalid inquiry data format")
		return
	}

	err := h.inquiryService.Submit(c.Request.Context(), req, utils.GetRealIP(c))
	if err != nil {
		h.respondError(c, err)
		return
	}

	utils.HandleSuccess(c, inquiry.InquiryResponse{
		Message: "Quote request received. We'll get back to you shortly.",
		Success: true,
	})
}

// respondError maps pipeline rejections to the HTTP contract. Relay
// errors stay generic; validation errors name the violated constraint.
func (h *InquiryHandler) respondError(c *gin.Context, err error) {
	var rateLimited *service.RateLimitedError
	var missingFields *validation.MissingFieldsError
	var fieldFormat *validation.FieldFormatError
	var dispatch *service.DispatchError

	switch {
	case errors.As(err, &rateLimited):
		seconds := int(rateLimited.RetryAfter / time.Second)
		if seconds < 1 {
			seconds = 1
		}
		c.Header("Retry-After", strconv.Itoa(seconds))
		c.JSON(http.StatusTooManyRequests, common.NewErrorResponse(
			common.ErrCodeTooManyRequests,
			"Too many submissions. Please wait a moment and try again.",
			nil,
		))

	case errors.As(err, &missingFields):
		c.JSON(http.StatusBadRequest, common.NewErrorResponse(
			common.ErrCodeMissingFields,
			err.Error(),
			nil,
		))

	case errors.Is(err, validation.ErrInvalidEmail):
		c.JSON(http.StatusBadRequest, common.NewErrorResponse(
			common.ErrCodeInvalidEmail,
			"Invalid email format",
			nil,
		))

	case errors.As(err, &fieldFormat):
		c.JSON(http.StatusBadRequest, common.NewErrorResponse(
			common.ErrCodeInvalidFormat,
			fmt.Sprintf("Invalid format for field %s", fieldFormat.Field),
			nil,
		))

	case errors.As(err, &dispatch):
		utils.HandleAPIError(c, err, http.StatusInternalServerError, common.ErrCodeInternalServer,
			"Something went wrong sending your inquiry. Please try again or contact us directly.")

	default:
		utils.HandleAPIError(c, err, http.StatusInternalServerError, common.ErrCodeInternalServer,
			"Something went wrong. Please try again later.")
	}
}
