package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ctisourcing/intake-api/internal/api/constants"
	"github.com/ctisourcing/intake-api/internal/api/dto/common"
	"github.com/ctisourcing/intake-api/internal/api/dto/v1/analytics"
	"github.com/ctisourcing/intake-api/internal/service"
	"github.com/ctisourcing/intake-api/internal/utils"
)

// AnalyticsHandler serves the first-party event collection endpoint
type AnalyticsHandler struct {
	analyticsService *service.AnalyticsService
}

// NewAnalyticsHandler creates a new analytics handler
func NewAnalyticsHandler(analyticsService *service.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{analyticsService: analyticsService}
}

// Track accepts one event and fans it out to every destination
func (h *AnalyticsHandler) Track(c *gin.Context) {
	data, exists := c.Get(constants.ContextKeyTrackEvent)
	if !exists {
		utils.HandleAPIError(c, nil, http.StatusInternalServerError, common.ErrCodeInternalServer, "Event data not found in context")
		return
	}

	req, ok := data.(*analytics.TrackEventRequest)
	if !ok {
		utils.HandleAPIError(c, nil, http.StatusInternalServerError, common.ErrCodeInternalServer, "Invalid event data format")
		return
	}

	if !service.KnownEvent(req.Event) {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse(
			common.ErrCodeValidation,
			"Unknown event name",
			nil,
		))
		return
	}

	// Fire-and-report: destination failures are logged server-side and
	// never surface here
	h.analyticsService.Track(c.Request.Context(), req.Event, req.Params)

	utils.HandleSuccess(c, analytics.TrackEventResponse{Accepted: true})
}
