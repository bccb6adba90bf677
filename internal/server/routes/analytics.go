package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/ctisourcing/intake-api/internal/api/handlers"
)

// SetupAnalyticsRoutes configures event collection routes
func SetupAnalyticsRoutes(router *gin.RouterGroup, analytics *handlers.AnalyticsHandler, m *Middleware) {
	public := router.Group("/analytics")
	{
		public.POST("/track",
			m.Validation.ValidateTrackEventRequest(),
			analytics.Track,
		)
	}
}
