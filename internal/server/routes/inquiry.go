package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/ctisourcing/intake-api/internal/api/handlers"
)

// SetupInquiryRoutes configures inquiry form routes
func SetupInquiryRoutes(router *gin.RouterGroup, inquiry *handlers.InquiryHandler, m *Middleware) {
	public := router.Group("/inquiry")
	{
		// Public endpoint, no auth. The per-address submission limit
		// is enforced inside the intake pipeline itself.
		public.POST("/submit",
			m.Validation.ValidateInquiryRequest(),
			inquiry.Submit,
		)
	}
}
