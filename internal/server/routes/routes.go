package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/heptiolabs/healthcheck"

	"github.com/ctisourcing/intake-api/internal/api/middleware"
	"github.com/ctisourcing/intake-api/internal/config"
	"github.com/ctisourcing/intake-api/internal/logging"
	"github.com/ctisourcing/intake-api/internal/monitoring"
)

// Setup configures all route groups
func Setup(router *gin.Engine, h *Handlers, m *Middleware, health healthcheck.Handler, metrics *monitoring.Metrics) {
	logger := logging.GetGlobalLogger()

	// Create base API v1 group
	v1 := router.Group("/api/v1")

	SetupInquiryRoutes(v1, h.Inquiry, m)
	SetupAnalyticsRoutes(v1, h.Analytics, m)
	SetupOpsRoutes(router, health, metrics)

	logger.Info("All routes have been set up successfully")
}

// SetupGlobalMiddleware configures middleware that applies to all routes
func SetupGlobalMiddleware(router *gin.Engine, cfg *config.Config, logger *logging.Logger, metrics *monitoring.Metrics) {
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.RequestLogger(logger))
	router.Use(metrics.Middleware())
	router.Use(middleware.CORS(cfg.Environment, cfg.AllowedOrigins))
	router.Use(middleware.SecurityHeaders())
	router.Use(middleware.PreserveRequestBody())
	router.Use(middleware.RateLimitMiddleware(middleware.RateLimitConfig{
		RPS:   cfg.GlobalRateRPS,
		Burst: cfg.GlobalRateBurst,
	}))
}
