package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/heptiolabs/healthcheck"

	"github.com/ctisourcing/intake-api/internal/monitoring"
)

// SetupOpsRoutes mounts the health probes and the metrics endpoint
func SetupOpsRoutes(router *gin.Engine, health healthcheck.Handler, metrics *monitoring.Metrics) {
	router.GET("/health/live", gin.WrapF(health.LiveEndpoint))
	router.GET("/health/ready", gin.WrapF(health.ReadyEndpoint))
	router.GET("/metrics", gin.WrapH(metrics.HTTPHandler()))
}
