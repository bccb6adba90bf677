package server

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/heptiolabs/healthcheck"

	"github.com/ctisourcing/intake-api/internal/config"
	"github.com/ctisourcing/intake-api/internal/logging"
	"github.com/ctisourcing/intake-api/internal/monitoring"
	"github.com/ctisourcing/intake-api/internal/server/routes"
)

// Server represents the HTTP server
type Server struct {
	router *gin.Engine
	cfg    *config.Config
	logger *logging.Logger
}

// NewServer creates a new server instance
func NewServer(cfg *config.Config, logger *logging.Logger) *Server {
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Disable Gin's default logger entirely because we're using our
	// custom logger
	gin.DisableConsoleColor()
	gin.DefaultWriter = io.Discard

	// Create a new engine without default middleware
	router := gin.New()

	return &Server{
		router: router,
		cfg:    cfg,
		logger: logger,
	}
}

// Init wires middleware and routes
func (s *Server) Init(h *routes.Handlers, m *routes.Middleware, health healthcheck.Handler, metrics *monitoring.Metrics) {
	routes.SetupGlobalMiddleware(s.router, s.cfg, s.logger, metrics)
	routes.Setup(s.router, h, m, health, metrics)
}

// Router exposes the engine for tests
func (s *Server) Router() *gin.Engine {
	return s.router
}

// Run starts the server and blocks until ctx is cancelled, then shuts
// down gracefully
func (s *Server) Run(ctx context.Context) error {
	httpServer := &http.Server{
		Addr:              ":" + s.cfg.Port,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Listening on %s", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("Shutdown signal received, gracefully shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	return httpServer.Shutdown(shutdownCtx)
}
