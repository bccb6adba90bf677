package routes

import (
	"github.com/ctisourcing/intake-api/internal/api/handlers"
	"github.com/ctisourcing/intake-api/internal/api/middleware"
)

// Handlers contains all the route handlers
type Handlers struct {
	Inquiry   *handlers.InquiryHandler
	Analytics *handlers.AnalyticsHandler
}

// Middleware contains all the middleware
type Middleware struct {
	Validation *middleware.ValidationMiddleware
}
