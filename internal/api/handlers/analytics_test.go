package handlers_test

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ctisourcing/intake-api/internal/api/dto/common"
	"github.com/ctisourcing/intake-api/internal/api/handlers"
	"github.com/ctisourcing/intake-api/internal/api/middleware"
	"github.com/ctisourcing/intake-api/internal/logging"
	"github.com/ctisourcing/intake-api/internal/monitoring"
	"github.com/ctisourcing/intake-api/internal/server/routes"
	"github.com/ctisourcing/intake-api/internal/service"
)

// captureDestination records the events it receives
type captureDestination struct {
	mu     sync.Mutex
	events []string
}

func (d *captureDestination) Name() string { return "capture" }

func (d *captureDestination) Track(_ context.Context, event string, _ map[string]interface{}) error {
	d.mu.Lock()
	d.events = append(d.events, event)
	d.mu.Unlock()
	return nil
}

func (d *captureDestination) delivered() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]string(nil), d.events...)
}

func newAnalyticsRouter(t *testing.T, destinations ...service.Destination) *gin.Engine {
	t.Helper()

	svc := service.NewAnalyticsService(monitoring.NewMetrics(), logging.GetGlobalLogger())
	for _, d := range destinations {
		svc.Register(d)
	}

	router := gin.New()
	m := &routes.Middleware{Validation: middleware.NewValidationMiddleware()}
	routes.SetupAnalyticsRoutes(router.Group("/api/v1"), handlers.NewAnalyticsHandler(svc), m)
	return router
}

func trackEvent(router *gin.Engine, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/analytics/track", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestTrackSuccess(t *testing.T) {
	capture := &captureDestination{}
	router := newAnalyticsRouter(t, capture)

	w := trackEvent(router, `{"event": "page_view", "params": {"page": "/products"}}`)

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decodeResponse(t, w)
	assert.True(t, resp.Success)
	assert.Equal(t, []string{"page_view"}, capture.delivered())
}

func TestTrackUnknownEvent(t *testing.T) {
	capture := &captureDestination{}
	router := newAnalyticsRouter(t, capture)

	w := trackEvent(router, `{"event": "purchase"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	resp := decodeResponse(t, w)
	require.NotNil(t, resp.Error)
	assert.Equal(t, string(common.ErrCodeValidation), resp.Error.Code)
	assert.Empty(t, capture.delivered())
}

func TestTrackMissingEventName(t *testing.T) {
	router := newAnalyticsRouter(t)

	w := trackEvent(router, `{"params": {"page": "/"}}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTrackMalformedJSON(t *testing.T) {
	router := newAnalyticsRouter(t)

	w := trackEvent(router, `{"event": `)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	resp := decodeResponse(t, w)
	require.NotNil(t, resp.Error)
	assert.Equal(t, string(common.ErrCodeBadRequest), resp.Error.Code)
}

func TestTrackWithoutParams(t *testing.T) {
	capture := &captureDestination{}
	router := newAnalyticsRouter(t, capture)

	w := trackEvent(router, `{"event": "sign_up"}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"sign_up"}, capture.delivered())
}
