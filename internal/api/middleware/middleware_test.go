package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func performRequest(router *gin.Engine, method, path string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func okRouter(handlers ...gin.HandlerFunc) *gin.Engine {
	router := gin.New()
	router.Use(handlers...)
	router.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })
	return router
}

func TestCORSDevelopmentEchoesAnyOrigin(t *testing.T) {
	router := okRouter(CORS("development", ""))

	w := performRequest(router, http.MethodGet, "/ping", map[string]string{"Origin": "http://localhost:3000"})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORSProductionAllowsConfiguredOrigin(t *testing.T) {
	router := okRouter(CORS("production", "https://ctisourcing.com, https://www.ctisourcing.com"))

	w := performRequest(router, http.MethodGet, "/ping", map[string]string{"Origin": "https://www.ctisourcing.com"})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "https://www.ctisourcing.com", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORSProductionRejectsUnknownOrigin(t *testing.T) {
	router := okRouter(CORS("production", "https://ctisourcing.com"))

	w := performRequest(router, http.MethodGet, "/ping", map[string]string{"Origin": "https://evil.example.com"})

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestCORSProductionAllowsRequestsWithoutOrigin(t *testing.T) {
	// Health probes and metrics scrapers send no Origin header; the
	// allow-list only applies to actual cross-origin requests
	router := okRouter(CORS("production", "https://ctisourcing.com"))

	w := performRequest(router, http.MethodGet, "/ping", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORSPreflightShortCircuits(t *testing.T) {
	router := okRouter(CORS("development", ""))
	router.OPTIONS("/ping", func(c *gin.Context) { c.String(http.StatusOK, "should not run") })

	w := performRequest(router, http.MethodOptions, "/ping", map[string]string{"Origin": "http://localhost:3000"})

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.NotContains(t, w.Body.String(), "should not run")
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), "POST")
}

func TestSecurityHeaders(t *testing.T) {
	router := okRouter(SecurityHeaders())

	w := performRequest(router, http.MethodGet, "/ping", nil)

	assert.Equal(t, "DENY", w.Header().Get("X-Frame-Options"))
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
	assert.NotEmpty(t, w.Header().Get("Strict-Transport-Security"))
	assert.NotEmpty(t, w.Header().Get("Content-Security-Policy"))
}

func TestRateLimitMiddlewareBlocksPastBurst(t *testing.T) {
	router := okRouter(RateLimitMiddleware(RateLimitConfig{RPS: 1, Burst: 2}))

	first := performRequest(router, http.MethodGet, "/ping", nil)
	second := performRequest(router, http.MethodGet, "/ping", nil)
	third := performRequest(router, http.MethodGet, "/ping", nil)

	assert.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, http.StatusOK, second.Code)
	assert.Equal(t, http.StatusTooManyRequests, third.Code)
}

func TestRateLimitMiddlewareSetsHeaders(t *testing.T) {
	router := okRouter(RateLimitMiddleware(RateLimitConfig{RPS: 10, Burst: 20}))

	w := performRequest(router, http.MethodGet, "/ping", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "10", w.Header().Get("X-RateLimit-Limit"))
}
