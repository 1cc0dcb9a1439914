package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	portssvc "github.com/fintrack-io/fintrack_backend/internal/core/ports/services"
	"github.com/fintrack-io/fintrack_backend/internal/dto"
	"github.com/fintrack-io/fintrack_backend/internal/platform/config"
)

func TestAuthRoutesRateLimitUsesErrorEnvelope(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	cfg := &config.Config{AuthRateLimit: "1-H"}
	registerAuthRoutes(r, cfg, &portssvc.ServiceContainer{})

	send := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader("{"))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	// The malformed body keeps the first request at the bind error, before
	// any service call; it still consumes the single slot.
	assert.Equal(t, http.StatusBadRequest, send().Code)

	w := send()
	assert.Equal(t, http.StatusTooManyRequests, w.Code)

	var resp dto.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.NotEmpty(t, resp.Error.Message)
}

func TestAuthRoutesInvalidRateFallsBack(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	cfg := &config.Config{AuthRateLimit: "not-a-rate"}
	registerAuthRoutes(r, cfg, &portssvc.ServiceContainer{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader("{"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	// The fallback rate still admits the request; the route is reachable.
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
