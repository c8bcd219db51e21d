package health

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStats map[string]interface{}

func (f fakeStats) GetStats() map[string]interface{} { return f }

func newEngine(h *Handler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/health", h.HealthCheck)
	r.GET("/ready", h.ReadinessCheck)
	r.GET("/live", h.LivenessCheck)
	return r
}

func get(r *gin.Engine, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func TestHealthCheck(t *testing.T) {
	h := NewHandler("1.2.3", fakeStats{"size": 3})
	w := get(newEngine(h), "/health")
	require.Equal(t, http.StatusOK, w.Code)

	var resp HealthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, "1.2.3", resp.Version)
	assert.EqualValues(t, 3, resp.Cache["size"])
}

func TestReadinessCheck(t *testing.T) {
	tests := []struct {
		name       string
		checks     map[string]Check
		wantStatus int
		wantReady  string
	}{
		{"no checks", nil, http.StatusOK, "ready"},
		{"all pass", map[string]Check{
			"index": func(context.Context) error { return nil },
			"redis": func(context.Context) error { return nil },
		}, http.StatusOK, "ready"},
		{"one fails", map[string]Check{
			"index": func(context.Context) error { return nil },
			"redis": func(context.Context) error { return errors.New("connection refused") },
		}, http.StatusServiceUnavailable, "not_ready"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandler("1.0.0", nil)
			for name, check := range tt.checks {
				h.AddCheck(name, check)
			}
			w := get(newEngine(h), "/ready")
			assert.Equal(t, tt.wantStatus, w.Code)

			var resp ReadinessResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, tt.wantReady, resp.Status)
			assert.Len(t, resp.Checks, len(tt.checks))
		})
	}
}

func TestLivenessCheck(t *testing.T) {
	w := get(newEngine(NewHandler("1.0.0", nil)), "/live")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"alive"}`, w.Body.String())
}
