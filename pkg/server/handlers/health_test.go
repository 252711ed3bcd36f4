package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soundprediction/episodegrid/pkg/view"
)

func TestHealthCheck(t *testing.T) {
	handler := NewHealthHandler(nil)

	w := perform(handler.HealthCheck, httptest.NewRequest(http.MethodGet, "/health", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "application/json")

	response := decode(t, w)
	assert.Equal(t, "healthy", response["status"])
	assert.Equal(t, "episodegrid", response["service"])
	assert.Contains(t, response, "timestamp")
	assert.Contains(t, response, "version")
}

func TestLivenessCheck(t *testing.T) {
	handler := NewHealthHandler(nil)

	w := perform(handler.LivenessCheck, httptest.NewRequest(http.MethodGet, "/live", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "alive", decode(t, w)["status"])
}

func TestReadinessCheck(t *testing.T) {
	tests := []struct {
		name          string
		controller    *view.Controller
		wantCode      int
		wantStatus    string
		wantDataset   string
		wantErrorText string
	}{
		{name: "nil controller", wantCode: http.StatusServiceUnavailable, wantStatus: "not_ready", wantDataset: "unhealthy"},
		{name: "loading", controller: view.NewController(quietLogger()), wantCode: http.StatusServiceUnavailable, wantStatus: "not_ready", wantDataset: "loading"},
		{name: "failed", controller: failedController(), wantCode: http.StatusServiceUnavailable, wantStatus: "not_ready", wantDataset: "unhealthy", wantErrorText: "connection refused"},
		{name: "loaded", controller: loadedController(t), wantCode: http.StatusOK, wantStatus: "ready", wantDataset: "healthy"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewHealthHandler(tt.controller)
			w := perform(handler.ReadinessCheck, httptest.NewRequest(http.MethodGet, "/ready", nil))
			require.Equal(t, tt.wantCode, w.Code)

			response := decode(t, w)
			assert.Equal(t, tt.wantStatus, response["status"])
			dataset := response["checks"].(map[string]any)["dataset"].(map[string]any)
			assert.Equal(t, tt.wantDataset, dataset["status"])
			if tt.wantErrorText != "" {
				assert.Contains(t, dataset["error"], tt.wantErrorText)
			}
		})
	}
}

func TestDetailedHealthCheck(t *testing.T) {
	handler := NewHealthHandler(loadedController(t))

	w := perform(handler.DetailedHealthCheck, httptest.NewRequest(http.MethodGet, "/health/detailed", nil))
	require.Equal(t, http.StatusOK, w.Code)

	response := decode(t, w)
	assert.Equal(t, "healthy", response["status"])
	checks := response["checks"].(map[string]any)

	dataset := checks["dataset"].(map[string]any)
	stats := dataset["stats"].(map[string]any)
	assert.EqualValues(t, 5, stats["nodes"])
	assert.EqualValues(t, 3, stats["edges"])
	assert.EqualValues(t, 1, stats["skipped_edges"])
	assert.EqualValues(t, 4, stats["searchable"])
	assert.Equal(t, []any{"Episode", "Has Guest", "Discussed Topic"}, dataset["columns"])

	assert.Equal(t, "idle", checks["view"].(map[string]any)["state"])
	assert.Contains(t, checks["system"], "goroutines")
}

func TestDetailedHealthCheckUnloaded(t *testing.T) {
	handler := NewHealthHandler(nil)

	w := perform(handler.DetailedHealthCheck, httptest.NewRequest(http.MethodGet, "/health/detailed", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, "unhealthy", decode(t, w)["status"])
}

func TestGetSystemMetrics(t *testing.T) {
	metrics := NewHealthHandler(nil).getSystemMetrics()
	assert.Greater(t, metrics.Goroutines, 0)
	assert.Contains(t, metrics.MemoryUsage, "MB")
}
