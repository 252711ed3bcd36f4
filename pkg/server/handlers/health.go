package handlers

import (
	"fmt"
	"net/http"
	"runtime"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/soundprediction/episodegrid"
	"github.com/soundprediction/episodegrid/pkg/view"
)

// Build information - can be set at build time using ldflags
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildTime = "unknown"
	GoVersion = runtime.Version()
)

const serviceName = "episodegrid"

// statsProvider is implemented by explorers that can describe their dataset.
type statsProvider interface {
	Stats() episodegrid.Stats
}

// HealthHandler handles health check requests
type HealthHandler struct {
	controller *view.Controller
	started    time.Time
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(controller *view.Controller) *HealthHandler {
	return &HealthHandler{
		controller: controller,
		started:    time.Now(),
	}
}

// HealthCheck handles GET /health - basic liveness check
func (h *HealthHandler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"service":   serviceName,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"version":   Version,
	})
}

// ReadinessCheck handles GET /ready. The service is ready once the dataset
// is loaded.
func (h *HealthHandler) ReadinessCheck(c *gin.Context) {
	response := gin.H{
		"status":    "ready",
		"service":   serviceName,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	}

	check, healthy := h.datasetCheck()
	response["checks"] = gin.H{
		"dataset": check,
		"system": gin.H{
			"status": "healthy",
			"uptime": time.Since(h.started).Round(time.Second).String(),
		},
	}

	if !healthy {
		response["status"] = "not_ready"
		c.JSON(http.StatusServiceUnavailable, response)
		return
	}

	c.JSON(http.StatusOK, response)
}

// LivenessCheck handles GET /live - Kubernetes liveness probe endpoint
func (h *HealthHandler) LivenessCheck(c *gin.Context) {
	// Simple liveness check - just confirm the service is running
	c.JSON(http.StatusOK, gin.H{
		"status":    "alive",
		"service":   serviceName,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// DetailedHealthCheck handles GET /health/detailed - comprehensive health information
func (h *HealthHandler) DetailedHealthCheck(c *gin.Context) {
	startTime := time.Now()
	response := gin.H{
		"status":  "healthy",
		"service": serviceName,
		"version": Version,
		"build_info": gin.H{
			"git_commit": GitCommit,
			"build_time": BuildTime,
		},
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"environment": gin.H{
			"go_version": GoVersion,
		},
		"metrics": gin.H{
			"response_time_ms": 0, // Will be set at the end
		},
	}

	check, healthy := h.datasetCheck()
	if explorer, ok := h.explorer(); ok {
		if sp, ok := explorer.(statsProvider); ok {
			check["stats"] = sp.Stats()
		}
		check["columns"] = explorer.Schema().Titles()
	}

	systemMetrics := h.getSystemMetrics()
	response["checks"] = gin.H{
		"dataset": check,
		"view": gin.H{
			"status": "healthy",
			"state":  h.viewState(),
		},
		"system": gin.H{
			"status":       "healthy",
			"memory_usage": systemMetrics.MemoryUsage,
			"goroutines":   systemMetrics.Goroutines,
			"gc_cycles":    systemMetrics.GCCycles,
			"heap_objects": systemMetrics.HeapObjects,
			"stack_usage":  systemMetrics.StackUsage,
		},
	}

	// Set final response
	response["metrics"].(gin.H)["response_time_ms"] = time.Since(startTime).Milliseconds()

	if !healthy {
		response["status"] = "unhealthy"
		c.JSON(http.StatusServiceUnavailable, response)
		return
	}

	c.JSON(http.StatusOK, response)
}

func (h *HealthHandler) explorer() (episodegrid.Explorer, bool) {
	if h.controller == nil {
		return nil, false
	}
	return h.controller.Explorer()
}

func (h *HealthHandler) viewState() string {
	if h.controller == nil {
		return "unavailable"
	}
	return h.controller.Snapshot().StateName
}

func (h *HealthHandler) datasetCheck() (gin.H, bool) {
	if h.controller == nil {
		return gin.H{"status": "unhealthy", "error": "view controller not initialized"}, false
	}
	if _, ok := h.controller.Explorer(); ok {
		return gin.H{"status": "healthy"}, true
	}
	if err := h.controller.LoadError(); err != nil {
		return gin.H{"status": "unhealthy", "error": err.Error()}, false
	}
	return gin.H{"status": "loading"}, false
}

// SystemMetrics holds system runtime metrics
type SystemMetrics struct {
	MemoryUsage string `json:"memory_usage"`
	Goroutines  int    `json:"goroutines"`
	GCCycles    uint32 `json:"gc_cycles"`
	HeapObjects uint64 `json:"heap_objects"`
	StackUsage  string `json:"stack_usage"`
}

// getSystemMetrics collects current system runtime metrics
func (h *HealthHandler) getSystemMetrics() SystemMetrics {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	// Convert bytes to human-readable format
	memoryUsage := fmt.Sprintf("%.2f MB", float64(m.Alloc)/(1024*1024))
	stackUsage := fmt.Sprintf("%.2f MB", float64(m.StackSys)/(1024*1024))

	return SystemMetrics{
		MemoryUsage: memoryUsage,
		Goroutines:  runtime.NumGoroutine(),
		GCCycles:    m.NumGC,
		HeapObjects: m.HeapObjects,
		StackUsage:  stackUsage,
	}
}
