package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/irfndi/wearsynth/internal/cache"
	"github.com/irfndi/wearsynth/internal/services"
)

var startTime = time.Now()

// HealthHandler reports service health.
type HealthHandler struct {
	cache    cache.ResponseCache
	registry DeviceRegistry
	version  string
}

// HealthResponse is the body of the health endpoint.
type HealthResponse struct {
	Status    string                    `json:"status"`
	Timestamp time.Time                 `json:"timestamp"`
	Services  map[string]string         `json:"services"`
	Devices   []string                  `json:"devices"`
	Memory    services.ResourceSnapshot `json:"memory"`
	Version   string                    `json:"version"`
	Uptime    string                    `json:"uptime"`
}

// NewHealthHandler creates a health handler.
func NewHealthHandler(responseCache cache.ResponseCache, registry DeviceRegistry, version string) *HealthHandler {
	return &HealthHandler{
		cache:    responseCache,
		registry: registry,
		version:  version,
	}
}

// HealthCheck reports the response cache backend, the registered devices and memory usage
// @Summary Health check
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse
// @Failure 503 {object} HealthResponse
// @Router /health [get]
func (h *HealthHandler) HealthCheck(c *gin.Context) {
	checks := make(map[string]string)

	if h.cache != nil {
		if err := h.cache.Ping(c.Request.Context()); err != nil {
			checks["cache"] = "unhealthy: " + err.Error()
		} else {
			checks["cache"] = "healthy (" + h.cache.Backend() + ")"
		}
	} else {
		checks["cache"] = "disabled"
	}

	devices := h.registry.Names()
	if len(devices) == 0 {
		checks["devices"] = "unhealthy: no devices registered"
	} else {
		checks["devices"] = "healthy"
	}

	overallStatus := "healthy"
	for _, status := range checks {
		if strings.HasPrefix(status, "unhealthy") {
			overallStatus = "unhealthy"
			break
		}
	}

	response := HealthResponse{
		Status:    overallStatus,
		Timestamp: time.Now(),
		Services:  checks,
		Devices:   devices,
		Memory:    services.SnapshotResources(),
		Version:   h.version,
		Uptime:    time.Since(startTime).String(),
	}

	if overallStatus == "healthy" {
		c.JSON(http.StatusOK, response)
		return
	}
	c.JSON(http.StatusServiceUnavailable, response)
}
