package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/irfndi/wearsynth/internal/cache"
	"github.com/irfndi/wearsynth/internal/calendar"
	"github.com/irfndi/wearsynth/internal/device"
	"github.com/irfndi/wearsynth/internal/logging"
	"github.com/irfndi/wearsynth/internal/middleware"
	"github.com/irfndi/wearsynth/internal/telemetry"
)

// CacheStatusHeader reports whether a data response came from the response cache.
const CacheStatusHeader = "X-Cache"

// DeviceRegistry looks up devices by name.
type DeviceRegistry interface {
	Names() []string
	Get(name string) (device.Device, error)
}

// DeviceHandler serves device listings and sliced device data.
type DeviceHandler struct {
	registry DeviceRegistry
	cache    cache.ResponseCache
	logger   logging.Logger
}

// NewDeviceHandler creates a device handler. responseCache and logger may be nil.
func NewDeviceHandler(registry DeviceRegistry, responseCache cache.ResponseCache, logger logging.Logger) *DeviceHandler {
	return &DeviceHandler{
		registry: registry,
		cache:    responseCache,
		logger:   logger,
	}
}

// QueryWindow is the resolved [start, end) window echoed in responses.
type QueryWindow struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

func newQueryWindow(q device.Query) QueryWindow {
	return QueryWindow{Start: q.Start.Format(time.RFC3339), End: q.End.Format(time.RFC3339)}
}

// DataResponse is the body of a device data response.
type DataResponse struct {
	Success bool        `json:"success"`
	Device  string      `json:"device"`
	Metric  string      `json:"metric"`
	Query   QueryWindow `json:"query"`
	Data    any         `json:"data"`
}

// ListDevices returns the registered device names
// @Summary List devices
// @Tags devices
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /api/v1/devices [get]
func (h *DeviceHandler) ListDevices(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    h.registry.Names(),
	})
}

// GetMetrics returns the metrics a device serves and its default query window
// @Summary List device metrics
// @Tags devices
// @Param device path string true "Device name (e.g., fitbit_charge_4)"
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /api/v1/devices/{device}/metrics [get]
func (h *DeviceHandler) GetMetrics(c *gin.Context) {
	d, err := h.registry.Get(c.Param("device"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"device":        d.Name(),
			"metrics":       d.Metrics(),
			"default_query": newQueryWindow(d.DefaultQuery()),
		},
	})
}

// GetData returns a metric sliced to [start, end)
// @Summary Get device data
// @Description start and end accept YYYY-MM-DD or RFC3339 date-times; an omitted bound falls back to the device default query
// @Tags devices
// @Param device path string true "Device name"
// @Param metric path string true "Metric name (e.g., sleep, steps, heart_rate_timeline)"
// @Param start query string false "Window start (inclusive)"
// @Param end query string false "Window end (exclusive)"
// @Produce json
// @Success 200 {object} DataResponse
// @Failure 400 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /api/v1/devices/{device}/data/{metric} [get]
func (h *DeviceHandler) GetData(c *gin.Context) {
	d, err := h.registry.Get(c.Param("device"))
	if err != nil {
		respondError(c, err)
		return
	}
	metric := c.Param("metric")

	query, err := parseQuery(c, d.DefaultQuery())
	if err != nil {
		respondError(c, err)
		return
	}
	window := newQueryWindow(query)
	key := cache.Key(d.Name(), metric, window.Start, window.End)

	ctx := c.Request.Context()
	if payload, ok := h.lookup(c, key); ok {
		c.Header(CacheStatusHeader, "HIT")
		c.Data(http.StatusOK, "application/json; charset=utf-8", payload)
		return
	}

	data, err := d.Get(ctx, metric, query)
	if err != nil {
		h.fail(c, d.Name(), metric, err)
		return
	}

	payload, err := json.Marshal(DataResponse{
		Success: true,
		Device:  d.Name(),
		Metric:  metric,
		Query:   window,
		Data:    data,
	})
	if err != nil {
		h.fail(c, d.Name(), metric, err)
		return
	}

	if h.cache != nil {
		h.cache.Set(ctx, key, payload)
	}
	c.Header(CacheStatusHeader, "MISS")
	c.Data(http.StatusOK, "application/json; charset=utf-8", payload)
}

// fail logs server-side failures before writing the error response.
func (h *DeviceHandler) fail(c *gin.Context, deviceName, metric string, err error) {
	if h.logger != nil && StatusFor(err) == http.StatusInternalServerError {
		h.logger.WithError(err).Error("Failed to serve device data",
			"device", deviceName,
			"metric", metric,
			"request_id", middleware.GetRequestID(c),
		)
	}
	respondError(c, err)
}

func (h *DeviceHandler) lookup(c *gin.Context, key string) ([]byte, bool) {
	if h.cache == nil {
		return nil, false
	}

	ctx, span := telemetry.StartSpan(c.Request.Context(), telemetry.GetCacheTracer(), "cache.Get",
		telemetry.StringAttribute("cache.key", key),
		telemetry.StringAttribute("cache.backend", h.cache.Backend()),
	)
	defer span.End()

	start := time.Now()
	payload, hit := h.cache.Get(ctx, key)
	telemetry.SetSpanAttributes(span, telemetry.BoolAttribute("cache.hit", hit))
	if h.logger != nil {
		h.logger.LogCacheOperation("get", key, hit, time.Since(start).Milliseconds())
	}
	return payload, hit
}

// parseQuery reads the start and end query parameters. A missing bound takes the default.
func parseQuery(c *gin.Context, defaults device.Query) (device.Query, error) {
	query := defaults
	if raw := c.Query("start"); raw != "" {
		start, err := calendar.ParseDateTime(raw)
		if err != nil {
			return device.Query{}, err
		}
		query.Start = start
	}
	if raw := c.Query("end"); raw != "" {
		end, err := calendar.ParseDateTime(raw)
		if err != nil {
			return device.Query{}, err
		}
		query.End = end
	}
	return query, nil
}
