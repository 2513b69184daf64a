// Package api wires the HTTP routes that serve device data.
package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/cors"

	"github.com/irfndi/wearsynth/internal/api/handlers"
	"github.com/irfndi/wearsynth/internal/cache"
	"github.com/irfndi/wearsynth/internal/logging"
	"github.com/irfndi/wearsynth/internal/middleware"
)

// SetupRoutes registers the health, device and cache routes. responseCache and logger may
// be nil; without a cache the cache routes are not registered.
func SetupRoutes(router *gin.Engine, registry handlers.DeviceRegistry, responseCache cache.ResponseCache, logger logging.Logger, version string) {
	router.Use(middleware.RequestID())
	router.Use(middleware.TelemetryMiddleware(logger))

	healthHandler := handlers.NewHealthHandler(responseCache, registry, version)
	deviceHandler := handlers.NewDeviceHandler(registry, responseCache, logger)

	router.GET("/health", healthHandler.HealthCheck)

	v1 := router.Group("/api/v1")
	{
		devices := v1.Group("/devices")
		{
			devices.GET("", deviceHandler.ListDevices)
			devices.GET("/:device/metrics", deviceHandler.GetMetrics)
			devices.GET("/:device/data/:metric", deviceHandler.GetData)
		}

		if responseCache != nil {
			cacheHandler := handlers.NewCacheHandler(responseCache)
			cacheGroup := v1.Group("/cache")
			{
				cacheGroup.GET("/stats", cacheHandler.GetCacheStats)
				cacheGroup.DELETE("", cacheHandler.ClearCache)
			}
		}
	}
}

// WithCORS wraps handler so browsers from allowedOrigins may call the read-only API.
func WithCORS(handler http.Handler, allowedOrigins []string) http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", middleware.RequestIDHeader},
		ExposedHeaders: []string{middleware.RequestIDHeader, handlers.CacheStatusHeader},
	})
	return c.Handler(handler)
}
