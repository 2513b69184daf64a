package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/irfndi/wearsynth/internal/cache"
)

// CacheHandler exposes response cache statistics and maintenance.
type CacheHandler struct {
	cache cache.ResponseCache
}

// NewCacheHandler creates a new cache handler.
func NewCacheHandler(responseCache cache.ResponseCache) *CacheHandler {
	return &CacheHandler{cache: responseCache}
}

// GetCacheStats returns response cache statistics
// @Summary Get cache statistics
// @Tags cache
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /api/v1/cache/stats [get]
func (h *CacheHandler) GetCacheStats(c *gin.Context) {
	stats := h.cache.GetStats()
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"backend":  h.cache.Backend(),
			"stats":    stats,
			"hit_rate": stats.HitRate(),
		},
	})
}

// ClearCache removes every cached response
// @Summary Clear the response cache
// @Tags cache
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /api/v1/cache [delete]
func (h *CacheHandler) ClearCache(c *gin.Context) {
	if err := h.cache.Clear(c.Request.Context()); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   "Failed to clear cache: " + err.Error(),
		})
		return
	}
	h.cache.LogStats()
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Response cache cleared",
	})
}
