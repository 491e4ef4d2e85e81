package api

import (
	"net/http"

	"github.com/DoROAD-AI/skylink/types"
	"github.com/gin-gonic/gin"
)

// GetCacheStatsHandler godoc
// @Summary Report cache and upstream diagnostics
// @Tags Diagnostics
// @Produce json
// @Success 200 {object} types.CacheStatsResponse
// @Router /api/cache/stats [get]
func GetCacheStatsHandler(d *Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		stats := d.Cache.Stats()

		resp := types.CacheStatsResponse{
			Keys:    stats.Keys,
			Hits:    stats.Hits,
			Misses:  stats.Misses,
			Sets:    stats.Sets,
			Deletes: stats.Deletes,
			HitRate: stats.HitRate,
		}
		resp.AnonymousUsed = d.RateLimit.AnonymousUsed()
		if lastErr := d.Flights.LastError(); lastErr != nil {
			resp.LastError = &types.UpstreamError{
				Type:       string(lastErr.Type),
				Message:    lastErr.Message,
				StatusCode: lastErr.StatusCode,
			}
		}

		c.JSON(http.StatusOK, resp)
	}
}

// ClearCacheHandler godoc
// @Summary Clear the cache
// @Tags Diagnostics
// @Produce json
// @Success 204
// @Router /api/cache [delete]
func ClearCacheHandler(d *Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		d.Cache.Clear()
		c.Status(http.StatusNoContent)
	}
}
