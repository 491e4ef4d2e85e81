package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/DoROAD-AI/skylink/internal/cache"
	"github.com/DoROAD-AI/skylink/internal/upstream"
	"github.com/DoROAD-AI/skylink/types"
	"github.com/gin-gonic/gin"
)

// elevationCacheTTL bounds how long a resolved ground elevation is
// reused, per the component contract: terrain doesn't change between
// requests, so this cache outlives every other one in the service.
const elevationCacheTTL = 1 * time.Hour

// GetElevationHandler godoc
// @Summary Look up ground elevation
// @Tags Elevation
// @Param lat query number true "Latitude"
// @Param lon query number true "Longitude"
// @Produce json
// @Success 200 {object} types.ElevationResponse
// @Failure 400 {object} types.ErrorResponse
// @Failure 502 {object} types.ErrorResponse
// @Router /api/elevation [get]
func GetElevationHandler(d *Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		lat, ok := requiredFloat(c, "lat")
		if !ok {
			return
		}
		lon, ok := requiredFloat(c, "lon")
		if !ok {
			return
		}

		key := fmt.Sprintf("elevation_%.6f_%.6f", lat, lon)
		if outcome, val := d.Cache.Get(key); outcome == cache.HitValue {
			if elev, ok := val.(float64); ok {
				c.JSON(http.StatusOK, types.ElevationResponse{
					Success:   true,
					Latitude:  lat,
					Longitude: lon,
					Elevation: elev,
					Timestamp: time.Now().UnixMilli(),
				})
				return
			}
		}

		results, err := d.Elevation.Lookup([]upstream.Location{{Latitude: lat, Longitude: lon}})
		if err != nil || len(results) == 0 {
			c.JSON(http.StatusBadGateway, types.ErrorResponse{Error: "elevation lookup failed"})
			return
		}

		elev := results[0].Elevation
		d.Cache.Set(key, elev, elevationCacheTTL)

		c.JSON(http.StatusOK, types.ElevationResponse{
			Success:   true,
			Latitude:  lat,
			Longitude: lon,
			Elevation: elev,
			Timestamp: time.Now().UnixMilli(),
		})
	}
}
