package api

import (
	"net/http"
	"time"

	"github.com/DoROAD-AI/skylink/types"
	"github.com/gin-gonic/gin"
)

// GetRouteHandler godoc
// @Summary Resolve a flight's route by callsign
// @Tags Flights
// @Param callsign query string true "Flight callsign, e.g. BAW123"
// @Produce json
// @Success 200 {object} types.RouteResponse
// @Failure 400 {object} types.ErrorResponse
// @Failure 404 {object} types.ErrorResponse
// @Router /api/flights/route [get]
func GetRouteHandler(d *Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		callsign, ok := requiredString(c, "callsign")
		if !ok {
			return
		}

		route, err := d.Routes.Resolve(callsign)
		if err != nil {
			c.JSON(http.StatusInternalServerError, types.ErrorResponse{Error: err.Error()})
			return
		}
		if route == nil {
			c.JSON(http.StatusNotFound, types.ErrorResponse{Error: "no known route for callsign"})
			return
		}

		c.JSON(http.StatusOK, types.RouteResponse{
			Success:   true,
			Data:      route,
			Timestamp: time.Now().UnixMilli(),
		})
	}
}
