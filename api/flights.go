package api

import (
	"net/http"
	"time"

	"github.com/DoROAD-AI/skylink/internal/geomath"
	"github.com/DoROAD-AI/skylink/internal/upstream"
	"github.com/DoROAD-AI/skylink/types"
	"github.com/gin-gonic/gin"
)

const defaultRadiusKm = 100

// GetFlightsHandler godoc
// @Summary Get flights in a radius
// @Description Returns processed flights within radiusKm of (lat, lon), relative to that observer.
// @Tags Flights
// @Param lat query number true "Observer latitude"
// @Param lon query number true "Observer longitude"
// @Param radius query number false "Search radius in kilometres (default 100)"
// @Produce json
// @Success 200 {object} types.FlightsResponse
// @Failure 400 {object} types.ErrorResponse
// @Router /api/flights [get]
func GetFlightsHandler(d *Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		lat, ok := requiredFloat(c, "lat")
		if !ok {
			return
		}
		lon, ok := requiredFloat(c, "lon")
		if !ok {
			return
		}
		radius, ok := optionalFloat(c, "radius", defaultRadiusKm)
		if !ok {
			return
		}

		flights, err := d.Flights.GetFlightsInArea(lat, lon, radius, sessionToken(c))

		data := make([]any, 0, len(flights))
		for i := range flights {
			data = append(data, flights[i])
		}

		resp := types.FlightsResponse{
			Success:   err == nil,
			Data:      data,
			Count:     len(data),
			Timestamp: time.Now().UnixMilli(),
		}
		if uerr, ok := asTypesError(err); ok {
			resp.Error = uerr
			resp.Success = true // degraded but still a 200 with data (possibly demo fallback)
		}

		c.JSON(http.StatusOK, resp)
	}
}

// GetFlightByICAOHandler godoc
// @Summary Get a single flight by ICAO24
// @Tags Flights
// @Param icao path string true "6-character ICAO24 address"
// @Produce json
// @Success 200 {object} types.FlightResponse
// @Failure 400 {object} types.ErrorResponse
// @Failure 404 {object} types.ErrorResponse
// @Router /api/flights/{icao} [get]
func GetFlightByICAOHandler(d *Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		icao, ok := requiredICAO(c, "icao")
		if !ok {
			return
		}

		flight, err := d.Flights.GetFlightByIcao(icao, sessionToken(c))
		if err != nil {
			c.JSON(http.StatusInternalServerError, types.ErrorResponse{Error: err.Error()})
			return
		}
		if flight == nil {
			c.JSON(http.StatusNotFound, types.ErrorResponse{Error: "flight not found"})
			return
		}

		c.JSON(http.StatusOK, types.FlightResponse{
			Success:   true,
			Data:      flight,
			Timestamp: time.Now().UnixMilli(),
		})
	}
}

// GetFlightTrajectoryHandler godoc
// @Summary Get a flight's downsampled trajectory
// @Description This route is matched before the by-ICAO route.
// @Tags Flights
// @Param icao path string true "6-character ICAO24 address"
// @Param lat query number true "Observer latitude"
// @Param lon query number true "Observer longitude"
// @Param alt query number false "Observer altitude in metres"
// @Produce json
// @Success 200 {object} types.TrajectoryResponse
// @Failure 400 {object} types.ErrorResponse
// @Router /api/flights/{icao}/trajectory [get]
func GetFlightTrajectoryHandler(d *Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		icao, ok := requiredICAO(c, "icao")
		if !ok {
			return
		}
		lat, ok := requiredFloat(c, "lat")
		if !ok {
			return
		}
		lon, ok := requiredFloat(c, "lon")
		if !ok {
			return
		}
		alt, ok := optionalFloat(c, "alt", 0)
		if !ok {
			return
		}

		user := geomath.UserLocation{Latitude: lat, Longitude: lon, Altitude: alt}
		samples, err := d.Flights.GetFlightTrajectory(icao, user, sessionToken(c))
		if err != nil {
			c.JSON(http.StatusInternalServerError, types.ErrorResponse{Error: err.Error()})
			return
		}

		data := make([]any, 0, len(samples))
		for i := range samples {
			data = append(data, samples[i])
		}

		c.JSON(http.StatusOK, types.TrajectoryResponse{
			Success:   true,
			Data:      data,
			Count:     len(data),
			Timestamp: time.Now().UnixMilli(),
		})
	}
}

// asTypesError converts an upstream.Error into the envelope shape, if
// err is one.
func asTypesError(err error) (*types.UpstreamError, bool) {
	if err == nil {
		return nil, false
	}
	uerr, ok := err.(*upstream.Error)
	if !ok {
		return nil, false
	}
	return &types.UpstreamError{
		Type:       string(uerr.Type),
		Message:    uerr.Message,
		StatusCode: uerr.StatusCode,
	}, true
}
