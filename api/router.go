package api

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes wires every handler onto router, grouped the way the
// upstream surface is grouped in the component contract. The trajectory
// route is registered before the bare by-ICAO route so Gin's router
// matches "/api/flights/:icao/trajectory" instead of swallowing it into
// "/api/flights/:icao".
func RegisterRoutes(router *gin.Engine, d *Dependencies) {
	router.GET("/health", HealthHandler(d))

	apiGroup := router.Group("/api")
	apiGroup.Use(RateLimitMiddleware(d))
	{
		apiGroup.GET("/flights", GetFlightsHandler(d))
		apiGroup.GET("/flights/route", GetRouteHandler(d))
		apiGroup.GET("/flights/:icao/trajectory", GetFlightTrajectoryHandler(d))
		apiGroup.GET("/flights/:icao", GetFlightByICAOHandler(d))

		apiGroup.GET("/elevation", GetElevationHandler(d))

		apiGroup.GET("/cache/stats", GetCacheStatsHandler(d))
		apiGroup.DELETE("/cache", ClearCacheHandler(d))

		apiGroup.POST("/opensky/reconnect", ReconnectHandler(d))
		apiGroup.POST("/opensky/credentials", SubmitCredentialsHandler(d))
		apiGroup.DELETE("/opensky/credentials", DeleteCredentialsHandler(d))
		apiGroup.GET("/opensky/status", GetOpenSkyStatusHandler(d))
	}
}
