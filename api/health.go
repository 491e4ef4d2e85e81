package api

import (
	"net/http"
	"time"

	"github.com/DoROAD-AI/skylink/types"
	"github.com/gin-gonic/gin"
)

// HealthHandler godoc
// @Summary Report service liveness and uptime
// @Tags Diagnostics
// @Produce json
// @Success 200 {object} types.HealthResponse
// @Router /health [get]
func HealthHandler(d *Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, types.HealthResponse{
			Status:    "ok",
			Uptime:    time.Since(d.StartedAt).String(),
			Timestamp: time.Now().UnixMilli(),
		})
	}
}
