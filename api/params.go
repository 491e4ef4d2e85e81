package api

import (
	"math"
	"net/http"
	"strconv"

	"github.com/DoROAD-AI/skylink/types"
	"github.com/gin-gonic/gin"
)

// requiredFloat parses a required query parameter as a float64,
// rejecting missing values, malformed input, and NaN. On failure it
// writes a 400 envelope and returns ok=false; the caller should return
// immediately.
func requiredFloat(c *gin.Context, name string) (float64, bool) {
	raw := c.Query(name)
	if raw == "" {
		c.JSON(http.StatusBadRequest, types.ErrorResponse{Error: "missing required parameter: " + name})
		return 0, false
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) {
		c.JSON(http.StatusBadRequest, types.ErrorResponse{Error: "invalid " + name + ": must be a number"})
		return 0, false
	}
	return v, true
}

// optionalFloat parses an optional query parameter, returning def if
// absent. A present-but-malformed value is still a 400.
func optionalFloat(c *gin.Context, name string, def float64) (float64, bool) {
	raw := c.Query(name)
	if raw == "" {
		return def, true
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) {
		c.JSON(http.StatusBadRequest, types.ErrorResponse{Error: "invalid " + name + ": must be a number"})
		return 0, false
	}
	return v, true
}

// requiredICAO validates a 6-character ICAO24 path parameter.
func requiredICAO(c *gin.Context, name string) (string, bool) {
	v := c.Param(name)
	if len(v) != 6 {
		c.JSON(http.StatusBadRequest, types.ErrorResponse{Error: name + " must be exactly 6 characters"})
		return "", false
	}
	return v, true
}

// requiredString validates a required, non-empty query parameter.
func requiredString(c *gin.Context, name string) (string, bool) {
	v := c.Query(name)
	if v == "" {
		c.JSON(http.StatusBadRequest, types.ErrorResponse{Error: "missing required parameter: " + name})
		return "", false
	}
	return v, true
}
