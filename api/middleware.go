package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// RateLimitMiddleware charges every request under the group it's
// attached to against the appropriate tier, rejecting with 429 and the
// standard rate-limit headers once a tier is exhausted.
func RateLimitMiddleware(d *Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		tier, identity := d.rateLimitTier(c)
		result := d.RateLimit.Check(tier, identity)

		c.Header("RateLimit-Limit", strconv.Itoa(result.Limit))
		c.Header("RateLimit-Remaining", strconv.Itoa(result.Remaining))
		c.Header("RateLimit-Reset", strconv.FormatInt(result.ResetAt.Unix(), 10))

		if !result.Allowed {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error":     "rate limit exceeded",
				"limit":     result.Limit,
				"remaining": result.Remaining,
				"resetAt":   result.ResetAt.Unix(),
			})
			return
		}

		c.Next()
	}
}
