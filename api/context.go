// Package api implements the HTTP surface: flights, trajectory, route,
// elevation, cache diagnostics, and BYOK session lifecycle endpoints.
// Handlers follow the teacher's per-concern file split (flights.go,
// cache.go, opensky.go) and its types.ErrorResponse envelope, but read
// their dependencies from an injected Dependencies struct instead of
// package-level globals, since this service's state is per-component
// rather than one global OpenSkyClient.
package api

import (
	"strings"
	"time"

	"github.com/DoROAD-AI/skylink/internal/cache"
	"github.com/DoROAD-AI/skylink/internal/flightservice"
	"github.com/DoROAD-AI/skylink/internal/ratelimit"
	"github.com/DoROAD-AI/skylink/internal/routeclient"
	"github.com/DoROAD-AI/skylink/internal/session"
	"github.com/DoROAD-AI/skylink/internal/token"
	"github.com/DoROAD-AI/skylink/internal/upstream"
	"github.com/gin-gonic/gin"
)

// Dependencies bundles everything a handler needs. Constructed once in
// main.go and shared across every request.
type Dependencies struct {
	Flights     *flightservice.Service
	Routes      *routeclient.Client
	Elevation   *upstream.ElevationClient
	Cache       *cache.Cache
	Sessions    *session.Store
	Anonymous   *token.Manager
	RateLimit   *ratelimit.Limiter
	BYOKEnabled bool
	StartedAt   time.Time

	// TokenURL is the OpenSky token endpoint, needed to validate a
	// freshly submitted credential pair before minting a session.
	TokenURL string
}

// tokenURL returns the configured OpenSky token endpoint.
func (d *Dependencies) tokenURL() string {
	return d.TokenURL
}

// sessionToken extracts the caller's session token from the
// X-Session-Token header, falling back to an "Authorization: Bearer ..."
// header, per the component contract.
func sessionToken(c *gin.Context) string {
	if tok := c.GetHeader("X-Session-Token"); tok != "" {
		return tok
	}
	auth := c.GetHeader("Authorization")
	if strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimPrefix(auth, "Bearer ")
	}
	return ""
}

// effectiveTokenManager resolves the TokenManager a request should act
// against: the caller's session manager if present, else the
// process-wide anonymous one.
func (d *Dependencies) effectiveTokenManager(c *gin.Context) *token.Manager {
	return d.Flights.ResolveTokenManager(sessionToken(c))
}

// rateLimitTier decides which bucket a request is charged against, per
// the tier-selection rule in the component contract.
func (d *Dependencies) rateLimitTier(c *gin.Context) (ratelimit.Tier, string) {
	if !d.BYOKEnabled {
		return ratelimit.AnonymousOff, ""
	}
	tok := sessionToken(c)
	if tok != "" {
		if mgr := d.Sessions.Resolve(tok); mgr != nil && mgr.HasCredentials() {
			return ratelimit.Authenticated, tok
		}
	}
	return ratelimit.AnonymousOn, ""
}
