// types/types.go
package types

// ErrorResponse represents a generic error response structure for the API.
type ErrorResponse struct {
	Error string `json:"error" example:"error message"`
}

// UpstreamError describes a degraded call into an external provider,
// embedded in response envelopes rather than rejecting the request
// outright when a cached or partial result is still usable.
type UpstreamError struct {
	Type       string `json:"type" example:"opensky"`
	Message    string `json:"message"`
	StatusCode int    `json:"statusCode,omitempty"`
}

// FlightsResponse wraps a list of processed flights.
type FlightsResponse struct {
	Success   bool           `json:"success"`
	Data      []any          `json:"data"`
	Count     int            `json:"count"`
	Timestamp int64          `json:"timestamp"`
	Error     *UpstreamError `json:"error,omitempty"`
}

// FlightResponse wraps a single processed flight.
type FlightResponse struct {
	Success   bool  `json:"success"`
	Data      any   `json:"data"`
	Timestamp int64 `json:"timestamp"`
}

// TrajectoryResponse wraps a sequence of trajectory samples.
type TrajectoryResponse struct {
	Success   bool  `json:"success"`
	Data      []any `json:"data"`
	Count     int   `json:"count"`
	Timestamp int64 `json:"timestamp"`
}

// RouteResponse wraps a resolved route.
type RouteResponse struct {
	Success   bool  `json:"success"`
	Data      any   `json:"data"`
	Timestamp int64 `json:"timestamp"`
}

// ElevationResponse reports a single resolved elevation.
type ElevationResponse struct {
	Success   bool    `json:"success"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Elevation float64 `json:"elevation"`
	Timestamp int64   `json:"timestamp"`
}

// HealthResponse is the /health payload.
type HealthResponse struct {
	Status    string `json:"status" example:"ok"`
	Uptime    string `json:"uptime"`
	Timestamp int64  `json:"timestamp"`
}

// CacheStatsResponse reports cache counters alongside flight-service
// diagnostics, richer than a bare cache snapshot.
type CacheStatsResponse struct {
	Keys          int            `json:"keys"`
	Hits          int64          `json:"hits"`
	Misses        int64          `json:"misses"`
	Sets          int64          `json:"sets"`
	Deletes       int64          `json:"deletes"`
	HitRate       float64        `json:"hitRate"`
	LastError     *UpstreamError `json:"lastError,omitempty"`
	AnonymousUsed int64          `json:"anonymousRateLimitUsed"`
}

// CredentialsRequest is the BYOK credential-exchange request body.
type CredentialsRequest struct {
	ClientID     string `json:"clientId" binding:"required"`
	ClientSecret string `json:"clientSecret" binding:"required"`
}

// CredentialsResponse is returned on a successful BYOK credential
// exchange.
type CredentialsResponse struct {
	Success      bool   `json:"success"`
	SessionToken string `json:"sessionToken"`
}

// OpenSkyStatusResponse reports BYOK configuration and session state.
type OpenSkyStatusResponse struct {
	Success       bool `json:"success"`
	BYOKEnabled   bool `json:"byokEnabled"`
	HasSession    bool `json:"hasSession"`
	SessionActive bool `json:"sessionActive"`
}
