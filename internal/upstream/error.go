// Package upstream implements the thin, timeout-bounded JSON HTTP clients
// against the three external providers this service depends on: the
// OpenSky-compatible flight-data API, the AviationStack-compatible route
// API, and an elevation lookup API. Request/retry discipline follows the
// teacher's OpenSkyClient.doRequest shape; credential handling is
// delegated to an injected token.Manager instead of doRequest's Basic
// Auth, since this service's upstream speaks OAuth2.
package upstream

import (
	"errors"
	"fmt"
)

// ErrorType classifies an upstream failure for the response envelope.
type ErrorType string

const (
	// TypeOpenSky covers 401/403/429/503 responses from the flight-data
	// provider: authentication, authorization, rate-limit, and
	// unavailability failures that are the provider's fault, not a bug
	// here.
	TypeOpenSky ErrorType = "opensky"
	// TypeServer covers other 5xx responses.
	TypeServer ErrorType = "server"
	// TypeNetwork covers connection-level failures (DNS, timeout, reset)
	// that never reached the provider's application layer.
	TypeNetwork ErrorType = "network"
)

// Error is the structured sum type upstream failures are classified
// into. It implements the standard error interface and supports
// errors.As so callers can branch on Type without string matching.
type Error struct {
	Type       ErrorType
	Message    string
	StatusCode int
}

func (e *Error) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("upstream: %s: HTTP %d: %s", e.Type, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("upstream: %s: %s", e.Type, e.Message)
}

// Is reports equality by Type, letting callers write
// errors.Is(err, &upstream.Error{Type: upstream.TypeNetwork}).
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return e.Type == t.Type
}

// classifyStatus maps an HTTP status code from a provider response into
// an ErrorType, per the retry/classification table in the component
// contract. ok is false for every other status, including 2xx/3xx and
// 4xx codes other than 401/403/429.
func classifyStatus(statusCode int) (ErrorType, bool) {
	switch statusCode {
	case 401, 403, 429, 503:
		return TypeOpenSky, true
	}
	if statusCode >= 500 {
		return TypeServer, true
	}
	return "", false
}
