// Package flightservice is the thin orchestrator tying the upstream
// client, flight processor, and trajectory sampler together behind a
// cache, picking the right TokenManager for a request the way the
// teacher's handlers picked the package-level openSkyApi — except here
// each BYOK session gets its own manager instead of one process-wide
// client.
package flightservice

import (
	"fmt"
	"sync"
	"time"

	"github.com/DoROAD-AI/skylink/internal/cache"
	"github.com/DoROAD-AI/skylink/internal/flightproc"
	"github.com/DoROAD-AI/skylink/internal/geomath"
	"github.com/DoROAD-AI/skylink/internal/session"
	"github.com/DoROAD-AI/skylink/internal/token"
	"github.com/DoROAD-AI/skylink/internal/trajectory"
	"github.com/DoROAD-AI/skylink/internal/upstream"
)

const (
	areaCacheTTL  = 15 * time.Second
	icaoCacheTTL  = 30 * time.Second
	trackCacheTTL = 60 * time.Second

	// europeAnchorLat/Lon and europeRadiusKm bound the large lookup used
	// by getFlightByIcao, per the component contract.
	europeAnchorLat = 50.0
	europeAnchorLon = 10.0
	europeRadiusKm  = 1000
)

// Service orchestrates flight lookups. The zero value is not usable;
// construct with New.
type Service struct {
	cache         *cache.Cache
	flightClient  *upstream.FlightClient
	sessions      *session.Store
	anonymous     *token.Manager
	byokEnabled   bool
	demoFallback  func() []flightproc.ProcessedFlight
	lastErrorSlot atomicError
}

// New constructs a Service. anonymous is the process-wide TokenManager
// used when BYOK is disabled or the caller presents no session.
func New(c *cache.Cache, flightClient *upstream.FlightClient, sessions *session.Store, anonymous *token.Manager, byokEnabled bool) *Service {
	return &Service{
		cache:        c,
		flightClient: flightClient,
		sessions:     sessions,
		anonymous:    anonymous,
		byokEnabled:  byokEnabled,
	}
}

// SetDemoFallback installs a hook invoked when an upstream fetch fails
// and no cached value is available, so a deployment with bundled demo
// fixtures can still answer a degraded request instead of an empty list.
func (s *Service) SetDemoFallback(fn func() []flightproc.ProcessedFlight) {
	s.demoFallback = fn
}

// LastError returns the most recently recorded upstream failure for
// surfacing in a response envelope, or nil if the last call succeeded.
func (s *Service) LastError() *upstream.Error {
	return s.lastErrorSlot.load()
}

// ResolveTokenManager selects the TokenManager a request should use:
// the caller's session manager if sessionToken resolves to one,
// otherwise the process-wide anonymous manager.
func (s *Service) ResolveTokenManager(sessionToken string) *token.Manager {
	if sessionToken != "" {
		if mgr := s.sessions.Resolve(sessionToken); mgr != nil {
			return mgr
		}
	}
	return s.anonymous
}

// GetFlightsInArea returns processed flights within radiusKm of
// (lat, lon).
func (s *Service) GetFlightsInArea(lat, lon, radiusKm float64, sessionToken string) ([]flightproc.ProcessedFlight, error) {
	key := fmt.Sprintf("flights_%.4f_%.4f_%v", lat, lon, radiusKm)

	if outcome, val := s.cache.Get(key); outcome == cache.HitValue {
		if flights, ok := val.([]flightproc.ProcessedFlight); ok {
			return flights, nil
		}
	}

	user := geomath.UserLocation{Latitude: lat, Longitude: lon}
	tm := s.ResolveTokenManager(sessionToken)

	raw, err := s.flightClient.FetchStates(user, radiusKm, tm)
	if err != nil {
		s.lastErrorSlot.store(asUpstreamError(err))
		if s.demoFallback != nil {
			return s.demoFallback(), nil
		}
		return []flightproc.ProcessedFlight{}, err
	}
	s.lastErrorSlot.store(nil)

	processed := flightproc.Process(raw, user, radiusKm)
	s.cache.Set(key, processed, areaCacheTTL)
	return processed, nil
}

// GetFlightByIcao fetches a large European bounding box, locates icao24,
// and processes it against the European anchor. Returns nil if not
// found in the current snapshot.
func (s *Service) GetFlightByIcao(icao string, sessionToken string) (*flightproc.ProcessedFlight, error) {
	key := "flight_icao_" + icao

	if outcome, val := s.cache.Get(key); outcome == cache.HitValue {
		if flight, ok := val.(*flightproc.ProcessedFlight); ok {
			return flight, nil
		}
	}

	user := geomath.UserLocation{Latitude: europeAnchorLat, Longitude: europeAnchorLon}
	tm := s.ResolveTokenManager(sessionToken)

	raw, err := s.flightClient.FetchStates(user, europeRadiusKm, tm)
	if err != nil {
		s.lastErrorSlot.store(asUpstreamError(err))
		return nil, err
	}
	s.lastErrorSlot.store(nil)

	processed := flightproc.Process(raw, user, europeRadiusKm)
	for i := range processed {
		if processed[i].ICAO24 == icao {
			found := processed[i]
			s.cache.Set(key, &found, icaoCacheTTL)
			return &found, nil
		}
	}
	return nil, nil
}

// GetFlightTrajectory fetches and downsamples icao24's historical track
// relative to user.
func (s *Service) GetFlightTrajectory(icao string, user geomath.UserLocation, sessionToken string) ([]trajectory.TrajectorySample, error) {
	bucket := time.Now().Unix() / 60
	key := fmt.Sprintf("trajectory_%s_%d", icao, bucket)

	if outcome, val := s.cache.Get(key); outcome == cache.HitValue {
		if samples, ok := val.([]trajectory.TrajectorySample); ok {
			return samples, nil
		}
	}

	tm := s.ResolveTokenManager(sessionToken)
	raw, err := s.flightClient.FetchTrack(icao, tm)
	if err != nil {
		s.lastErrorSlot.store(asUpstreamError(err))
		return nil, err
	}
	s.lastErrorSlot.store(nil)

	samples := trajectory.Sample(raw, user, time.Now())
	s.cache.Set(key, samples, trackCacheTTL)
	return samples, nil
}

func asUpstreamError(err error) *upstream.Error {
	if uerr, ok := err.(*upstream.Error); ok {
		return uerr
	}
	return &upstream.Error{Type: upstream.TypeNetwork, Message: err.Error()}
}

// atomicError is a mutex-guarded last-error slot: the "last upstream
// error per recent call" state the component contract allows
// FlightService to own.
type atomicError struct {
	mu  sync.RWMutex
	err *upstream.Error
}

func (a *atomicError) store(err *upstream.Error) {
	a.mu.Lock()
	a.err = err
	a.mu.Unlock()
}

func (a *atomicError) load() *upstream.Error {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.err
}
