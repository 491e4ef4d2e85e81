package flightservice

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/DoROAD-AI/skylink/internal/cache"
	"github.com/DoROAD-AI/skylink/internal/flightproc"
	"github.com/DoROAD-AI/skylink/internal/session"
	"github.com/DoROAD-AI/skylink/internal/token"
	"github.com/DoROAD-AI/skylink/internal/upstream"
)

func statesServer(t *testing.T, rows [][]interface{}) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{"time": 1700000000, "states": rows})
	}))
}

func newTestService(t *testing.T, rows [][]interface{}) (*Service, *httptest.Server) {
	t.Helper()
	srv := statesServer(t, rows)
	client := upstream.NewFlightClient(srv.URL, srv.URL)
	sessions := session.New(srv.URL)
	anon := token.New("", "", srv.URL)
	return New(cache.New(), client, sessions, anon, false), srv
}

func TestGetFlightsInAreaCachesResult(t *testing.T) {
	var requests atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{"time": 1700000000, "states": [][]interface{}{
			{"abc123", "UAL100", "US", float64(1700000000), float64(1700000001), 14.0, 50.0, nil, false, float64(200), float64(90), float64(0), nil, float64(9000), "", false, float64(0)},
		}})
	}))
	defer srv.Close()

	client := upstream.NewFlightClient(srv.URL, srv.URL)
	svc := New(cache.New(), client, session.New(srv.URL), token.New("", "", srv.URL), false)

	first, err := svc.GetFlightsInArea(50.0, 14.0, 500, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(first) != 1 {
		t.Fatalf("expected 1 flight, got %d", len(first))
	}

	second, err := svc.GetFlightsInArea(50.0, 14.0, 500, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(second) != 1 {
		t.Fatalf("expected cached 1 flight, got %d", len(second))
	}
	if requests.Load() != 1 {
		t.Errorf("expected exactly 1 upstream request due to caching, got %d", requests.Load())
	}
}

func TestGetFlightsInAreaUsesDemoFallbackOnUpstreamFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	client := upstream.NewFlightClient(srv.URL, srv.URL)
	svc := New(cache.New(), client, session.New(srv.URL), token.New("", "", srv.URL), false)
	svc.SetDemoFallback(func() []flightproc.ProcessedFlight {
		return []flightproc.ProcessedFlight{{ICAO24: "demo123"}}
	})

	flights, err := svc.GetFlightsInArea(50.0, 14.0, 500, "")
	if err != nil {
		t.Fatalf("unexpected error with demo fallback installed: %v", err)
	}
	if len(flights) != 1 || flights[0].ICAO24 != "demo123" {
		t.Fatalf("expected demo fallback flight, got %+v", flights)
	}
	if svc.LastError() == nil {
		t.Error("expected LastError to be recorded even when falling back")
	}
}

func TestGetFlightsInAreaReturnsEmptySliceWithoutFallback(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	client := upstream.NewFlightClient(srv.URL, srv.URL)
	svc := New(cache.New(), client, session.New(srv.URL), token.New("", "", srv.URL), false)

	flights, err := svc.GetFlightsInArea(50.0, 14.0, 500, "")
	if err == nil {
		t.Fatal("expected an error to propagate without a demo fallback")
	}
	if flights == nil || len(flights) != 0 {
		t.Errorf("expected empty (non-nil) slice, got %v", flights)
	}
}

func TestGetFlightByIcaoFindsMatchingAircraft(t *testing.T) {
	rows := [][]interface{}{
		{"target1", "UAL200", "US", float64(1700000000), float64(1700000001), 10.0, 50.0, nil, false, float64(200), float64(90), float64(0), nil, float64(9000), "", false, float64(0)},
	}
	svc, srv := newTestService(t, rows)
	defer srv.Close()

	flight, err := svc.GetFlightByIcao("target1", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if flight == nil {
		t.Fatal("expected to find target1")
	}
}

func TestGetFlightByIcaoReturnsNilWhenNotFound(t *testing.T) {
	rows := [][]interface{}{
		{"other1", "UAL200", "US", float64(1700000000), float64(1700000001), 10.0, 50.0, nil, false, float64(200), float64(90), float64(0), nil, float64(9000), "", false, float64(0)},
	}
	svc, srv := newTestService(t, rows)
	defer srv.Close()

	flight, err := svc.GetFlightByIcao("missing", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if flight != nil {
		t.Fatalf("expected nil, got %+v", flight)
	}
}

func TestResolveTokenManagerFallsBackToAnonymous(t *testing.T) {
	svc, srv := newTestService(t, nil)
	defer srv.Close()

	mgr := svc.ResolveTokenManager("unknown-session-token")
	if mgr != svc.anonymous {
		t.Error("expected fallback to the anonymous manager for an unresolvable session token")
	}
}

func TestResolveTokenManagerUsesSessionManager(t *testing.T) {
	svc, srv := newTestService(t, nil)
	defer srv.Close()

	tok, err := svc.sessions.Create("id", "secret")
	if err != nil {
		t.Fatalf("unexpected error creating session: %v", err)
	}

	mgr := svc.ResolveTokenManager(tok)
	if mgr == svc.anonymous {
		t.Error("expected the session's own manager, not the anonymous fallback")
	}
}
