package upstream

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
)

func TestLookupReturnsResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Locations []Location `json:"locations"`
		}
		_ = json.NewDecoder(r.Body).Decode(&body)
		if len(body.Locations) != 1 {
			t.Errorf("expected 1 location in request body, got %d", len(body.Locations))
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"results": []map[string]any{{"latitude": 50.0, "longitude": 14.0, "elevation": 300.5}},
		})
	}))
	defer srv.Close()

	c := NewElevationClient(srv.URL)
	results, err := c.Lookup([]Location{{Latitude: 50.0, Longitude: 14.0}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 1 || results[0].Elevation != 300.5 {
		t.Fatalf("unexpected results: %+v", results)
	}
}

func TestLookupRetriesOnFailure(t *testing.T) {
	var requests atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := requests.Add(1)
		if n < 2 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"results": []map[string]any{{"latitude": 1, "longitude": 2, "elevation": 10}},
		})
	}))
	defer srv.Close()

	c := NewElevationClient(srv.URL)
	results, err := c.Lookup([]Location{{Latitude: 1, Longitude: 2}})
	if err != nil {
		t.Fatalf("unexpected error after retry: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("unexpected results: %+v", results)
	}
	if requests.Load() != 2 {
		t.Errorf("expected 2 requests (1 failure + 1 retry), got %d", requests.Load())
	}
}

func TestLookupExhaustsRetriesAndReturnsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewElevationClient(srv.URL)
	_, err := c.Lookup([]Location{{Latitude: 1, Longitude: 2}})
	if err == nil {
		t.Fatal("expected an error once all retries are exhausted")
	}
}
