package trajectory

import (
	"testing"
	"time"

	"github.com/DoROAD-AI/skylink/internal/geomath"
	"github.com/DoROAD-AI/skylink/internal/upstream"
)

var testUser = geomath.UserLocation{Latitude: 50.0, Longitude: 14.0, Altitude: 0}

func TestSampleReturnsNilForEmptyInput(t *testing.T) {
	out := Sample(nil, testUser, time.Now())
	if out != nil {
		t.Errorf("expected nil for empty input, got %v", out)
	}
}

func TestSampleDropsPointsOlderThanMaxLookback(t *testing.T) {
	now := time.Unix(2_000_000, 0)
	stale := now.Add(-2 * time.Hour)
	raw := []upstream.RawTrackPoint{
		{TimestampSec: stale.Unix(), Latitude: 50.1, Longitude: 14.1, Altitude: 1000},
	}
	out := Sample(raw, testUser, now)
	if out != nil {
		t.Errorf("expected stale point to be dropped entirely, got %v", out)
	}
}

func TestSampleReturnsAscendingTimestamps(t *testing.T) {
	now := time.Unix(2_000_000, 0)
	raw := make([]upstream.RawTrackPoint, 0, 20)
	for i := 0; i < 20; i++ {
		ts := now.Add(-time.Duration(i) * time.Minute)
		raw = append(raw, upstream.RawTrackPoint{
			TimestampSec: ts.Unix(),
			Latitude:     50.0 + float64(i)*0.01,
			Longitude:    14.0,
			Altitude:     1000,
		})
	}

	out := Sample(raw, testUser, now)
	for i := 1; i < len(out); i++ {
		if out[i].Timestamp < out[i-1].Timestamp {
			t.Fatalf("timestamps not ascending: %v", out)
		}
	}
}

func TestSampleIncludesNewestPoint(t *testing.T) {
	now := time.Unix(2_000_000, 0)
	raw := []upstream.RawTrackPoint{
		{TimestampSec: now.Unix(), Latitude: 50.5, Longitude: 14.5, Altitude: 5000},
		{TimestampSec: now.Add(-30 * time.Minute).Unix(), Latitude: 50.1, Longitude: 14.1, Altitude: 1000},
	}
	out := Sample(raw, testUser, now)
	if len(out) == 0 {
		t.Fatal("expected at least one sample")
	}
	newest := out[len(out)-1]
	if newest.Timestamp != now.UnixMilli() {
		t.Errorf("newest sample timestamp = %d, want %d", newest.Timestamp, now.UnixMilli())
	}
}

func TestSampleCapsAtSixWhenDenselyPopulated(t *testing.T) {
	now := time.Unix(2_000_000, 0)
	raw := make([]upstream.RawTrackPoint, 0, 60)
	for i := 0; i < 60; i++ {
		ts := now.Add(-time.Duration(i) * 10 * time.Second)
		raw = append(raw, upstream.RawTrackPoint{
			TimestampSec: ts.Unix(),
			Latitude:     50.0,
			Longitude:    14.0,
			Altitude:     1000,
		})
	}
	out := Sample(raw, testUser, now)
	if len(out) > SampleCount {
		t.Errorf("len(out) = %d, want <= %d", len(out), SampleCount)
	}
}

func TestSampleDeduplicatesByTimestamp(t *testing.T) {
	now := time.Unix(2_000_000, 0)
	raw := []upstream.RawTrackPoint{
		{TimestampSec: now.Unix(), Latitude: 50.0, Longitude: 14.0, Altitude: 1000},
	}
	out := Sample(raw, testUser, now)

	seen := make(map[int64]bool)
	for _, s := range out {
		if seen[s.Timestamp] {
			t.Fatalf("duplicate timestamp %d in output", s.Timestamp)
		}
		seen[s.Timestamp] = true
	}
}

func TestSamplePositionUsesLocalTangentPlane(t *testing.T) {
	now := time.Unix(2_000_000, 0)
	raw := []upstream.RawTrackPoint{
		{TimestampSec: now.Unix(), Latitude: testUser.Latitude, Longitude: testUser.Longitude, Altitude: 500},
	}
	out := Sample(raw, testUser, now)
	if len(out) != 1 {
		t.Fatalf("expected 1 sample directly overhead, got %d", len(out))
	}
	if out[0].Position.Y != 500 {
		t.Errorf("Position.Y = %v, want 500 (altitude delta)", out[0].Position.Y)
	}
}
