// Package trajectory downsamples a flight's raw historical track into a
// small, time-spaced sequence of samples suitable for client rendering,
// following the same "pick representative points, don't ship every raw
// sample" approach the teacher's FlightTrack/Waypoint types imply without
// actually implementing — the spec is explicit where the teacher left it
// to the client.
package trajectory

import (
	"sort"
	"time"

	"github.com/DoROAD-AI/skylink/internal/geomath"
	"github.com/DoROAD-AI/skylink/internal/upstream"
)

// SampleCount is N, the target number of output samples.
const SampleCount = 6

// SampleSpacing is the time gap between consecutive target timestamps.
const SampleSpacing = 3 * time.Minute

// MaxLookback bounds how far into the past a raw point may be before
// it's dropped as stale.
const MaxLookback = 1 * time.Hour

// TrajectorySample is one point on a flight's historical path, converted
// into the observer's local tangent plane.
type TrajectorySample struct {
	Timestamp int64 `json:"timestamp"` // unix ms
	GPS       struct {
		Latitude  float64 `json:"latitude"`
		Longitude float64 `json:"longitude"`
		Altitude  float64 `json:"altitude"`
	} `json:"gps"`
	Position struct {
		X float64 `json:"x"`
		Y float64 `json:"y"`
		Z float64 `json:"z"`
	} `json:"position"`
}

type internalPoint struct {
	timestampMs int64
	lat, lon    float64
	alt         float64
}

// Sample converts raw into at most SampleCount Samples relative to user,
// per the downsampling algorithm in the component contract. now is
// injected so the function stays deterministic and testable.
func Sample(raw []upstream.RawTrackPoint, user geomath.UserLocation, now time.Time) []TrajectorySample {
	points := toInternalPoints(raw, now)
	if len(points) == 0 {
		return nil
	}

	sort.Slice(points, func(i, j int) bool { return points[i].timestampMs < points[j].timestampMs })

	latest := points[len(points)-1].timestampMs
	earliest := latest - int64((SampleCount-1))*SampleSpacing.Milliseconds()

	selected := make([]internalPoint, 0, SampleCount)
	seenTimestamps := make(map[int64]bool)

	for i := 0; i < SampleCount; i++ {
		target := latest - int64(SampleCount-1-i)*SampleSpacing.Milliseconds()
		best, found := closestPoint(points, target, earliest)
		if !found {
			continue
		}
		if seenTimestamps[best.timestampMs] {
			continue
		}
		seenTimestamps[best.timestampMs] = true
		selected = append(selected, best)
	}

	if !seenTimestamps[latest] {
		selected = append(selected, points[len(points)-1])
	}

	sort.Slice(selected, func(i, j int) bool { return selected[i].timestampMs < selected[j].timestampMs })

	out := make([]TrajectorySample, 0, len(selected))
	for _, p := range selected {
		out = append(out, toSample(p, user))
	}
	return out
}

func toInternalPoints(raw []upstream.RawTrackPoint, now time.Time) []internalPoint {
	cutoff := now.Add(-MaxLookback).UnixMilli()
	out := make([]internalPoint, 0, len(raw))
	for _, r := range raw {
		ms := r.TimestampSec * 1000
		if ms < cutoff {
			continue
		}
		out = append(out, internalPoint{
			timestampMs: ms,
			lat:         r.Latitude,
			lon:         r.Longitude,
			alt:         r.Altitude,
		})
	}
	return out
}

// closestPoint returns the point with the minimum |timestamp - target|
// among points at or after earliest.
func closestPoint(points []internalPoint, target, earliest int64) (internalPoint, bool) {
	var best internalPoint
	bestDiff := int64(-1)
	found := false

	for _, p := range points {
		if p.timestampMs < earliest {
			continue
		}
		diff := p.timestampMs - target
		if diff < 0 {
			diff = -diff
		}
		if !found || diff < bestDiff {
			best = p
			bestDiff = diff
			found = true
		}
	}
	return best, found
}

func toSample(p internalPoint, user geomath.UserLocation) TrajectorySample {
	local := geomath.GPSToLocal(user, p.lat, p.lon, p.alt)

	var s TrajectorySample
	s.Timestamp = p.timestampMs
	s.GPS.Latitude = p.lat
	s.GPS.Longitude = p.lon
	s.GPS.Altitude = p.alt
	s.Position.X = local.X
	s.Position.Y = local.Y
	s.Position.Z = local.Z
	return s
}
