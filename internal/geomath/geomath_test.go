package geomath

import (
	"math"
	"testing"
)

func TestDistanceKm(t *testing.T) {
	tests := []struct {
		name                   string
		lat1, lon1, lat2, lon2 float64
		wantKm                 float64
		tolerance              float64 // fraction, e.g. 0.01 = 1%
	}{
		{name: "same point", lat1: 0, lon1: 0, lat2: 0, lon2: 0, wantKm: 0},
		{
			name: "NYC to London",
			lat1: 40.7128, lon1: -74.0060, lat2: 51.5074, lon2: -0.1278,
			wantKm: 5570, tolerance: 0.01,
		},
		{
			name: "1 degree longitude at equator",
			lat1: 0, lon1: 0, lat2: 0, lon2: 1,
			wantKm: 111.195, tolerance: 0.01,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DistanceKm(tt.lat1, tt.lon1, tt.lat2, tt.lon2)
			if tt.wantKm == 0 {
				if got != 0 {
					t.Errorf("DistanceKm() = %v, want 0", got)
				}
				return
			}
			diff := math.Abs(got-tt.wantKm) / tt.wantKm
			if diff > tt.tolerance {
				t.Errorf("DistanceKm() = %v, want ~%v (%.2f%% error, max %.2f%%)",
					got, tt.wantKm, diff*100, tt.tolerance*100)
			}
		})
	}
}

func TestBearingDeg(t *testing.T) {
	tests := []struct {
		name                   string
		lat1, lon1, lat2, lon2 float64
		want                   float64
		tolerance              float64
	}{
		{name: "due north", lat1: 0, lon1: 0, lat2: 1, lon2: 0, want: 0, tolerance: 0.01},
		{name: "due east", lat1: 0, lon1: 0, lat2: 0, lon2: 1, want: 90, tolerance: 0.01},
		{name: "due south", lat1: 1, lon1: 0, lat2: 0, lon2: 0, want: 180, tolerance: 0.01},
		{name: "due west", lat1: 0, lon1: 1, lat2: 0, lon2: 0, want: 270, tolerance: 0.01},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BearingDeg(tt.lat1, tt.lon1, tt.lat2, tt.lon2)
			if math.Abs(got-tt.want) > tt.tolerance {
				t.Errorf("BearingDeg() = %v, want ~%v", got, tt.want)
			}
			if got < 0 || got >= 360 {
				t.Errorf("BearingDeg() = %v, out of [0, 360)", got)
			}
		})
	}
}

func TestElevationDeg(t *testing.T) {
	tests := []struct {
		name                          string
		userAlt, targetAlt, distanceKm float64
		want                          float64
	}{
		{name: "level with observer", userAlt: 0, targetAlt: 0, distanceKm: 10, want: 0},
		{name: "below horizon clamps to zero", userAlt: 1000, targetAlt: 0, distanceKm: 10, want: 0},
		{name: "straight up ~90deg", userAlt: 0, targetAlt: 10000, distanceKm: 0.001, want: 90},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ElevationDeg(tt.userAlt, tt.targetAlt, tt.distanceKm)
			if got < 0 || got > 90.0001 {
				t.Errorf("ElevationDeg() = %v, out of [0, 90]", got)
			}
			if tt.name != "straight up ~90deg" && math.Abs(got-tt.want) > 0.01 {
				t.Errorf("ElevationDeg() = %v, want ~%v", got, tt.want)
			}
		})
	}
}

func TestGPSToLocalAxisConvention(t *testing.T) {
	user := UserLocation{Latitude: 50, Longitude: 14, Altitude: 0}

	// Target due north of the user: +X (north) should dominate, Z ~ 0.
	north := GPSToLocal(user, 50.1, 14, 1000)
	if north.X <= 0 {
		t.Errorf("expected positive X (north) for a northward target, got %v", north.X)
	}
	if math.Abs(north.Z) > 1 {
		t.Errorf("expected near-zero Z for a due-north target, got %v", north.Z)
	}
	if north.Y != 1000 {
		t.Errorf("Y must equal targetAlt - userAlt, got %v want 1000", north.Y)
	}

	// Target due east: +Z (east) should dominate, X ~ 0. The initial
	// great-circle bearing to a point on the same parallel at 50N is
	// slightly north of 90 degrees, which leaves X at about 4.8 m over
	// this ~7.1 km distance.
	east := GPSToLocal(user, 50, 14.1, 0)
	if east.Z <= 0 {
		t.Errorf("expected positive Z (east) for an eastward target, got %v", east.Z)
	}
	if math.Abs(east.X) > 10 {
		t.Errorf("expected near-zero X for a due-east target, got %v", east.X)
	}
}

func TestGPSToLocalRoundTrip(t *testing.T) {
	user := UserLocation{Latitude: 48.5, Longitude: 11.2, Altitude: 0}
	targetLat, targetLon := 49.0, 11.8

	local := GPSToLocal(user, targetLat, targetLon, 0)
	distanceM := math.Hypot(local.X, local.Z)
	bearing := math.Mod(toDeg(math.Atan2(local.Z, local.X))+360, 360)

	// Invert: walk `distanceM` along `bearing` from user and compare to target.
	phi1 := toRad(user.Latitude)
	angularDist := distanceM / 1000 / EarthRadiusKm
	br := toRad(bearing)

	phi2 := math.Asin(math.Sin(phi1)*math.Cos(angularDist) +
		math.Cos(phi1)*math.Sin(angularDist)*math.Cos(br))
	lambda1 := toRad(user.Longitude)
	lambda2 := lambda1 + math.Atan2(
		math.Sin(br)*math.Sin(angularDist)*math.Cos(phi1),
		math.Cos(angularDist)-math.Sin(phi1)*math.Sin(phi2))

	gotLat := toDeg(phi2)
	gotLon := toDeg(lambda2)

	// Within 1m for radii <= 100km (spec §8 round-trip law); 1m ~ 9e-6 deg lat.
	if math.Abs(gotLat-targetLat) > 1e-5 {
		t.Errorf("round-trip lat = %v, want ~%v", gotLat, targetLat)
	}
	if math.Abs(gotLon-targetLon) > 1e-5 {
		t.Errorf("round-trip lon = %v, want ~%v", gotLon, targetLon)
	}
}

func TestExtrapolateIdentityAtZeroSeconds(t *testing.T) {
	in := ExtrapolateInput{Latitude: 50, Longitude: 14, Altitude: 1000, Velocity: 200, Heading: 45}
	got := Extrapolate(in, 0)
	if got != in {
		t.Errorf("Extrapolate(f, 0) = %+v, want identity %+v", got, in)
	}
}

func TestExtrapolateSkipsOnGround(t *testing.T) {
	in := ExtrapolateInput{Latitude: 50, Longitude: 14, Velocity: 200, Heading: 45, OnGround: true}
	got := Extrapolate(in, 30)
	if got.Latitude != in.Latitude || got.Longitude != in.Longitude {
		t.Errorf("Extrapolate() advanced a grounded aircraft: %+v", got)
	}
}

func TestExtrapolateSkipsZeroVelocity(t *testing.T) {
	in := ExtrapolateInput{Latitude: 50, Longitude: 14, Velocity: 0, Heading: 45}
	got := Extrapolate(in, 30)
	if got.Latitude != in.Latitude || got.Longitude != in.Longitude {
		t.Errorf("Extrapolate() advanced a stationary aircraft: %+v", got)
	}
}

func TestExtrapolateNorthward(t *testing.T) {
	in := ExtrapolateInput{Latitude: 0, Longitude: 0, Velocity: 100, Heading: 0}
	got := Extrapolate(in, 100)
	if got.Latitude <= in.Latitude {
		t.Errorf("expected latitude to increase heading due north, got %v", got.Latitude)
	}
	if math.Abs(got.Longitude-in.Longitude) > 1e-9 {
		t.Errorf("expected longitude unchanged heading due north, got %v", got.Longitude)
	}
}

func TestExtrapolatePoleSingularityGuard(t *testing.T) {
	in := ExtrapolateInput{Latitude: 89.9999, Longitude: 0, Velocity: 200, Heading: 90}
	got := Extrapolate(in, 60)
	if math.IsInf(got.Longitude, 0) || math.IsNaN(got.Longitude) {
		t.Errorf("Extrapolate() near pole produced non-finite longitude: %v", got.Longitude)
	}
}
