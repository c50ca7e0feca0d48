package services

import (
	"math"
	"testing"

	"petcare-route-service/internal/domain"
)

var (
	phoenix = domain.Coordinate{Lat: 33.4484, Lon: -112.0740}
	tucson  = domain.Coordinate{Lat: 32.2226, Lon: -110.9747}
)

func TestHaversineMilesSymmetry(t *testing.T) {
	ab := HaversineMiles(phoenix, tucson)
	ba := HaversineMiles(tucson, phoenix)

	if math.Abs(ab-ba) > 1e-9 {
		t.Errorf("distance not symmetric: %v vs %v", ab, ba)
	}
}

func TestHaversineMilesIdenticalPoints(t *testing.T) {
	if d := HaversineMiles(phoenix, phoenix); d != 0 {
		t.Errorf("distance from a point to itself = %v, want 0", d)
	}
}

func TestHaversineMilesKnownDistance(t *testing.T) {
	// Phoenix to Tucson is roughly 107 miles great-circle.
	d := HaversineMiles(phoenix, tucson)
	if d < 100 || d > 115 {
		t.Errorf("Phoenix-Tucson distance = %v, want ~107", d)
	}
}

func TestEstimateTravelSeconds(t *testing.T) {
	// 120 seconds per mile.
	if s := EstimateTravelSeconds(10); s != 1200 {
		t.Errorf("EstimateTravelSeconds(10) = %v, want 1200", s)
	}
	if s := EstimateTravelSeconds(0); s != 0 {
		t.Errorf("EstimateTravelSeconds(0) = %v, want 0", s)
	}
}

func TestMetersToMiles(t *testing.T) {
	if m := MetersToMiles(1609.344); math.Abs(m-1.0) > 1e-9 {
		t.Errorf("MetersToMiles(1609.344) = %v, want 1", m)
	}
}
