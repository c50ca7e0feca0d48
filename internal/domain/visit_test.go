package domain

import (
	"testing"
	"time"
)

func TestVisitIsFlexible(t *testing.T) {
	start := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

	tight := Visit{StartTime: start, EndTime: start.Add(30 * time.Minute), DurationMinutes: 30}
	if tight.IsFlexible() {
		t.Error("window equal to duration should not be flexible")
	}

	flexible := Visit{StartTime: start, EndTime: start.Add(2 * time.Hour), DurationMinutes: 30}
	if !flexible.IsFlexible() {
		t.Error("window longer than duration should be flexible")
	}

	// End before start + duration is allowed data and must not panic.
	overTight := Visit{StartTime: start, EndTime: start.Add(10 * time.Minute), DurationMinutes: 30}
	if overTight.IsFlexible() {
		t.Error("window shorter than duration should not be flexible")
	}
}

func TestHomeBaseIsReady(t *testing.T) {
	coord := &Coordinate{Lat: 33.4484, Lon: -112.074}

	cases := []struct {
		name string
		hb   *HomeBase
		want bool
	}{
		{"nil", nil, false},
		{"unconfigured", &HomeBase{Coordinate: coord}, false},
		{"no coordinate", &HomeBase{Configured: true}, false},
		{"ready", &HomeBase{Configured: true, Coordinate: coord}, true},
	}

	for _, tc := range cases {
		if got := tc.hb.IsReady(); got != tc.want {
			t.Errorf("%s: IsReady() = %v, want %v", tc.name, got, tc.want)
		}
	}
}
