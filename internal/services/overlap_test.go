package services

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"petcare-route-service/internal/domain"
)

// testVisit builds a visit with a window starting at the given clock time
// on a fixed day. All test visits live in central Phoenix.
func testVisit(pet, client string, startHour, startMin, windowMin, durationMin int) domain.Visit {
	start := time.Date(2026, 3, 2, startHour, startMin, 0, 0, time.UTC)
	return domain.Visit{
		ID:              uuid.New(),
		ClientName:      client,
		PetName:         pet,
		Address:         "101 N Central Ave, Phoenix, AZ",
		Coordinate:      domain.Coordinate{Lat: 33.4484, Lon: -112.0740},
		StartTime:       start,
		EndTime:         start.Add(time.Duration(windowMin) * time.Minute),
		DurationMinutes: durationMin,
		ServiceType:     domain.ServiceWalk,
	}
}

func TestDetectOverlappingWindowsIdenticalOnly(t *testing.T) {
	a := testVisit("Rex", "Dana", 9, 0, 60, 30)
	b := testVisit("Bella", "Sam", 9, 0, 60, 30)
	// Overlaps a/b in time but the window is not byte-identical.
	c := testVisit("Milo", "Pat", 9, 15, 30, 30)

	got := DetectOverlappingWindows([]domain.Visit{a, b, c})

	if len(got) != 1 {
		t.Fatalf("expected 1 overlap group, got %d", len(got))
	}
	if len(got[0].Visits) != 2 {
		t.Fatalf("expected 2 visits in group, got %d", len(got[0].Visits))
	}
	if got[0].Visits[0].PetName != "Rex" || got[0].Visits[1].PetName != "Bella" {
		t.Errorf("group should keep input order, got %q then %q",
			got[0].Visits[0].PetName, got[0].Visits[1].PetName)
	}
	if !got[0].StartTime.Equal(a.StartTime) || !got[0].EndTime.Equal(a.EndTime) {
		t.Errorf("group window %v-%v does not match visits", got[0].StartTime, got[0].EndTime)
	}
}

func TestDetectOverlappingWindowsNoGroups(t *testing.T) {
	visits := []domain.Visit{
		testVisit("Rex", "Dana", 9, 0, 60, 30),
		testVisit("Bella", "Sam", 11, 30, 60, 30),
		testVisit("Milo", "Pat", 14, 0, 60, 30),
	}

	if got := DetectOverlappingWindows(visits); len(got) != 0 {
		t.Errorf("expected no overlap groups, got %d", len(got))
	}
}

func TestDetectOverlappingWindowsDeterministicOrder(t *testing.T) {
	visits := []domain.Visit{
		testVisit("Luna", "Kim", 14, 0, 45, 45),
		testVisit("Ziggy", "Lee", 14, 0, 45, 45),
		testVisit("Rex", "Dana", 9, 0, 60, 30),
		testVisit("Bella", "Sam", 9, 0, 60, 30),
	}

	got := DetectOverlappingWindows(visits)
	if len(got) != 2 {
		t.Fatalf("expected 2 overlap groups, got %d", len(got))
	}
	if !got[0].StartTime.Before(got[1].StartTime) {
		t.Errorf("groups not sorted by start time: %v then %v", got[0].StartTime, got[1].StartTime)
	}
}
