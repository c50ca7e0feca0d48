package domain

import (
	"time"

	"github.com/google/uuid"
)

type ServiceType string

const (
	ServiceWalk      ServiceType = "walk"
	ServiceDropIn    ServiceType = "drop_in"
	ServiceOvernight ServiceType = "overnight"
	ServiceGrooming  ServiceType = "grooming"
	ServiceTransport ServiceType = "transport"
)

// Represents a single scheduled pet-care appointment.
// A Visit carries a hard time window, a service duration and a resolved
// geocoordinate; geocoding happens upstream, never inside the optimizer.
// The optimizer treats Visits as read-only value objects for the duration
// of one optimization pass; updates are represented by replacement.
type Visit struct {
	ID              uuid.UUID
	ClientName      string
	PetName         string
	Address         string
	Coordinate      Coordinate
	StartTime       time.Time
	EndTime         time.Time
	DurationMinutes int
	ServiceType     ServiceType
	Notes           string
	Completed       bool
}

// Duration returns the service duration of the visit.
func (v Visit) Duration() time.Duration {
	return time.Duration(v.DurationMinutes) * time.Minute
}

// Window returns the length of the visit's time window. A window shorter
// than the service duration is allowed data ("tight window") and must be
// tolerated by callers.
func (v Visit) Window() time.Duration {
	return v.EndTime.Sub(v.StartTime)
}

// IsFlexible reports whether the visit could start at more than one offset,
// i.e. its time window is strictly longer than its service duration.
func (v Visit) IsFlexible() bool {
	return v.Window() > v.Duration()
}
