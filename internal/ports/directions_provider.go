package ports

import (
	"context"
	"fmt"

	"petcare-route-service/internal/domain"
)

// Driving distance and travel duration for one leg between two coordinates.
type Leg struct {
	DistanceMeters  float64
	DurationSeconds float64
}

// RouteError is returned when the directions provider answers but cannot
// produce a route between the two points. Callers are expected to fall
// back to a geographic estimate rather than abort.
type RouteError struct {
	From   domain.Coordinate
	To     domain.Coordinate
	Reason string
}

func (e *RouteError) Error() string {
	return fmt.Sprintf("route calculation failed: %s", e.Reason)
}

// Contract for retrieving live driving distance and duration between
// two coordinates.
type DirectionsProvider interface {
	// Return the driving leg from one coordinate to another.
	Route(ctx context.Context, from, to domain.Coordinate) (Leg, error)
}
