package ports

import (
	"context"

	"petcare-route-service/internal/domain"
)

// Port: a boundary for retrieving and storing Visit entities.
// Persistence is the API layer's concern; the optimizer itself never
// touches a repository.
type VisitRepository interface {
	// Retrieve all visits available for routing, ordered by start time.
	ListVisits(ctx context.Context) ([]domain.Visit, error)
	// Store visits, replacing any existing rows with the same ID.
	SaveVisits(ctx context.Context, visits []domain.Visit) error
}
