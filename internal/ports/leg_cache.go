package ports

import (
	"context"

	"petcare-route-service/internal/domain"
)

// Port: cache for directions legs keyed by coordinate pair.
// A nil result with a nil error means a cache miss. Implementations are
// expected to round coordinates consistently so lookups and writes agree.
type LegCache interface {
	Get(ctx context.Context, from, to domain.Coordinate) (*Leg, error)
	Put(ctx context.Context, from, to domain.Coordinate, leg Leg) error
}
