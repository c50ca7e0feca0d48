package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"petcare-route-service/internal/domain"
	"petcare-route-service/internal/ports"
)

// SQLite-backed cache for directions legs. Keys are coordinate pairs
// rounded to 5 decimal places so repeated lookups for the same stops hit
// the cache regardless of float noise upstream.
type SqliteLegCache struct {
	DB *sql.DB
}

func NewSqliteLegCache(db *sql.DB) *SqliteLegCache {
	return &SqliteLegCache{DB: db}
}

// Fetch a cached leg; nil result means a miss.
func (s *SqliteLegCache) Get(ctx context.Context, from, to domain.Coordinate) (*ports.Leg, error) {
	if s.DB == nil {
		return nil, errors.New("leg cache: db is nil")
	}

	q := `
	SELECT distance_meters, duration_seconds
	FROM leg_cache
	WHERE origin = ? AND destination = ?;
	`

	var meters, seconds float64
	err := s.DB.QueryRowContext(ctx, q, coordKey(from), coordKey(to)).Scan(&meters, &seconds)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get leg cache: query leg_cache table: %w", err)
	}

	return &ports.Leg{DistanceMeters: meters, DurationSeconds: seconds}, nil
}

// Store one leg, replacing any previous entry for the pair.
func (s *SqliteLegCache) Put(ctx context.Context, from, to domain.Coordinate, leg ports.Leg) error {
	if s.DB == nil {
		return errors.New("leg cache: db is nil")
	}

	q := `
	INSERT OR REPLACE INTO leg_cache (origin, destination, distance_meters, duration_seconds)
	VALUES (?, ?, ?, ?);
	`

	if _, err := s.DB.ExecContext(ctx, q, coordKey(from), coordKey(to), leg.DistanceMeters, leg.DurationSeconds); err != nil {
		return fmt.Errorf("insert leg cache: %w", err)
	}

	return nil
}
