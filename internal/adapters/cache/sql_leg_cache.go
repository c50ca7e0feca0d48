package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"petcare-route-service/internal/domain"
	"petcare-route-service/internal/ports"
)

// Postgres-backed variant of the leg cache, used when several instances
// share one cache. Same keying scheme as the SQLite cache.
type SQLLegCache struct {
	DB *sql.DB
}

func NewSQLLegCache(db *sql.DB) *SQLLegCache {
	return &SQLLegCache{DB: db}
}

func (s *SQLLegCache) Get(ctx context.Context, from, to domain.Coordinate) (*ports.Leg, error) {
	if s.DB == nil {
		return nil, errors.New("leg cache: db is nil")
	}

	q := `
	SELECT distance_meters, duration_seconds
	FROM leg_cache
	WHERE origin = $1 AND destination = $2;
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

func (s *SQLLegCache) Put(ctx context.Context, from, to domain.Coordinate, leg ports.Leg) error {
	if s.DB == nil {
		return errors.New("leg cache: db is nil")
	}

	q := `
	INSERT INTO leg_cache (origin, destination, distance_meters, duration_seconds)
	VALUES ($1, $2, $3, $4)
	ON CONFLICT (origin, destination) DO UPDATE
	SET distance_meters = EXCLUDED.distance_meters,
		duration_seconds = EXCLUDED.duration_seconds;
	`

	if _, err := s.DB.ExecContext(ctx, q, coordKey(from), coordKey(to), leg.DistanceMeters, leg.DurationSeconds); err != nil {
		return fmt.Errorf("insert leg cache: %w", err)
	}

	return nil
}
