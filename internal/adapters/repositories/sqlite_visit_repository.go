package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"petcare-route-service/internal/domain"
)

// SQLite-backed implementation of the VisitRepository port.
type SqliteVisitRepository struct{ DB *sql.DB }

func NewSqliteVisitRepository(db *sql.DB) *SqliteVisitRepository {
	return &SqliteVisitRepository{DB: db}
}

// Return all visits stored in the database, ordered by window start.
func (s *SqliteVisitRepository) ListVisits(ctx context.Context) ([]domain.Visit, error) {
	if s.DB == nil {
		return nil, errors.New("sqlite visit repository: DB is nil")
	}

	query := `
	SELECT
		id,
		client_name,
		pet_name,
		address,
		lat,
		lon,
		start_time,
		end_time,
		duration_minutes,
		service_type,
		notes,
		completed
	FROM visits
	ORDER BY start_time, id;
	`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list visits: query visits table: %w", err)
	}
	defer rows.Close()

	visits := make([]domain.Visit, 0, 32)
	for rows.Next() {
		var (
			id, start, end, serviceType string
			v                           domain.Visit
			completed                   int
		)
		err := rows.Scan(
			&id, &v.ClientName, &v.PetName, &v.Address,
			&v.Coordinate.Lat, &v.Coordinate.Lon,
			&start, &end, &v.DurationMinutes, &serviceType, &v.Notes, &completed,
		)
		if err != nil {
			return nil, fmt.Errorf("list visits: scan row: %w", err)
		}

		v.ID, err = uuid.Parse(id)
		if err != nil {
			return nil, fmt.Errorf("list visits: parse id %q: %w", id, err)
		}
		v.StartTime, err = time.Parse(time.RFC3339, start)
		if err != nil {
			return nil, fmt.Errorf("list visits: parse start_time %q: %w", start, err)
		}
		v.EndTime, err = time.Parse(time.RFC3339, end)
		if err != nil {
			return nil, fmt.Errorf("list visits: parse end_time %q: %w", end, err)
		}
		v.ServiceType = domain.ServiceType(serviceType)
		v.Completed = completed != 0

		visits = append(visits, v)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list visits: row iteration: %w", err)
	}

	return visits, nil
}

// Store visits, replacing any existing rows with the same ID.
func (s *SqliteVisitRepository) SaveVisits(ctx context.Context, visits []domain.Visit) error {
	if s.DB == nil {
		return errors.New("sqlite visit repository: DB is nil")
	}

	if len(visits) == 0 {
		return nil
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("save visits: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
	INSERT OR REPLACE INTO visits (
		id, client_name, pet_name, address, lat, lon,
		start_time, end_time, duration_minutes, service_type, notes, completed
	)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("save visits: prepare: %w", err)
	}
	defer stmt.Close()

	for _, v := range visits {
		completed := 0
		if v.Completed {
			completed = 1
		}

		_, err := stmt.ExecContext(ctx,
			v.ID.String(), v.ClientName, v.PetName, v.Address,
			v.Coordinate.Lat, v.Coordinate.Lon,
			v.StartTime.Format(time.RFC3339), v.EndTime.Format(time.RFC3339),
			v.DurationMinutes, string(v.ServiceType), v.Notes, completed,
		)
		if err != nil {
			return fmt.Errorf("save visits: insert id=%s: %w", v.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("save visits: commit: %w", err)
	}

	return nil
}
