package repositories

import (
	"database/sql"
	"errors"
	"fmt"
)

// Initialize the SQLite database schema.
func InitSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createVisitsQuery := `
	CREATE TABLE IF NOT EXISTS visits (
		id TEXT PRIMARY KEY,
		client_name TEXT NOT NULL,
		pet_name TEXT NOT NULL,
		address TEXT NOT NULL,
		lat REAL NOT NULL,
		lon REAL NOT NULL,
		start_time TEXT NOT NULL,
		end_time TEXT NOT NULL,
		duration_minutes INTEGER NOT NULL,
		service_type TEXT NOT NULL,
		notes TEXT NOT NULL DEFAULT '',
		completed INTEGER NOT NULL DEFAULT 0
	);
	`

	createLegCacheQuery := `
	CREATE TABLE IF NOT EXISTS leg_cache (
		origin TEXT NOT NULL,
		destination TEXT NOT NULL,
		distance_meters REAL NOT NULL,
		duration_seconds REAL NOT NULL,
		PRIMARY KEY (origin, destination)
	);
	`

	createIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_visits_start_time
	ON visits(start_time);
	`

	statements := []string{
		createVisitsQuery,
		createLegCacheQuery,
		createIndexQuery,
	}

	for _, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("init schema: exec statement: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit: %w", err)
	}

	return nil
}
