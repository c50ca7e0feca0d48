package main

import (
	"database/sql"
	"log"
	"os"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	_ "modernc.org/sqlite"

	"petcare-route-service/internal/platform/db"
)

// Copies the local SQLite leg cache into a shared Postgres cache so a new
// deployment starts warm instead of re-fetching every pair from OSRM.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	databaseURL := os.Getenv("DATABASE_URL")
	if strings.TrimSpace(databaseURL) == "" {
		log.Fatal("DATABASE_URL is required")
	}

	dbPath := os.Getenv("DB_PATH")
	if dbPath == "" {
		dbPath = "data/app.db"
	}

	src, err := db.OpenSQLite(dbPath)
	if err != nil {
		log.Fatal(err)
	}
	defer src.Close()

	dst, err := db.OpenPostgres(databaseURL)
	if err != nil {
		log.Fatal(err)
	}
	defer dst.Close()

	if err := initPostgresSchema(dst); err != nil {
		log.Fatalf("schema initialization failed: %v", err)
	}

	n, err := copyLegCache(src, dst)
	if err != nil {
		log.Fatalf("leg cache copy failed: %v", err)
	}
	log.Printf("leg cache copy complete: %d rows", n)
}

func initPostgresSchema(dst *sql.DB) error {
	_, err := dst.Exec(`
	CREATE TABLE IF NOT EXISTS leg_cache (
		origin TEXT NOT NULL,
		destination TEXT NOT NULL,
		distance_meters DOUBLE PRECISION NOT NULL,
		duration_seconds DOUBLE PRECISION NOT NULL,
		PRIMARY KEY (origin, destination)
	);
	`)
	return err
}

func copyLegCache(src, dst *sql.DB) (int, error) {
	rows, err := src.Query(`
	SELECT origin, destination, distance_meters, duration_seconds
	FROM leg_cache;
	`)
	if err != nil {
		return 0, err
	}
	defer rows.Close()

	stmt, err := dst.Prepare(`
	INSERT INTO leg_cache (origin, destination, distance_meters, duration_seconds)
	VALUES ($1, $2, $3, $4)
	ON CONFLICT (origin, destination) DO UPDATE
	SET distance_meters = EXCLUDED.distance_meters,
		duration_seconds = EXCLUDED.duration_seconds;
	`)
	if err != nil {
		return 0, err
	}
	defer stmt.Close()

	n := 0
	for rows.Next() {
		var origin, destination string
		var meters, seconds float64
		if err := rows.Scan(&origin, &destination, &meters, &seconds); err != nil {
			return n, err
		}
		if _, err := stmt.Exec(origin, destination, meters, seconds); err != nil {
			return n, err
		}
		n++
	}

	return n, rows.Err()
}
