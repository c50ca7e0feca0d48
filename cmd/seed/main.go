package main

import (
	"context"
	"flag"
	"log"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"petcare-route-service/internal/adapters/repositories"
	"petcare-route-service/internal/config"
	"petcare-route-service/internal/domain"
	"petcare-route-service/internal/platform/db"
)

// Seeds the local SQLite database with a plausible day of pet-care visits
// around central Phoenix, for demos and manual testing.
func main() {
	count := flag.Int("count", 8, "number of visits to generate")
	flag.Parse()

	log.Println("seed starting")

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	sqliteDB, err := db.OpenSQLite(cfg.DBPath)
	if err != nil {
		log.Fatal(err)
	}
	defer sqliteDB.Close()

	if err := repositories.InitSchema(sqliteDB); err != nil {
		log.Fatal(err)
	}

	gofakeit.Seed(time.Now().UnixNano())

	repo := repositories.NewSqliteVisitRepository(sqliteDB)
	visits := generateVisits(*count)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := repo.SaveVisits(ctx, visits); err != nil {
		log.Fatalf("seed visits: %v", err)
	}

	log.Printf("seed complete: %d visits", len(visits))
}

func generateVisits(count int) []domain.Visit {
	serviceTypes := []domain.ServiceType{
		domain.ServiceWalk,
		domain.ServiceDropIn,
		domain.ServiceGrooming,
		domain.ServiceTransport,
	}
	durations := []int{20, 30, 45, 60}

	day := time.Now().Truncate(24 * time.Hour).Add(8 * time.Hour) // 8 AM today

	visits := make([]domain.Visit, 0, count)
	for i := 0; i < count; i++ {
		duration := durations[gofakeit.Number(0, len(durations)-1)]
		start := day.Add(time.Duration(i) * 75 * time.Minute)

		// Mix tight and flexible windows.
		window := duration
		if gofakeit.Bool() {
			window = duration + gofakeit.Number(15, 90)
		}

		visits = append(visits, domain.Visit{
			ID:         uuid.New(),
			ClientName: gofakeit.Name(),
			PetName:    gofakeit.PetName(),
			Address:    gofakeit.Street() + ", Phoenix, AZ",
			Coordinate: domain.Coordinate{
				// Scatter within ~10 miles of downtown Phoenix.
				Lat: 33.4484 + gofakeit.Float64Range(-0.15, 0.15),
				Lon: -112.0740 + gofakeit.Float64Range(-0.15, 0.15),
			},
			StartTime:       start,
			EndTime:         start.Add(time.Duration(window) * time.Minute),
			DurationMinutes: duration,
			ServiceType:     serviceTypes[gofakeit.Number(0, len(serviceTypes)-1)],
			Notes:           gofakeit.Sentence(6),
		})
	}

	return visits
}
