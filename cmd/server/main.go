package main

import (
	"log"
	"net/http"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"

	"petcare-route-service/internal/adapters/cache"
	"petcare-route-service/internal/adapters/directions"
	"petcare-route-service/internal/adapters/llm"
	"petcare-route-service/internal/adapters/repositories"
	"petcare-route-service/internal/api"
	"petcare-route-service/internal/config"
	"petcare-route-service/internal/platform/db"
	"petcare-route-service/internal/ports"
)

// main is the application composition root.
// It wires concrete adapters (SQLite, OSRM, Gemini) behind ports and
// starts the HTTP server.
func main() {
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

	// Leg cache backend, most shared wins: Redis, then Postgres (warmed by
	// cmd/dbtool), then the local SQLite database.
	var legCache ports.LegCache = cache.NewSqliteLegCache(sqliteDB)
	switch {
	case cfg.RedisAddr != "":
		rdb, err := cache.NewRedisClient(cfg.RedisAddr, cfg.RedisUsername, cfg.RedisPassword)
		if err != nil {
			log.Fatal(err)
		}
		defer rdb.Close()
		legCache = cache.NewRedisLegCache(rdb, cfg.LegCacheTTL)
		log.Printf("leg cache backend=redis addr=%s", cfg.RedisAddr)
	case cfg.DatabaseURL != "":
		pg, err := db.OpenPostgres(cfg.DatabaseURL)
		if err != nil {
			log.Fatal(err)
		}
		defer pg.Close()
		legCache = cache.NewSQLLegCache(pg)
		log.Println("leg cache backend=postgres")
	default:
		log.Printf("leg cache backend=sqlite path=%s", cfg.DBPath)
	}

	provider := directions.NewOSRMProvider(cfg.OSRMBaseURL, legCache)

	// Without a credential the model path is disabled entirely and every
	// optimization uses the deterministic time-window ordering.
	var model ports.ModelClient
	if cfg.GeminiAPIKey != "" {
		model = llm.NewGeminiClient(cfg.GeminiAPIKey, cfg.GeminiBaseURL, cfg.GeminiModel)
	} else {
		log.Println("GEMINI_API_KEY not set; model-based optimization disabled")
	}

	repo := repositories.NewSqliteVisitRepository(sqliteDB)
	router := api.NewRouter(repo, model, provider)

	// Timeouts are tuned for optimization requests that wait on external
	// model and directions calls.
	log.Printf("Server listening addr=:%s env=%s", cfg.HTTPPort, cfg.Env)
	srv := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	log.Fatal(srv.ListenAndServe())
}
