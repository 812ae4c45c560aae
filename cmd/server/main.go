package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	_ "modernc.org/sqlite"

	"trip-planner-service/internal/adapters/cache"
	"trip-planner-service/internal/adapters/repositories"
	"trip-planner-service/internal/adapters/travel"
	"trip-planner-service/internal/api"
	"trip-planner-service/internal/config"
	"trip-planner-service/internal/platform/db"
	"trip-planner-service/internal/ports"
)

// main is the application composition root.
// It wires concrete adapters (SQLite, Redis, ORS/haversine) behind ports and
// starts the HTTP server.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	dbPath := config.Get("DB_PATH", "data/app.db")
	seedPath := config.Get("SEED_PATH", "data/seeds/venues.json")
	port := config.Get("PORT", "8080")
	mode := config.Get("TRAVEL_MODE", "driving")

	localDB, err := openDB(dbPath)
	if err != nil {
		log.Fatal(err)
	}
	defer localDB.Close()

	// Initialize schema and seed the demo catalog on startup for local runs.
	if err := initAndSeed(localDB, seedPath); err != nil {
		log.Fatal(err)
	}

	provider, err := buildProvider(mode)
	if err != nil {
		log.Fatal(err)
	}

	travelCache, err := buildTravelCache(localDB)
	if err != nil {
		log.Fatal(err)
	}

	repo := repositories.NewSqliteVenueRepository(localDB)
	router := api.NewRouter(repo, provider, travelCache)

	// Timeouts are tuned for cold-cache planning (external routing latency).
	log.Printf("Server listening addr=:%s", port)
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	log.Fatal(srv.ListenAndServe())
}

// buildProvider selects the travel oracle: ORS when a key is configured,
// plain haversine otherwise. The ORS provider falls back to haversine on
// lookup failures, so planning never aborts on oracle trouble either way.
func buildProvider(mode string) (ports.TravelProvider, error) {
	fallback := travel.NewHaversineProvider(mode)

	orsKey := strings.TrimSpace(os.Getenv("ORS_API_KEY"))
	if orsKey == "" {
		log.Println("ORS_API_KEY not set; using haversine travel estimates")
		return fallback, nil
	}

	profile := "driving-car"
	if mode == "walking" {
		profile = "foot-walking"
	}
	return travel.NewORSTravelProvider(orsKey, profile, fallback)
}

// buildTravelCache picks the shared travel cache: Redis when configured,
// then a shared Postgres table, then the local SQLite table.
func buildTravelCache(localDB *sql.DB) (ports.TravelCache, error) {
	if addr := strings.TrimSpace(os.Getenv("REDIS_ADDR")); addr != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: os.Getenv("REDIS_PASSWORD"),
		})

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := client.Ping(ctx).Err(); err != nil {
			return nil, fmt.Errorf("verify redis connection to %q: %w", addr, err)
		}

		return cache.NewRedisTravelCache(client, 7*24*time.Hour), nil
	}

	if databaseURL := strings.TrimSpace(os.Getenv("DATABASE_URL")); databaseURL != "" {
		pg, err := db.Open(databaseURL)
		if err != nil {
			return nil, err
		}
		return cache.NewSQLTravelCache(pg), nil
	}

	return cache.NewSqliteTravelCache(localDB), nil
}

func openDB(dbPath string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("openDB: open sqlite database %q: %w", dbPath, err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("openDB: verify sqlite connection to %q: %w", dbPath, err)
	}

	return db, nil
}

func initAndSeed(db *sql.DB, seedPath string) error {
	if err := repositories.InitSchema(db); err != nil {
		return fmt.Errorf("init and seed: %w", err)
	}

	if _, err := os.Stat(seedPath); os.IsNotExist(err) {
		log.Printf("seed file %q not found; starting with an empty catalog", seedPath)
		return nil
	}

	if err := repositories.SeedFromJSON(db, seedPath); err != nil {
		return fmt.Errorf("init and seed: %w", err)
	}

	return nil
}
