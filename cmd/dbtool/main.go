package main

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"trip-planner-service/internal/adapters/repositories"
	"trip-planner-service/internal/config"
	"trip-planner-service/internal/platform/db"
)

// dbtool provisions a Postgres instance for deployments that outgrow the
// embedded SQLite store: it creates the venues and travel_cache tables and
// loads the venue seed file.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	databaseURL := os.Getenv("DATABASE_URL")
	if strings.TrimSpace(databaseURL) == "" {
		log.Fatal("DATABASE_URL is required")
	}

	conn, err := db.Open(databaseURL)
	if err != nil {
		log.Fatal(err)
	}
	defer conn.Close()

	seedPath := config.Get("SEED_PATH", "data/seeds/venues.json")
	if err := initAndSeed(conn, seedPath); err != nil {
		log.Fatal(err)
	}
}

func initAndSeed(conn *sql.DB, seedPath string) error {
	log.Println("Initializing database schema...")
	if err := initSchema(conn); err != nil {
		return fmt.Errorf("schema initialization failed: %w", err)
	}
	log.Println("Schema ready.")

	log.Println("Seeding database...")
	if err := seedVenues(conn, seedPath); err != nil {
		return fmt.Errorf("seeding failed: %w", err)
	}
	log.Println("Seeding complete.")

	return nil
}

func initSchema(conn *sql.DB) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS venues (
			venue_id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			lat DOUBLE PRECISION NOT NULL,
			lng DOUBLE PRECISION NOT NULL,
			visit_duration INTEGER NOT NULL,
			category TEXT NOT NULL,
			popularity DOUBLE PRECISION NOT NULL DEFAULT 0,
			tags JSONB NOT NULL DEFAULT '[]',
			opening_hours JSONB NOT NULL DEFAULT 'null',
			address TEXT NOT NULL DEFAULT '',
			website_url TEXT NOT NULL DEFAULT ''
		);`,
		`CREATE TABLE IF NOT EXISTS travel_cache (
			pair_key TEXT PRIMARY KEY,
			distance_meters INTEGER NOT NULL,
			travel_minutes INTEGER NOT NULL
		);`,
	}

	for i, stmt := range statements {
		if _, err := conn.Exec(stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	return nil
}

func seedVenues(conn *sql.DB, seedPath string) error {
	seeds, err := repositories.LoadVenueSeeds(seedPath)
	if err != nil {
		return err
	}

	tx, err := conn.Begin()
	if err != nil {
		return fmt.Errorf("seed venues: begin tx: %w", err)
	}
	defer tx.Rollback()

	query := `
	INSERT INTO venues (
		venue_id, name, lat, lng, visit_duration, category,
		popularity, tags, opening_hours, address, website_url
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	ON CONFLICT (venue_id) DO UPDATE SET
		name = EXCLUDED.name,
		lat = EXCLUDED.lat,
		lng = EXCLUDED.lng,
		visit_duration = EXCLUDED.visit_duration,
		category = EXCLUDED.category,
		popularity = EXCLUDED.popularity,
		tags = EXCLUDED.tags,
		opening_hours = EXCLUDED.opening_hours,
		address = EXCLUDED.address,
		website_url = EXCLUDED.website_url;
	`
	stmt, err := tx.Prepare(query)
	if err != nil {
		return fmt.Errorf("seed venues: prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, v := range seeds {
		tags := v.Tags
		if tags == nil {
			tags = []string{}
		}
		tagsJSON, err := json.Marshal(tags)
		if err != nil {
			return fmt.Errorf("seed venues: venue_id=%q: marshal tags: %w", v.VenueID, err)
		}

		hoursJSON, err := v.HoursJSON()
		if err != nil {
			return fmt.Errorf("seed venues: venue_id=%q: %w", v.VenueID, err)
		}

		_, err = stmt.Exec(
			v.VenueID,
			v.Name,
			v.Lat,
			v.Lng,
			v.VisitDuration,
			v.Category,
			v.Popularity,
			string(tagsJSON),
			hoursJSON,
			v.Address,
			v.WebsiteURL,
		)
		if err != nil {
			return fmt.Errorf("seed venues: insert venue_id=%q: %w", v.VenueID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed venues: commit tx: %w", err)
	}

	return nil
}
