package repositories

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"trip-planner-service/internal/domain"
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

	createVenuesQuery := `
	CREATE TABLE IF NOT EXISTS venues (
		venue_id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		lat REAL NOT NULL,
		lng REAL NOT NULL,
		visit_duration INTEGER NOT NULL,
		category TEXT NOT NULL,
		popularity REAL NOT NULL DEFAULT 0,
		tags TEXT NOT NULL DEFAULT '[]',
		opening_hours TEXT NOT NULL DEFAULT '',
		address TEXT NOT NULL DEFAULT '',
		website_url TEXT NOT NULL DEFAULT ''
	);
	`

	createTravelCacheQuery := `
	CREATE TABLE IF NOT EXISTS travel_cache (
        pair_key TEXT PRIMARY KEY,
        distance_meters INTEGER NOT NULL,
        travel_minutes INTEGER NOT NULL
    );
	`

	statements := []string{
		createVenuesQuery,
		createTravelCacheQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}

type WindowSeed struct {
	Weekday *int `json:"weekday"`
	Start   int  `json:"start"`
	End     int  `json:"end"`
}

type VenueSeed struct {
	VenueID       string       `json:"venue_id"`
	Name          string       `json:"name"`
	Lat           float64      `json:"lat"`
	Lng           float64      `json:"lng"`
	VisitDuration int          `json:"visit_duration"`
	Category      string       `json:"category"`
	Popularity    float64      `json:"popularity"`
	Tags          []string     `json:"tags"`
	OpeningHours  []WindowSeed `json:"opening_hours"`
	Address       string       `json:"address"`
	WebsiteURL    string       `json:"website_url"`
}

// LoadVenueSeeds reads and validates a venue seed file. Shared by the SQLite
// seeder and the Postgres dbtool.
func LoadVenueSeeds(jsonPath string) ([]VenueSeed, error) {
	bytes, err := os.ReadFile(jsonPath)
	if err != nil {
		return nil, fmt.Errorf("seed venues: read %q: %w", jsonPath, err)
	}

	var data []VenueSeed
	if err := json.Unmarshal(bytes, &data); err != nil {
		return nil, fmt.Errorf("seed venues: parse json: %w", err)
	}

	for i, item := range data {
		if strings.TrimSpace(item.VenueID) == "" {
			return nil, fmt.Errorf("seed venues: item at index %d: venue_id cannot be empty", i+1)
		}
		if strings.TrimSpace(item.Name) == "" {
			return nil, fmt.Errorf("seed venues: item at index %d: name cannot be empty", i+1)
		}
	}

	return data, nil
}

// HoursJSON expands a seed's opening hours to the persisted per-weekday form.
func (s VenueSeed) HoursJSON() (string, error) {
	specs := make([]domain.WindowSpec, 0, len(s.OpeningHours))
	for _, w := range s.OpeningHours {
		specs = append(specs, domain.WindowSpec{Weekday: w.Weekday, Start: w.Start, End: w.End})
	}
	hours, err := domain.HoursFromSpecs(specs)
	if err != nil {
		return "", err
	}
	data, err := json.Marshal(hours)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Populate the database with venue data from a JSON file.
func SeedFromJSON(db *sql.DB, jsonPath string) error {
	seeds, err := LoadVenueSeeds(jsonPath)
	if err != nil {
		return err
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("seed venues: begin tx: %w", err)
	}
	defer tx.Rollback()

	query := `
	INSERT OR REPLACE INTO venues (
		venue_id,
		name,
		lat,
		lng,
		visit_duration,
		category,
		popularity,
		tags,
		opening_hours,
		address,
		website_url
	)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?);
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
