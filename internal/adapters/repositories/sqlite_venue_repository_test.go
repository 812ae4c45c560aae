package repositories

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"testing"
	"time"

	_ "modernc.org/sqlite"

	"trip-planner-service/internal/domain"
)

const seedFixture = `[
  {
    "venue_id": "louvre",
    "name": "Louvre Museum",
    "lat": 48.8606,
    "lng": 2.3376,
    "visit_duration": 180,
    "category": "sight",
    "popularity": 9.8,
    "tags": ["museum", "art"],
    "opening_hours": [{"start": 540, "end": 1080}],
    "address": "Rue de Rivoli",
    "website_url": "https://www.louvre.fr"
  },
  {
    "venue_id": "bistro",
    "name": "Bistro",
    "lat": 48.8542,
    "lng": 2.3325,
    "visit_duration": 60,
    "category": "meal",
    "popularity": 8.0,
    "tags": [],
    "opening_hours": [{"weekday": 1, "start": 690, "end": 900}],
    "address": "",
    "website_url": ""
  },
  {
    "venue_id": "montmartre",
    "name": "Montmartre",
    "lat": 48.8867,
    "lng": 2.3431,
    "visit_duration": 120,
    "category": "sight",
    "popularity": 8.8,
    "opening_hours": []
  }
]`

func seededDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if err := InitSchema(db); err != nil {
		t.Fatalf("init schema: %v", err)
	}

	seedPath := filepath.Join(t.TempDir(), "venues.json")
	if err := os.WriteFile(seedPath, []byte(seedFixture), 0o600); err != nil {
		t.Fatalf("write seed: %v", err)
	}
	if err := SeedFromJSON(db, seedPath); err != nil {
		t.Fatalf("seed: %v", err)
	}

	return db
}

func TestListVenuesReturnsSeededCatalog(t *testing.T) {
	repo := NewSqliteVenueRepository(seededDB(t))

	venues, err := repo.ListVenues(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(venues) != 3 {
		t.Fatalf("expected 3 venues, got %d", len(venues))
	}

	// Ordered by id.
	if venues[0].ID != "bistro" || venues[1].ID != "louvre" || venues[2].ID != "montmartre" {
		t.Fatalf("order = %s, %s, %s", venues[0].ID, venues[1].ID, venues[2].ID)
	}

	louvre := venues[1]
	if louvre.Name != "Louvre Museum" || louvre.VisitDuration != 180 {
		t.Fatalf("louvre = %+v", louvre)
	}
	if louvre.Category != domain.CategorySight {
		t.Errorf("category = %q", louvre.Category)
	}
	if len(louvre.Tags) != 2 || louvre.Tags[0] != "museum" {
		t.Errorf("tags = %v", louvre.Tags)
	}
	// A daily window expands to every weekday.
	for d := time.Sunday; d <= time.Saturday; d++ {
		if len(louvre.Hours[d]) != 1 || louvre.Hours[d][0].Start != 540 {
			t.Fatalf("louvre hours on %v = %+v", d, louvre.Hours[d])
		}
	}

	bistro := venues[0]
	if len(bistro.Hours[time.Monday]) != 1 {
		t.Fatalf("bistro Monday hours = %+v", bistro.Hours[time.Monday])
	}
	if len(bistro.Hours[time.Tuesday]) != 0 {
		t.Fatalf("bistro Tuesday hours = %+v, want closed", bistro.Hours[time.Tuesday])
	}

	if !venues[2].Hours.AlwaysOpen() {
		t.Error("montmartre with no windows should be always open")
	}
}

func TestSeedFromJSONUpserts(t *testing.T) {
	db := seededDB(t)

	update := `[{
		"venue_id": "louvre",
		"name": "Louvre (renovated)",
		"lat": 48.8606,
		"lng": 2.3376,
		"visit_duration": 200,
		"category": "sight",
		"popularity": 9.9,
		"opening_hours": []
	}]`
	seedPath := filepath.Join(t.TempDir(), "update.json")
	if err := os.WriteFile(seedPath, []byte(update), 0o600); err != nil {
		t.Fatalf("write seed: %v", err)
	}
	if err := SeedFromJSON(db, seedPath); err != nil {
		t.Fatalf("reseed: %v", err)
	}

	venues, err := NewSqliteVenueRepository(db).ListVenues(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(venues) != 3 {
		t.Fatalf("expected 3 venues after upsert, got %d", len(venues))
	}
	if venues[1].Name != "Louvre (renovated)" || venues[1].VisitDuration != 200 {
		t.Fatalf("louvre after upsert = %+v", venues[1])
	}
}

func TestLoadVenueSeedsValidates(t *testing.T) {
	dir := t.TempDir()

	missing := filepath.Join(dir, "missing-id.json")
	if err := os.WriteFile(missing, []byte(`[{"venue_id": "", "name": "x"}]`), 0o600); err != nil {
		t.Fatalf("write seed: %v", err)
	}
	if _, err := LoadVenueSeeds(missing); err == nil {
		t.Fatal("expected error for empty venue_id")
	}

	noName := filepath.Join(dir, "no-name.json")
	if err := os.WriteFile(noName, []byte(`[{"venue_id": "x", "name": " "}]`), 0o600); err != nil {
		t.Fatalf("write seed: %v", err)
	}
	if _, err := LoadVenueSeeds(noName); err == nil {
		t.Fatal("expected error for blank name")
	}

	if _, err := LoadVenueSeeds(filepath.Join(dir, "nope.json")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestVenueSeedHoursJSONRejectsBadWeekday(t *testing.T) {
	bad := 9
	seed := VenueSeed{
		VenueID:      "x",
		Name:         "X",
		OpeningHours: []WindowSeed{{Weekday: &bad, Start: 0, End: 60}},
	}
	if _, err := seed.HoursJSON(); err == nil {
		t.Fatal("expected error for weekday 9")
	}
}
