package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"trip-planner-service/internal/platform/obs"
	"trip-planner-service/internal/ports"
)

// SQLTravelCache is the Postgres variant of the travel cache, used by
// deployments that point the service at a shared database instead of the
// local SQLite file.
type SQLTravelCache struct {
	DB *sql.DB
}

func NewSQLTravelCache(db *sql.DB) *SQLTravelCache {
	return &SQLTravelCache{DB: db}
}

// Fetch cached estimates for many pair keys.
func (s *SQLTravelCache) GetMany(ctx context.Context, keys []string) (_ map[string]ports.TravelEstimate, err error) {
	defer obs.Time(ctx, "travel.cache.GetMany")(&err)

	if s.DB == nil {
		return nil, errors.New("travel cache: db is nil")
	}
	if len(keys) == 0 {
		return map[string]ports.TravelEstimate{}, nil
	}

	seen := map[string]struct{}{}
	uniq := make([]string, 0, len(keys))
	for _, k := range keys {
		k = strings.TrimSpace(k)
		if k == "" {
			continue
		}
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		uniq = append(uniq, k)
	}
	if len(uniq) == 0 {
		return map[string]ports.TravelEstimate{}, nil
	}

	q := `
	SELECT pair_key, distance_meters, travel_minutes
    FROM travel_cache
    WHERE pair_key = ANY($1::text[]);
	`

	rows, err := s.DB.QueryContext(ctx, q, uniq)
	if err != nil {
		return nil, fmt.Errorf("get travel cache: query travel_cache table: %w", err)
	}
	defer rows.Close()

	out := make(map[string]ports.TravelEstimate, len(uniq))
	for rows.Next() {
		var key string
		var meters, minutes int
		if err := rows.Scan(&key, &meters, &minutes); err != nil {
			return nil, fmt.Errorf("get travel cache: scan rows: %w", err)
		}
		out[key] = ports.TravelEstimate{
			DistanceMeters: meters,
			TravelMinutes:  minutes,
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("get travel cache: row iteration: %w", err)
	}

	return out, nil
}

// Store many estimates by pair key.
func (s *SQLTravelCache) PutMany(ctx context.Context, entries map[string]ports.TravelEstimate) error {
	if s.DB == nil {
		return errors.New("travel cache: db is nil")
	}
	if len(entries) == 0 {
		return nil
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("insert travel cache: db begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
	INSERT INTO travel_cache (pair_key, distance_meters, travel_minutes)
    VALUES ($1, $2, $3)
	ON CONFLICT (pair_key) DO UPDATE
	SET distance_meters = EXCLUDED.distance_meters,
		travel_minutes = EXCLUDED.travel_minutes;
	`)
	if err != nil {
		return fmt.Errorf("insert travel cache: db prepare: %w", err)
	}
	defer stmt.Close()

	for key, e := range entries {
		if strings.TrimSpace(key) == "" {
			return fmt.Errorf("insert travel cache: empty pair key")
		}
		if _, err := stmt.ExecContext(ctx, key, e.DistanceMeters, e.TravelMinutes); err != nil {
			return fmt.Errorf("insert travel cache key=%q: %w", key, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("insert travel cache commit: %w", err)
	}

	return nil
}
