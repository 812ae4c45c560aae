package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"trip-planner-service/internal/ports"
)

// SQLite-backed cross-request store of travel estimates. Keys are canonical
// coordinate-pair keys produced by the travel adapter; this cache never
// interprets them.
type SqliteTravelCache struct {
	DB *sql.DB
}

func NewSqliteTravelCache(db *sql.DB) *SqliteTravelCache {
	return &SqliteTravelCache{DB: db}
}

// Fetch cached estimates for many pair keys.
func (s *SqliteTravelCache) GetMany(ctx context.Context, keys []string) (map[string]ports.TravelEstimate, error) {
	if s.DB == nil {
		return nil, errors.New("travel cache: db is nil")
	}
	if len(keys) == 0 {
		return map[string]ports.TravelEstimate{}, nil
	}

	seen := map[string]struct{}{}
	uniq := make([]string, 0, len(keys))
	ph := make([]string, 0, len(keys))
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
		ph = append(ph, "?")
	}
	if len(uniq) == 0 {
		return map[string]ports.TravelEstimate{}, nil
	}

	args := make([]any, 0, len(uniq))
	for _, k := range uniq {
		args = append(args, k)
	}

	// SQLite does not support binding slices directly in an IN (...) clause.
	// Only the placeholder structure is interpolated; all values remain parameterized.
	q := fmt.Sprintf(`
	SELECT
        pair_key,
        distance_meters,
        travel_minutes
    FROM travel_cache
    WHERE pair_key IN (%s);
	`, strings.Join(ph, ","))

	rows, err := s.DB.QueryContext(ctx, q, args...)
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
func (s *SqliteTravelCache) PutMany(ctx context.Context, entries map[string]ports.TravelEstimate) error {
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
	INSERT OR REPLACE INTO travel_cache (
        pair_key,
        distance_meters,
        travel_minutes
    )
    VALUES (?, ?, ?)
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
