package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"trip-planner-service/internal/domain"
)

// SQLite-backed implementation of the VenueRepository port. Opening hours and
// tags are stored as JSON columns; everything else is flat.
type SqliteVenueRepository struct{ DB *sql.DB }

func NewSqliteVenueRepository(db *sql.DB) *SqliteVenueRepository {
	return &SqliteVenueRepository{DB: db}
}

// Return all venues stored in the database, ordered by id for determinism.
func (s *SqliteVenueRepository) ListVenues(ctx context.Context) ([]*domain.Venue, error) {
	if s.DB == nil {
		return nil, errors.New("sqlite venue repository: DB is nil")
	}

	query := `
	SELECT
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
	FROM venues
	ORDER BY venue_id;
	`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list venues: query venues table: %w", err)
	}
	defer rows.Close()

	venues := make([]*domain.Venue, 0, 64)
	for rows.Next() {
		var (
			v         domain.Venue
			tagsJSON  string
			hoursJSON string
		)
		err := rows.Scan(
			&v.ID,
			&v.Name,
			&v.Position.Lat,
			&v.Position.Lng,
			&v.VisitDuration,
			(*string)(&v.Category),
			&v.Popularity,
			&tagsJSON,
			&hoursJSON,
			&v.Address,
			&v.WebsiteURL,
		)
		if err != nil {
			return nil, fmt.Errorf("list venues: scan row: %w", err)
		}

		if tagsJSON != "" {
			if err := json.Unmarshal([]byte(tagsJSON), &v.Tags); err != nil {
				return nil, fmt.Errorf("list venues: venue %q: parse tags: %w", v.ID, err)
			}
		}
		if hoursJSON != "" {
			if err := json.Unmarshal([]byte(hoursJSON), &v.Hours); err != nil {
				return nil, fmt.Errorf("list venues: venue %q: parse opening hours: %w", v.ID, err)
			}
		}

		venues = append(venues, &v)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list venues: row iteration: %w", err)
	}

	return venues, nil
}
