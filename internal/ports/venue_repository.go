package ports

import (
	"context"

	"trip-planner-service/internal/domain"
)

// Port: a boundary for retrieving the stored venue catalog.
type VenueRepository interface {
	// Retrieve all venues available for planning.
	ListVenues(ctx context.Context) ([]*domain.Venue, error)
}
