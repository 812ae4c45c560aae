package ports

import (
	"context"

	"trip-planner-service/internal/domain"
)

// Optional extension of TravelProvider that supports batched lookups.
type TravelMatrixProvider interface {
	TravelProvider
	// Return estimates from one origin to many destinations, index-aligned
	// with the destinations slice.
	TravelRow(ctx context.Context, from domain.Position, to []domain.Position) ([]TravelEstimate, error)
}
