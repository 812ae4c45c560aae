package ports

import (
	"context"

	"trip-planner-service/internal/domain"
)

// Travel distance and duration between two positions.
type TravelEstimate struct {
	DistanceMeters int
	TravelMinutes  int
}

// Contract for retrieving travel distance and duration between two
// geographic positions. Implementations must degrade rather than fail: a
// remote lookup error is absorbed by falling back to an estimate, so callers
// only see an error when no estimate can be produced at all.
type TravelProvider interface {
	// Return travel distance and estimated duration from one position to another.
	Travel(ctx context.Context, from, to domain.Position) (TravelEstimate, error)
}
