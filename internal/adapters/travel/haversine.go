package travel

import (
	"context"
	"math"

	"trip-planner-service/internal/domain"
	"trip-planner-service/internal/ports"
)

const earthRadiusKm = 6371.0

// Average city speeds per transfer mode.
const (
	WalkingSpeedKmh = 4.5
	DrivingSpeedKmh = 50.0
)

// HaversineProvider estimates travel by great-circle distance at a constant
// average speed. It is the default oracle and the fallback when a routing
// lookup fails; it never returns an error.
type HaversineProvider struct {
	speedKmh float64
}

// NewHaversineProvider builds a provider for the given transfer mode.
// Unknown modes default to driving.
func NewHaversineProvider(mode string) *HaversineProvider {
	speed := DrivingSpeedKmh
	if mode == "walking" {
		speed = WalkingSpeedKmh
	}
	return &HaversineProvider{speedKmh: speed}
}

// DistanceMeters returns the great-circle distance between two positions.
func (h *HaversineProvider) DistanceMeters(from, to domain.Position) int {
	lat1 := radians(from.Lat)
	lat2 := radians(to.Lat)
	dLat := radians(to.Lat - from.Lat)
	dLng := radians(to.Lng - from.Lng)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Asin(math.Sqrt(a))

	return int(math.Round(earthRadiusKm * c * 1000))
}

func (h *HaversineProvider) estimate(from, to domain.Position) ports.TravelEstimate {
	meters := h.DistanceMeters(from, to)
	if meters == 0 {
		return ports.TravelEstimate{}
	}

	minutes := int(math.Round(float64(meters) / 1000 * 60 / h.speedKmh))
	if minutes < 1 {
		minutes = 1
	}
	return ports.TravelEstimate{DistanceMeters: meters, TravelMinutes: minutes}
}

func (h *HaversineProvider) Travel(ctx context.Context, from, to domain.Position) (ports.TravelEstimate, error) {
	return h.estimate(from, to), nil
}

// TravelRow satisfies the batched lookup extension so the matrix builder does
// not special-case the local estimator.
func (h *HaversineProvider) TravelRow(ctx context.Context, from domain.Position, to []domain.Position) ([]ports.TravelEstimate, error) {
	out := make([]ports.TravelEstimate, len(to))
	for i, dest := range to {
		out[i] = h.estimate(from, dest)
	}
	return out, nil
}

func radians(deg float64) float64 { return deg * math.Pi / 180 }
