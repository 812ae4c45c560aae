package travel

import (
	"context"
	"fmt"
	"sync"

	"trip-planner-service/internal/domain"
	"trip-planner-service/internal/ports"
)

type MockLeg struct {
	From, To domain.Position
	Meters   int
	Minutes  int
}

// MockTravelProvider serves fixed estimates for tests. Legs are directional;
// register both directions when symmetry is wanted. Lookups for unknown legs
// fail so tests notice missing fixtures.
type MockTravelProvider struct {
	m map[string]ports.TravelEstimate

	mu    sync.Mutex
	calls int
}

func NewMockTravelProvider(legs []MockLeg) *MockTravelProvider {
	m := make(map[string]ports.TravelEstimate, len(legs))
	for _, l := range legs {
		m[posKey(l.From)+"|"+posKey(l.To)] = ports.TravelEstimate{DistanceMeters: l.Meters, TravelMinutes: l.Minutes}
	}
	return &MockTravelProvider{m: m}
}

func (p *MockTravelProvider) Travel(ctx context.Context, from, to domain.Position) (ports.TravelEstimate, error) {
	p.mu.Lock()
	p.calls++
	p.mu.Unlock()

	if from == to {
		return ports.TravelEstimate{}, nil
	}
	r, ok := p.m[posKey(from)+"|"+posKey(to)]
	if !ok {
		return ports.TravelEstimate{}, fmt.Errorf("missing leg %v -> %v", from, to)
	}
	return r, nil
}

// Calls reports how many point lookups the provider has served.
func (p *MockTravelProvider) Calls() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.calls
}
