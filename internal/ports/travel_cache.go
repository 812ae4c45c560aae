package ports

import "context"

// TravelCache is an optional cross-request store of travel estimates, keyed
// by the canonical unordered coordinate-pair key. Travel is a pure function
// of coordinates, so stale entries are acceptable and the cache is read-only
// from the sequencer's point of view.
type TravelCache interface {
	// Fetch cached estimates for the given pair keys; absent keys are omitted.
	GetMany(ctx context.Context, keys []string) (map[string]TravelEstimate, error)
	// Store estimates by pair key.
	PutMany(ctx context.Context, entries map[string]TravelEstimate) error
}
