package travel

import (
	"fmt"

	"trip-planner-service/internal/domain"
)

// PairKey returns the canonical cache key for an unordered coordinate pair.
// Coordinates are rounded to 5 decimal places (~1m) so that nearly identical
// lookups share an entry, and the two endpoints are ordered lexically so that
// a->b and b->a resolve to the same key.
func PairKey(a, b domain.Position) string {
	ka := posKey(a)
	kb := posKey(b)
	if kb < ka {
		ka, kb = kb, ka
	}
	return ka + "|" + kb
}

func posKey(p domain.Position) string {
	return fmt.Sprintf("%.5f,%.5f", p.Lat, p.Lng)
}
