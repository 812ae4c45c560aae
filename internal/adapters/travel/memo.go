package travel

import (
	"context"
	"log"
	"sync"

	"trip-planner-service/internal/domain"
	"trip-planner-service/internal/ports"
)

// MemoProvider wraps a TravelProvider with request-scoped memoization keyed by
// the rounded unordered coordinate pair, plus an optional read-through shared
// cache. One MemoProvider is built per planning call; the sequencer asks for
// the same pairs O(n^2) times and must observe identical answers each time.
//
// Safe for concurrent use (the matrix builder fans out row fetches).
type MemoProvider struct {
	inner  ports.TravelProvider
	shared ports.TravelCache // optional cross-request layer, may be nil

	mu   sync.Mutex
	memo map[string]ports.TravelEstimate
}

func NewMemoProvider(inner ports.TravelProvider, shared ports.TravelCache) *MemoProvider {
	return &MemoProvider{
		inner:  inner,
		shared: shared,
		memo:   make(map[string]ports.TravelEstimate),
	}
}

func (m *MemoProvider) Travel(ctx context.Context, from, to domain.Position) (ports.TravelEstimate, error) {
	key := PairKey(from, to)

	m.mu.Lock()
	if est, ok := m.memo[key]; ok {
		m.mu.Unlock()
		return est, nil
	}
	m.mu.Unlock()

	if m.shared != nil {
		hits, err := m.shared.GetMany(ctx, []string{key})
		if err != nil {
			// A broken shared cache degrades to a provider lookup.
			log.Printf("travel cache read failed: %v", err)
		} else if est, ok := hits[key]; ok {
			m.remember(key, est)
			return est, nil
		}
	}

	est, err := m.inner.Travel(ctx, from, to)
	if err != nil {
		return ports.TravelEstimate{}, err
	}
	m.remember(key, est)

	if m.shared != nil {
		if err := m.shared.PutMany(ctx, map[string]ports.TravelEstimate{key: est}); err != nil {
			log.Printf("travel cache write failed: %v", err)
		}
	}

	return est, nil
}

// TravelRow resolves a batched row through the memo, then the shared cache,
// delegating only the leftover misses to the inner provider's batched path
// when it has one.
func (m *MemoProvider) TravelRow(ctx context.Context, from domain.Position, to []domain.Position) ([]ports.TravelEstimate, error) {
	out := make([]ports.TravelEstimate, len(to))
	missIdx := make([]int, 0, len(to))
	missPos := make([]domain.Position, 0, len(to))

	m.mu.Lock()
	for i, dest := range to {
		if est, ok := m.memo[PairKey(from, dest)]; ok {
			out[i] = est
		} else {
			missIdx = append(missIdx, i)
			missPos = append(missPos, dest)
		}
	}
	m.mu.Unlock()

	if len(missIdx) == 0 {
		return out, nil
	}

	if m.shared != nil {
		keys := make([]string, len(missPos))
		for j, dest := range missPos {
			keys[j] = PairKey(from, dest)
		}
		hits, err := m.shared.GetMany(ctx, keys)
		if err != nil {
			log.Printf("travel cache read failed: %v", err)
		} else if len(hits) > 0 {
			stillIdx := missIdx[:0]
			stillPos := missPos[:0]
			for j, i := range missIdx {
				if est, ok := hits[keys[j]]; ok {
					out[i] = est
					m.remember(keys[j], est)
				} else {
					stillIdx = append(stillIdx, i)
					stillPos = append(stillPos, missPos[j])
				}
			}
			missIdx = stillIdx
			missPos = stillPos
		}
	}

	if len(missIdx) == 0 {
		return out, nil
	}

	if mp, ok := m.inner.(ports.TravelMatrixProvider); ok {
		row, err := mp.TravelRow(ctx, from, missPos)
		if err != nil {
			return nil, err
		}
		fresh := make(map[string]ports.TravelEstimate, len(missIdx))
		for j, i := range missIdx {
			out[i] = row[j]
			key := PairKey(from, missPos[j])
			m.remember(key, row[j])
			fresh[key] = row[j]
		}
		if m.shared != nil {
			if err := m.shared.PutMany(ctx, fresh); err != nil {
				log.Printf("travel cache write failed: %v", err)
			}
		}
		return out, nil
	}

	for j, i := range missIdx {
		est, err := m.Travel(ctx, from, missPos[j])
		if err != nil {
			return nil, err
		}
		out[i] = est
	}
	return out, nil
}

func (m *MemoProvider) remember(key string, est ports.TravelEstimate) {
	m.mu.Lock()
	m.memo[key] = est
	m.mu.Unlock()
}
