package services

import (
	"context"
	"fmt"
	"sync"

	"trip-planner-service/internal/domain"
	"trip-planner-service/internal/ports"
)

// TravelMatrix holds the pairwise travel estimates for the positions of one
// planning call. The sequencer reads it O(n^2) times; it is built once,
// up front, and never mutated afterwards.
type TravelMatrix struct {
	est [][]ports.TravelEstimate
}

func (m *TravelMatrix) At(i, j int) ports.TravelEstimate {
	if i == j {
		return ports.TravelEstimate{}
	}
	return m.est[i][j]
}

func (m *TravelMatrix) Size() int { return len(m.est) }

type rowResult struct {
	row       int
	estimates []ports.TravelEstimate
	err       error
}

// BuildTravelMatrix prefetches the full pairwise matrix. Rows are fetched
// concurrently with a bounded fan-out since the provider boundary is the only
// place where I/O happens; the sequencer itself stays strictly sequential.
func BuildTravelMatrix(ctx context.Context, provider ports.TravelProvider, positions []domain.Position) (*TravelMatrix, error) {
	n := len(positions)
	est := make([][]ports.TravelEstimate, n)
	if n == 0 {
		return &TravelMatrix{est: est}, nil
	}

	mp, hasMatrix := provider.(ports.TravelMatrixProvider)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sem := make(chan struct{}, 5)
	results := make(chan rowResult, n)
	var wg sync.WaitGroup

	for i := range positions {
		targets := make([]domain.Position, 0, n-1)
		for j, p := range positions {
			if j != i {
				targets = append(targets, p)
			}
		}

		wg.Add(1)
		go func(i int, targets []domain.Position) {
			sem <- struct{}{}
			defer wg.Done()
			defer func() { <-sem }()

			var (
				ests []ports.TravelEstimate
				err  error
			)
			if hasMatrix {
				ests, err = mp.TravelRow(ctx, positions[i], targets)
			} else {
				ests = make([]ports.TravelEstimate, 0, len(targets))
				for _, t := range targets {
					var e ports.TravelEstimate
					e, err = provider.Travel(ctx, positions[i], t)
					if err != nil {
						break
					}
					ests = append(ests, e)
				}
			}
			if err != nil {
				results <- rowResult{row: i, err: fmt.Errorf("travel row from position %d: %w", i, err)}
				cancel()
				return
			}
			if len(ests) != len(targets) {
				results <- rowResult{row: i, err: fmt.Errorf("travel row from position %d: got %d estimates for %d targets", i, len(ests), len(targets))}
				cancel()
				return
			}

			// Re-insert the zero diagonal so the row is index-aligned with positions.
			row := make([]ports.TravelEstimate, n)
			k := 0
			for j := 0; j < n; j++ {
				if j == i {
					continue
				}
				row[j] = ests[k]
				k++
			}
			results <- rowResult{row: i, estimates: row}
		}(i, targets)
	}

	wg.Wait()
	close(results)

	var firstErr error
	for r := range results {
		if r.err != nil {
			if firstErr == nil {
				firstErr = r.err
			}
			continue
		}
		est[r.row] = r.estimates
	}
	if firstErr != nil {
		return nil, firstErr
	}

	return &TravelMatrix{est: est}, nil
}
