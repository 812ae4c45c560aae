package services

import "time"

// twoOptMoveCap bounds the number of accepted 2-opt moves per day so the
// improvement loop terminates on every input.
const twoOptMoveCap = 256

// improveDay runs bounded first-improvement 2-opt on the day's visit order.
// Edge pairs are scanned in ascending index order and a reversal is accepted
// only when the recomputed schedule stays feasible with a strictly lower
// travel + wait cost, so the result is deterministic. Runs before meal
// insertion; every item is an ordinary visit.
func (p *planner) improveDay(items []seqItem, startIdx int, weekday time.Weekday) []seqItem {
	n := len(items)
	if n < 2 {
		return items
	}

	cur := items
	_, curCost, ok := p.scheduleDay(cur, startIdx, weekday)
	if !ok {
		return items
	}

	moves := 0
	for moves < twoOptMoveCap {
		improved := false

		for i := 0; i < n-1 && !improved; i++ {
			for k := i + 1; k < n; k++ {
				cand := reverseSegment(cur, i, k)

				// Reversal can shift every later arrival, so the whole day
				// is re-validated, windows included.
				_, cost, ok := p.scheduleDay(cand, startIdx, weekday)
				if !ok || cost >= curCost {
					continue
				}

				cur = cand
				curCost = cost
				moves++
				improved = true
				break
			}
		}

		if !improved {
			break
		}
	}

	return cur
}

// reverseSegment returns a copy of items with [i..k] reversed.
func reverseSegment(items []seqItem, i, k int) []seqItem {
	out := make([]seqItem, len(items))
	copy(out, items)
	for l, r := i, k; l < r; l, r = l+1, r-1 {
		out[l], out[r] = out[r], out[l]
	}
	return out
}
