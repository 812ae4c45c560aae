package services

import (
	"context"
	"sort"
	"time"

	"trip-planner-service/internal/domain"
)

// seqItem is one entry in a day's working visit order: a venue index into the
// travel matrix, plus the meal slot it was inserted for (nil for ordinary
// visits).
type seqItem struct {
	venue int
	slot  *domain.MealSlot
}

// planner owns the working optimization state for the duration of a single
// planning call. It is discarded once the Itinerary is returned; no mutable
// state survives across requests.
type planner struct {
	venues []*domain.Venue
	matrix *TravelMatrix
	cons   domain.TripConstraints

	// remaining holds venue indices not yet placed, in catalog order. The
	// order is load-bearing: every scan walks it front to back so identical
	// inputs always produce identical itineraries.
	remaining []int
}

// Sequence orders venues into dayCount day plans that respect time windows
// and the daily bounds, minimizing travel plus wait. Venues that fit no day
// are reported in Unplaced, never silently lost. The result is deterministic
// for identical inputs.
//
// originIdx and finalIdx are matrix indices of the fixed start/end positions,
// or -1 when the sequencer should choose its own seed per day.
func Sequence(ctx context.Context, venues []*domain.Venue, matrix *TravelMatrix, originIdx, finalIdx int, cons domain.TripConstraints) (*domain.Itinerary, error) {
	p := &planner{
		venues:    venues,
		matrix:    matrix,
		cons:      cons,
		remaining: make([]int, 0, len(venues)),
	}
	for i := range venues {
		p.remaining = append(p.remaining, i)
	}

	itin := &domain.Itinerary{Days: make([]domain.DayPlan, 0, cons.DayCount)}

	lastIdx := -1 // matrix index of the trip's final visited stop
	for day := 1; day <= cons.DayCount; day++ {
		// Cancellation is honored at phase boundaries only; request state is
		// local, so stopping here corrupts nothing.
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		weekday := cons.WeekdayOf(day)
		plan := domain.DayPlan{Day: day, Weekday: weekday, Stops: []domain.ItineraryStop{}}

		startIdx := originIdx
		if startIdx < 0 {
			startIdx = p.pickSeed()
		}
		if startIdx >= 0 && len(p.remaining) > 0 {
			items := p.constructDay(startIdx, weekday)
			items = p.improveDay(items, startIdx, weekday)
			items = p.insertMeals(items, startIdx, weekday)

			stops, _, ok := p.scheduleDay(items, startIdx, weekday)
			if ok {
				plan.Stops = stops
				if len(items) > 0 {
					lastIdx = items[len(items)-1].venue
				}
			} else {
				// Every mutation path revalidates, so this should not happen;
				// if it does, the day's venues go back to the pool rather than
				// vanishing from both the itinerary and the unplaced list.
				for _, it := range items {
					p.remaining = append(p.remaining, it.venue)
				}
				sort.Ints(p.remaining)
			}
		}

		itin.Days = append(itin.Days, plan)
	}

	for _, day := range itin.Days {
		for _, s := range day.Stops {
			itin.TravelTotal += s.TravelFromPrev
			itin.WaitTotal += s.Wait
		}
	}
	if finalIdx >= 0 && lastIdx >= 0 {
		itin.TravelTotal += p.matrix.At(lastIdx, finalIdx).TravelMinutes
	}

	unplaced := make([]string, 0, len(p.remaining))
	for _, i := range p.remaining {
		unplaced = append(unplaced, p.venues[i].ID)
	}
	sort.Strings(unplaced)
	itin.Unplaced = unplaced

	return itin, nil
}

// reserveMeals reports whether meal-category venues are held back for meal
// slots. Without slots they compete in the ordinary construction loop.
func (p *planner) reserveMeals() bool { return len(p.cons.MealSlots) > 0 }

// pickSeed selects the day's starting venue when no origin is fixed: the
// candidate minimizing total travel to every other remaining venue, an
// approximate geographic centroid pick. Ties break on lexical id. When meal
// reservation filters out every candidate (only meal venues remain) the scan
// reruns over the full pool so the day still opens and the slots get filled.
func (p *planner) pickSeed() int {
	if best := p.seedScan(p.reserveMeals()); best >= 0 {
		return best
	}
	return p.seedScan(false)
}

func (p *planner) seedScan(skipMeals bool) int {
	best := -1
	bestSum := 0
	for _, c := range p.remaining {
		if skipMeals && p.venues[c].Category == domain.CategoryMeal {
			continue
		}
		sum := 0
		for _, other := range p.remaining {
			if other != c {
				sum += p.matrix.At(c, other).TravelMinutes
			}
		}
		if best < 0 || sum < bestSum || (sum == bestSum && p.venues[c].ID < p.venues[best].ID) {
			best = c
			bestSum = sum
		}
	}
	return best
}

// scheduleDay simulates the day's visit order from the start position,
// returning the timed stops, the day cost (travel + wait), and whether every
// visit is feasible: inside an opening window, inside its meal slot when one
// is attached, and finished by dailyEnd.
func (p *planner) scheduleDay(items []seqItem, startIdx int, weekday time.Weekday) ([]domain.ItineraryStop, int, bool) {
	stops := make([]domain.ItineraryStop, 0, len(items))
	cur := startIdx
	now := p.cons.DailyStart
	cost := 0

	for _, it := range items {
		v := p.venues[it.venue]
		travel := p.matrix.At(cur, it.venue).TravelMinutes
		arrival := now + travel

		start, ok := EarliestStart(v, weekday, arrival)
		if !ok {
			return nil, 0, false
		}
		if it.slot != nil {
			if start < it.slot.Start {
				// Wait for the slot to open, then re-check the venue's own
				// windows at the later time.
				start, ok = EarliestStart(v, weekday, it.slot.Start)
				if !ok {
					return nil, 0, false
				}
			}
			if start > it.slot.End {
				return nil, 0, false
			}
		}

		wait := start - arrival
		depart := start + v.VisitDuration
		if depart > p.cons.DailyEnd {
			return nil, 0, false
		}

		stop := domain.ItineraryStop{
			VenueID:        v.ID,
			Arrive:         start,
			Depart:         depart,
			TravelFromPrev: travel,
			Wait:           wait,
		}
		if it.slot != nil {
			stop.IsMeal = true
			stop.MealSlot = it.slot.Name
		}
		stops = append(stops, stop)

		cost += travel + wait
		now = depart
		cur = it.venue
	}

	return stops, cost, true
}

// constructDay runs the nearest-feasible-neighbor heuristic: repeatedly pick
// the unvisited venue minimizing travel + wait among those that are
// time-window feasible at the resulting arrival. Ties break on higher
// popularity, then lexical id. Chosen venues are removed from remaining.
func (p *planner) constructDay(startIdx int, weekday time.Weekday) []seqItem {
	items := []seqItem{}
	cur := startIdx
	now := p.cons.DailyStart

	for len(p.remaining) > 0 {
		best := -1
		bestPos := -1
		bestCost := 0

		for pos, c := range p.remaining {
			v := p.venues[c]
			if p.reserveMeals() && v.Category == domain.CategoryMeal {
				continue
			}

			travel := p.matrix.At(cur, c).TravelMinutes
			arrival := now + travel
			start, ok := EarliestStart(v, weekday, arrival)
			if !ok {
				continue
			}
			if start+v.VisitDuration > p.cons.DailyEnd {
				continue
			}

			cost := travel + (start - arrival)
			if best < 0 || cost < bestCost || (cost == bestCost && betterTie(v, p.venues[best])) {
				best = c
				bestPos = pos
				bestCost = cost
			}
		}

		if best < 0 {
			// No remaining venue is feasible today; close the day.
			break
		}

		v := p.venues[best]
		travel := p.matrix.At(cur, best).TravelMinutes
		start, _ := EarliestStart(v, weekday, now+travel)

		items = append(items, seqItem{venue: best})
		now = start + v.VisitDuration
		cur = best
		p.remaining = append(p.remaining[:bestPos], p.remaining[bestPos+1:]...)
	}

	return items
}

// betterTie orders equal-cost candidates: higher popularity first, then
// lexical id for determinism.
func betterTie(a, b *domain.Venue) bool {
	if a.Popularity != b.Popularity {
		return a.Popularity > b.Popularity
	}
	return a.ID < b.ID
}

// insertMeals fills each unfilled meal slot with the best-fitting available
// meal-category venue: the (venue, position) pair minimizing added day cost
// while the meal's start lands inside the slot window. A slot with no fitting
// venue is skipped without failing the plan.
func (p *planner) insertMeals(items []seqItem, startIdx int, weekday time.Weekday) []seqItem {
	for si := range p.cons.MealSlots {
		slot := p.cons.MealSlots[si]

		_, baseCost, ok := p.scheduleDay(items, startIdx, weekday)
		if !ok {
			return items
		}

		bestVenue := -1
		bestRemPos := -1
		bestInsert := -1
		bestAdded := 0

		for remPos, c := range p.remaining {
			v := p.venues[c]
			if v.Category != domain.CategoryMeal {
				continue
			}

			for insert := 0; insert <= len(items); insert++ {
				cand := make([]seqItem, 0, len(items)+1)
				cand = append(cand, items[:insert]...)
				cand = append(cand, seqItem{venue: c, slot: &slot})
				cand = append(cand, items[insert:]...)

				_, cost, ok := p.scheduleDay(cand, startIdx, weekday)
				if !ok {
					continue
				}

				added := cost - baseCost
				if bestVenue < 0 || added < bestAdded ||
					(added == bestAdded && bestVenue != c && betterTie(v, p.venues[bestVenue])) {
					bestVenue = c
					bestRemPos = remPos
					bestInsert = insert
					bestAdded = added
				}
			}
		}

		if bestVenue < 0 {
			continue
		}

		next := make([]seqItem, 0, len(items)+1)
		next = append(next, items[:bestInsert]...)
		next = append(next, seqItem{venue: bestVenue, slot: &slot})
		next = append(next, items[bestInsert:]...)
		items = next
		p.remaining = append(p.remaining[:bestRemPos], p.remaining[bestRemPos+1:]...)
	}

	return items
}
