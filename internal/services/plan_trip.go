package services

import (
	"context"
	"fmt"
	"sort"

	"trip-planner-service/internal/domain"
	"trip-planner-service/internal/platform/obs"
	"trip-planner-service/internal/ports"
)

type PlanTripRequest struct {
	Venues      []domain.Venue
	Constraints domain.TripConstraints
	Edits       []domain.DraftCommand
}

// PlanTripResult bundles the sequenced itinerary with the lookup data the
// assembler needs.
type PlanTripResult struct {
	Itinerary   *domain.Itinerary
	Venues      map[string]*domain.Venue
	Diagnostics []Diagnostic
}

// PlanTrip runs the full planning pipeline: constraint validation, draft
// edits, catalog normalization, travel-matrix prefetch, and sequencing.
// Per-venue and per-pair problems degrade gracefully; only malformed
// top-level constraints surface as an error.
func PlanTrip(ctx context.Context, req PlanTripRequest, provider ports.TravelProvider) (_ *PlanTripResult, err error) {
	defer obs.Time(ctx, "services.PlanTrip")(&err)

	if err = req.Constraints.Validate(); err != nil {
		return nil, err
	}
	cons := req.Constraints

	draft := domain.NewDraft(req.Venues)
	for _, cmd := range req.Edits {
		draft = draft.Apply(cmd)
	}

	venues, diags := NormalizeVenues(draft.Venues())

	positions := make([]domain.Position, 0, len(venues)+2)
	for _, v := range venues {
		positions = append(positions, v.Position)
	}
	originIdx, finalIdx := -1, -1
	if cons.Origin != nil {
		originIdx = len(positions)
		positions = append(positions, *cons.Origin)
	}
	if cons.Final != nil {
		finalIdx = len(positions)
		positions = append(positions, *cons.Final)
	}

	var itin *domain.Itinerary
	if len(venues) == 0 {
		itin = emptyItinerary(cons)
	} else {
		matrix, buildErr := BuildTravelMatrix(ctx, provider, positions)
		if buildErr != nil {
			err = fmt.Errorf("plan trip: build travel matrix: %w", buildErr)
			return nil, err
		}
		itin, err = Sequence(ctx, venues, matrix, originIdx, finalIdx, cons)
		if err != nil {
			return nil, err
		}
	}

	// Venues the normalizer rejected still belong to the request; account for
	// them in unplaced so no input venue is silently lost. Duplicates are
	// diagnostics-only, since their id is already accounted for.
	for _, d := range diags {
		if d.VenueID != "" && d.Reason != "duplicate id" {
			itin.Unplaced = append(itin.Unplaced, d.VenueID)
		}
	}
	sort.Strings(itin.Unplaced)

	byID := make(map[string]*domain.Venue, len(venues))
	for _, v := range venues {
		byID[v.ID] = v
	}

	return &PlanTripResult{
		Itinerary:   itin,
		Venues:      byID,
		Diagnostics: diags,
	}, nil
}

func emptyItinerary(cons domain.TripConstraints) *domain.Itinerary {
	itin := &domain.Itinerary{
		Days:     make([]domain.DayPlan, 0, cons.DayCount),
		Unplaced: []string{},
	}
	for day := 1; day <= cons.DayCount; day++ {
		itin.Days = append(itin.Days, domain.DayPlan{
			Day:     day,
			Weekday: cons.WeekdayOf(day),
			Stops:   []domain.ItineraryStop{},
		})
	}
	return itin
}
