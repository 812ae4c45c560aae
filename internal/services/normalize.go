package services

import (
	"sort"
	"strings"

	"trip-planner-service/internal/domain"
)

// Diagnostic records a venue rejected during catalog normalization. Rejection
// is always per-venue; a bad record never aborts the planning request.
type Diagnostic struct {
	VenueID string
	Reason  string
}

// NormalizeVenues turns heterogeneous venue records into a uniform catalog:
// categories are canonicalized, opening windows are clamped, sorted and
// merged per weekday, and venues with malformed coordinates, non-positive
// visit durations, or missing/duplicate ids are dropped into the diagnostics
// list. Input order is preserved for the survivors.
func NormalizeVenues(raw []domain.Venue) ([]*domain.Venue, []Diagnostic) {
	venues := make([]*domain.Venue, 0, len(raw))
	diags := []Diagnostic{}
	seen := make(map[string]struct{}, len(raw))

	for _, r := range raw {
		v := r

		if strings.TrimSpace(v.ID) == "" {
			diags = append(diags, Diagnostic{VenueID: "", Reason: "missing id (name: " + v.Name + ")"})
			continue
		}
		if _, dup := seen[v.ID]; dup {
			diags = append(diags, Diagnostic{VenueID: v.ID, Reason: "duplicate id"})
			continue
		}
		if !v.Position.Valid() {
			diags = append(diags, Diagnostic{VenueID: v.ID, Reason: "invalid coordinates"})
			continue
		}
		if v.VisitDuration <= 0 {
			diags = append(diags, Diagnostic{VenueID: v.ID, Reason: "visit duration must be positive"})
			continue
		}

		v.Category = normalizeCategory(v.Category)
		for d := range v.Hours {
			v.Hours[d] = canonicalizeWindows(v.Hours[d])
		}

		seen[v.ID] = struct{}{}
		venues = append(venues, &v)
	}

	return venues, diags
}

func normalizeCategory(c domain.Category) domain.Category {
	switch domain.Category(strings.ToLower(string(c))) {
	case domain.CategoryActivity:
		return domain.CategoryActivity
	case domain.CategoryMeal:
		return domain.CategoryMeal
	case domain.CategoryHotel:
		return domain.CategoryHotel
	default:
		// Unknown categories are informational only; treat them as sights.
		return domain.CategorySight
	}
}

// canonicalizeWindows clamps windows to the day, drops empty ones, sorts by
// start time, and merges overlapping or touching entries so the feasibility
// engine can rely on disjoint ascending windows.
func canonicalizeWindows(windows []domain.OpeningWindow) []domain.OpeningWindow {
	if len(windows) == 0 {
		return nil
	}

	clamped := make([]domain.OpeningWindow, 0, len(windows))
	for _, w := range windows {
		if w.Start < 0 {
			w.Start = 0
		}
		if w.End > domain.MinutesPerDay {
			w.End = domain.MinutesPerDay
		}
		if w.End <= w.Start {
			continue
		}
		clamped = append(clamped, w)
	}
	if len(clamped) == 0 {
		return nil
	}

	sort.Slice(clamped, func(i, j int) bool {
		if clamped[i].Start != clamped[j].Start {
			return clamped[i].Start < clamped[j].Start
		}
		return clamped[i].End < clamped[j].End
	})

	merged := clamped[:1]
	for _, w := range clamped[1:] {
		last := &merged[len(merged)-1]
		if w.Start <= last.End {
			if w.End > last.End {
				last.End = w.End
			}
			continue
		}
		merged = append(merged, w)
	}

	return merged
}
