package services

import (
	"time"

	"trip-planner-service/internal/domain"
)

// EarliestStart returns the earliest minute at or after notBefore at which
// the venue's full visit fits inside one of its opening windows on the given
// weekday. The start is clipped to the window's opening time when the visitor
// arrives early. ok is false when no window that day admits the visit; the
// caller must defer the venue to a later day or drop it.
//
// A venue with no opening windows at all is always open and trivially
// feasible at notBefore.
func EarliestStart(v *domain.Venue, day time.Weekday, notBefore int) (int, bool) {
	if v.Hours.AlwaysOpen() {
		return notBefore, true
	}

	// Windows are disjoint and sorted by the normalizer, so the first fit is
	// the earliest one.
	for _, w := range v.Hours[day] {
		start := notBefore
		if w.Start > start {
			start = w.Start
		}
		if start+v.VisitDuration <= w.End {
			return start, true
		}
	}

	return 0, false
}
