package services

import (
	"testing"
	"time"

	"trip-planner-service/internal/domain"
)

func venueWithWindow(duration, start, end int) *domain.Venue {
	var hours domain.WeekHours
	for d := range hours {
		hours[d] = []domain.OpeningWindow{{Start: start, End: end}}
	}
	return &domain.Venue{ID: "v", VisitDuration: duration, Hours: hours}
}

func TestEarliestStartAlwaysOpen(t *testing.T) {
	v := &domain.Venue{ID: "v", VisitDuration: 90}

	start, ok := EarliestStart(v, time.Monday, 615)
	if !ok || start != 615 {
		t.Fatalf("got (%d, %v), want (615, true)", start, ok)
	}
}

func TestEarliestStartClipsToOpening(t *testing.T) {
	v := venueWithWindow(60, 600, 1080)

	start, ok := EarliestStart(v, time.Monday, 540)
	if !ok || start != 600 {
		t.Fatalf("early arrival: got (%d, %v), want (600, true)", start, ok)
	}

	start, ok = EarliestStart(v, time.Monday, 700)
	if !ok || start != 700 {
		t.Fatalf("arrival inside window: got (%d, %v), want (700, true)", start, ok)
	}
}

func TestEarliestStartVisitMustFitBeforeClose(t *testing.T) {
	v := venueWithWindow(60, 600, 1080)

	// Latest feasible start is 1020.
	start, ok := EarliestStart(v, time.Monday, 1020)
	if !ok || start != 1020 {
		t.Fatalf("got (%d, %v), want (1020, true)", start, ok)
	}
	if _, ok := EarliestStart(v, time.Monday, 1021); ok {
		t.Fatal("start 1021 should not fit a 60-minute visit before 1080")
	}
}

func TestEarliestStartWindowShorterThanVisit(t *testing.T) {
	// A 30-minute window can never hold a 60-minute visit, whatever the
	// arrival time.
	v := venueWithWindow(60, 1000, 1030)

	if _, ok := EarliestStart(v, time.Monday, 540); ok {
		t.Fatal("60-minute visit should not fit a 30-minute window")
	}
	if _, ok := EarliestStart(v, time.Monday, 1000); ok {
		t.Fatal("60-minute visit should not fit even arriving at opening")
	}
}

func TestEarliestStartSkipsToLaterWindow(t *testing.T) {
	var hours domain.WeekHours
	hours[time.Monday] = []domain.OpeningWindow{
		{Start: 540, End: 720},
		{Start: 840, End: 1080},
	}
	v := &domain.Venue{ID: "v", VisitDuration: 90, Hours: hours}

	// 90 minutes no longer fit the morning window after 650; the afternoon
	// window picks it up.
	start, ok := EarliestStart(v, time.Monday, 650)
	if !ok || start != 840 {
		t.Fatalf("got (%d, %v), want (840, true)", start, ok)
	}
}

func TestEarliestStartClosedWeekday(t *testing.T) {
	var hours domain.WeekHours
	hours[time.Tuesday] = []domain.OpeningWindow{{Start: 540, End: 1080}}
	v := &domain.Venue{ID: "v", VisitDuration: 60, Hours: hours}

	if _, ok := EarliestStart(v, time.Monday, 540); ok {
		t.Fatal("venue is closed on Monday")
	}
	if start, ok := EarliestStart(v, time.Tuesday, 540); !ok || start != 540 {
		t.Fatalf("Tuesday: got (%d, %v), want (540, true)", start, ok)
	}
}
