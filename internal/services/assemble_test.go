package services

import (
	"testing"
	"time"

	"trip-planner-service/internal/domain"
)

func assembleFixture() *PlanTripResult {
	venues := map[string]*domain.Venue{
		"louvre": {
			ID:            "louvre",
			Name:          "Louvre",
			Position:      domain.Position{Lat: 48.8606, Lng: 2.3376},
			VisitDuration: 120,
			Address:       "Rue de Rivoli",
			Tags:          []string{"museum"},
			WebsiteURL:    "https://www.louvre.fr",
		},
		"orsay": {
			ID:            "orsay",
			Name:          "Orsay",
			Position:      domain.Position{Lat: 48.86, Lng: 2.3266},
			VisitDuration: 90,
		},
		"bistro": {
			ID:            "bistro",
			Name:          "Bistro",
			Position:      domain.Position{Lat: 48.8542, Lng: 2.3325},
			VisitDuration: 60,
			Category:      domain.CategoryMeal,
		},
	}

	itin := &domain.Itinerary{
		Days: []domain.DayPlan{
			{
				Day:     1,
				Weekday: time.Monday,
				Stops: []domain.ItineraryStop{
					{VenueID: "louvre", Arrive: 540, Depart: 660, TravelFromPrev: 0},
					{VenueID: "bistro", Arrive: 780, Depart: 840, TravelFromPrev: 5, IsMeal: true, MealSlot: "lunch"},
					{VenueID: "orsay", Arrive: 850, Depart: 940, TravelFromPrev: 10},
				},
			},
		},
		Unplaced: []string{"pantheon"},
	}

	return &PlanTripResult{Itinerary: itin, Venues: venues}
}

func TestAssembleFormatsStops(t *testing.T) {
	cons := domain.TripConstraints{DayCount: 1, DailyStart: 540, DailyEnd: 1260}

	plan := Assemble(assembleFixture(), cons)

	if len(plan.Items) != 3 {
		t.Fatalf("expected 3 items, got %d", len(plan.Items))
	}

	first := plan.Items[0]
	if first.Name != "Louvre" || first.Time != "9:00 AM" || first.Duration != "2 hours" {
		t.Fatalf("first item = %+v", first)
	}
	if first.OpeningHours != "Open 24 hours" {
		t.Errorf("opening hours = %q, want Open 24 hours", first.OpeningHours)
	}

	meal := plan.Items[1]
	if meal.IsMeal != "lunch" {
		t.Errorf("meal marker = %q, want lunch", meal.IsMeal)
	}
	if meal.Time != "1:00 PM" || meal.Duration != "1 hour" {
		t.Errorf("meal item = %+v", meal)
	}
	// Absent tags serialize as an empty list, never null.
	if meal.Tags == nil {
		t.Error("meal tags should be an empty slice")
	}

	if got, want := plan.Unplaced[0], "pantheon"; got != want {
		t.Errorf("unplaced = %v, want [%s]", plan.Unplaced, want)
	}
}

func TestAssembleDerivesEndpointsFromStops(t *testing.T) {
	cons := domain.TripConstraints{DayCount: 1, DailyStart: 540, DailyEnd: 1260}

	plan := Assemble(assembleFixture(), cons)

	if plan.Origin == nil || plan.Origin.Position.Lat != 48.8606 {
		t.Fatalf("origin = %+v, want the Louvre position", plan.Origin)
	}
	if plan.Destination == nil || plan.Destination.Position.Lat != 48.86 {
		t.Fatalf("destination = %+v, want the Orsay position", plan.Destination)
	}
	if len(plan.Waypoints) != 1 || plan.Waypoints[0].Position.Lat != 48.8542 {
		t.Fatalf("waypoints = %+v, want only the bistro", plan.Waypoints)
	}
}

func TestAssembleUsesFixedEndpoints(t *testing.T) {
	hotel := domain.Position{Lat: 48.87, Lng: 2.35}
	airport := domain.Position{Lat: 49.0097, Lng: 2.5479}
	cons := domain.TripConstraints{
		DayCount:   1,
		DailyStart: 540,
		DailyEnd:   1260,
		Origin:     &hotel,
		Final:      &airport,
	}

	plan := Assemble(assembleFixture(), cons)

	if plan.Origin == nil || plan.Origin.Position != hotel {
		t.Fatalf("origin = %+v, want the hotel", plan.Origin)
	}
	if plan.Destination == nil || plan.Destination.Position != airport {
		t.Fatalf("destination = %+v, want the airport", plan.Destination)
	}
	// With fixed endpoints every visited stop is a waypoint.
	if len(plan.Waypoints) != 3 {
		t.Fatalf("waypoints = %+v, want all 3 stops", plan.Waypoints)
	}
}

func TestAssembleSingleStopPlan(t *testing.T) {
	res := &PlanTripResult{
		Itinerary: &domain.Itinerary{
			Days: []domain.DayPlan{{
				Day:     1,
				Weekday: time.Monday,
				Stops:   []domain.ItineraryStop{{VenueID: "louvre", Arrive: 540, Depart: 660}},
			}},
			Unplaced: []string{},
		},
		Venues: map[string]*domain.Venue{
			"louvre": {ID: "louvre", Name: "Louvre", Position: domain.Position{Lat: 48.8606, Lng: 2.3376}},
		},
	}
	cons := domain.TripConstraints{DayCount: 1, DailyStart: 540, DailyEnd: 1260}

	plan := Assemble(res, cons)

	if plan.Origin == nil || plan.Destination == nil {
		t.Fatal("single-stop plan needs both endpoints")
	}
	if plan.Origin.Position != plan.Destination.Position {
		t.Fatal("single-stop plan should start and end at the same point")
	}
	if len(plan.Waypoints) != 0 {
		t.Fatalf("waypoints = %+v, want none", plan.Waypoints)
	}
}

func TestFormatOpeningHours(t *testing.T) {
	var hours domain.WeekHours
	hours[time.Monday] = []domain.OpeningWindow{
		{Start: 540, End: 720},
		{Start: 840, End: 1080},
	}
	v := &domain.Venue{ID: "v", Hours: hours}

	if got := formatOpeningHours(v, time.Monday); got != "9:00 AM - 12:00 PM, 2:00 PM - 6:00 PM" {
		t.Errorf("Monday = %q", got)
	}
	if got := formatOpeningHours(v, time.Sunday); got != "Closed" {
		t.Errorf("Sunday = %q, want Closed", got)
	}
	if got := formatOpeningHours(&domain.Venue{ID: "w"}, time.Monday); got != "Open 24 hours" {
		t.Errorf("no hours = %q, want Open 24 hours", got)
	}

	var lateHours domain.WeekHours
	lateHours[time.Friday] = []domain.OpeningWindow{{Start: 1080, End: 1440}}
	late := &domain.Venue{ID: "bar", Hours: lateHours}
	if got := formatOpeningHours(late, time.Friday); got != "6:00 PM - 12:00 AM" {
		t.Errorf("until midnight = %q, want 6:00 PM - 12:00 AM", got)
	}
}
