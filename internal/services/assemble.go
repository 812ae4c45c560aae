package services

import (
	"strings"
	"time"

	"trip-planner-service/internal/domain"
)

// AssembledStop is one itinerary entry in the external display shape: times
// and durations as strings, venue metadata copied from the catalog.
type AssembledStop struct {
	VenueID      string
	Name         string
	Time         string
	Duration     string
	Address      string
	OpeningHours string
	Tags         []string
	WebsiteURL   string
	IsMeal       string // slot name ("lunch", "dinner") or empty
	Position     domain.Position
}

// RoutePoint is one coordinate handed to the map-rendering collaborator.
type RoutePoint struct {
	Position domain.Position
	Address  string
}

// AssembledPlan is the complete external contract payload: the flattened
// itinerary, the origin/destination/waypoints bundle, and the unplaced list.
type AssembledPlan struct {
	Items       []AssembledStop
	Origin      *RoutePoint
	Destination *RoutePoint
	Waypoints   []RoutePoint
	Unplaced    []string
}

// Assemble converts the sequenced itinerary into the external contract
// shape. It copies venue metadata and formats times; it never re-runs
// feasibility checks, which are the sequencer's responsibility.
func Assemble(res *PlanTripResult, cons domain.TripConstraints) *AssembledPlan {
	itin := res.Itinerary

	plan := &AssembledPlan{
		Items:     []AssembledStop{},
		Waypoints: []RoutePoint{},
		Unplaced:  append([]string{}, itin.Unplaced...),
	}

	points := []RoutePoint{}
	for _, day := range itin.Days {
		for _, s := range day.Stops {
			v, ok := res.Venues[s.VenueID]
			if !ok {
				continue
			}

			tags := v.Tags
			if tags == nil {
				tags = []string{}
			}

			plan.Items = append(plan.Items, AssembledStop{
				VenueID:      v.ID,
				Name:         v.Name,
				Time:         FormatClock(s.Arrive),
				Duration:     FormatDuration(s.Depart - s.Arrive),
				Address:      v.Address,
				OpeningHours: formatOpeningHours(v, day.Weekday),
				Tags:         tags,
				WebsiteURL:   v.WebsiteURL,
				IsMeal:       s.MealSlot,
				Position:     v.Position,
			})
			points = append(points, RoutePoint{Position: v.Position, Address: v.Address})
		}
	}

	// Origin and destination come from the fixed trip endpoints when given;
	// otherwise the first and last stop. Stops consumed as endpoints are
	// excluded from the waypoints, which stay in visit order.
	waypoints := points
	if cons.Origin != nil {
		plan.Origin = &RoutePoint{Position: *cons.Origin}
	} else if len(waypoints) > 0 {
		first := waypoints[0]
		plan.Origin = &first
		waypoints = waypoints[1:]
	}
	if cons.Final != nil {
		plan.Destination = &RoutePoint{Position: *cons.Final}
	} else if len(waypoints) > 0 {
		last := waypoints[len(waypoints)-1]
		plan.Destination = &last
		waypoints = waypoints[:len(waypoints)-1]
	} else if plan.Origin != nil {
		// A single-stop plan starts and ends at the same point.
		end := *plan.Origin
		plan.Destination = &end
	}
	plan.Waypoints = append(plan.Waypoints, waypoints...)

	return plan
}

// formatOpeningHours renders the venue's windows for the given weekday as a
// display string, e.g. "9:00 AM - 6:00 PM".
func formatOpeningHours(v *domain.Venue, day time.Weekday) string {
	if v.Hours.AlwaysOpen() {
		return "Open 24 hours"
	}
	windows := v.Hours[day]
	if len(windows) == 0 {
		return "Closed"
	}

	parts := make([]string, 0, len(windows))
	for _, w := range windows {
		parts = append(parts, FormatClock(w.Start)+" - "+FormatClock(w.End))
	}
	return strings.Join(parts, ", ")
}
