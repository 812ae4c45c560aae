package dto

// PositionInput uses pointers so that an absent coordinate is distinguishable
// from latitude/longitude 0 and can be rejected per-venue.
type PositionInput struct {
	Lat *float64 `json:"lat"`
	Lng *float64 `json:"lng"`
}

// One raw opening-hours entry. A nil weekday applies the window every day;
// 0 = Sunday .. 6 = Saturday otherwise. Start and end are minutes of day.
type WindowInput struct {
	Weekday *int `json:"weekday,omitempty"`
	Start   int  `json:"start"`
	End     int  `json:"end"`
}

type VenueInput struct {
	ID            string        `json:"id"`
	Name          string        `json:"name"`
	Position      PositionInput `json:"position"`
	OpeningHours  []WindowInput `json:"openingHours"`
	VisitDuration int           `json:"visitDuration"`
	Category      string        `json:"category"`
	Popularity    float64       `json:"popularity"`
	Tags          []string      `json:"tags"`
	Address       string        `json:"address"`
	WebsiteURL    string        `json:"websiteUrl"`
}

type MealSlotInput struct {
	Category string `json:"category"` // "lunch", "dinner"
	Start    int    `json:"start"`
	End      int    `json:"end"`
}

type ConstraintsInput struct {
	DayCount     int             `json:"dayCount"`
	DailyStart   *int            `json:"dailyStart"`
	DailyEnd     *int            `json:"dailyEnd"`
	MealSlots    []MealSlotInput `json:"mealSlots"`
	StartWeekday *int            `json:"startWeekday"`
	Origin       *PositionInput  `json:"origin"`
	Final        *PositionInput  `json:"final"`
}

// One draft edit applied to the venue list before planning.
type EditInput struct {
	Op      string `json:"op"` // "remove" or "rename"
	VenueID string `json:"venueId"`
	Name    string `json:"name,omitempty"`
}

type PlanRequest struct {
	Venues      []VenueInput      `json:"venues"`
	Constraints *ConstraintsInput `json:"constraints"`
	Edits       []EditInput       `json:"edits"`
}

// ItineraryItem mirrors the shape the front-end renders; field names and
// nesting are part of the contract and must not change.
type ItineraryItem struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Time         string   `json:"time"`
	Duration     string   `json:"duration"`
	Address      string   `json:"address"`
	OpeningHours string   `json:"openingHours"`
	Tags         []string `json:"tags"`
	WebsiteURL   *string  `json:"websiteUrl"`
	IsMeal       string   `json:"isMeal,omitempty"`
}

type CoordinatePoint struct {
	Lat     float64 `json:"lat"`
	Lng     float64 `json:"lng"`
	Address string  `json:"address,omitempty"`
}

type CoordinateBundle struct {
	Origin      *CoordinatePoint  `json:"origin"`
	Destination *CoordinatePoint  `json:"destination"`
	Waypoints   []CoordinatePoint `json:"waypoints"`
}

type DiagnosticItem struct {
	VenueID string `json:"venueId"`
	Reason  string `json:"reason"`
}

type PlanResponse struct {
	Itinerary   []ItineraryItem  `json:"itinerary"`
	Coordinates CoordinateBundle `json:"coordinates"`
	Unplaced    []string         `json:"unplaced"`
	Diagnostics []DiagnosticItem `json:"diagnostics,omitempty"`
}
