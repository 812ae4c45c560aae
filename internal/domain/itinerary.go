package domain

import "time"

// ItineraryStop records one scheduled visit inside a day plan.
// Arrive is the minute the visit begins (after any wait for the venue to
// open); Wait is the idle time between physical arrival and Arrive.
type ItineraryStop struct {
	VenueID        string
	Arrive         int
	Depart         int
	TravelFromPrev int
	Wait           int
	IsMeal         bool
	MealSlot       string // slot name when IsMeal is set
}

// DayPlan is the ordered visit sequence for one plan day.
type DayPlan struct {
	Day     int // 1-based
	Weekday time.Weekday
	Stops   []ItineraryStop
}

// Itinerary is the immutable result of a single planning call. Every input
// venue appears exactly once, either in a day plan or in Unplaced.
type Itinerary struct {
	Days        []DayPlan
	Unplaced    []string
	TravelTotal int // minutes spent traveling, summed over all days
	WaitTotal   int // minutes spent waiting for venues to open
}
