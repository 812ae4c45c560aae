package domain

import (
	"fmt"
	"time"
)

// MealSlot names a meal each planned day should contain, together with the
// minute-of-day window the meal must start inside.
type MealSlot struct {
	Name  string // e.g. "lunch", "dinner"
	Start int
	End   int
}

// TripConstraints bound a single planning request.
type TripConstraints struct {
	DayCount     int
	DailyStart   int // minutes of day; first visit may not begin earlier
	DailyEnd     int // minutes of day; last visit must finish by this time
	MealSlots    []MealSlot
	StartWeekday time.Weekday // weekday of day 1; later days advance from it
	Origin       *Position    // fixed start point (e.g. hotel), optional
	Final        *Position    // fixed end point, optional
}

// Validate rejects malformed top-level constraints before planning starts.
// This is the only error surfaced to the caller as a request-level failure.
func (c TripConstraints) Validate() error {
	if c.DayCount < 1 {
		return fmt.Errorf("trip constraints: day_count must be >= 1 (got %d)", c.DayCount)
	}
	if c.DailyStart < 0 || c.DailyStart >= MinutesPerDay {
		return fmt.Errorf("trip constraints: daily_start %d out of range", c.DailyStart)
	}
	if c.DailyEnd <= c.DailyStart || c.DailyEnd > MinutesPerDay {
		return fmt.Errorf("trip constraints: daily_end %d must be inside (%d, %d]", c.DailyEnd, c.DailyStart, MinutesPerDay)
	}
	for i, slot := range c.MealSlots {
		if slot.Name == "" {
			return fmt.Errorf("trip constraints: meal slot %d has no name", i)
		}
		if slot.End <= slot.Start || slot.Start < 0 || slot.End > MinutesPerDay {
			return fmt.Errorf("trip constraints: meal slot %q window (%d, %d) is invalid", slot.Name, slot.Start, slot.End)
		}
	}
	if c.Origin != nil && !c.Origin.Valid() {
		return fmt.Errorf("trip constraints: origin position (%v, %v) is invalid", c.Origin.Lat, c.Origin.Lng)
	}
	if c.Final != nil && !c.Final.Valid() {
		return fmt.Errorf("trip constraints: final position (%v, %v) is invalid", c.Final.Lat, c.Final.Lng)
	}
	return nil
}

// WeekdayOf returns the weekday of the given 1-based plan day.
func (c TripConstraints) WeekdayOf(day int) time.Weekday {
	return time.Weekday((int(c.StartWeekday) + day - 1) % 7)
}
