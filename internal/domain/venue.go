package domain

import (
	"fmt"
	"time"
)

// Category classifies a venue for the sequencer. Meal venues are reserved for
// meal slots; everything else is scheduled by the main construction loop.
type Category string

const (
	CategorySight    Category = "sight"
	CategoryActivity Category = "activity"
	CategoryMeal     Category = "meal"
	CategoryHotel    Category = "hotel"
)

// MinutesPerDay bounds every minute-of-day value handled by the planner.
const MinutesPerDay = 1440

// OpeningWindow is a slice of one day during which a venue admits visitors.
// Start and End are minutes of day with 0 <= Start < End <= MinutesPerDay.
type OpeningWindow struct {
	Start int
	End   int
}

// WeekHours holds a venue's opening windows per weekday, indexed by
// time.Weekday (0 = Sunday). A WeekHours with no windows on any day means the
// venue is always open; a day with no windows on an otherwise populated
// WeekHours means the venue is closed that day.
type WeekHours [7][]OpeningWindow

// AlwaysOpen reports whether no opening window is recorded for any weekday.
func (w WeekHours) AlwaysOpen() bool {
	for _, windows := range w {
		if len(windows) > 0 {
			return false
		}
	}
	return true
}

// WindowSpec is one raw opening-hours entry as supplied by callers or seed
// data. A nil Weekday applies the window to every day of the week.
type WindowSpec struct {
	Weekday *int
	Start   int
	End     int
}

// HoursFromSpecs expands raw opening-hours entries into per-weekday windows.
// Windows are clamped to the day, zero-length windows are dropped, and an
// out-of-range weekday is an error. The result is not yet sorted or merged;
// that is the catalog normalizer's job.
func HoursFromSpecs(specs []WindowSpec) (WeekHours, error) {
	var hours WeekHours
	for i, s := range specs {
		start := s.Start
		end := s.End
		if start < 0 {
			start = 0
		}
		if end > MinutesPerDay {
			end = MinutesPerDay
		}
		if end <= start {
			continue
		}

		if s.Weekday == nil {
			for d := range hours {
				hours[d] = append(hours[d], OpeningWindow{Start: start, End: end})
			}
			continue
		}
		if *s.Weekday < 0 || *s.Weekday > 6 {
			return WeekHours{}, fmt.Errorf("opening hours entry %d: weekday %d out of range", i, *s.Weekday)
		}
		d := time.Weekday(*s.Weekday)
		hours[d] = append(hours[d], OpeningWindow{Start: start, End: end})
	}
	return hours, nil
}

// Venue is a normalized point of interest eligible for sequencing.
type Venue struct {
	ID            string
	Name          string
	Position      Position
	Hours         WeekHours
	VisitDuration int // minutes required on site
	Category      Category
	Popularity    float64
	Tags          []string
	Address       string
	WebsiteURL    string
}
