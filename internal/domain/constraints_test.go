package domain

import (
	"math"
	"testing"
	"time"
)

func TestTripConstraintsValidate(t *testing.T) {
	valid := TripConstraints{
		DayCount:   2,
		DailyStart: 540,
		DailyEnd:   1260,
		MealSlots:  []MealSlot{{Name: "lunch", Start: 690, End: 900}},
	}
	if err := valid.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cases := []struct {
		name   string
		mutate func(c *TripConstraints)
	}{
		{"zero day count", func(c *TripConstraints) { c.DayCount = 0 }},
		{"negative day count", func(c *TripConstraints) { c.DayCount = -3 }},
		{"daily start out of range", func(c *TripConstraints) { c.DailyStart = MinutesPerDay }},
		{"daily end before start", func(c *TripConstraints) { c.DailyEnd = 500 }},
		{"daily end past midnight", func(c *TripConstraints) { c.DailyEnd = MinutesPerDay + 1 }},
		{"unnamed meal slot", func(c *TripConstraints) { c.MealSlots = []MealSlot{{Start: 690, End: 900}} }},
		{"inverted meal window", func(c *TripConstraints) {
			c.MealSlots = []MealSlot{{Name: "lunch", Start: 900, End: 690}}
		}},
		{"invalid origin", func(c *TripConstraints) { c.Origin = &Position{Lat: 91, Lng: 0} }},
		{"nan final", func(c *TripConstraints) { c.Final = &Position{Lat: math.NaN(), Lng: math.NaN()} }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := valid
			tc.mutate(&c)
			if err := c.Validate(); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}

func TestWeekdayOfAdvancesFromStart(t *testing.T) {
	c := TripConstraints{StartWeekday: time.Saturday}

	if got := c.WeekdayOf(1); got != time.Saturday {
		t.Fatalf("day 1 = %v, want Saturday", got)
	}
	if got := c.WeekdayOf(2); got != time.Sunday {
		t.Fatalf("day 2 = %v, want Sunday", got)
	}
	if got := c.WeekdayOf(9); got != time.Sunday {
		t.Fatalf("day 9 = %v, want Sunday", got)
	}
}
