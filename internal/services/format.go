package services

import "fmt"

// FormatClock renders a minute-of-day value as a 12-hour clock string, e.g.
// 540 -> "9:00 AM". Minute 1440 wraps to midnight, so a window clamped to the
// end of day renders "12:00 AM" rather than a phantom "12:00 PM". This is the
// display format the itinerary contract uses.
func FormatClock(minutes int) string {
	hours := (minutes / 60) % 24
	mins := minutes % 60

	period := "AM"
	if hours >= 12 {
		period = "PM"
	}
	display := hours
	if display > 12 {
		display -= 12
	}
	if display == 0 {
		display = 12
	}
	return fmt.Sprintf("%d:%02d %s", display, mins, period)
}

// FormatDuration renders a minute count as a human-readable duration, e.g.
// "45 minutes", "1 hour", "2 hours 30 minutes".
func FormatDuration(minutes int) string {
	if minutes < 60 {
		return fmt.Sprintf("%d minutes", minutes)
	}
	hours := minutes / 60
	mins := minutes % 60

	unit := "hour"
	if hours > 1 {
		unit = "hours"
	}
	if mins == 0 {
		return fmt.Sprintf("%d %s", hours, unit)
	}
	return fmt.Sprintf("%d %s %d minutes", hours, unit, mins)
}
