package booking

import (
	"time"

	"coachslot/internal/trainer"
)

// overlaps reports whether the half-open intervals [s1, e1) and [s2, e2)
// share any minute. Back-to-back sessions (e1 == s2) do not overlap.
func overlaps(s1, e1, s2, e2 int) bool {
	return s1 < e2 && s2 < e1
}

// conflictsWith reports whether a candidate session starting at startMin
// with the given duration collides with any of the existing bookings.
func conflictsWith(startMin, durationMin int, existing []Booking) bool {
	end := startMin + durationMin
	for _, b := range existing {
		if overlaps(startMin, end, b.StartMin, b.EndMin()) {
			return true
		}
	}
	return false
}

// withinWorkingHours checks the session start against the trainer's window
// for that weekday. Only the start instant matters: a session that begins
// inside the window may run past closing. Trainers with no schedule at all
// accept any time.
func withinWorkingHours(hours trainer.WeeklyHours, date time.Time, startMin int) bool {
	day, ok := hours.Window(date)
	if !ok {
		return true
	}
	if !day.Available {
		return false
	}

	start, err := trainer.ParseClock(day.Start)
	if err != nil {
		return false
	}
	end, err := trainer.ParseClock(day.End)
	if err != nil {
		return false
	}

	return startMin >= start && startMin < end
}
