package trainer

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DayWindow is one weekday's working window. Times are "15:04" clock strings.
type DayWindow struct {
	Available bool   `json:"available"`
	Start     string `json:"start"`
	End       string `json:"end"`
}

// WeeklyHours maps lowercase weekday names to windows. A nil map or a
// missing day means the trainer has not configured that day.
type WeeklyHours map[string]DayWindow

var ErrInvalidWindow = errors.New("invalid availability window")

var weekdayNames = map[string]bool{
	"monday": true, "tuesday": true, "wednesday": true, "thursday": true,
	"friday": true, "saturday": true, "sunday": true,
}

func WeekdayKey(w time.Weekday) string {
	switch w {
	case time.Monday:
		return "monday"
	case time.Tuesday:
		return "tuesday"
	case time.Wednesday:
		return "wednesday"
	case time.Thursday:
		return "thursday"
	case time.Friday:
		return "friday"
	case time.Saturday:
		return "saturday"
	default:
		return "sunday"
	}
}

// Window returns the configured window for the date's weekday.
func (w WeeklyHours) Window(date time.Time) (DayWindow, bool) {
	if w == nil {
		return DayWindow{}, false
	}
	day, ok := w[WeekdayKey(date.Weekday())]
	return day, ok
}

// ParseClock converts a "15:04" string to minutes since midnight.
func ParseClock(s string) (int, error) {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return 0, fmt.Errorf("invalid clock value %q", s)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return 0, fmt.Errorf("invalid clock value %q", s)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return 0, fmt.Errorf("invalid clock value %q", s)
	}
	return h*60 + m, nil
}

// FormatClock converts minutes since midnight back to "15:04".
func FormatClock(min int) string {
	return fmt.Sprintf("%02d:%02d", min/60, min%60)
}

// Validate checks weekday names and that start < end on available days.
func (w WeeklyHours) Validate() error {
	for day, window := range w {
		if !weekdayNames[day] {
			return fmt.Errorf("%w: unknown weekday %q", ErrInvalidWindow, day)
		}
		if !window.Available {
			continue
		}
		start, err := ParseClock(window.Start)
		if err != nil {
			return fmt.Errorf("%w: %s start: %v", ErrInvalidWindow, day, err)
		}
		end, err := ParseClock(window.End)
		if err != nil {
			return fmt.Errorf("%w: %s end: %v", ErrInvalidWindow, day, err)
		}
		if start >= end {
			return fmt.Errorf("%w: %s start must be before end", ErrInvalidWindow, day)
		}
	}
	return nil
}
