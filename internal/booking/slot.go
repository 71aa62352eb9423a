// Package booking holds the pure booking logic: next-slot suggestion
// and the appointment filter/sort pipeline. Nothing in this package
// touches the database or the clock; callers pass time in.
package booking

import (
	"fmt"
	"time"
)

// Business hours. Slots run every half hour from 09:00 inclusive to
// 19:00 exclusive, so 18:30 is the last bookable slot of a day.
const (
	OpeningHour = 9
	ClosingHour = 19
)

// Wire formats for appointment dates and times.
const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

// Slot is a bookable (date, time) pair in wire format.
type Slot struct {
	Date string `json:"date"` // YYYY-MM-DD
	Time string `json:"time"` // HH:MM
}

// SuggestSlot computes the next bookable half-hour slot from the given
// instant. The minute is rounded up to the next :00/:30 boundary, a
// result before opening snaps to 09:00 the same day, and a result at
// or past closing rolls over to 09:00 the following day.
func SuggestSlot(now time.Time) Slot {
	hour := now.Hour()
	minute := now.Minute()

	if minute < 30 {
		minute = 30
	} else {
		minute = 0
		hour++
	}

	if hour < OpeningHour {
		hour = OpeningHour
		minute = 0
	}

	day := now
	if hour >= ClosingHour {
		day = now.AddDate(0, 0, 1)
		hour = OpeningHour
		minute = 0
	}

	return Slot{
		Date: day.Format(DateLayout),
		Time: fmt.Sprintf("%02d:%02d", hour, minute),
	}
}

// ValidDate reports whether s is a well-formed YYYY-MM-DD date.
func ValidDate(s string) bool {
	_, err := time.Parse(DateLayout, s)
	return err == nil
}

// WithinBusinessHours reports whether an HH:MM string is a valid time
// inside [09:00, 19:00). Malformed strings are rejected.
func WithinBusinessHours(s string) bool {
	t, err := time.Parse(TimeLayout, s)
	if err != nil {
		return false
	}
	h := t.Hour()
	return h >= OpeningHour && h < ClosingHour
}
