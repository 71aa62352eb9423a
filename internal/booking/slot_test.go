package booking

import (
	"testing"
	"time"
)

func at(hour, min int) time.Time {
	return time.Date(2026, 3, 10, hour, min, 0, 0, time.UTC)
}

func TestSuggestSlot_RoundsUp(t *testing.T) {
	cases := []struct {
		name     string
		now      time.Time
		wantDate string
		wantTime string
	}{
		{"minute below 30 rounds to half hour", at(10, 12), "2026-03-10", "10:30"},
		{"on the hour rounds to half hour", at(14, 0), "2026-03-10", "14:30"},
		{"minute at 30 rounds to next hour", at(10, 30), "2026-03-10", "11:00"},
		{"minute above 30 rounds to next hour", at(10, 47), "2026-03-10", "11:00"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := SuggestSlot(tc.now)
			if got.Date != tc.wantDate || got.Time != tc.wantTime {
				t.Fatalf("SuggestSlot(%s) = %s %s, want %s %s",
					tc.now.Format("15:04"), got.Date, got.Time, tc.wantDate, tc.wantTime)
			}
		})
	}
}

func TestSuggestSlot_BeforeOpening(t *testing.T) {
	got := SuggestSlot(at(7, 45))
	if got.Date != "2026-03-10" || got.Time != "09:00" {
		t.Fatalf("expected same day 09:00, got %s %s", got.Date, got.Time)
	}
}

func TestSuggestSlot_RollsToNextDay(t *testing.T) {
	cases := []time.Time{
		at(18, 31), // rounds to 19:00, which is closing
		at(19, 5),  // already past closing
		at(23, 50), // rounds into the next hour near midnight
	}
	for _, now := range cases {
		got := SuggestSlot(now)
		if got.Date != "2026-03-11" || got.Time != "09:00" {
			t.Fatalf("SuggestSlot(%s): expected next day 09:00, got %s %s",
				now.Format("15:04"), got.Date, got.Time)
		}
	}
}

func TestSuggestSlot_LastSlotOfDay(t *testing.T) {
	got := SuggestSlot(at(18, 10))
	if got.Date != "2026-03-10" || got.Time != "18:30" {
		t.Fatalf("expected same day 18:30, got %s %s", got.Date, got.Time)
	}
}

func TestWithinBusinessHours(t *testing.T) {
	cases := []struct {
		in   string
		want bool
	}{
		{"09:00", true},
		{"18:30", true},
		{"19:00", false},
		{"08:59", false},
		{"12:00", true},
		{"not-a-time", false},
		{"", false},
	}
	for _, tc := range cases {
		if got := WithinBusinessHours(tc.in); got != tc.want {
			t.Fatalf("WithinBusinessHours(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestValidDate(t *testing.T) {
	if !ValidDate("2026-03-10") {
		t.Fatal("expected valid date")
	}
	if ValidDate("10-03-2026") || ValidDate("soon") {
		t.Fatal("expected invalid dates to be rejected")
	}
}
