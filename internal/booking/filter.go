package booking

import (
	"sort"
	"time"

	"github.com/iliyamo/salon-booking/internal/model"
)

// Selector values accepted by the filter/sort pipeline. The strings
// match what the client shows, so they travel as-is in query params.
const (
	StatusAll = "All"

	RangeUpcoming   = "Upcoming"
	RangeAllTime    = "All Time"
	RangeLast7Days  = "Last 7 Days"
	RangeLast30Days = "Last 30 Days"
	RangeNext7Days  = "Next 7 Days"
	RangeNext30Days = "Next 30 Days"

	SortDateAsc  = "Date (Ascending)"
	SortDateDesc = "Date (Descending)"
	SortTimeAsc  = "Time (Ascending)"
	SortTimeDesc = "Time (Descending)"
)

// Selection bundles the three display selectors.
type Selection struct {
	Status string
	Range  string
	Sort   string
}

// DefaultSelection mirrors the initial state of the appointments
// screen: everything, upcoming first.
func DefaultSelection() Selection {
	return Selection{Status: StatusAll, Range: RangeUpcoming, Sort: SortDateAsc}
}

// Apply runs the full pipeline: status filter, date-range filter
// against today, then a stable sort. The input slice is not mutated.
// An empty result is a valid outcome distinct from "no data at all".
func Apply(appts []model.Appointment, sel Selection, today time.Time) []model.Appointment {
	out := FilterByStatus(appts, sel.Status)
	out = FilterByRange(out, sel.Range, today)
	return Sort(out, sel.Sort)
}

// FilterByStatus keeps appointments matching the exact status, or
// everything when status is All (or empty).
func FilterByStatus(appts []model.Appointment, status string) []model.Appointment {
	if status == "" || status == StatusAll {
		return append([]model.Appointment{}, appts...)
	}
	out := []model.Appointment{}
	for _, a := range appts {
		if a.Status == status {
			out = append(out, a)
		}
	}
	return out
}

// FilterByRange keeps appointments whose date falls inside the named
// window relative to today. Rows with unparseable dates are silently
// excluded by every window except All Time. Both window edges are
// inclusive, so an appointment dated today survives Upcoming, Last N
// and Next N alike.
func FilterByRange(appts []model.Appointment, rng string, today time.Time) []model.Appointment {
	if rng == "" || rng == RangeAllTime {
		return append([]model.Appointment{}, appts...)
	}
	// Compare in UTC at day precision; parsed dates are UTC midnights.
	day := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)
	out := []model.Appointment{}
	for _, a := range appts {
		d, err := time.Parse(DateLayout, a.Date)
		if err != nil {
			continue
		}
		var keep bool
		switch rng {
		case RangeUpcoming:
			keep = !d.Before(day)
		case RangeLast7Days:
			keep = !d.Before(day.AddDate(0, 0, -7)) && !d.After(day)
		case RangeLast30Days:
			keep = !d.Before(day.AddDate(0, 0, -30)) && !d.After(day)
		case RangeNext7Days:
			keep = !d.Before(day) && !d.After(day.AddDate(0, 0, 7))
		case RangeNext30Days:
			keep = !d.Before(day) && !d.After(day.AddDate(0, 0, 30))
		default:
			keep = true
		}
		if keep {
			out = append(out, a)
		}
	}
	return out
}

// Sort orders appointments by the chosen key. The sort is stable so
// ties keep their original relative order, and unparseable values
// sort as the minimum. The input slice is not mutated.
func Sort(appts []model.Appointment, key string) []model.Appointment {
	out := append([]model.Appointment{}, appts...)
	switch key {
	case SortDateAsc, SortDateDesc:
		asc := key == SortDateAsc
		sort.SliceStable(out, func(i, j int) bool {
			a, b := parseOrMin(out[i].Date, DateLayout), parseOrMin(out[j].Date, DateLayout)
			if asc {
				return a.Before(b)
			}
			return b.Before(a)
		})
	case SortTimeAsc, SortTimeDesc:
		asc := key == SortTimeAsc
		sort.SliceStable(out, func(i, j int) bool {
			a, b := parseOrMin(out[i].Time, TimeLayout), parseOrMin(out[j].Time, TimeLayout)
			if asc {
				return a.Before(b)
			}
			return b.Before(a)
		})
	}
	return out
}

// parseOrMin parses a value in the given layout, mapping failures to
// the zero time so they sort first ascending and last descending.
func parseOrMin(s, layout string) time.Time {
	t, err := time.Parse(layout, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
