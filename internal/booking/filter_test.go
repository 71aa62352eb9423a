package booking

import (
	"testing"
	"time"

	"github.com/iliyamo/salon-booking/internal/model"
)

var filterToday = time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)

func appt(id uint64, date, tm, status string) model.Appointment {
	return model.Appointment{ID: id, Date: date, Time: tm, Status: status}
}

func ids(appts []model.Appointment) []uint64 {
	out := make([]uint64, len(appts))
	for i, a := range appts {
		out[i] = a.ID
	}
	return out
}

func equalIDs(a, b []uint64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestFilterByStatus(t *testing.T) {
	in := []model.Appointment{
		appt(1, "2026-03-10", "09:00", model.StatusBooked),
		appt(2, "2026-03-11", "10:00", model.StatusCancelled),
		appt(3, "2026-03-12", "11:00", model.StatusBooked),
	}
	if got := FilterByStatus(in, StatusAll); len(got) != 3 {
		t.Fatalf("All: expected 3, got %d", len(got))
	}
	got := FilterByStatus(in, model.StatusCancelled)
	if !equalIDs(ids(got), []uint64{2}) {
		t.Fatalf("cancelled filter: got %v", ids(got))
	}
}

func TestFilterByRange_Next7Days(t *testing.T) {
	in := []model.Appointment{
		appt(1, "2026-03-10", "09:00", model.StatusBooked), // today: included
		appt(2, "2026-03-17", "09:00", model.StatusBooked), // +7: included
		appt(3, "2026-03-18", "09:00", model.StatusBooked), // +8: excluded
		appt(4, "2026-03-09", "09:00", model.StatusBooked), // past: excluded
	}
	got := FilterByRange(in, RangeNext7Days, filterToday)
	if !equalIDs(ids(got), []uint64{1, 2}) {
		t.Fatalf("Next 7 Days: got %v, want [1 2]", ids(got))
	}
}

func TestFilterByRange_Windows(t *testing.T) {
	in := []model.Appointment{
		appt(1, "2026-02-01", "09:00", model.StatusBooked),
		appt(2, "2026-03-05", "09:00", model.StatusBooked),
		appt(3, "2026-03-10", "09:00", model.StatusBooked),
		appt(4, "2026-04-02", "09:00", model.StatusBooked),
		appt(5, "2026-05-01", "09:00", model.StatusBooked),
	}
	cases := []struct {
		rng  string
		want []uint64
	}{
		{RangeAllTime, []uint64{1, 2, 3, 4, 5}},
		{RangeUpcoming, []uint64{3, 4, 5}},
		{RangeLast7Days, []uint64{2, 3}},
		{RangeLast30Days, []uint64{2, 3}},
		{RangeNext30Days, []uint64{3, 4}},
	}
	for _, tc := range cases {
		got := FilterByRange(in, tc.rng, filterToday)
		if !equalIDs(ids(got), tc.want) {
			t.Fatalf("%s: got %v, want %v", tc.rng, ids(got), tc.want)
		}
	}
}

func TestFilterByRange_UnparseableDateExcluded(t *testing.T) {
	in := []model.Appointment{
		appt(1, "someday", "09:00", model.StatusBooked),
		appt(2, "2026-03-10", "09:00", model.StatusBooked),
	}
	got := FilterByRange(in, RangeUpcoming, filterToday)
	if !equalIDs(ids(got), []uint64{2}) {
		t.Fatalf("expected unparseable row dropped, got %v", ids(got))
	}
	// All Time keeps everything, parseable or not.
	if got := FilterByRange(in, RangeAllTime, filterToday); len(got) != 2 {
		t.Fatalf("All Time: expected 2, got %d", len(got))
	}
}

func TestSort_TimeAscending(t *testing.T) {
	in := []model.Appointment{
		appt(1, "2026-03-10", "09:00", model.StatusBooked),
		appt(2, "2026-03-10", "14:30", model.StatusBooked),
		appt(3, "2026-03-10", "11:00", model.StatusBooked),
	}
	got := Sort(in, SortTimeAsc)
	if !equalIDs(ids(got), []uint64{1, 3, 2}) {
		t.Fatalf("time asc: got %v, want [1 3 2]", ids(got))
	}
	got = Sort(in, SortTimeDesc)
	if !equalIDs(ids(got), []uint64{2, 3, 1}) {
		t.Fatalf("time desc: got %v, want [2 3 1]", ids(got))
	}
}

func TestSort_DateStableAndUnparseableFirst(t *testing.T) {
	in := []model.Appointment{
		appt(1, "2026-03-12", "09:00", model.StatusBooked),
		appt(2, "garbled", "10:00", model.StatusBooked),
		appt(3, "2026-03-11", "11:00", model.StatusBooked),
		appt(4, "2026-03-11", "08:00", model.StatusBooked), // same date as 3: stable order
	}
	got := Sort(in, SortDateAsc)
	if !equalIDs(ids(got), []uint64{2, 3, 4, 1}) {
		t.Fatalf("date asc: got %v, want [2 3 4 1]", ids(got))
	}
	// Input must not be mutated.
	if !equalIDs(ids(in), []uint64{1, 2, 3, 4}) {
		t.Fatalf("input mutated: %v", ids(in))
	}
}

func TestApply_Pipeline(t *testing.T) {
	in := []model.Appointment{
		appt(1, "2026-03-12", "10:00", model.StatusBooked),
		appt(2, "2026-03-11", "09:00", model.StatusCancelled),
		appt(3, "2026-03-11", "09:30", model.StatusBooked),
		appt(4, "2026-02-01", "09:00", model.StatusBooked),
	}
	got := Apply(in, Selection{Status: model.StatusBooked, Range: RangeUpcoming, Sort: SortDateAsc}, filterToday)
	if !equalIDs(ids(got), []uint64{3, 1}) {
		t.Fatalf("pipeline: got %v, want [3 1]", ids(got))
	}
	// Empty result is valid output, not an error.
	got = Apply(in, Selection{Status: "no-such-status", Range: RangeAllTime, Sort: SortDateAsc}, filterToday)
	if len(got) != 0 {
		t.Fatalf("expected empty result, got %v", ids(got))
	}
}
