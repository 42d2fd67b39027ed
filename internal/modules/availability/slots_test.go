package availability

import (
	"testing"
	"time"
)

var berlin = mustLoadBerlin()

func mustLoadBerlin() *time.Location {
	loc, err := time.LoadLocation("Europe/Berlin")
	if err != nil {
		panic(err)
	}
	return loc
}

// monday is 2026-03-02, a Monday.
func monday(hour, min int) time.Time {
	return time.Date(2026, 3, 2, hour, min, 0, 0, berlin)
}

func mondayRule(capacity int) Rule {
	return Rule{
		ID:           "mon",
		Weekday:      1,
		StartMinutes: 8 * 60,
		EndMinutes:   18 * 60,
		SlotMinutes:  60,
		Capacity:     capacity,
		Active:       true,
	}
}

func singleDayQuery(q SlotQuery) SlotQuery {
	q.From = monday(0, 0)
	q.To = monday(0, 0)
	q.Location = berlin
	return q
}

// The reference scenario: Mon 08:00-18:00, 60-min grid, capacity 2, duration
// 120 min, one booking 09:00-10:00. Every hourly start from 08:00 to 16:00
// fits because no segment reaches the capacity of two.
func TestAvailableSlots_Reference(t *testing.T) {
	slots := AvailableSlots(singleDayQuery(SlotQuery{
		DurationMinutes: 120,
		Rules:           []Rule{mondayRule(2)},
		Bookings:        []Booking{{Start: monday(9, 0), End: monday(10, 0)}},
	}))

	if len(slots) != 9 {
		t.Fatalf("len(slots) = %d, want 9", len(slots))
	}
	if !slots[0].Start.Equal(monday(8, 0)) || !slots[0].End.Equal(monday(10, 0)) {
		t.Errorf("first slot = %v-%v, want 08:00-10:00", slots[0].Start, slots[0].End)
	}
	last := slots[len(slots)-1]
	if !last.Start.Equal(monday(16, 0)) || !last.End.Equal(monday(18, 0)) {
		t.Errorf("last slot = %v-%v, want 16:00-18:00", last.Start, last.End)
	}
	for _, s := range slots {
		if s.End.After(monday(18, 0)) {
			t.Errorf("slot %v-%v exceeds the operating window", s.Start, s.End)
		}
	}
}

// With capacity 1 the same booking blocks every candidate touching the
// 09:00-10:00 grid cell.
func TestAvailableSlots_SegmentCapacity(t *testing.T) {
	slots := AvailableSlots(singleDayQuery(SlotQuery{
		DurationMinutes: 120,
		Rules:           []Rule{mondayRule(1)},
		Bookings:        []Booking{{Start: monday(9, 0), End: monday(10, 0)}},
	}))

	if len(slots) != 7 {
		t.Fatalf("len(slots) = %d, want 7", len(slots))
	}
	if !slots[0].Start.Equal(monday(10, 0)) {
		t.Errorf("first slot starts %v, want 10:00", slots[0].Start)
	}
}

// A candidate's final partial segment is still checked on the full grid
// cell: a 90-min job starting 08:00 walks segments 08:00-09:00 and
// 09:00-10:00, so a booking late in the second cell blocks it.
func TestAvailableSlots_PartialSegmentChecked(t *testing.T) {
	slots := AvailableSlots(singleDayQuery(SlotQuery{
		DurationMinutes: 90,
		Rules:           []Rule{mondayRule(1)},
		Bookings:        []Booking{{Start: monday(9, 45), End: monday(10, 30)}},
	}))

	for _, s := range slots {
		if s.Start.Equal(monday(8, 0)) {
			t.Errorf("08:00 start accepted despite the blocked 09:00-10:00 cell")
		}
	}
}

func TestAvailableSlots_ClosedException(t *testing.T) {
	slots := AvailableSlots(singleDayQuery(SlotQuery{
		DurationMinutes: 120,
		Rules:           []Rule{mondayRule(2)},
		Exceptions:      []Exception{{Date: monday(0, 0), Closed: true}},
	}))

	if len(slots) != 0 {
		t.Errorf("len(slots) = %d, want 0 on a closed day", len(slots))
	}
}

func TestAvailableSlots_OverrideCapacity(t *testing.T) {
	zero := 0
	slots := AvailableSlots(singleDayQuery(SlotQuery{
		DurationMinutes: 120,
		Rules:           []Rule{mondayRule(2)},
		Exceptions:      []Exception{{Date: monday(0, 0), OverrideCapacity: &zero}},
	}))
	if len(slots) != 0 {
		t.Errorf("len(slots) = %d, want 0 with capacity overridden to zero", len(slots))
	}

	one := 1
	slots = AvailableSlots(singleDayQuery(SlotQuery{
		DurationMinutes: 120,
		Rules:           []Rule{mondayRule(2)},
		Exceptions:      []Exception{{Date: monday(0, 0), OverrideCapacity: &one}},
		Bookings:        []Booking{{Start: monday(9, 0), End: monday(10, 0)}},
	}))
	if len(slots) != 7 {
		t.Errorf("len(slots) = %d, want 7 with capacity overridden to one", len(slots))
	}
}

func TestAvailableSlots_DurationMustFitWindow(t *testing.T) {
	slots := AvailableSlots(singleDayQuery(SlotQuery{
		DurationMinutes: 11 * 60,
		Rules:           []Rule{mondayRule(2)},
	}))
	if len(slots) != 0 {
		t.Errorf("len(slots) = %d, want 0 for a duration longer than the window", len(slots))
	}
}

func TestAvailableSlots_InactiveAndWrongWeekday(t *testing.T) {
	inactive := mondayRule(2)
	inactive.Active = false
	tuesday := mondayRule(2)
	tuesday.Weekday = 2

	slots := AvailableSlots(singleDayQuery(SlotQuery{
		DurationMinutes: 120,
		Rules:           []Rule{inactive, tuesday},
	}))
	if len(slots) != 0 {
		t.Errorf("len(slots) = %d, want 0", len(slots))
	}
}

func TestAvailableSlots_MultipleBandsOrdered(t *testing.T) {
	morning := mondayRule(1)
	morning.ID = "mon-am"
	morning.EndMinutes = 12 * 60
	evening := mondayRule(1)
	evening.ID = "mon-pm"
	evening.StartMinutes = 14 * 60

	slots := AvailableSlots(singleDayQuery(SlotQuery{
		DurationMinutes: 120,
		Rules:           []Rule{evening, morning},
	}))

	// Morning: 08,09,10. Evening: 14,15,16.
	if len(slots) != 6 {
		t.Fatalf("len(slots) = %d, want 6", len(slots))
	}
	for i := 1; i < len(slots); i++ {
		if slots[i].Start.Before(slots[i-1].Start) {
			t.Errorf("slots out of order at %d: %v before %v", i, slots[i].Start, slots[i-1].Start)
		}
	}
}

func TestAvailableSlots_MaxResults(t *testing.T) {
	slots := AvailableSlots(singleDayQuery(SlotQuery{
		DurationMinutes: 60,
		Rules:           []Rule{mondayRule(2)},
		MaxResults:      3,
	}))
	if len(slots) != 3 {
		t.Errorf("len(slots) = %d, want 3", len(slots))
	}
}

func TestAvailableSlots_MultiDayRange(t *testing.T) {
	rule := mondayRule(1)
	slots := AvailableSlots(SlotQuery{
		From:            monday(0, 0),
		To:              monday(0, 0).AddDate(0, 0, 13),
		DurationMinutes: 10 * 60,
		Rules:           []Rule{rule},
		Location:        berlin,
	})

	// One 10h slot per Monday, two Mondays in range.
	if len(slots) != 2 {
		t.Fatalf("len(slots) = %d, want 2", len(slots))
	}
	if !slots[1].Start.Equal(monday(8, 0).AddDate(0, 0, 7)) {
		t.Errorf("second slot starts %v, want the following Monday 08:00", slots[1].Start)
	}
}
