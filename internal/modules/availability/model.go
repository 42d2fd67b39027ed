// README: Availability aggregate: weekly operating rules, calendar
// exceptions and the booking intervals that consume capacity.
package availability

import "time"

// Rule is one weekly operating band. Times are minutes from midnight in the
// scheduling timezone; Weekday is ISO (1 = Monday .. 7 = Sunday).
type Rule struct {
	ID           string
	Weekday      int
	StartMinutes int
	EndMinutes   int
	SlotMinutes  int
	Capacity     int
	Active       bool
}

// Exception overrides the rules for one calendar date.
type Exception struct {
	Date             time.Time
	Closed           bool
	OverrideCapacity *int
	Note             string
}

// Booking is one confirmed or pending interval occupying capacity.
type Booking struct {
	Start time.Time
	End   time.Time
}

// Slot is one bookable candidate interval.
type Slot struct {
	Start time.Time
	End   time.Time
}

func overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}
