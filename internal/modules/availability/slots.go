// README: Slot enumeration. Capacity is enforced per grid segment, so a long
// booking cannot silently over-commit a later grid cell.
package availability

import (
	"sort"
	"time"
)

// DefaultTimezone is the scheduling timezone unless a query overrides it.
const DefaultTimezone = "Europe/Berlin"

// defaultMaxSlots caps one enumeration pass.
const defaultMaxSlots = 80

// SlotQuery asks for bookable slots of a fixed duration in a date range.
type SlotQuery struct {
	From            time.Time
	To              time.Time
	DurationMinutes int
	Rules           []Rule
	Exceptions      []Exception
	Bookings        []Booking
	// MaxResults caps the total slot count; 0 means the default of 80.
	MaxResults int
	// Location defaults to Europe/Berlin.
	Location *time.Location
}

// AvailableSlots enumerates candidate slots chronologically. An empty result
// is a valid answer, not an error.
func AvailableSlots(q SlotQuery) []Slot {
	loc := q.Location
	if loc == nil {
		loc, _ = time.LoadLocation(DefaultTimezone)
	}
	maxResults := q.MaxResults
	if maxResults <= 0 {
		maxResults = defaultMaxSlots
	}
	duration := time.Duration(q.DurationMinutes) * time.Minute
	if duration <= 0 {
		return nil
	}

	exceptions := exceptionsByDate(q.Exceptions, loc)

	var slots []Slot
	from := startOfDay(q.From.In(loc))
	to := startOfDay(q.To.In(loc))
	for day := from; !day.After(to); day = day.AddDate(0, 0, 1) {
		exc, hasExc := exceptions[dateKey(day)]
		if hasExc && exc.Closed {
			continue
		}

		rules := rulesForWeekday(q.Rules, isoWeekday(day))
		if len(rules) == 0 {
			continue
		}

		for _, rule := range rules {
			capacity := rule.Capacity
			if hasExc && exc.OverrideCapacity != nil {
				capacity = *exc.OverrideCapacity
			}
			grid := time.Duration(rule.SlotMinutes) * time.Minute
			if grid <= 0 {
				continue
			}
			dayStart := day.Add(time.Duration(rule.StartMinutes) * time.Minute)
			dayEnd := day.Add(time.Duration(rule.EndMinutes) * time.Minute)

			for start := dayStart; ; start = start.Add(grid) {
				end := start.Add(duration)
				if end.After(dayEnd) {
					break
				}
				if segmentsFit(start, end, grid, capacity, q.Bookings) {
					slots = append(slots, Slot{Start: start, End: end})
					if len(slots) >= maxResults {
						return slots
					}
				}
			}
		}
	}
	return slots
}

// segmentsFit walks [start, end) in grid steps and checks each segment's
// booking overlap against the capacity. The final segment is checked even
// when the duration is not a grid multiple.
func segmentsFit(start, end time.Time, grid time.Duration, capacity int, bookings []Booking) bool {
	for seg := start; seg.Before(end); seg = seg.Add(grid) {
		segEnd := seg.Add(grid)
		count := 0
		for _, b := range bookings {
			if overlaps(seg, segEnd, b.Start, b.End) {
				count++
			}
		}
		if count >= capacity {
			return false
		}
	}
	return true
}

func rulesForWeekday(rules []Rule, weekday int) []Rule {
	var out []Rule
	for _, r := range rules {
		if r.Active && r.Weekday == weekday {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartMinutes < out[j].StartMinutes })
	return out
}

func isoWeekday(t time.Time) int {
	wd := int(t.Weekday())
	if wd == 0 {
		return 7
	}
	return wd
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func dateKey(t time.Time) string {
	return t.Format("2006-01-02")
}

func exceptionsByDate(excs []Exception, loc *time.Location) map[string]Exception {
	m := make(map[string]Exception, len(excs))
	for _, e := range excs {
		m[dateKey(e.Date.In(loc))] = e
	}
	return m
}
