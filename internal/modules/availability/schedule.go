// README: Scheduling context on top of the slot enumerator: crew duration
// from volume, speed lead times, and the search service.
package availability

import (
	"context"
	"math"
	"time"

	"umzug/internal/modules/pricing"
	"umzug/internal/types"
)

// searchMaxSlots caps a customer-facing slot search.
const searchMaxSlots = 200

// maxDurationMinutes caps one job at a single day.
const maxDurationMinutes = 24 * 60

// DurationMinutesFromVolume derives the blocked duration from the move
// volume: one crew-hour per started 5 m³ plus setup, rounded up to full
// hours, capped at 24h.
func DurationMinutesFromVolume(m3 float64) int {
	crews := int(math.Ceil(m3 / 5))
	if crews < 1 {
		crews = 1
	}
	minutes := types.CeilToGrid(crews*60+30, 60)
	if minutes > maxDurationMinutes {
		return maxDurationMinutes
	}
	return minutes
}

// EffectiveFrom clamps a requested start date up to today plus the speed's
// lead days, in the scheduling timezone.
func EffectiveFrom(requested, now time.Time, leadDays int, loc *time.Location) time.Time {
	floor := startOfDay(now.In(loc)).AddDate(0, 0, leadDays)
	if requested.In(loc).Before(floor) {
		return floor
	}
	return startOfDay(requested.In(loc))
}

// ScheduleStore loads the scheduling inputs for a window.
// Implemented by Store.
type ScheduleStore interface {
	ListActiveRules(ctx context.Context) ([]Rule, error)
	ListExceptions(ctx context.Context, from, to time.Time) ([]Exception, error)
	ListBookings(ctx context.Context, from, to time.Time) ([]Booking, error)
}

// SearchRequest is one customer-facing slot search.
type SearchRequest struct {
	From       time.Time
	To         time.Time
	Speed      types.Speed
	VolumeM3   float64
	MaxResults int
}

type Service struct {
	store   ScheduleStore
	runtime *pricing.RuntimeCache
	loc     *time.Location
	now     func() time.Time
}

func NewService(store ScheduleStore, runtime *pricing.RuntimeCache, loc *time.Location) *Service {
	if loc == nil {
		loc, _ = time.LoadLocation(DefaultTimezone)
	}
	return &Service{store: store, runtime: runtime, loc: loc, now: time.Now}
}

// Search derives the duration and earliest start from the draft, loads the
// window's rules, exceptions and bookings, and enumerates slots.
func (s *Service) Search(ctx context.Context, req SearchRequest) ([]Slot, error) {
	snap, err := s.runtime.Get(ctx)
	if err != nil {
		return nil, err
	}

	from := EffectiveFrom(req.From, s.now(), snap.Config.LeadDays(req.Speed), s.loc)
	to := startOfDay(req.To.In(s.loc))
	if to.Before(from) {
		return nil, nil
	}
	// Bookings ending on the last day can start before the window.
	windowEnd := to.AddDate(0, 0, 1)

	rules, err := s.store.ListActiveRules(ctx)
	if err != nil {
		return nil, err
	}
	exceptions, err := s.store.ListExceptions(ctx, from, windowEnd)
	if err != nil {
		return nil, err
	}
	bookings, err := s.store.ListBookings(ctx, from, windowEnd)
	if err != nil {
		return nil, err
	}

	maxResults := req.MaxResults
	if maxResults <= 0 || maxResults > searchMaxSlots {
		maxResults = searchMaxSlots
	}

	return AvailableSlots(SlotQuery{
		From:            from,
		To:              to,
		DurationMinutes: DurationMinutesFromVolume(req.VolumeM3),
		Rules:           rules,
		Exceptions:      exceptions,
		Bookings:        bookings,
		MaxResults:      maxResults,
		Location:        s.loc,
	}), nil
}
