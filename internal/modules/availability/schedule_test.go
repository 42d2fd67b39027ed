package availability

import (
	"context"
	"testing"
	"time"

	"umzug/internal/modules/pricing"
	"umzug/internal/types"
)

func TestDurationMinutesFromVolume(t *testing.T) {
	tests := []struct {
		m3   float64
		want int
	}{
		{0, 120},
		{1, 120},
		{5, 120},
		{5.1, 180},
		{10, 180},
		{24, 360},
		{500, 1440},
	}
	for _, tt := range tests {
		if got := DurationMinutesFromVolume(tt.m3); got != tt.want {
			t.Errorf("DurationMinutesFromVolume(%v) = %d, want %d", tt.m3, got, tt.want)
		}
	}
}

func TestEffectiveFrom(t *testing.T) {
	now := time.Date(2026, 3, 2, 10, 30, 0, 0, berlin)

	tests := []struct {
		name      string
		requested time.Time
		leadDays  int
		want      time.Time
	}{
		{
			name:      "inside lead time is clamped up",
			requested: time.Date(2026, 3, 5, 0, 0, 0, 0, berlin),
			leadDays:  7,
			want:      time.Date(2026, 3, 9, 0, 0, 0, 0, berlin),
		},
		{
			name:      "beyond lead time is kept",
			requested: time.Date(2026, 3, 15, 9, 0, 0, 0, berlin),
			leadDays:  7,
			want:      time.Date(2026, 3, 15, 0, 0, 0, 0, berlin),
		},
		{
			name:      "zero lead days floors at today",
			requested: time.Date(2026, 2, 20, 0, 0, 0, 0, berlin),
			leadDays:  0,
			want:      time.Date(2026, 3, 2, 0, 0, 0, 0, berlin),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EffectiveFrom(tt.requested, now, tt.leadDays, berlin)
			if !got.Equal(tt.want) {
				t.Errorf("EffectiveFrom() = %v, want %v", got, tt.want)
			}
		})
	}
}

type scheduleSnapSource struct{}

func (scheduleSnapSource) MarkerVersion(ctx context.Context) (string, error) { return "v1", nil }

func (scheduleSnapSource) FetchSnapshot(ctx context.Context) (*pricing.Snapshot, error) {
	return &pricing.Snapshot{
		Config: pricing.Config{
			ID:               "cfg-test",
			EconomyLeadDays:  14,
			StandardLeadDays: 7,
			ExpressLeadDays:  2,
		},
		Version: "v1",
	}, nil
}

type fakeScheduleStore struct {
	rules      []Rule
	exceptions []Exception
	bookings   []Booking
}

func (f *fakeScheduleStore) ListActiveRules(ctx context.Context) ([]Rule, error) {
	return f.rules, nil
}

func (f *fakeScheduleStore) ListExceptions(ctx context.Context, from, to time.Time) ([]Exception, error) {
	return f.exceptions, nil
}

func (f *fakeScheduleStore) ListBookings(ctx context.Context, from, to time.Time) ([]Booking, error) {
	return f.bookings, nil
}

func TestService_Search(t *testing.T) {
	store := &fakeScheduleStore{rules: []Rule{mondayRule(2)}}
	svc := NewService(store, pricing.NewRuntimeCache(scheduleSnapSource{}), berlin)
	// Wednesday 2026-02-25. Express lead of 2 days floors the window at
	// Friday, so the first bookable Monday is 2026-03-02.
	svc.now = func() time.Time { return time.Date(2026, 2, 25, 9, 0, 0, 0, berlin) }

	slots, err := svc.Search(context.Background(), SearchRequest{
		From:     time.Date(2026, 2, 20, 0, 0, 0, 0, berlin),
		To:       time.Date(2026, 3, 3, 0, 0, 0, 0, berlin),
		Speed:    types.SpeedExpress,
		VolumeM3: 24, // 360 min
	})
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}

	if len(slots) == 0 {
		t.Fatal("Search() returned no slots")
	}
	// 6h job on the Monday band: starts 08:00 through 12:00.
	if len(slots) != 5 {
		t.Errorf("len(slots) = %d, want 5", len(slots))
	}
	if !slots[0].Start.Equal(time.Date(2026, 3, 2, 8, 0, 0, 0, berlin)) {
		t.Errorf("first slot starts %v, want Monday 08:00", slots[0].Start)
	}
}

func TestService_Search_EmptyWindow(t *testing.T) {
	store := &fakeScheduleStore{rules: []Rule{mondayRule(2)}}
	svc := NewService(store, pricing.NewRuntimeCache(scheduleSnapSource{}), berlin)
	svc.now = func() time.Time { return time.Date(2026, 2, 25, 9, 0, 0, 0, berlin) }

	// The whole requested window lies inside the lead time.
	slots, err := svc.Search(context.Background(), SearchRequest{
		From:  time.Date(2026, 2, 25, 0, 0, 0, 0, berlin),
		To:    time.Date(2026, 2, 26, 0, 0, 0, 0, berlin),
		Speed: types.SpeedExpress,
	})
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(slots) != 0 {
		t.Errorf("len(slots) = %d, want 0", len(slots))
	}
}
