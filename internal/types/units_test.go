package types

import "testing"

func TestLaborHoursFromMinutes(t *testing.T) {
	cases := []struct {
		minutes int
		want    float64
	}{
		{0, 1},    // floor is one hour
		{30, 1},   // 0.5h rounds to 0.5, floored to 1
		{60, 1},
		{67, 1},    // 1.116h -> 1.0
		{68, 1.25}, // 1.133h -> 1.25
		{90, 1.5},
		{100, 1.75},
		{125, 2},
		{150, 2.5},
	}
	for _, tc := range cases {
		if got := LaborHoursFromMinutes(tc.minutes); got != tc.want {
			t.Errorf("LaborHoursFromMinutes(%d) = %v, want %v", tc.minutes, got, tc.want)
		}
	}
}

func TestCeilToGrid(t *testing.T) {
	cases := []struct {
		value, grid, want int
	}{
		{150, 60, 180},
		{180, 60, 180},
		{0, 60, 0},
		{1, 60, 60},
		{61, 30, 90},
	}
	for _, tc := range cases {
		if got := CeilToGrid(tc.value, tc.grid); got != tc.want {
			t.Errorf("CeilToGrid(%d, %d) = %d, want %d", tc.value, tc.grid, got, tc.want)
		}
	}
}

// Ceiling to a grid twice must not move the value again.
func TestCeilToGridIdempotent(t *testing.T) {
	for v := 0; v <= 300; v++ {
		once := CeilToGrid(v, 60)
		if twice := CeilToGrid(once, 60); twice != once {
			t.Fatalf("CeilToGrid not idempotent at %d: %d then %d", v, once, twice)
		}
	}
}

func TestRoundVolume(t *testing.T) {
	if got := RoundVolume(12.3456); got != 12.35 {
		t.Errorf("RoundVolume(12.3456) = %v, want 12.35", got)
	}
	if got := RoundVolume(3); got != 3 {
		t.Errorf("RoundVolume(3) = %v, want 3", got)
	}
}

func TestCentsRounding(t *testing.T) {
	if got := RoundCents(10.5); got != 11 {
		t.Errorf("RoundCents(10.5) = %d, want 11", got)
	}
	if got := Cents(1000).MulRound(0.955); got != 955 {
		t.Errorf("MulRound(1000, 0.955) = %d, want 955", got)
	}
	if got := Cents(-5).ClampMin0(); got != 0 {
		t.Errorf("ClampMin0(-5) = %d, want 0", got)
	}
	if got := FromEuro(1.2); got != 120 {
		t.Errorf("FromEuro(1.2) = %d, want 120", got)
	}
}
