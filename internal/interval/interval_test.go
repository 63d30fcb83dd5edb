package interval

import (
	"errors"
	"testing"
	"time"
)

func mustInterval(t *testing.T, startHour, endHour int) Interval {
	t.Helper()
	day := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)
	iv, err := New(day.Add(time.Duration(startHour)*time.Hour), day.Add(time.Duration(endHour)*time.Hour))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return iv
}

func TestNew(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		start := time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC)
		end := start.Add(time.Hour)
		iv, err := New(start, end)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !iv.Start.Equal(start) || !iv.End.Equal(end) {
			t.Errorf("got %v, want [%v, %v]", iv, start, end)
		}
	})

	t.Run("zero length is allowed", func(t *testing.T) {
		at := time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC)
		if _, err := New(at, at); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("end before start", func(t *testing.T) {
		start := time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC)
		_, err := New(start, start.Add(-time.Minute))
		if !errors.Is(err, ErrEndBeforeStart) {
			t.Errorf("got error %v, want %v", err, ErrEndBeforeStart)
		}
	})
}

func TestContains(t *testing.T) {
	outer := mustInterval(t, 8, 18)

	tests := []struct {
		name string
		sub  Interval
		want bool
	}{
		{"strict sub-interval", mustInterval(t, 9, 17), true},
		{"identical bounds", mustInterval(t, 8, 18), true},
		{"shared start", mustInterval(t, 8, 12), true},
		{"shared end", mustInterval(t, 12, 18), true},
		{"starts earlier", mustInterval(t, 7, 12), false},
		{"ends later", mustInterval(t, 12, 19), false},
		{"fully outside", mustInterval(t, 19, 20), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := outer.Contains(tt.sub); got != tt.want {
				t.Errorf("Contains(%v) = %v, want %v", tt.sub, got, tt.want)
			}
		})
	}
}

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name string
		a, b Interval
		want bool
	}{
		{"partial overlap", mustInterval(t, 9, 11), mustInterval(t, 10, 12), true},
		{"a contains b", mustInterval(t, 8, 18), mustInterval(t, 10, 11), true},
		{"identical", mustInterval(t, 9, 10), mustInterval(t, 9, 10), true},
		{"touching boundaries", mustInterval(t, 10, 11), mustInterval(t, 11, 12), false},
		{"disjoint", mustInterval(t, 8, 9), mustInterval(t, 12, 13), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Overlaps(tt.b); got != tt.want {
				t.Errorf("Overlaps = %v, want %v", got, tt.want)
			}
			// Overlap must be symmetric.
			if got := tt.b.Overlaps(tt.a); got != tt.want {
				t.Errorf("reversed Overlaps = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCeilToNearest(t *testing.T) {
	tests := []struct {
		amount, precision, want int
	}{
		{0, 30, 0},
		{1, 30, 30},
		{29, 30, 30},
		{30, 30, 30},
		{31, 30, 60},
		{45, 40, 80},
		{-15, 30, 0},
		{7, 0, 7},
	}

	for _, tt := range tests {
		if got := CeilToNearest(tt.amount, tt.precision); got != tt.want {
			t.Errorf("CeilToNearest(%d, %d) = %d, want %d", tt.amount, tt.precision, got, tt.want)
		}
	}
}

func TestFloorToNearest(t *testing.T) {
	tests := []struct {
		amount, precision, want int
	}{
		{0, 18, 0},
		{17, 18, 0},
		{18, 18, 18},
		{35, 18, 18},
		{-1, 18, -18},
		{7, 0, 7},
	}

	for _, tt := range tests {
		if got := FloorToNearest(tt.amount, tt.precision); got != tt.want {
			t.Errorf("FloorToNearest(%d, %d) = %d, want %d", tt.amount, tt.precision, got, tt.want)
		}
	}
}
