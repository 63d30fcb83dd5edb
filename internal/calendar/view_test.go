package calendar

import (
	"errors"
	"testing"
	"time"
)

func TestParseViewMode(t *testing.T) {
	tests := []struct {
		input string
		want  ViewMode
	}{
		{"day", ViewDay},
		{"Week", ViewWeek},
		{" MONTH ", ViewMonth},
	}
	for _, tt := range tests {
		got, err := ParseViewMode(tt.input)
		if err != nil {
			t.Fatalf("ParseViewMode(%q): unexpected error: %v", tt.input, err)
		}
		if got != tt.want {
			t.Errorf("ParseViewMode(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}

	if _, err := ParseViewMode("fortnight"); !errors.Is(err, ErrInvalidViewMode) {
		t.Errorf("got error %v, want %v", err, ErrInvalidViewMode)
	}
}

func TestVisibleIntervalDay(t *testing.T) {
	anchor := time.Date(2025, 1, 15, 13, 45, 0, 0, time.UTC)
	iv := VisibleInterval(anchor, ViewDay, time.Sunday)

	if !iv.Start.Equal(time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("start = %v", iv.Start)
	}
	if !iv.End.Equal(time.Date(2025, 1, 16, 0, 0, 0, 0, time.UTC).Add(-time.Nanosecond)) {
		t.Errorf("end = %v", iv.End)
	}
}

func TestVisibleIntervalWeek(t *testing.T) {
	// Wednesday anchor, Monday week start: the interval runs from the
	// Monday at or before the anchor through the following Sunday.
	anchor := time.Date(2025, 1, 15, 9, 0, 0, 0, time.UTC)
	iv := VisibleInterval(anchor, ViewWeek, time.Monday)

	wantStart := time.Date(2025, 1, 13, 0, 0, 0, 0, time.UTC)
	wantEnd := time.Date(2025, 1, 20, 0, 0, 0, 0, time.UTC).Add(-time.Nanosecond)
	if !iv.Start.Equal(wantStart) {
		t.Errorf("start = %v, want %v", iv.Start, wantStart)
	}
	if !iv.End.Equal(wantEnd) {
		t.Errorf("end = %v, want %v", iv.End, wantEnd)
	}
	if iv.End.Weekday() != time.Sunday {
		t.Errorf("end lands on %v, want Sunday", iv.End.Weekday())
	}
}

func TestVisibleIntervalMonth(t *testing.T) {
	t.Run("padded to whole weeks", func(t *testing.T) {
		// February 2025 starts on a Saturday and ends on a Friday.
		anchor := time.Date(2025, 2, 14, 0, 0, 0, 0, time.UTC)
		iv := VisibleInterval(anchor, ViewMonth, time.Sunday)

		wantStart := time.Date(2025, 1, 26, 0, 0, 0, 0, time.UTC) // Sunday before Feb 1
		wantEnd := time.Date(2025, 3, 2, 0, 0, 0, 0, time.UTC).Add(-time.Nanosecond)
		if !iv.Start.Equal(wantStart) {
			t.Errorf("start = %v, want %v", iv.Start, wantStart)
		}
		if !iv.End.Equal(wantEnd) {
			t.Errorf("end = %v, want %v", iv.End, wantEnd)
		}
	})

	t.Run("start and end align with week start for every weekday", func(t *testing.T) {
		anchor := time.Date(2025, 7, 10, 0, 0, 0, 0, time.UTC)
		for ws := time.Sunday; ws <= time.Saturday; ws++ {
			iv := VisibleInterval(anchor, ViewMonth, ws)
			if iv.Start.Weekday() != ws {
				t.Errorf("weekStart %v: start lands on %v", ws, iv.Start.Weekday())
			}
			wantEndDay := (ws + 6) % 7
			if iv.End.Weekday() != wantEndDay {
				t.Errorf("weekStart %v: end lands on %v, want %v", ws, iv.End.Weekday(), wantEndDay)
			}
		}
	})

	t.Run("always contains the anchor month", func(t *testing.T) {
		for month := time.January; month <= time.December; month++ {
			anchor := time.Date(2025, month, 15, 0, 0, 0, 0, time.UTC)
			iv := VisibleInterval(anchor, ViewMonth, time.Monday)

			monthStart := time.Date(2025, month, 1, 0, 0, 0, 0, time.UTC)
			monthEnd := monthStart.AddDate(0, 1, 0).Add(-time.Nanosecond)
			if iv.Start.After(monthStart) {
				t.Errorf("%v: interval start %v after month start", month, iv.Start)
			}
			if iv.End.Before(monthEnd) {
				t.Errorf("%v: interval end %v before month end", month, iv.End)
			}
		}
	})
}
