package calendar

import (
	"testing"
	"time"

	"github.com/rezcal/rezcal/internal/interval"
)

var conflictDay = time.Date(2025, 5, 20, 0, 0, 0, 0, time.UTC)

func slot(startHour, startMin, endHour, endMin int) interval.Interval {
	return interval.Interval{
		Start: conflictDay.Add(time.Duration(startHour)*time.Hour + time.Duration(startMin)*time.Minute),
		End:   conflictDay.Add(time.Duration(endHour)*time.Hour + time.Duration(endMin)*time.Minute),
	}
}

func displayEvent(iv interval.Interval, resourceID string) *DisplayEvent {
	return &DisplayEvent{
		Start:      iv.Start,
		End:        iv.End,
		Title:      "existing",
		ResourceID: resourceID,
	}
}

func TestViolatesExisting(t *testing.T) {
	const granularity = 30 * time.Minute

	t.Run("allow multiple disables validation", func(t *testing.T) {
		existing := []*DisplayEvent{displayEvent(slot(9, 0, 10, 0), "1")}
		c := Candidate{Slot: slot(9, 30, 10, 30), ResourceID: "1"}
		if ViolatesExisting(c, existing, true, granularity) {
			t.Error("validation must be disabled when multiple events per cell are allowed")
		}
	})

	t.Run("overlap on same resource violates", func(t *testing.T) {
		existing := []*DisplayEvent{displayEvent(slot(9, 0, 10, 0), "1")}
		c := Candidate{Slot: slot(9, 30, 10, 30), ResourceID: "1"}
		if !ViolatesExisting(c, existing, false, granularity) {
			t.Error("expected violation")
		}
	})

	t.Run("identical times on different resources do not violate", func(t *testing.T) {
		existing := []*DisplayEvent{displayEvent(slot(9, 0, 10, 0), "2")}
		c := Candidate{Slot: slot(9, 0, 10, 0), ResourceID: "1"}
		if ViolatesExisting(c, existing, false, granularity) {
			t.Error("different resources must not conflict")
		}
	})

	t.Run("boundary touching is not a conflict", func(t *testing.T) {
		existing := []*DisplayEvent{displayEvent(slot(9, 0, 10, 0), "1")}
		c := Candidate{Slot: slot(10, 0, 11, 0), ResourceID: "1"}
		if ViolatesExisting(c, existing, false, granularity) {
			t.Error("slot starting at an existing end must not conflict")
		}
	})

	t.Run("resource-less events are exempt", func(t *testing.T) {
		existing := []*DisplayEvent{displayEvent(slot(9, 0, 10, 0), "")}
		c := Candidate{Slot: slot(9, 0, 10, 0), ResourceID: ""}
		if ViolatesExisting(c, existing, false, granularity) {
			t.Error("events without a resource carry no shared-resource constraint")
		}
	})

	t.Run("self is excluded by identity", func(t *testing.T) {
		self := displayEvent(slot(9, 0, 10, 0), "1")
		other := displayEvent(slot(9, 0, 10, 0), "1")
		existing := []*DisplayEvent{self, other}

		c := Candidate{Slot: slot(9, 0, 11, 0), ResourceID: "1", Self: self}
		if !ViolatesExisting(c, existing, false, granularity) {
			t.Error("the other event must still violate")
		}

		c = Candidate{Slot: slot(9, 0, 11, 0), ResourceID: "1", Self: self}
		if !ViolatesExisting(c, []*DisplayEvent{self, other}, false, granularity) {
			t.Error("expected violation against non-self event")
		}
		if ViolatesExisting(c, []*DisplayEvent{self}, false, granularity) {
			t.Error("candidate must not conflict with itself")
		}
	})

	t.Run("missing end occupies one granularity unit", func(t *testing.T) {
		open := &DisplayEvent{Start: slot(9, 0, 9, 0).Start, ResourceID: "1"}
		existing := []*DisplayEvent{open}

		// Overlapping the implied [09:00, 09:30) range violates.
		c := Candidate{Slot: slot(9, 15, 10, 0), ResourceID: "1"}
		if !ViolatesExisting(c, existing, false, granularity) {
			t.Error("expected violation inside the implied duration")
		}

		// Starting at the implied end does not.
		c = Candidate{Slot: slot(9, 30, 10, 0), ResourceID: "1"}
		if ViolatesExisting(c, existing, false, granularity) {
			t.Error("implied end must behave half-open")
		}
	})
}
