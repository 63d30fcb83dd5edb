package calendar

import (
	"time"

	"github.com/rezcal/rezcal/internal/interval"
)

// Candidate is a proposed slot checked against the existing events.
// Self, when set, is the candidate's own provisional predecessor; it is
// excluded from the scan by pointer identity, not by value.
type Candidate struct {
	Slot       interval.Interval
	ResourceID string
	Self       *DisplayEvent
}

// ViolatesExisting reports whether the candidate slot collides with an
// existing event on the same resource.
//
// Validation is opt-in: when allowMultiplePerCell is true the check always
// passes. Overlap uses half-open semantics, so a slot starting exactly
// where another ends is not a collision. Events without an explicit end
// occupy defaultDuration from their start for comparison purposes.
//
// Events with an empty resource ID are never compared against each other:
// no resource means no shared-resource constraint. Two resource-less
// events can therefore always overlap undetected; callers relying on a
// global exclusivity rule must assign a resource.
func ViolatesExisting(c Candidate, existing []*DisplayEvent, allowMultiplePerCell bool, defaultDuration time.Duration) bool {
	if allowMultiplePerCell {
		return false
	}
	if c.ResourceID == "" {
		return false
	}

	for _, ev := range existing {
		if ev == nil || ev == c.Self {
			continue
		}
		if ev.ResourceID != c.ResourceID {
			continue
		}
		if c.Slot.Overlaps(ev.Slot(defaultDuration)) {
			return true
		}
	}
	return false
}
