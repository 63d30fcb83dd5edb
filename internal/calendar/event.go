package calendar

import (
	"time"

	"github.com/rezcal/rezcal/internal/interval"
)

// ColorTag classifies how a display event should be styled.
type ColorTag int

const (
	// TagDefault is the style for ordinary reservations.
	TagDefault ColorTag = iota
	// TagOwned marks reservations belonging to the current user when
	// highlighting is enabled.
	TagOwned
	// TagCreated marks the single in-progress slot being drawn by
	// drag-to-create.
	TagCreated
)

// DisplayEvent is the engine's renderable projection of a CalendarItem,
// or of the provisional created slot (Item == nil). Exactly one display
// event exists per item, plus at most one provisional event.
//
// Display events are compared by pointer identity. The provisional event
// is the only display event the engine mutates in place, and only while
// its drag session is active or being resized.
type DisplayEvent struct {
	Start      time.Time
	End        time.Time
	Title      string
	Tag        ColorTag
	ResourceID string
	Item       *CalendarItem // nil for the provisional slot
}

// Slot returns the event's time range. Events lacking an explicit end are
// given the provided default duration, mirroring the conflict validator.
func (e *DisplayEvent) Slot(defaultDuration time.Duration) interval.Interval {
	end := e.End
	if end.IsZero() {
		end = e.Start.Add(defaultDuration)
	}
	return interval.Interval{Start: e.Start, End: end}
}

// newDisplayEvent wraps a calendar item. The item pointer is retained,
// never cloned, so host-side identity is preserved.
func newDisplayEvent(item *CalendarItem) *DisplayEvent {
	return &DisplayEvent{
		Start:      item.Slot.Start,
		End:        item.Slot.End,
		Title:      item.Title,
		Tag:        TagDefault,
		ResourceID: item.ResourceID(),
		Item:       item,
	}
}
