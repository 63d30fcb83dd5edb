package calendar

import (
	"time"

	"github.com/rezcal/rezcal/internal/interval"
)

// PointerKind distinguishes the phases of a unified pointer gesture.
// Mouse and touch input are merged into these samples before they reach
// the engine; the engine does not care about the source device. Hosts
// repurposing a touch gesture for slot drawing must suppress the
// platform's default scroll behavior themselves before forwarding move
// samples.
type PointerKind int

const (
	// PointerStart begins a drag on the cell under the pointer.
	PointerStart PointerKind = iota
	// PointerMove updates the in-flight drag.
	PointerMove
	// PointerEnd commits the drag.
	PointerEnd
)

// Point is a screen position in pixels (or terminal cells; the engine
// only needs the unit to match CellMetrics).
type Point struct {
	X int
	Y int
}

// CellMetrics describes the on-screen size of one grid cell: Height is
// the pixel height of one snapping-granularity row, Width the pixel
// width of one day column. Both must be positive for a drag to begin.
type CellMetrics struct {
	Height int
	Width  int
}

// PointerSample is one unified pointer/touch input event delivered by the
// rendering layer.
type PointerSample struct {
	Kind   PointerKind
	Screen Point
	// Anchor is the instant of the grid cell under the initial press.
	// Only consulted on PointerStart.
	Anchor time.Time
	// ResourceID scopes conflict validation for the new slot. Optional.
	ResourceID string
	// Cell carries the grid cell dimensions at the press position.
	// Only consulted on PointerStart.
	Cell CellMetrics
}

// dragSession is the transient state of one drag-to-create interaction:
// Idle -> Dragging -> Committed or Cancelled -> Idle. At most one session
// exists; the engine is its sole owner and the only writer of the
// provisional event while it is active. Destroying the session (commit,
// cancel, or eviction by a new drag) is the release half of the
// listener-registration obligation: once the session pointer is nil,
// further move and end samples have no effect.
type dragSession struct {
	anchor     time.Time
	resourceID string
	origin     Point
	cell       CellMetrics
	event      *DisplayEvent
}

// HandlePointer dispatches a unified pointer sample to the drag state
// machine. Samples arriving while no session is active are ignored.
func (e *Engine) HandlePointer(s PointerSample) {
	switch s.Kind {
	case PointerStart:
		e.BeginDrag(s.Screen, s.Anchor, s.ResourceID, s.Cell)
	case PointerMove:
		e.DragMove(s.Screen)
	case PointerEnd:
		e.EndDrag()
	}
}

// Dragging reports whether a drag session is active.
func (e *Engine) Dragging() bool { return e.drag != nil }

// BeginDrag starts creating a slot by dragging from the cell at the given
// anchor instant. No-op unless slot selection is enabled and the cell
// metrics are usable.
//
// A previous provisional event is evicted first: at most one provisional
// event exists at any time. The drag is refused, leaving the engine Idle
// with no provisional event and no notification, when the default-length
// candidate already conflicts with an existing reservation.
//
// Returns whether a session was started.
func (e *Engine) BeginDrag(origin Point, anchor time.Time, resourceID string, cell CellMetrics) bool {
	e.guardReentry()
	if !e.opts.AllowSlotSelection || cell.Height <= 0 || cell.Width <= 0 {
		return false
	}

	// Evict any previous session and provisional event. Same-object
	// replace, not accumulate.
	e.drag = nil
	e.removeCreated()

	candidate := Candidate{
		Slot:       interval.Interval{Start: anchor, End: anchor.Add(e.SlotDuration())},
		ResourceID: resourceID,
	}
	if ViolatesExisting(candidate, e.events, e.opts.AllowMultiplePerCell, e.SlotDuration()) {
		e.emitRefresh()
		return false
	}

	e.created = e.newCreatedEvent(anchor, time.Time{}, resourceID)
	e.events = append(e.events, e.created)
	e.drag = &dragSession{
		anchor:     anchor,
		resourceID: resourceID,
		origin:     origin,
		cell:       cell,
		event:      e.created,
	}
	e.emitRefresh()
	return true
}

// DragMove feeds one move sample to the active session. The vertical
// delta from the origin is ceiling-snapped to whole cells and converted
// to minutes, the horizontal delta floor-snapped to whole columns and
// converted to days; together they produce a candidate end time.
//
// The candidate is accepted only when it lies strictly after the anchor
// and survives conflict validation. Rejected samples leave the previously
// accepted end unchanged; rejection is silent backpressure on the visual
// feedback, never an error. Samples are processed strictly in delivery
// order with no look-ahead.
func (e *Engine) DragMove(p Point) {
	e.guardReentry()
	d := e.drag
	if d == nil {
		return
	}

	minutesDiff := interval.CeilToNearest(p.Y-d.origin.Y, d.cell.Height) / d.cell.Height * e.opts.SlotMinutes
	daysDiff := interval.FloorToNearest(p.X-d.origin.X, d.cell.Width) / d.cell.Width

	newEnd := d.anchor.Add(time.Duration(minutesDiff) * time.Minute).AddDate(0, 0, daysDiff)
	if !newEnd.After(d.anchor) {
		return
	}

	candidate := Candidate{
		Slot:       interval.Interval{Start: d.anchor, End: newEnd},
		ResourceID: d.resourceID,
		Self:       d.event,
	}
	if ViolatesExisting(candidate, e.events, e.opts.AllowMultiplePerCell, e.SlotDuration()) {
		return
	}

	d.event.End = newEnd
	d.event.Title = e.buildSlotTitle(d.anchor, newEnd)
	e.emitRefresh()
}

// EndDrag commits the active session and emits the final selected
// interval exactly once. A tap with no net movement is a valid
// zero-distance drag: the default-length provisional event is committed.
// Calling EndDrag with no active session is a no-op, so release-path and
// abort-path teardown may both run without double effects.
func (e *Engine) EndDrag() {
	e.guardReentry()
	if e.drag == nil {
		return
	}
	e.drag = nil
	e.emitSlotSelected(e.SelectedSlot())
	e.emitRefresh()
}

// CancelDrag aborts the active session, discarding the provisional event
// without emitting a selection. No-op when no session is active.
func (e *Engine) CancelDrag() {
	e.guardReentry()
	if e.drag == nil {
		return
	}
	e.cancelDragLocked()
	e.emitRefresh()
}

// cancelDragLocked tears the session down without emitting. Idempotent.
func (e *Engine) cancelDragLocked() {
	if e.drag == nil {
		return
	}
	e.drag = nil
	e.removeCreated()
}
