package calendar

import (
	"errors"
	"fmt"
	"time"

	"github.com/rezcal/rezcal/internal/dateutil"
	"github.com/rezcal/rezcal/internal/i18n"
	"github.com/rezcal/rezcal/internal/interval"
)

// DefaultSlotMinutes is the snapping granularity used when none is
// configured. Drag-derived end times snap to multiples of this unit and
// the provisional event starts out one unit long.
const DefaultSlotMinutes = 30

// Callbacks is the engine's notification surface toward the host. Every
// field is optional; nil callbacks are skipped. Callbacks run
// synchronously on the calling goroutine and must not call back into the
// engine (re-entrant calls panic).
type Callbacks struct {
	// SlotSelected fires on drag commit with the final interval, and with
	// nil when the selection is explicitly cleared.
	SlotSelected func(slot *interval.Interval)
	// LoadData fires when the visible interval grows past the last
	// fetched range; the host fetches and re-supplies items.
	LoadData func(within interval.Interval)
	// ItemClicked fires when a non-provisional display event is activated.
	ItemClicked func(item *CalendarItem)
	// ViewChanged and ViewDateChanged fire when internal navigation (such
	// as SelectDate) moves the view, keeping the host's copy in sync.
	ViewChanged     func(mode ViewMode)
	ViewDateChanged func(date time.Time)
	// RefreshNeeded fires whenever the display event collection changed
	// and the rendering layer should redraw.
	RefreshNeeded func()
}

// Options configures a new engine.
type Options struct {
	// WeekStart is the first day of the week in the week and month views.
	WeekStart time.Weekday
	// SlotMinutes is the snapping granularity; defaults to
	// DefaultSlotMinutes when zero or negative.
	SlotMinutes int
	// AllowSlotSelection enables the drag-to-create interaction.
	AllowSlotSelection bool
	// AllowMultiplePerCell disables overlap validation entirely.
	AllowMultiplePerCell bool
	// HighlightOwn tags the current user's reservations with a distinct
	// style. Requires CurrentUser.
	HighlightOwn bool
	// CurrentUser identifies who is creating reservations.
	CurrentUser *EventOwner
	// Translations overrides the built-in calendar strings. Nil uses the
	// defaults.
	Translations *i18n.Bundle
	// Now is injectable for testing; defaults to time.Now.
	Now func() time.Time
}

// Engine is the calendar core. It owns the display event collection, the
// view state, the fetch-cache guard and the single optional drag session.
//
// The engine is single threaded and event driven: every public method runs
// to completion on the calling goroutine and no locking is performed.
// Calling into the engine from inside one of its callbacks is a
// programming error and panics.
type Engine struct {
	opts Options
	cb   Callbacks

	view     ViewMode
	viewDate time.Time

	items   []*CalendarItem
	events  []*DisplayEvent
	created *DisplayEvent

	guard FetchGuard
	drag  *dragSession

	slotTitle string
	emitting  bool
}

// New creates an engine. The initial view is the month containing the
// current date; no LoadData is emitted until Init or the first view
// change.
func New(opts Options, cb Callbacks) (*Engine, error) {
	if opts.SlotMinutes <= 0 {
		opts.SlotMinutes = DefaultSlotMinutes
	}
	if !dateutil.ValidWeekStart(int(opts.WeekStart)) {
		return nil, fmt.Errorf("calendar: %w", dateutil.ErrInvalidWeekStart)
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	title, err := opts.Translations.Lookup(i18n.KeySelectedTimeSlotTitle)
	if err != nil {
		return nil, fmt.Errorf("calendar: resolving slot title: %w", err)
	}

	return &Engine{
		opts:      opts,
		cb:        cb,
		view:      ViewMonth,
		viewDate:  opts.Now(),
		slotTitle: title,
	}, nil
}

// Init performs the initial visible-interval computation, emitting the
// first LoadData request.
func (e *Engine) Init() {
	e.guardReentry()
	e.handleViewOrDateChange()
}

// View returns the current view mode.
func (e *Engine) View() ViewMode { return e.view }

// ViewDate returns the current anchor date.
func (e *Engine) ViewDate() time.Time { return e.viewDate }

// SlotMinutes returns the effective snapping granularity.
func (e *Engine) SlotMinutes() int { return e.opts.SlotMinutes }

// SlotDuration returns the snapping granularity as a duration.
func (e *Engine) SlotDuration() time.Duration {
	return time.Duration(e.opts.SlotMinutes) * time.Minute
}

// WeekStart returns the configured first day of the week.
func (e *Engine) WeekStart() time.Weekday { return e.opts.WeekStart }

// VisibleInterval returns the date range the current view displays.
func (e *Engine) VisibleInterval() interval.Interval {
	return VisibleInterval(e.viewDate, e.view, e.opts.WeekStart)
}

// SetView switches the view mode and re-evaluates the fetch guard.
func (e *Engine) SetView(mode ViewMode) {
	e.guardReentry()
	e.view = mode
	e.handleViewOrDateChange()
}

// SetViewDate moves the anchor date and re-evaluates the fetch guard.
func (e *Engine) SetViewDate(date time.Time) {
	e.guardReentry()
	e.viewDate = date
	e.handleViewOrDateChange()
}

// SelectDate jumps to the day view for the given date. Used for date
// navigation from the week or month view; emits ViewChanged and
// ViewDateChanged so the host stays in sync.
func (e *Engine) SelectDate(date time.Time) {
	e.guardReentry()
	e.viewDate = date
	e.view = ViewDay

	e.emitViewChanged(e.view)
	e.emitViewDateChanged(e.viewDate)
	e.handleViewOrDateChange()
}

// Refresh requests a reload of the current visible interval regardless of
// the fetch guard. Extra fetches are safe; this is the host's explicit
// "my data changed" hook.
func (e *Engine) Refresh() {
	e.guardReentry()
	e.requestData(e.VisibleInterval())
}

// SetItems replaces the item collection. The display event collection is
// fully rebuilt (one event per item, highlight re-applied) and the active
// provisional event, if any, is re-appended.
func (e *Engine) SetItems(items []*CalendarItem) {
	e.guardReentry()
	e.items = items
	e.events = e.buildEvents(items)

	if e.created != nil {
		e.events = append(e.events, e.created)
	}
	e.emitRefresh()
}

// Items returns the current item collection.
func (e *Engine) Items() []*CalendarItem { return e.items }

// Events returns the display event collection, including the provisional
// event when one exists. The slice is owned by the engine; callers must
// treat it as read-only.
func (e *Engine) Events() []*DisplayEvent { return e.events }

// SelectedSlot returns the currently selected slot, or nil when no
// provisional event exists.
func (e *Engine) SelectedSlot() *interval.Interval {
	if e.created == nil || e.created.End.IsZero() {
		return nil
	}
	return &interval.Interval{Start: e.created.Start, End: e.created.End}
}

// SetSelectedSlot programmatically replaces the selected slot. A nil slot
// removes the provisional event without emitting SlotSelected; use
// ClearSelection for the notifying variant.
func (e *Engine) SetSelectedSlot(slot *interval.Interval) {
	e.guardReentry()
	switch {
	case slot == nil:
		e.removeCreated()
	case e.created != nil:
		e.created.Start = slot.Start
		e.created.End = slot.End
		e.created.Title = e.buildSlotTitle(slot.Start, slot.End)
	default:
		e.created = e.newCreatedEvent(slot.Start, slot.End, "")
		e.events = append(e.events, e.created)
	}
	e.emitRefresh()
}

// ClearSelection removes the provisional event and notifies the host with
// an explicit nil selection. Calling it again without an intervening
// selection is a no-op: the nil notification fires exactly once.
func (e *Engine) ClearSelection() {
	e.guardReentry()
	if e.created == nil {
		return
	}
	e.cancelDragLocked()
	e.removeCreated()
	e.emitSlotSelected(nil)
	e.emitRefresh()
}

// ResizeSelection moves the bounds of the provisional event, validating
// the new slot against the existing events. Invalid candidates (end not
// after start, or a conflict) are rejected silently and the previous slot
// is retained. Returns whether the resize was accepted.
func (e *Engine) ResizeSelection(newStart, newEnd time.Time) bool {
	e.guardReentry()
	if e.created == nil || !newEnd.After(newStart) {
		return false
	}

	candidate := Candidate{
		Slot:       interval.Interval{Start: newStart, End: newEnd},
		ResourceID: e.created.ResourceID,
		Self:       e.created,
	}
	if ViolatesExisting(candidate, e.events, e.opts.AllowMultiplePerCell, e.SlotDuration()) {
		return false
	}

	e.created.Start = newStart
	e.created.End = newEnd
	e.created.Title = e.buildSlotTitle(newStart, newEnd)
	e.emitSlotSelected(e.SelectedSlot())
	e.emitRefresh()
	return true
}

// ClickEvent reports an activated display event to the host. The
// provisional event is not clickable; events without a backing item are
// ignored.
func (e *Engine) ClickEvent(ev *DisplayEvent) {
	e.guardReentry()
	if ev == nil || ev.Item == nil {
		return
	}
	e.emitItemClicked(ev.Item)
}

// SetHighlightOwn toggles highlighting of the current user's
// reservations. The existing display events are re-tagged in place;
// events are never rebuilt from the items.
func (e *Engine) SetHighlightOwn(enabled bool) {
	e.guardReentry()
	e.opts.HighlightOwn = enabled
	e.retagEvents(e.events)
	e.emitRefresh()
}

// HighlightOwn reports whether own-reservation highlighting is enabled.
func (e *Engine) HighlightOwn() bool { return e.opts.HighlightOwn }

// handleViewOrDateChange recomputes the visible interval and requests data
// when it is not contained in the last fetched interval.
func (e *Engine) handleViewOrDateChange() {
	iv := e.VisibleInterval()
	if e.guard.ShouldRefetch(iv) {
		e.requestData(iv)
	}
}

func (e *Engine) requestData(iv interval.Interval) {
	e.emitLoadData(iv)
	e.guard.RecordFetched(iv)
}

// buildEvents projects items into display events and applies highlighting.
func (e *Engine) buildEvents(items []*CalendarItem) []*DisplayEvent {
	events := make([]*DisplayEvent, 0, len(items))
	for _, item := range items {
		events = append(events, newDisplayEvent(item))
	}
	e.retagEvents(events)
	return events
}

// retagEvents assigns color tags in place. The provisional event always
// keeps its created style; backing items owned by the current user get
// the owned style while highlighting is on.
func (e *Engine) retagEvents(events []*DisplayEvent) {
	highlight := e.opts.HighlightOwn && e.opts.CurrentUser != nil
	for _, ev := range events {
		switch {
		case ev == e.created:
			ev.Tag = TagCreated
		case highlight && ev.Item != nil && ev.Item.Owner.Matches(*e.opts.CurrentUser):
			ev.Tag = TagOwned
		default:
			ev.Tag = TagDefault
		}
	}
}

// removeCreated drops the provisional event from the collection by
// pointer identity.
func (e *Engine) removeCreated() {
	if e.created == nil {
		return
	}
	filtered := e.events[:0]
	for _, ev := range e.events {
		if ev != e.created {
			filtered = append(filtered, ev)
		}
	}
	e.events = filtered
	e.created = nil
}

func (e *Engine) newCreatedEvent(start, end time.Time, resourceID string) *DisplayEvent {
	if end.IsZero() {
		end = start.Add(e.SlotDuration())
	}
	return &DisplayEvent{
		Start:      start,
		End:        end,
		Title:      e.buildSlotTitle(start, end),
		Tag:        TagCreated,
		ResourceID: resourceID,
	}
}

func (e *Engine) buildSlotTitle(start, end time.Time) string {
	return fmt.Sprintf("%s %s - %s", e.slotTitle, start.Format("15:04"), end.Format("15:04"))
}

// guardReentry panics when a public entry point is invoked from inside a
// callback. The engine is cooperatively single threaded; nested calls
// would interleave mid-operation and corrupt the event collection.
func (e *Engine) guardReentry() {
	if e.emitting {
		panic(errors.New("calendar: re-entrant engine call from inside a callback"))
	}
}

func (e *Engine) emit(fn func()) {
	if fn == nil {
		return
	}
	e.emitting = true
	defer func() { e.emitting = false }()
	fn()
}

func (e *Engine) emitSlotSelected(slot *interval.Interval) {
	if e.cb.SlotSelected != nil {
		e.emit(func() { e.cb.SlotSelected(slot) })
	}
}

func (e *Engine) emitLoadData(iv interval.Interval) {
	if e.cb.LoadData != nil {
		e.emit(func() { e.cb.LoadData(iv) })
	}
}

func (e *Engine) emitItemClicked(item *CalendarItem) {
	if e.cb.ItemClicked != nil {
		e.emit(func() { e.cb.ItemClicked(item) })
	}
}

func (e *Engine) emitViewChanged(mode ViewMode) {
	if e.cb.ViewChanged != nil {
		e.emit(func() { e.cb.ViewChanged(mode) })
	}
}

func (e *Engine) emitViewDateChanged(date time.Time) {
	if e.cb.ViewDateChanged != nil {
		e.emit(func() { e.cb.ViewDateChanged(date) })
	}
}

func (e *Engine) emitRefresh() {
	if e.cb.RefreshNeeded != nil {
		e.emit(func() { e.cb.RefreshNeeded() })
	}
}
