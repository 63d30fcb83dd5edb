// Package integration exercises the calendar engine against the real
// SQLite store, wired the way an interactive host wires them: LoadData
// notifications fetch from the store, committed selections are persisted
// and reloaded.
package integration

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/rezcal/rezcal/internal/calendar"
	"github.com/rezcal/rezcal/internal/interval"
	"github.com/rezcal/rezcal/internal/store"
)

// anchorDate is a fixed Tuesday so view intervals are deterministic.
var anchorDate = time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)

const testResource = "room-a"

// testCell mirrors a grid where one row is 30 pixels and one day column
// 100 pixels wide.
var testCell = calendar.CellMetrics{Height: 30, Width: 100}

// openStore creates a fresh store for each test with automatic cleanup.
func openStore(t *testing.T) *store.SQLite {
	t.Helper()
	repo, err := store.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	t.Cleanup(func() { _ = repo.Close() })
	return repo
}

// host drives an engine against a store the way an interactive frontend
// does. Engine callbacks only record effects; pump applies them after the
// engine call returns, since callbacks must not re-enter the engine.
type host struct {
	t      *testing.T
	repo   *store.SQLite
	engine *calendar.Engine

	pendingLoad *interval.Interval
	selected    *interval.Interval
	loads       int
}

func newHost(t *testing.T, repo *store.SQLite) *host {
	t.Helper()
	h := &host{t: t, repo: repo}

	engine, err := calendar.New(calendar.Options{
		WeekStart:          time.Monday,
		SlotMinutes:        30,
		AllowSlotSelection: true,
		CurrentUser:        &calendar.EventOwner{Name: "Jane Doe", Email: "jane@example.com"},
		HighlightOwn:       true,
		Now:                func() time.Time { return anchorDate },
	}, calendar.Callbacks{
		LoadData: func(within interval.Interval) {
			h.pendingLoad = &within
			h.loads++
		},
		SlotSelected: func(slot *interval.Interval) {
			h.selected = slot
		},
	})
	if err != nil {
		t.Fatalf("failed to create engine: %v", err)
	}
	h.engine = engine

	engine.Init()
	h.pump()
	return h
}

// pump fetches any requested interval from the store and hands the items
// back to the engine.
func (h *host) pump() {
	h.t.Helper()
	for h.pendingLoad != nil {
		within := *h.pendingLoad
		h.pendingLoad = nil

		items, err := h.repo.ListItems(context.Background(), within)
		if err != nil {
			h.t.Fatalf("failed to list items: %v", err)
		}
		h.engine.SetItems(items)
	}
}

// commitSelection persists the committed slot and refreshes the engine,
// mirroring the save path of an interactive host.
func (h *host) commitSelection(title string) *calendar.CalendarItem {
	h.t.Helper()
	if h.selected == nil {
		h.t.Fatal("no selection to commit")
	}

	item := &calendar.CalendarItem{
		Slot:     *h.selected,
		Title:    title,
		Owner:    calendar.EventOwner{Name: "Jane Doe", Email: "jane@example.com"},
		Resource: &calendar.Resource{ID: testResource, Name: "Room A"},
	}
	if err := h.repo.CreateItem(context.Background(), item); err != nil {
		h.t.Fatalf("failed to persist selection: %v", err)
	}
	// ClearSelection notifies with a nil slot, which also resets h.selected.
	h.engine.ClearSelection()
	h.engine.Refresh()
	h.pump()
	return item
}

// seedReservation inserts a reservation directly into the store.
func seedReservation(t *testing.T, repo *store.SQLite, title string, start time.Time, d time.Duration) *calendar.CalendarItem {
	t.Helper()
	slot, err := interval.New(start, start.Add(d))
	if err != nil {
		t.Fatalf("failed to build slot: %v", err)
	}
	item := &calendar.CalendarItem{
		Slot:     slot,
		Title:    title,
		Owner:    calendar.EventOwner{Name: "Sam Lee", Email: "sam@example.com"},
		Resource: &calendar.Resource{ID: testResource, Name: "Room A"},
	}
	if err := repo.CreateItem(context.Background(), item); err != nil {
		t.Fatalf("failed to seed reservation: %v", err)
	}
	return item
}

func at(hour, min int) time.Time {
	return time.Date(2025, 6, 10, hour, min, 0, 0, time.UTC)
}

func TestDragCreatePersistsAndReloads(t *testing.T) {
	repo := openStore(t)
	h := newHost(t, repo)

	h.engine.SetView(calendar.ViewWeek)
	h.pump()

	// Drag from 09:00 down three rows: the end ceil-snaps to 10:30.
	origin := calendar.Point{X: 100, Y: 100}
	if !h.engine.BeginDrag(origin, at(9, 0), testResource, testCell) {
		t.Fatal("expected drag to start")
	}
	h.engine.DragMove(calendar.Point{X: 100, Y: 190})
	h.engine.EndDrag()

	if h.selected == nil {
		t.Fatal("expected a committed selection")
	}
	if !h.selected.Start.Equal(at(9, 0)) || !h.selected.End.Equal(at(10, 30)) {
		t.Fatalf("selection = %v, want 09:00-10:30", h.selected)
	}

	saved := h.commitSelection("Design review")
	if store.ItemID(saved) == 0 {
		t.Error("expected the saved reservation to have an ID")
	}

	// The reload must surface the stored reservation as a display event.
	var found *calendar.DisplayEvent
	for _, ev := range h.engine.Events() {
		if ev.Item != nil && ev.Item.Title == "Design review" {
			found = ev
		}
	}
	if found == nil {
		t.Fatal("saved reservation missing from display events")
	}
	if !found.Start.Equal(at(9, 0)) || !found.End.Equal(at(10, 30)) {
		t.Errorf("display event = %v-%v, want 09:00-10:30", found.Start, found.End)
	}
	if found.Tag != calendar.TagOwned {
		t.Errorf("Tag = %v, want TagOwned for the current user's reservation", found.Tag)
	}
}

func TestStoredReservationBlocksConflictingDrag(t *testing.T) {
	repo := openStore(t)
	seedReservation(t, repo, "Already booked", at(9, 0), time.Hour)

	h := newHost(t, repo)
	h.engine.SetView(calendar.ViewWeek)
	h.pump()

	// The default-length candidate at 09:30 overlaps the stored booking.
	if h.engine.BeginDrag(calendar.Point{X: 0, Y: 0}, at(9, 30), testResource, testCell) {
		t.Fatal("expected conflicting drag to be refused")
	}
	if h.engine.Dragging() {
		t.Error("engine must stay idle after a refused drag")
	}

	// Starting at the stored booking's end is fine: intervals are half-open.
	if !h.engine.BeginDrag(calendar.Point{X: 0, Y: 0}, at(10, 0), testResource, testCell) {
		t.Fatal("expected drag at the boundary to start")
	}
	h.engine.CancelDrag()
}

func TestStoreRejectsConflictTheEngineCannotSee(t *testing.T) {
	repo := openStore(t)
	h := newHost(t, repo)

	h.engine.SetView(calendar.ViewWeek)
	h.pump()

	// Commit a selection, then race it: another booking lands in the
	// store before the save. The store's own check must catch it.
	if !h.engine.BeginDrag(calendar.Point{X: 0, Y: 0}, at(14, 0), testResource, testCell) {
		t.Fatal("expected drag to start")
	}
	h.engine.EndDrag()
	if h.selected == nil {
		t.Fatal("expected a committed selection")
	}

	seedReservation(t, repo, "Raced in", at(14, 0), time.Hour)

	item := &calendar.CalendarItem{
		Slot:     *h.selected,
		Title:    "Too late",
		Resource: &calendar.Resource{ID: testResource, Name: "Room A"},
	}
	err := repo.CreateItem(context.Background(), item)
	if !errors.Is(err, store.ErrSlotConflict) {
		t.Fatalf("err = %v, want ErrSlotConflict", err)
	}
}

func TestFetchGuardSkipsContainedViews(t *testing.T) {
	repo := openStore(t)
	h := newHost(t, repo)

	// Init fetched the padded month interval.
	if h.loads != 1 {
		t.Fatalf("loads after init = %d, want 1", h.loads)
	}

	// Week and day views of the same anchor are contained in the month
	// interval already fetched; no reload.
	h.engine.SetView(calendar.ViewWeek)
	h.pump()
	h.engine.SetView(calendar.ViewDay)
	h.pump()
	if h.loads != 1 {
		t.Fatalf("loads after narrowing = %d, want 1", h.loads)
	}

	// Moving the anchor a month ahead leaves the fetched interval.
	h.engine.SetViewDate(anchorDate.AddDate(0, 1, 0))
	h.pump()
	if h.loads != 2 {
		t.Fatalf("loads after moving a month ahead = %d, want 2", h.loads)
	}

	// An explicit refresh always refetches.
	h.engine.Refresh()
	h.pump()
	if h.loads != 3 {
		t.Fatalf("loads after refresh = %d, want 3", h.loads)
	}
}

func TestResizeSelectionAgainstStoredReservations(t *testing.T) {
	repo := openStore(t)
	seedReservation(t, repo, "Hard stop", at(11, 0), time.Hour)

	h := newHost(t, repo)
	h.engine.SetView(calendar.ViewWeek)
	h.pump()

	if !h.engine.BeginDrag(calendar.Point{X: 0, Y: 0}, at(9, 0), testResource, testCell) {
		t.Fatal("expected drag to start")
	}
	h.engine.EndDrag()

	// Growing into the stored reservation is rejected; stopping at its
	// start is accepted.
	if h.engine.ResizeSelection(at(9, 0), at(11, 30)) {
		t.Error("expected resize across a stored reservation to be rejected")
	}
	if !h.engine.ResizeSelection(at(9, 0), at(11, 0)) {
		t.Error("expected resize up to the stored reservation to be accepted")
	}
	if sel := h.engine.SelectedSlot(); sel == nil || !sel.End.Equal(at(11, 0)) {
		t.Errorf("selection = %v, want end 11:00", sel)
	}
}

func TestBatchImportVisibleAfterRefresh(t *testing.T) {
	repo := openStore(t)
	h := newHost(t, repo)

	h.engine.SetView(calendar.ViewWeek)
	h.pump()

	mkSlot := func(start time.Time, d time.Duration) interval.Interval {
		slot, err := interval.New(start, start.Add(d))
		if err != nil {
			t.Fatal(err)
		}
		return slot
	}
	batch := []*calendar.CalendarItem{
		{Slot: mkSlot(at(9, 0), time.Hour), Title: "Standup", Resource: &calendar.Resource{ID: testResource, Name: "Room A"}},
		{Slot: mkSlot(at(10, 0), time.Hour), Title: "Planning", Resource: &calendar.Resource{ID: testResource, Name: "Room A"}},
	}
	if err := repo.CreateItems(context.Background(), batch); err != nil {
		t.Fatalf("failed to import batch: %v", err)
	}

	h.engine.Refresh()
	h.pump()

	if len(h.engine.Items()) != 2 {
		t.Fatalf("items after refresh = %d, want 2", len(h.engine.Items()))
	}
}
