package tui

import (
	"context"
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/rezcal/rezcal/internal/calendar"
	"github.com/rezcal/rezcal/internal/config"
	"github.com/rezcal/rezcal/internal/interval"
	"github.com/rezcal/rezcal/internal/tui/commands"
)

// fakeRepo is an in-memory calendar.Repository for TUI tests.
type fakeRepo struct {
	items     []*calendar.CalendarItem
	created   []*calendar.CalendarItem
	listErr   error
	createErr error
}

func (r *fakeRepo) ListItems(ctx context.Context, within interval.Interval) ([]*calendar.CalendarItem, error) {
	if r.listErr != nil {
		return nil, r.listErr
	}
	return r.items, nil
}

func (r *fakeRepo) CreateItem(ctx context.Context, item *calendar.CalendarItem) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.created = append(r.created, item)
	return nil
}

func testConfig() *config.Config {
	cfg := config.Default()
	cfg.Calendar.DefaultView = "week"
	cfg.User.Name = "Jane Doe"
	cfg.User.Email = "jane@example.com"
	cfg.UI.Theme = "mocha"
	return cfg
}

func newTestModel(t *testing.T, repo *fakeRepo) *Model {
	t.Helper()

	m, err := New(repo, testConfig())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	// Simulate the initial terminal size message.
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return updated.(*Model)
}

func runCmd(t *testing.T, cmd tea.Cmd) tea.Msg {
	t.Helper()
	if cmd == nil {
		t.Fatal("expected a command")
	}
	return cmd()
}

func TestInitLoadsVisibleRange(t *testing.T) {
	start := time.Now().Add(time.Hour)
	repo := &fakeRepo{
		items: []*calendar.CalendarItem{{
			Slot:  mustSlot(t, start, start.Add(time.Hour)),
			Title: "Existing",
		}},
	}
	m := newTestModel(t, repo)

	msg := runCmd(t, m.Init())
	loaded, ok := msg.(commands.ItemsLoadedMsg)
	if !ok {
		t.Fatalf("got %T, want ItemsLoadedMsg", msg)
	}
	if !loaded.Within.Contains(m.engine.VisibleInterval()) {
		t.Error("loaded range must cover the visible interval")
	}

	updated, _ := m.Update(loaded)
	m = updated.(*Model)
	if m.loading {
		t.Error("loading flag must clear after items arrive")
	}
	if len(m.engine.Events()) != 1 {
		t.Errorf("got %d events, want 1", len(m.engine.Events()))
	}
}

func TestViewSwitchRequestsWiderRange(t *testing.T) {
	m := newTestModel(t, &fakeRepo{})
	runCmd(t, m.Init())

	// Week to month grows the visible interval past the fetched range.
	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("m")})
	m = updated.(*Model)
	if m.engine.View() != calendar.ViewMonth {
		t.Fatalf("view = %v", m.engine.View())
	}
	if _, ok := runCmd(t, cmd).(commands.ItemsLoadedMsg); !ok {
		t.Error("expected a reload for the wider range")
	}

	// Month back to week is contained; no reload.
	updated, cmd = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("w")})
	m = updated.(*Model)
	if cmd != nil {
		t.Error("narrowing the view must not refetch")
	}
}

func TestDragCreateAndSaveFlow(t *testing.T) {
	repo := &fakeRepo{}
	m := newTestModel(t, repo)
	runCmd(t, m.Init())

	// Press in the first day column, drag down two rows, release.
	x := timeColWidth + 1
	y := headerLines + 2
	press := tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}
	move := tea.MouseMsg{X: x, Y: y + 2, Action: tea.MouseActionMotion}
	release := tea.MouseMsg{X: x, Y: y + 2, Action: tea.MouseActionRelease}

	updated, _ := m.Update(press)
	m = updated.(*Model)
	if !m.engine.Dragging() {
		t.Fatal("press must start a drag")
	}
	updated, _ = m.Update(move)
	m = updated.(*Model)
	updated, _ = m.Update(release)
	m = updated.(*Model)

	if m.mode != ModePrompt {
		t.Fatal("release must open the title prompt")
	}
	slot := m.engine.SelectedSlot()
	if slot == nil {
		t.Fatal("expected a committed slot")
	}
	wantMinutes := 2 * m.engine.SlotMinutes() // two rows below the anchor
	if got := int(slot.Duration().Minutes()); got != wantMinutes {
		t.Errorf("slot duration = %d minutes, want %d", got, wantMinutes)
	}

	// Type a title and confirm.
	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("Standup")})
	m = updated.(*Model)
	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updated.(*Model)

	msg := runCmd(t, cmd)
	saved, ok := msg.(commands.ItemSavedMsg)
	if !ok {
		t.Fatalf("got %T, want ItemSavedMsg", msg)
	}
	if saved.Item.Title != "Standup" {
		t.Errorf("title = %q", saved.Item.Title)
	}
	if saved.Item.Owner.Email != "jane@example.com" {
		t.Errorf("owner = %+v", saved.Item.Owner)
	}
	if saved.Item.ResourceID() != DefaultResourceID {
		t.Errorf("resource = %q", saved.Item.ResourceID())
	}
	if len(repo.created) != 1 {
		t.Errorf("repo holds %d items", len(repo.created))
	}

	// The saved message clears the selection and refetches.
	updated, cmd = m.Update(saved)
	m = updated.(*Model)
	if m.mode != ModeNormal || m.engine.SelectedSlot() != nil {
		t.Error("selection must clear after saving")
	}
	if cmd == nil {
		t.Error("expected a refresh command")
	}
}

func TestPromptEscapeDiscardsSelection(t *testing.T) {
	m := newTestModel(t, &fakeRepo{})
	runCmd(t, m.Init())

	press := tea.MouseMsg{X: timeColWidth + 1, Y: headerLines + 1, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}
	release := tea.MouseMsg{X: timeColWidth + 1, Y: headerLines + 1, Action: tea.MouseActionRelease}
	updated, _ := m.Update(press)
	m = updated.(*Model)
	updated, _ = m.Update(release)
	m = updated.(*Model)
	if m.mode != ModePrompt {
		t.Fatal("expected prompt mode")
	}

	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = updated.(*Model)
	if m.mode != ModeNormal || m.engine.SelectedSlot() != nil {
		t.Error("escape must discard the pending selection")
	}
}

func TestLoadErrorShowsStatus(t *testing.T) {
	repo := &fakeRepo{listErr: errors.New("disk gone")}
	m := newTestModel(t, repo)

	msg := runCmd(t, m.Init())
	errMsg, ok := msg.(commands.ErrMsg)
	if !ok {
		t.Fatalf("got %T, want ErrMsg", msg)
	}

	updated, _ := m.Update(errMsg)
	m = updated.(*Model)
	if m.statusMsg == "" || m.err == nil {
		t.Error("error must surface in the status line")
	}
}

func TestMonthClickSelectsDay(t *testing.T) {
	cfg := testConfig()
	cfg.Calendar.DefaultView = "month"
	m, err := New(&fakeRepo{}, cfg)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 140, Height: 42})
	m = updated.(*Model)
	runCmd(t, m.Init())
	firstDay := m.engine.VisibleInterval().Start

	updated, _ = m.Update(tea.MouseMsg{X: 1, Y: headerLines, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	m = updated.(*Model)

	if m.engine.View() != calendar.ViewDay {
		t.Errorf("view = %v, want day after month click", m.engine.View())
	}
	if !m.engine.ViewDate().Equal(firstDay) {
		t.Errorf("view date = %v, want %v", m.engine.ViewDate(), firstDay)
	}
}

func mustSlot(t *testing.T, start, end time.Time) interval.Interval {
	t.Helper()
	iv, err := interval.New(start, end)
	if err != nil {
		t.Fatalf("invalid slot: %v", err)
	}
	return iv
}
