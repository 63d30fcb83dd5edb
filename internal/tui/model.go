// Package tui provides the terminal user interface for rezcal.
package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/muesli/termenv"

	"github.com/rezcal/rezcal/internal/calendar"
	"github.com/rezcal/rezcal/internal/config"
	"github.com/rezcal/rezcal/internal/interval"
	"github.com/rezcal/rezcal/internal/tui/theme"
)

// Mode represents the current interaction mode.
type Mode int

const (
	ModeNormal Mode = iota
	ModePrompt      // Naming a freshly selected slot
)

// DefaultResourceID is the resource all reservations created through the
// TUI share, so that overlap validation applies between them.
const DefaultResourceID = "calendar"

// Model is the main TUI model.
type Model struct {
	// Dependencies
	repo   calendar.Repository
	config *config.Config

	// Theme and styles
	theme  *theme.Theme
	styles *Styles

	// Calendar core
	engine *calendar.Engine
	sink   *engineSink

	// State
	mode    Mode
	loading bool

	// Components
	prompt textinput.Model

	// Terminal dimensions and layout
	width        int
	height       int
	scrollOffset int // First visible slot row in the day/week grid

	// Messages
	statusMsg  string    // Temporary status/error message
	statusTime time.Time // When to clear message

	// Error state
	err error
}

// engineSink collects engine callback effects so the update loop can turn
// them into bubbletea commands after the engine call returns. Calling back
// into the engine from a callback would panic.
type engineSink struct {
	loadRequest   *interval.Interval
	slotSelected  *interval.Interval
	slotCleared   bool
	clickedItem   *calendar.CalendarItem
	refreshNeeded bool
}

func (s *engineSink) reset() {
	*s = engineSink{}
}

func (s *engineSink) callbacks() calendar.Callbacks {
	return calendar.Callbacks{
		SlotSelected: func(slot *interval.Interval) {
			if slot == nil {
				s.slotCleared = true
				s.slotSelected = nil
				return
			}
			s.slotSelected = slot
		},
		LoadData: func(within interval.Interval) {
			s.loadRequest = &within
		},
		ItemClicked: func(item *calendar.CalendarItem) {
			s.clickedItem = item
		},
		RefreshNeeded: func() {
			s.refreshNeeded = true
		},
	}
}

// New creates a new TUI model.
func New(repo calendar.Repository, cfg *config.Config) (*Model, error) {
	themeName := cfg.UI.Theme
	if themeName == "" {
		// No configured theme: pick by terminal background.
		if termenv.HasDarkBackground() {
			themeName = "mocha"
		} else {
			themeName = "latte"
		}
	}
	t, err := theme.Load(themeName)
	if err != nil {
		t, _ = theme.Load("mocha")
	}
	styles := NewStyles(t)

	prompt := textinput.New()
	prompt.Placeholder = "Reservation title"
	prompt.CharLimit = 256
	prompt.Width = 40
	prompt.PromptStyle = styles.PromptLabelStyle
	prompt.TextStyle = styles.PromptTextStyle
	prompt.PlaceholderStyle = styles.PromptPlaceholderStyle

	sink := &engineSink{}

	var user *calendar.EventOwner
	if cfg.HasUser() {
		user = &calendar.EventOwner{Name: cfg.User.Name, Email: cfg.User.Email}
	}

	engine, err := calendar.New(calendar.Options{
		WeekStart:            cfg.WeekStartDay(),
		SlotMinutes:          cfg.Calendar.SlotMinutes,
		AllowSlotSelection:   cfg.Calendar.AllowSlotSelection,
		AllowMultiplePerCell: cfg.Calendar.AllowMultiplePerCell,
		HighlightOwn:         cfg.Calendar.HighlightMine && user != nil,
		CurrentUser:          user,
	}, sink.callbacks())
	if err != nil {
		return nil, err
	}

	// Switching to the configured view doubles as the initial data
	// request; Init drains it into the first load command.
	mode, err := calendar.ParseViewMode(cfg.Calendar.DefaultView)
	if err != nil {
		mode = calendar.ViewMonth
	}
	engine.SetView(mode)

	m := &Model{
		repo:         repo,
		config:       cfg,
		theme:        t,
		styles:       styles,
		engine:       engine,
		sink:         sink,
		mode:         ModeNormal,
		loading:      true,
		prompt:       prompt,
		scrollOffset: defaultScrollRow(engine.SlotMinutes()),
	}

	return m, nil
}

// defaultScrollRow positions the day/week grid at 08:00.
func defaultScrollRow(slotMinutes int) int {
	return 8 * 60 / slotMinutes
}

// Init turns the construction-time data request into the first load command.
func (m *Model) Init() tea.Cmd {
	return m.drainSink()
}

// Run starts the TUI.
func Run(repo calendar.Repository, cfg *config.Config) error {
	return RunWithDebug(repo, cfg, false)
}

// RunWithDebug starts the TUI, optionally logging bubbletea debug output
// to a file in the temp directory.
func RunWithDebug(repo calendar.Repository, cfg *config.Config, debug bool) error {
	if debug {
		f, err := tea.LogToFile(filepath.Join(os.TempDir(), "rezcal-debug.log"), "rezcal")
		if err != nil {
			return fmt.Errorf("opening debug log: %w", err)
		}
		defer func() { _ = f.Close() }()
	}

	model, err := New(repo, cfg)
	if err != nil {
		return err
	}

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseAllMotion())
	_, err = p.Run()
	return err
}
