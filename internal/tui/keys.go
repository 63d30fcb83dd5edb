package tui

import (
	"strings"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rezcal/rezcal/internal/calendar"
	"github.com/rezcal/rezcal/internal/tui/commands"
)

// handleKeyMsg dispatches key presses by interaction mode.
func (m *Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.mode == ModePrompt {
		return m.handlePromptKey(msg)
	}
	return m.handleNormalKey(msg)
}

func (m *Model) handleNormalKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit

	case "d":
		m.engine.SetView(calendar.ViewDay)
		return m, m.drainSink()
	case "w":
		m.engine.SetView(calendar.ViewWeek)
		return m, m.drainSink()
	case "m":
		m.engine.SetView(calendar.ViewMonth)
		return m, m.drainSink()

	case "left", "h":
		m.engine.SetViewDate(m.stepViewDate(-1))
		return m, m.drainSink()
	case "right", "l":
		m.engine.SetViewDate(m.stepViewDate(1))
		return m, m.drainSink()

	case "t":
		m.engine.SetViewDate(time.Now())
		return m, m.drainSink()

	case "enter":
		if m.engine.View() == calendar.ViewMonth {
			m.engine.SelectDate(m.engine.ViewDate())
			return m, m.drainSink()
		}
		return m, nil

	case "up", "k":
		m.scrollOffset--
		m.clampScroll()
		return m, nil
	case "down", "j":
		m.scrollOffset++
		m.clampScroll()
		return m, nil

	case "r":
		m.engine.Refresh()
		return m, m.drainSink()

	case "esc":
		if m.engine.Dragging() {
			m.engine.CancelDrag()
			return m, m.drainSink()
		}
		m.engine.ClearSelection()
		return m, m.drainSink()

	case "y":
		if slot := m.engine.SelectedSlot(); slot != nil {
			text := formatSlot(*slot)
			if err := clipboard.WriteAll(text); err != nil {
				return m, commands.Status("Clipboard unavailable")
			}
			return m, commands.Status("Copied " + text)
		}
		return m, nil
	}

	return m, nil
}

func (m *Model) handlePromptKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		slot := m.engine.SelectedSlot()
		if slot == nil {
			m.mode = ModeNormal
			m.prompt.Blur()
			return m, nil
		}

		title := strings.TrimSpace(m.prompt.Value())
		if title == "" {
			return m, commands.Status("Title cannot be empty")
		}

		item := &calendar.CalendarItem{
			Slot:  *slot,
			Title: title,
			Resource: &calendar.Resource{
				ID:   DefaultResourceID,
				Name: "Calendar",
			},
		}
		if m.config.HasUser() {
			item.Owner = calendar.EventOwner{
				Name:  m.config.User.Name,
				Email: m.config.User.Email,
			}
		}

		m.mode = ModeNormal
		m.prompt.Blur()
		return m, commands.SaveItem(m.repo, item)

	case "esc":
		m.engine.ClearSelection()
		return m, m.drainSink()
	}

	var cmd tea.Cmd
	m.prompt, cmd = m.prompt.Update(msg)
	return m, cmd
}

// stepViewDate moves the anchor by one page in the current view.
func (m *Model) stepViewDate(dir int) (date time.Time) {
	anchor := m.engine.ViewDate()
	switch m.engine.View() {
	case calendar.ViewDay:
		return anchor.AddDate(0, 0, dir)
	case calendar.ViewWeek:
		return anchor.AddDate(0, 0, 7*dir)
	default:
		return anchor.AddDate(0, dir, 0)
	}
}
