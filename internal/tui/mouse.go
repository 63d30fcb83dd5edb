package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rezcal/rezcal/internal/calendar"
)

// handleMouseMsg maps terminal mouse events onto calendar pointer samples
// and month-view date selection.
func (m *Model) handleMouseMsg(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.mode == ModePrompt {
		return m, nil
	}

	switch msg.Button {
	case tea.MouseButtonWheelUp:
		m.scrollOffset--
		m.clampScroll()
		return m, nil
	case tea.MouseButtonWheelDown:
		m.scrollOffset++
		m.clampScroll()
		return m, nil
	}

	if m.engine.View() == calendar.ViewMonth {
		return m.handleMonthMouse(msg)
	}
	return m.handleGridMouse(msg)
}

func (m *Model) handleMonthMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return m, nil
	}
	if date, ok := m.monthCellAt(msg.X, msg.Y); ok {
		m.engine.SelectDate(date)
		return m, m.drainSink()
	}
	return m, nil
}

func (m *Model) handleGridMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	point := calendar.Point{X: msg.X, Y: msg.Y}

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return m, nil
		}

		// A press on an existing reservation activates it instead of
		// starting a drag.
		if ev := m.eventAt(msg.X, msg.Y); ev != nil && ev.Item != nil {
			m.engine.ClickEvent(ev)
			return m, m.drainSink()
		}

		anchor, ok := m.slotAnchorAt(msg.X, msg.Y)
		if !ok {
			return m, nil
		}
		m.engine.HandlePointer(calendar.PointerSample{
			Kind:       calendar.PointerStart,
			Screen:     point,
			Anchor:     anchor,
			ResourceID: DefaultResourceID,
			Cell:       m.cellMetrics(),
		})
		return m, m.drainSink()

	case tea.MouseActionMotion:
		if !m.engine.Dragging() {
			return m, nil
		}
		m.engine.HandlePointer(calendar.PointerSample{
			Kind:   calendar.PointerMove,
			Screen: point,
		})
		return m, m.drainSink()

	case tea.MouseActionRelease:
		if !m.engine.Dragging() {
			return m, nil
		}
		m.engine.HandlePointer(calendar.PointerSample{
			Kind:   calendar.PointerEnd,
			Screen: point,
		})
		return m, m.drainSink()
	}

	return m, nil
}
