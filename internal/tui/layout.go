package tui

import (
	"time"

	"github.com/rezcal/rezcal/internal/calendar"
	"github.com/rezcal/rezcal/internal/dateutil"
)

// Fixed chrome dimensions.
const (
	headerLines  = 2 // Title and day-header rows
	footerLines  = 3 // Legend, status, prompt
	timeColWidth = 6
	minColWidth  = 8
)

func (m *Model) gridHeight() int {
	h := m.height - headerLines - footerLines
	if h < 0 {
		return 0
	}
	return h
}

// numCols is the number of day columns in the time grid.
func (m *Model) numCols() int {
	if m.engine.View() == calendar.ViewDay {
		return 1
	}
	return 7
}

func (m *Model) colWidth() int {
	w := (m.width - timeColWidth) / m.numCols()
	if w < minColWidth {
		return minColWidth
	}
	return w
}

// cellMetrics maps the time grid to engine pointer coordinates: one
// terminal row per slot, one column per day.
func (m *Model) cellMetrics() calendar.CellMetrics {
	return calendar.CellMetrics{Height: 1, Width: m.colWidth()}
}

func (m *Model) slotsPerDay() int {
	return 24 * 60 / m.engine.SlotMinutes()
}

// maxScroll is the last scroll offset that still fills the grid.
func (m *Model) maxScroll() int {
	max := m.slotsPerDay() - m.gridHeight()
	if max < 0 {
		return 0
	}
	return max
}

func (m *Model) clampScroll() {
	if m.scrollOffset > m.maxScroll() {
		m.scrollOffset = m.maxScroll()
	}
	if m.scrollOffset < 0 {
		m.scrollOffset = 0
	}
}

// gridStartDay is the first day column of the time grid.
func (m *Model) gridStartDay() time.Time {
	if m.engine.View() == calendar.ViewDay {
		return dateutil.StartOfDay(m.engine.ViewDate())
	}
	return dateutil.StartOfWeek(m.engine.ViewDate(), m.engine.WeekStart())
}

// slotAnchorAt maps a screen position inside the day/week grid to the
// start time of the slot under it.
func (m *Model) slotAnchorAt(x, y int) (time.Time, bool) {
	if x < timeColWidth || y < headerLines {
		return time.Time{}, false
	}

	day := (x - timeColWidth) / m.colWidth()
	if day >= m.numCols() {
		return time.Time{}, false
	}

	row := y - headerLines + m.scrollOffset
	if row < 0 || row >= m.slotsPerDay() {
		return time.Time{}, false
	}

	anchor := m.gridStartDay().
		AddDate(0, 0, day).
		Add(time.Duration(row*m.engine.SlotMinutes()) * time.Minute)
	return anchor, true
}

// eventRowSpan returns the grid rows [start, end) an event covers within
// one day, before scrolling.
func (m *Model) eventRowSpan(ev *calendar.DisplayEvent) (int, int) {
	slotMin := m.engine.SlotMinutes()
	day := dateutil.StartOfDay(ev.Start)

	startMin := int(ev.Start.Sub(day).Minutes())
	endMin := int(ev.Slot(m.engine.SlotDuration()).End.Sub(day).Minutes())

	startRow := startMin / slotMin
	endRow := (endMin + slotMin - 1) / slotMin
	if endRow <= startRow {
		endRow = startRow + 1
	}
	return startRow, endRow
}

// eventDayCol returns the day column of an event, or -1 when it is
// outside the visible columns.
func (m *Model) eventDayCol(ev *calendar.DisplayEvent) int {
	start := m.gridStartDay()
	days := int(dateutil.StartOfDay(ev.Start).Sub(start).Hours() / 24)
	if days < 0 || days >= m.numCols() {
		return -1
	}
	return days
}

// eventAt returns the topmost display event rendered at a screen position.
func (m *Model) eventAt(x, y int) *calendar.DisplayEvent {
	if x < timeColWidth || y < headerLines {
		return nil
	}
	day := (x - timeColWidth) / m.colWidth()
	row := y - headerLines + m.scrollOffset

	events := m.engine.Events()
	for i := len(events) - 1; i >= 0; i-- {
		ev := events[i]
		if m.eventDayCol(ev) != day {
			continue
		}
		startRow, endRow := m.eventRowSpan(ev)
		if row >= startRow && row < endRow {
			return ev
		}
	}
	return nil
}

// monthWeeks is the number of week rows the month view displays.
func (m *Model) monthWeeks() int {
	vi := m.engine.VisibleInterval()
	weeks := 0
	for d := vi.Start; d.Before(vi.End); d = d.AddDate(0, 0, 7) {
		weeks++
	}
	return weeks
}

// monthCellAt maps a screen position inside the month grid to a date.
func (m *Model) monthCellAt(x, y int) (time.Time, bool) {
	if y < headerLines {
		return time.Time{}, false
	}

	weeks := m.monthWeeks()
	cellW := m.width / 7
	cellH := m.gridHeight() / weeks
	if cellW <= 0 || cellH <= 0 {
		return time.Time{}, false
	}

	col := x / cellW
	row := (y - headerLines) / cellH
	if col >= 7 || row >= weeks {
		return time.Time{}, false
	}

	return m.engine.VisibleInterval().Start.AddDate(0, 0, row*7+col), true
}
