package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/rezcal/rezcal/internal/calendar"
	"github.com/rezcal/rezcal/internal/dateutil"
	"github.com/rezcal/rezcal/internal/interval"
)

// View renders the TUI.
func (m *Model) View() string {
	if m.width < timeColWidth+minColWidth || m.height < headerLines+footerLines+1 {
		return "Terminal too small"
	}

	var grid string
	if m.engine.View() == calendar.ViewMonth {
		grid = m.renderMonthGrid()
	} else {
		grid = m.renderTimeGrid()
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderTitle(),
		grid,
		m.renderFooter(),
	)
}

func (m *Model) renderTitle() string {
	anchor := m.engine.ViewDate()
	var label string
	switch m.engine.View() {
	case calendar.ViewDay:
		label = anchor.Format("Monday, January 2 2006")
	case calendar.ViewWeek:
		start := dateutil.StartOfWeek(anchor, m.engine.WeekStart())
		end := start.AddDate(0, 0, 6)
		label = fmt.Sprintf("%s - %s", start.Format("Jan 2"), end.Format("Jan 2 2006"))
	default:
		label = anchor.Format("January 2006")
	}

	title := m.styles.TitleStyle.Render("rezcal")
	mode := m.styles.HelpStyle.Render(m.engine.View().String())
	return fmt.Sprintf("%s  %s  %s", title, label, mode)
}

// renderTimeGrid draws the day or week view: a time column plus one
// column per day, one terminal row per slot.
func (m *Model) renderTimeGrid() string {
	cols := m.numCols()
	colW := m.colWidth()
	gridH := m.gridHeight()
	slotMin := m.engine.SlotMinutes()
	startDay := m.gridStartDay()
	today := dateutil.StartOfDay(time.Now())

	// Day headers
	var header strings.Builder
	header.WriteString(strings.Repeat(" ", timeColWidth))
	for c := 0; c < cols; c++ {
		day := startDay.AddDate(0, 0, c)
		style := m.styles.DayHeaderStyle
		if day.Equal(today) {
			style = m.styles.DayHeaderTodayStyle
		}
		header.WriteString(style.Width(colW).Render(day.Format("Mon 2")))
	}

	// Paint events into a cell lookup: cells[col][row] for visible rows.
	type cell struct {
		ev    *calendar.DisplayEvent
		first bool // Row showing the event title
	}
	cells := make([][]cell, cols)
	for c := range cells {
		cells[c] = make([]cell, gridH)
	}
	for _, ev := range m.engine.Events() {
		col := m.eventDayCol(ev)
		if col < 0 {
			continue
		}
		startRow, endRow := m.eventRowSpan(ev)
		for row := startRow; row < endRow; row++ {
			vis := row - m.scrollOffset
			if vis < 0 || vis >= gridH {
				continue
			}
			cells[col][vis] = cell{ev: ev, first: row == startRow || vis == 0}
		}
	}

	var b strings.Builder
	b.WriteString(header.String())
	for vis := 0; vis < gridH; vis++ {
		b.WriteByte('\n')
		row := vis + m.scrollOffset

		minutes := row * slotMin
		label := "      "
		if minutes%60 == 0 && minutes < 24*60 {
			label = fmt.Sprintf("%02d:00 ", minutes/60)
		}
		b.WriteString(m.styles.TimeColumnStyle.Render(label))

		for c := 0; c < cols; c++ {
			cl := cells[c][vis]
			if cl.ev == nil {
				b.WriteString(m.styles.EmptyCellStyle.Render(emptyCell(colW, minutes%60 == 0)))
				continue
			}

			text := strings.Repeat(" ", colW)
			if cl.first {
				text = padCell(" "+cl.ev.Title, colW)
			}
			b.WriteString(m.styles.EventTagStyle(cl.ev.Tag).Render(text))
		}
	}

	return b.String()
}

// renderMonthGrid draws the month view: one cell per day, grouped in
// week rows, with event titles listed under the day number.
func (m *Model) renderMonthGrid() string {
	weeks := m.monthWeeks()
	cellW := m.width / 7
	cellH := m.gridHeight() / weeks
	if cellH < 1 {
		cellH = 1
	}

	vi := m.engine.VisibleInterval()
	anchorMonth := m.engine.ViewDate().Month()
	today := dateutil.StartOfDay(time.Now())

	// Weekday header
	var header strings.Builder
	for c := 0; c < 7; c++ {
		day := vi.Start.AddDate(0, 0, c)
		header.WriteString(m.styles.DayHeaderStyle.Width(cellW).Render(day.Format("Mon")))
	}

	// Group events by day for the visible range.
	byDay := make(map[string][]*calendar.DisplayEvent)
	for _, ev := range m.engine.Events() {
		key := dateutil.StartOfDay(ev.Start).Format("2006-01-02")
		byDay[key] = append(byDay[key], ev)
	}

	var b strings.Builder
	b.WriteString(header.String())
	for w := 0; w < weeks; w++ {
		// Build each week as cellH lines of 7 side-by-side day cells.
		lines := make([]strings.Builder, cellH)
		for c := 0; c < 7; c++ {
			day := vi.Start.AddDate(0, 0, w*7+c)
			events := byDay[day.Format("2006-01-02")]

			numStyle := m.styles.MonthDayStyle
			if day.Month() != anchorMonth {
				numStyle = m.styles.MonthDayMutedStyle
			}
			if day.Equal(today) {
				numStyle = m.styles.MonthTodayStyle
			}
			lines[0].WriteString(numStyle.Render(padCell(fmt.Sprintf(" %2d", day.Day()), cellW)))

			for i := 1; i < cellH; i++ {
				if i-1 < len(events) {
					ev := events[i-1]
					if i == cellH-1 && len(events) > cellH-1 {
						more := fmt.Sprintf(" +%d more", len(events)-(cellH-2))
						lines[i].WriteString(m.styles.HelpStyle.Render(padCell(more, cellW)))
						continue
					}
					lines[i].WriteString(m.styles.EventTagStyle(ev.Tag).Render(padCell(" "+ev.Title, cellW)))
				} else {
					lines[i].WriteString(strings.Repeat(" ", cellW))
				}
			}
		}
		for i := 0; i < cellH; i++ {
			b.WriteByte('\n')
			b.WriteString(lines[i].String())
		}
	}

	return b.String()
}

func (m *Model) renderFooter() string {
	legend := strings.Join([]string{
		m.styles.EventStyle.Render(" reserved "),
		m.styles.OwnedStyle.Render(" yours "),
		m.styles.CreatedStyle.Render(" new "),
	}, " ")

	var status string
	switch {
	case m.statusMsg != "" && m.err != nil:
		status = m.styles.ErrorStyle.Render(m.statusMsg)
	case m.statusMsg != "":
		status = m.styles.StatusStyle.Render(m.statusMsg)
	case m.loading:
		status = m.styles.LoadingStyle.Render("Loading...")
	default:
		status = m.styles.HelpStyle.Render("q quit · d/w/m views · ←/→ navigate · t today · drag to reserve · y yank")
	}

	prompt := ""
	if m.mode == ModePrompt {
		slot := m.engine.SelectedSlot()
		label := ""
		if slot != nil {
			label = m.styles.HelpStyle.Render(formatSlot(*slot) + "  ")
		}
		prompt = label + m.prompt.View()
	}

	return lipgloss.JoinVertical(lipgloss.Left, legend, status, prompt)
}

// padCell truncates or pads text to an exact display width.
func padCell(s string, width int) string {
	s = ansi.Truncate(s, width, "…")
	if w := lipgloss.Width(s); w < width {
		s += strings.Repeat(" ", width-w)
	}
	return s
}

func emptyCell(width int, hourRule bool) string {
	if hourRule {
		return strings.Repeat("╌", width)
	}
	return strings.Repeat(" ", width)
}

func formatSlot(slot interval.Interval) string {
	return fmt.Sprintf("%s - %s",
		slot.Start.Format("2006-01-02 15:04"),
		slot.End.Format("15:04"))
}

func describeItem(item *calendar.CalendarItem) string {
	desc := fmt.Sprintf("%s  %s", item.Title, formatSlot(item.Slot))
	if item.Owner.Name != "" {
		desc += "  (" + item.Owner.Name + ")"
	}
	return desc
}
