// Package commands provides TUI command constructors and message types.
package commands

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/rezcal/rezcal/internal/calendar"
	"github.com/rezcal/rezcal/internal/interval"
)

// ItemsLoadedMsg is sent when reservations for a visible range are loaded.
type ItemsLoadedMsg struct {
	Within interval.Interval
	Items  []*calendar.CalendarItem
}

// ItemSavedMsg is sent when a new reservation was persisted.
type ItemSavedMsg struct {
	Item *calendar.CalendarItem
}

// ErrMsg is sent when an error occurs.
type ErrMsg struct {
	Err error
}

// StatusMsgCmd is sent for temporary status messages.
type StatusMsgCmd struct {
	Msg string
}

// ClearStatusMsg is sent to clear the status message.
type ClearStatusMsg struct{}

// LoadItems fetches reservations overlapping the given interval.
func LoadItems(repo calendar.Repository, within interval.Interval) tea.Cmd {
	return func() tea.Msg {
		items, err := repo.ListItems(context.Background(), within)
		if err != nil {
			return ErrMsg{Err: err}
		}
		return ItemsLoadedMsg{Within: within, Items: items}
	}
}

// SaveItem persists a new reservation.
func SaveItem(repo calendar.Repository, item *calendar.CalendarItem) tea.Cmd {
	return func() tea.Msg {
		if err := repo.CreateItem(context.Background(), item); err != nil {
			return ErrMsg{Err: err}
		}
		return ItemSavedMsg{Item: item}
	}
}

// Status shows a temporary status message.
func Status(msg string) tea.Cmd {
	return func() tea.Msg {
		return StatusMsgCmd{Msg: msg}
	}
}

// ClearStatusAfter clears the status message after the given delay.
func ClearStatusAfter(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return ClearStatusMsg{}
	})
}
