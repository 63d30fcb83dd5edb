package tui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/rezcal/rezcal/internal/tui/commands"
)

// Update handles messages and updates the model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case tea.MouseMsg:
		return m.handleMouseMsg(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case commands.ItemsLoadedMsg:
		m.loading = false
		m.engine.SetItems(msg.Items)
		return m, m.drainSink()

	case commands.ItemSavedMsg:
		m.engine.ClearSelection()
		m.engine.Refresh()
		cmds := []tea.Cmd{
			m.drainSink(),
			commands.Status(fmt.Sprintf("Reserved %q", msg.Item.Title)),
		}
		return m, tea.Batch(cmds...)

	case commands.ErrMsg:
		m.err = msg.Err
		m.statusMsg = fmt.Sprintf("Error: %v", msg.Err)
		m.statusTime = time.Now().Add(5 * time.Second)
		return m, commands.ClearStatusAfter(5 * time.Second)

	case commands.StatusMsgCmd:
		m.err = nil
		m.statusMsg = msg.Msg
		m.statusTime = time.Now().Add(3 * time.Second)
		return m, commands.ClearStatusAfter(3 * time.Second)

	case commands.ClearStatusMsg:
		if time.Now().After(m.statusTime) {
			m.statusMsg = ""
		}
		return m, nil
	}

	// Forward anything else to the prompt while it is focused.
	if m.mode == ModePrompt {
		var cmd tea.Cmd
		m.prompt, cmd = m.prompt.Update(msg)
		return m, cmd
	}

	return m, nil
}

// drainSink converts collected engine callback effects into commands and
// model state changes.
func (m *Model) drainSink() tea.Cmd {
	var cmds []tea.Cmd

	if m.sink.loadRequest != nil {
		m.loading = true
		cmds = append(cmds, commands.LoadItems(m.repo, *m.sink.loadRequest))
	}

	if m.sink.slotSelected != nil {
		m.mode = ModePrompt
		m.prompt.SetValue("")
		m.prompt.Focus()
	} else if m.sink.slotCleared {
		m.mode = ModeNormal
		m.prompt.Blur()
	}

	if item := m.sink.clickedItem; item != nil {
		cmds = append(cmds, commands.Status(describeItem(item)))
	}

	m.sink.reset()
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}
