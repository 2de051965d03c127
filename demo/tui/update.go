package tui

import (
	"errors"

	"presskit/runner"

	tea "github.com/charmbracelet/bubbletea"
)

// Update implements tea.Model interface
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)
	case SnapshotMsg:
		m.Snapshot = msg.Snapshot
		return m, waitForSnapshot(m.Updates)
	case RunFinishedMsg:
		return m.handleRunFinished(msg)
	}
	return m, nil
}

// handleKeyPress processes keyboard input
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "esc":
		return m, tea.Quit
	case "tab", "shift+tab":
		if m.Focus == FieldURL {
			m.Focus = FieldGuidance
		} else {
			m.Focus = FieldURL
		}
		return m, nil
	case "enter":
		return m.submit()
	case "ctrl+l":
		m.Snapshot = m.Controller.Reset()
		m.URLInput = ""
		m.GuidanceInput = ""
		m.Notice = ""
		m.Focus = FieldURL
		return m, nil
	case "ctrl+u":
		*m.focusedInput() = ""
		return m, nil
	case "backspace":
		in := m.focusedInput()
		if r := []rune(*in); len(r) > 0 {
			*in = string(r[:len(r)-1])
		}
		return m, nil
	}

	switch msg.Type {
	case tea.KeyRunes:
		*m.focusedInput() += string(msg.Runes)
	case tea.KeySpace:
		*m.focusedInput() += " "
	}
	return m, nil
}

// submit starts a run unless one is already in flight
func (m Model) submit() (tea.Model, tea.Cmd) {
	if m.Snapshot.Busy() {
		m.Notice = TextBusy
		return m, nil
	}
	m.Notice = ""
	return m, submitRun(m.Controller, m.URLInput, m.GuidanceInput)
}

// handleRunFinished processes the terminal snapshot of a run
func (m Model) handleRunFinished(msg RunFinishedMsg) (tea.Model, tea.Cmd) {
	if errors.Is(msg.Err, runner.ErrRunInProgress) {
		m.Notice = TextBusy
		return m, nil
	}
	m.Snapshot = msg.Snapshot
	return m, nil
}
