package tui

import (
	"presskit/runner"

	tea "github.com/charmbracelet/bubbletea"
)

// Field identifies the focused input
type Field int

const (
	FieldURL Field = iota
	FieldGuidance
)

// updateBuffer bounds how many published snapshots may queue for the UI
const updateBuffer = 16

// Model represents the TUI state. Run state lives in the controller; the
// model only keeps the latest snapshot and the local input buffers.
type Model struct {
	Controller *runner.Controller
	Updates    <-chan runner.Snapshot
	GatewayURL string

	Snapshot runner.Snapshot

	// Local input state
	URLInput      string
	GuidanceInput string
	Focus         Field
	Notice        string
}

// NewModel creates a TUI model bound to ctrl. The returned func detaches
// the model from the controller and must be called once the program exits.
func NewModel(ctrl *runner.Controller, gatewayURL string) (Model, func()) {
	updates := make(chan runner.Snapshot, updateBuffer)
	unsubscribe := ctrl.Subscribe(func(s runner.Snapshot) {
		select {
		case updates <- s:
		default:
			// UI is behind; Submit and Reset results still reach it directly.
		}
	})

	return Model{
		Controller: ctrl,
		Updates:    updates,
		GatewayURL: gatewayURL,
		Snapshot:   ctrl.Snapshot(),
		Focus:      FieldURL,
	}, unsubscribe
}

// Init implements tea.Model interface
func (m Model) Init() tea.Cmd {
	return waitForSnapshot(m.Updates)
}

// focusedInput returns a pointer to the buffer under the cursor
func (m *Model) focusedInput() *string {
	if m.Focus == FieldGuidance {
		return &m.GuidanceInput
	}
	return &m.URLInput
}
