package tui

import (
	"context"

	"presskit/runner"

	tea "github.com/charmbracelet/bubbletea"
)

// waitForSnapshot creates a command that delivers the next published snapshot
func waitForSnapshot(updates <-chan runner.Snapshot) tea.Cmd {
	return func() tea.Msg {
		snap, ok := <-updates
		if !ok {
			return nil
		}
		return SnapshotMsg{Snapshot: snap}
	}
}

// submitRun creates a command that runs the pipeline to completion
func submitRun(ctrl *runner.Controller, url, guidance string) tea.Cmd {
	return func() tea.Msg {
		snap, err := ctrl.Submit(context.Background(), url, guidance)
		return RunFinishedMsg{Snapshot: snap, Err: err}
	}
}
