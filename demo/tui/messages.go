package tui

import "presskit/runner"

// Messages for the tea program

// SnapshotMsg carries controller state published by a transition
type SnapshotMsg struct {
	Snapshot runner.Snapshot
}

// RunFinishedMsg is sent when a submitted run returns
type RunFinishedMsg struct {
	Snapshot runner.Snapshot
	Err      error
}
