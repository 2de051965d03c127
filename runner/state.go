package runner

import (
	"fmt"
	"time"
)

// Status is the run lifecycle state.
type Status string

const (
	StatusIdle      Status = "idle"
	StatusRunning   Status = "running"
	StatusSucceeded Status = "succeeded"
	StatusFailed    Status = "failed"
)

// FailureKind tells why a run failed. It is empty unless Status is failed.
type FailureKind string

const (
	FailureNone    FailureKind = ""
	FailureInput   FailureKind = "input"
	FailureBackend FailureKind = "backend"
	FailureNetwork FailureKind = "network"
)

// Status messages shown to the user.
const (
	MessageMissingURL = "Please enter a YouTube URL."
	MessageRunning    = "Running pipeline… this can take several minutes."
	MessageDone       = "Done."
)

// Snapshot is a read-only copy of the controller state.
type Snapshot struct {
	RunID      string
	Status     Status
	Failure    FailureKind
	Message    string
	URL        string
	Guidance   string
	Document   string
	Titles     []string
	StartedAt  time.Time
	FinishedAt time.Time
}

// Busy reports whether a run is in flight.
func (s Snapshot) Busy() bool {
	return s.Status == StatusRunning
}

func (s Snapshot) clone() Snapshot {
	if s.Titles != nil {
		s.Titles = append([]string(nil), s.Titles...)
	}
	return s
}

func backendMessage(statusCode int, errText string) string {
	if errText == "" {
		errText = fmt.Sprintf("status %d", statusCode)
	}
	return "Error: " + errText
}

func networkMessage(err error) string {
	return "Network error: " + err.Error()
}
