// Package runner owns the state machine of a single press-release run:
// input validation, the call through the gateway, and the mapping of the
// response into status, document and titles.
package runner

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"presskit/logger"
	"presskit/types"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrRunInProgress is returned by Submit while another run is in flight.
var ErrRunInProgress = errors.New("a run is already in progress")

// Processor sends a run request to the gateway. It returns the HTTP status
// and the decoded body, or an error when no decodable response arrived.
type Processor interface {
	Process(ctx context.Context, req types.RunRequest) (int, *types.RunResult, error)
}

type listener struct {
	id int
	fn func(Snapshot)
}

// Controller holds the run state. State changes only through Submit and
// Reset; observers read it via Snapshot or Subscribe.
type Controller struct {
	mu        sync.Mutex
	notifyMu  sync.Mutex
	processor Processor
	log       *zap.SugaredLogger

	state     Snapshot
	listeners []listener
	nextID    int
}

// NewController creates an idle controller.
func NewController(processor Processor, log *zap.SugaredLogger) *Controller {
	if log == nil {
		log = logger.Nop()
	}
	return &Controller{
		processor: processor,
		log:       log,
		state:     Snapshot{Status: StatusIdle},
	}
}

// Snapshot returns a copy of the current state.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.clone()
}

// Subscribe registers fn to receive a snapshot after every state change,
// in transition order. fn runs on the goroutine that caused the change
// and must not call Submit or Reset. The returned func unsubscribes.
func (c *Controller) Subscribe(fn func(Snapshot)) func() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.nextID++
	id := c.nextID
	c.listeners = append(c.listeners, listener{id: id, fn: fn})

	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		for i, l := range c.listeners {
			if l.id == id {
				c.listeners = append(c.listeners[:i:i], c.listeners[i+1:]...)
				return
			}
		}
	}
}

// Submit runs the pipeline for url and guidance and blocks until the run
// reaches a terminal state, which is returned. An empty url (after
// trimming) fails immediately without any network call. The only error
// is ErrRunInProgress, in which case the state is left untouched.
func (c *Controller) Submit(ctx context.Context, url, guidance string) (Snapshot, error) {
	c.mu.Lock()
	if c.state.Status == StatusRunning {
		snap := c.state.clone()
		c.mu.Unlock()
		return snap, ErrRunInProgress
	}

	c.state.URL = url
	c.state.Guidance = guidance

	if strings.TrimSpace(url) == "" {
		c.state.RunID = ""
		c.state.Status = StatusFailed
		c.state.Failure = FailureInput
		c.state.Message = MessageMissingURL
		c.state.StartedAt = time.Time{}
		c.state.FinishedAt = time.Now()
		c.log.Debug("Run rejected: missing URL")
		return c.publishLocked(), nil
	}

	runID := uuid.NewString()
	c.state.RunID = runID
	c.state.Status = StatusRunning
	c.state.Failure = FailureNone
	c.state.Message = MessageRunning
	c.state.Document = ""
	c.state.Titles = nil
	c.state.StartedAt = time.Now()
	c.state.FinishedAt = time.Time{}
	c.log.Debugw("Run started", "run_id", runID, "url", url)
	c.publishLocked()

	statusCode, result, err := c.processor.Process(ctx, types.RunRequest{URL: url, Guidance: guidance})

	c.mu.Lock()
	if c.state.RunID != runID {
		// Reset while the request was in flight; the late answer is dropped.
		snap := c.state.clone()
		c.mu.Unlock()
		c.log.Debugw("Discarding result of a reset run", "run_id", runID)
		return snap, nil
	}

	c.state.FinishedAt = time.Now()
	switch {
	case err != nil:
		c.state.Status = StatusFailed
		c.state.Failure = FailureNetwork
		c.state.Message = networkMessage(err)
		c.log.Warnw("⚠️ Run failed: network", "run_id", runID, "error", err)
	case statusCode < 200 || statusCode > 299 || result == nil || !result.OK:
		errText := ""
		if result != nil {
			errText = result.Error
		}
		c.state.Status = StatusFailed
		c.state.Failure = FailureBackend
		c.state.Message = backendMessage(statusCode, errText)
		c.log.Warnw("❌ Run failed: backend", "run_id", runID, "status", statusCode, "error", errText)
	default:
		c.state.Status = StatusSucceeded
		c.state.Failure = FailureNone
		c.state.Message = MessageDone
		c.state.Document = result.Document
		c.state.Titles = append([]string(nil), result.Titles...)
		c.log.Infow("✅ Run complete", "run_id", runID, "titles", len(result.Titles),
			"duration", c.state.FinishedAt.Sub(c.state.StartedAt))
	}
	return c.publishLocked(), nil
}

// Reset returns the controller to idle and clears every field.
func (c *Controller) Reset() Snapshot {
	c.mu.Lock()
	c.state = Snapshot{Status: StatusIdle}
	return c.publishLocked()
}

// publishLocked must be called with mu held; it releases mu. Listeners are
// called outside mu but under notifyMu so deliveries keep transition order.
func (c *Controller) publishLocked() Snapshot {
	snap := c.state.clone()
	fns := make([]func(Snapshot), len(c.listeners))
	for i, l := range c.listeners {
		fns[i] = l.fn
	}

	c.notifyMu.Lock()
	c.mu.Unlock()
	defer c.notifyMu.Unlock()

	for _, fn := range fns {
		fn(snap.clone())
	}
	return snap
}
