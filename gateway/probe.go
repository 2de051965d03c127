package gateway

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"presskit/config"
	"presskit/logger"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Health is the last known reachability of the backend.
type Health struct {
	Reachable bool      `json:"reachable"`
	CheckedAt time.Time `json:"checked_at"`
	Error     string    `json:"error,omitempty"`
}

// Prober periodically checks that the backend answers HTTP at all. Any
// response, whatever its status, counts as reachable.
type Prober struct {
	mu     sync.RWMutex
	target string
	client *http.Client
	cron   *cron.Cron
	last   Health
	log    *zap.SugaredLogger
}

// NewProber creates a prober for the given backend base URL.
func NewProber(baseURL string, log *zap.SugaredLogger) *Prober {
	if log == nil {
		log = logger.Nop()
	}
	return &Prober{
		target: config.NormalizeBase(baseURL),
		client: &http.Client{Timeout: config.ProbeTimeout},
		cron:   cron.New(),
		log:    log,
	}
}

// Check probes the backend once and records the result.
func (p *Prober) Check(ctx context.Context) Health {
	h := Health{CheckedAt: time.Now()}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.target, nil)
	if err == nil {
		var resp *http.Response
		resp, err = p.client.Do(req)
		if err == nil {
			resp.Body.Close()
		}
	}
	if err != nil {
		h.Error = err.Error()
	} else {
		h.Reachable = true
	}

	p.mu.Lock()
	changed := p.last.CheckedAt.IsZero() || p.last.Reachable != h.Reachable
	p.last = h
	p.mu.Unlock()

	if changed {
		if h.Reachable {
			p.log.Infof("✅ Backend reachable at %s", p.target)
		} else {
			p.log.Warnf("⚠️ Backend unreachable at %s: %s", p.target, h.Error)
		}
	}
	return h
}

// Last returns the most recent probe result. CheckedAt is zero before the
// first probe.
func (p *Prober) Last() Health {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.last
}

// Start runs a probe immediately and then on the given cron schedule.
func (p *Prober) Start(schedule string) error {
	if _, err := p.cron.AddFunc(schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), config.ProbeTimeout)
		defer cancel()
		p.Check(ctx)
	}); err != nil {
		return fmt.Errorf("failed to add probe job: %w", err)
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), config.ProbeTimeout)
		defer cancel()
		p.Check(ctx)
	}()

	p.cron.Start()
	p.log.Infof("Backend probe scheduled: %s", schedule)
	return nil
}

// Stop halts the schedule and waits for a running probe to finish.
func (p *Prober) Stop() {
	<-p.cron.Stop().Done()
}
