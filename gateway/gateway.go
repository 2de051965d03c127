package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"presskit/config"
	"presskit/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrInvalidBody is returned when the inbound body is not JSON.
var ErrInvalidBody = errors.New("invalid JSON body")

// ErrBodylessStatus is returned when the backend answers a status that
// cannot carry a response body (1xx, 204, 304).
var ErrBodylessStatus = errors.New("backend status cannot carry a body")

// emptyObject is relayed whenever the backend body cannot be decoded.
var emptyObject = json.RawMessage(`{}`)

// maxPreview caps how much of an undecodable body ends up in the log.
const maxPreview = 200

// Response is what the backend answered, after normalization.
type Response struct {
	StatusCode int
	Body       json.RawMessage
	RequestID  string
}

// Gateway forwards process requests to the backend. It keeps no state
// between calls; the base URL is fixed at construction.
type Gateway struct {
	baseURL    string
	httpClient *http.Client
	observer   Observer
	log        *zap.SugaredLogger
}

// Option customizes a Gateway.
type Option func(*Gateway)

// WithHTTPClient replaces the outbound HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(g *Gateway) { g.httpClient = c }
}

// WithObserver registers an observer notified after every forwarded call.
func WithObserver(o Observer) Option {
	return func(g *Gateway) {
		if o != nil {
			g.observer = o
		}
	}
}

// New creates a gateway for cfg.BackendBase.
func New(cfg config.Config, log *zap.SugaredLogger, opts ...Option) *Gateway {
	if log == nil {
		log = logger.Nop()
	}
	g := &Gateway{
		baseURL:    config.NormalizeBase(cfg.BackendBase),
		httpClient: &http.Client{Timeout: cfg.BackendTimeout},
		observer:   Observers(nil),
		log:        log,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// BaseURL returns the normalized backend base URL.
func (g *Gateway) BaseURL() string {
	return g.baseURL
}

// Forward posts body verbatim to {base}/api/process and returns the
// backend's status code with its JSON body. A body that is empty or not
// JSON is replaced by {}. An error means no backend response was obtained.
func (g *Gateway) Forward(ctx context.Context, body []byte) (*Response, error) {
	var probe json.RawMessage
	if err := json.Unmarshal(body, &probe); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBody, err)
	}

	requestID := uuid.NewString()
	start := time.Now()
	outcome := Outcome{RequestID: requestID}

	resp, err := g.send(ctx, requestID, body)
	if err != nil {
		outcome.Err = err
		outcome.Duration = time.Since(start)
		g.log.Errorw("❌ Backend request failed", "request_id", requestID, "error", err)
		g.observer.Observe(ctx, outcome)
		return nil, err
	}
	defer resp.Body.Close()

	if !bodyAllowedForStatus(resp.StatusCode) {
		err := fmt.Errorf("%w: %d", ErrBodylessStatus, resp.StatusCode)
		outcome.StatusCode = resp.StatusCode
		outcome.Err = err
		outcome.Duration = time.Since(start)
		g.log.Errorw("❌ Backend answered without a relayable body", "request_id", requestID, "status", resp.StatusCode)
		g.observer.Observe(ctx, outcome)
		return nil, err
	}

	raw, readErr := io.ReadAll(resp.Body)
	decoded, ok := decodeBody(raw)
	if !ok || readErr != nil {
		decoded = emptyObject
		outcome.DecodeFallback = true
		g.log.Warnw("⚠️ Backend body is not JSON, relaying {}",
			"request_id", requestID,
			"status", resp.StatusCode,
			"read_error", readErr,
			"preview", preview(raw),
		)
	}

	outcome.StatusCode = resp.StatusCode
	outcome.OK = successFlag(decoded)
	outcome.Duration = time.Since(start)
	g.log.Debugw("Backend responded", "request_id", requestID, "status", resp.StatusCode, "duration", outcome.Duration)
	g.observer.Observe(ctx, outcome)

	return &Response{
		StatusCode: resp.StatusCode,
		Body:       decoded,
		RequestID:  requestID,
	}, nil
}

func (g *Gateway) send(ctx context.Context, requestID string, body []byte) (*http.Response, error) {
	url := g.baseURL + config.ProcessPath

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", requestID)

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to reach backend: %w", err)
	}
	return resp, nil
}

// bodyAllowedForStatus mirrors net/http: 1xx, 204 and 304 responses
// never carry a body, so {} could not be relayed with them.
func bodyAllowedForStatus(status int) bool {
	switch {
	case status >= 100 && status <= 199:
		return false
	case status == http.StatusNoContent, status == http.StatusNotModified:
		return false
	}
	return true
}

// decodeBody reports whether raw holds a single JSON value.
func decodeBody(raw []byte) (json.RawMessage, bool) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || !json.Valid(trimmed) {
		return nil, false
	}
	return json.RawMessage(trimmed), true
}

func successFlag(body json.RawMessage) bool {
	var env struct {
		OK bool `json:"ok"`
	}
	if err := json.Unmarshal(body, &env); err != nil {
		return false
	}
	return env.OK
}

func preview(raw []byte) string {
	if len(raw) > maxPreview {
		return string(raw[:maxPreview]) + "..."
	}
	return string(raw)
}
