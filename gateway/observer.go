package gateway

import (
	"context"
	"time"
)

// Outcome describes one forwarded call. StatusCode is zero and Err is set
// when the backend could not be reached. Err is set alongside StatusCode
// when the backend answered a status that cannot carry a body.
type Outcome struct {
	RequestID      string
	StatusCode     int
	OK             bool
	DecodeFallback bool
	Err            error
	Duration       time.Duration
}

// Observer is notified after every forwarded call. Implementations must be
// safe for concurrent use and must not fail the request.
type Observer interface {
	Observe(ctx context.Context, o Outcome)
}

// Observers fans an outcome out to each member in order.
type Observers []Observer

// Observe implements Observer.
func (all Observers) Observe(ctx context.Context, o Outcome) {
	for _, obs := range all {
		if obs != nil {
			obs.Observe(ctx, o)
		}
	}
}
