package search

import (
	"context"
	"errors"
	"time"
)

// ErrDeadlineExceeded is returned by every frame of an in-flight search
// once the time budget has run out. It is an expected outcome, not a fault.
var ErrDeadlineExceeded = errors.New("search deadline exceeded")

// Clock returns the current time. Tests substitute a fake one.
type Clock func() time.Time

// TimeGuard is the shared deadline check consulted at every search node and
// at every iteration of the root move loop.
type TimeGuard struct {
	ctx    context.Context
	start  time.Time
	budget time.Duration
	clock  Clock
}

func NewTimeGuard(ctx context.Context, start time.Time, budget time.Duration, clock Clock) *TimeGuard {
	if clock == nil {
		clock = time.Now
	}
	if ctx == nil {
		ctx = context.Background()
	}
	return &TimeGuard{ctx: ctx, start: start, budget: budget, clock: clock}
}

func (g *TimeGuard) Elapsed() time.Duration {
	return g.clock().Sub(g.start)
}

// Exceeded is true once the elapsed time is strictly greater than the
// budget, or once the caller's context is done.
func (g *TimeGuard) Exceeded() bool {
	if g.ctx.Err() != nil {
		return true
	}
	return g.Elapsed() > g.budget
}

// Check returns ErrDeadlineExceeded if the guard has tripped.
func (g *TimeGuard) Check() error {
	if g.Exceeded() {
		return ErrDeadlineExceeded
	}
	return nil
}
