// Package gstate implements the process-wide global-state tracker: a
// monotonic lifecycle enum with wait/notify semantics, modelled on the
// original interpreter's gstate.c but built on sync.Cond instead of a
// raw condition variable + signal handler.
package gstate

import (
	"context"
	"sync"

	"github.com/lagopus-go/dsinterp/internal/result"
)

// State is a monotonically increasing lifecycle stage.
type State int

const (
	Unknown State = iota
	Initializing
	Initialized
	Starting
	Started
	RequestShutdown
	AcceptShutdown
	ShuttingDown
	Shutdown
	Finalizing
	Finalized
)

var names = [...]string{
	"Unknown", "Initializing", "Initialized", "Starting", "Started",
	"RequestShutdown", "AcceptShutdown", "ShuttingDown", "Shutdown",
	"Finalizing", "Finalized",
}

func (s State) String() string {
	if int(s) >= 0 && int(s) < len(names) {
		return names[s]
	}
	return "State(?)"
}

// ShutdownLevel distinguishes a graceful request from an immediate one.
type ShutdownLevel int

const (
	Gracefully ShutdownLevel = iota
	RightNow
)

// Tracker is the process-wide state holder. The zero value is not usable;
// use New.
type Tracker struct {
	mu      sync.Mutex
	cond    *sync.Cond
	current State
}

// New returns a Tracker starting at Unknown.
func New() *Tracker {
	t := &Tracker{}
	t.cond = sync.NewCond(&t.mu)
	return t
}

// Current returns the current state.
func (t *Tracker) Current() State {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.current
}

// Set advances the state. Backward transitions (s < current) fail with
// InvalidStateTransition; all waiters are signalled on success.
func (t *Tracker) Set(s State) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if s < t.current {
		return result.Newf(result.InvalidStateTransition,
			"cannot move from %s back to %s", t.current, s)
	}
	t.current = s
	t.cond.Broadcast()
	return nil
}

// WaitFor blocks until current >= target, the context is done, or a
// shutdown has been requested while waiting for a non-shutdown target.
// It returns NotOperational in the latter case.
func (t *Tracker) WaitFor(ctx context.Context, target State) error {
	done := make(chan struct{})
	go func() {
		select {
		case <-ctx.Done():
			t.mu.Lock()
			t.cond.Broadcast()
			t.mu.Unlock()
		case <-done:
		}
	}()
	defer close(done)

	t.mu.Lock()
	defer t.mu.Unlock()
	for {
		if t.current >= target {
			return nil
		}
		if target < RequestShutdown && t.current >= RequestShutdown {
			return result.New(result.NotOperational)
		}
		if err := ctx.Err(); err != nil {
			return result.Newf(result.Timedout, "%v", err)
		}
		t.cond.Wait()
	}
}

// RequestShutdown sets RequestShutdown and waits (without a deadline of its
// own; callers should wrap ctx) until some other goroutine advances the
// tracker past RequestShutdown. The level is informational for the caller's
// signal-translation logic (§9 design note); the tracker itself always
// advances to the same RequestShutdown stage regardless of level.
func (t *Tracker) RequestShutdown(ctx context.Context, level ShutdownLevel) error {
	if err := t.Set(RequestShutdown); err != nil {
		return err
	}
	return t.WaitFor(ctx, AcceptShutdown)
}
