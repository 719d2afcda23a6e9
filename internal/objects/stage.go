// Package objects implements the concrete object classes — bridge, port,
// interface, controller, channel, queue, policer and policer-action — each
// satisfying internal/classes.Class, grounded on the field layouts in
// original_source/src/include/lagopus/datastore/{bridge,port,interface,
// controller,policer,policer_action}.h.
//
// Every class shares the same staged-commit shape: a "current" value that
// is what Serialize and live queries see, and a "modified" value that
// accumulates pending edits until an Update call resolves the interpreter
// state. This generalizes s_update_all_objs's per-object current/modified
// pair, reused identically by every object kind in the original.
package objects

import (
	"github.com/lagopus-go/dsinterp/internal/interpstate"
	"github.com/lagopus-go/dsinterp/internal/result"
)

// Staged couples a live value with a pending edit.
type Staged[T any] struct {
	Current  T
	Modified T
	dirty    bool
}

// NewStaged returns a Staged with both Current and Modified set to v.
func NewStaged[T any](v T) Staged[T] {
	return Staged[T]{Current: v, Modified: v}
}

// Stage records v as a pending edit, without touching Current.
func (s *Staged[T]) Stage(v T) {
	s.Modified = v
	s.dirty = true
}

// Pending reports whether Stage has been called since the last Commit or
// Discard.
func (s *Staged[T]) Pending() bool { return s.dirty }

// Commit promotes Modified to Current.
func (s *Staged[T]) Commit() {
	if s.dirty {
		s.Current = s.Modified
		s.dirty = false
	}
}

// Discard reverts Modified back to Current, abandoning any pending edit.
func (s *Staged[T]) Discard() {
	if s.dirty {
		s.Modified = s.Current
		s.dirty = false
	}
}

// ApplyState resolves how a Staged field reacts to an interpreter state
// transition. It is the shared branch every object class's Update method
// runs, generalizing s_update_all_objs's identical handling across
// AtomicCommit's two passes, AtomicAbort and AtomicRollback:
//
//   - Preload, Dryrun, AutoCommit: apply immediately (no staging window).
//   - Committing: leave the edit staged; the apply pass only validates.
//   - Committed: promote the staged edit now that the apply pass succeeded.
//   - Aborting, Rollbacking: discard the staged edit, reverting to Current.
//   - Aborted, Rollbacked: no-op; the discard already happened above.
func ApplyState[T any](state interpstate.State, s *Staged[T]) error {
	switch state {
	case interpstate.Preload, interpstate.Dryrun, interpstate.AutoCommit, interpstate.Committed:
		s.Commit()
	case interpstate.Committing:
		// staged only; Commit happens once Committed is reached.
	case interpstate.Aborting, interpstate.Rollbacking:
		s.Discard()
	case interpstate.Aborted, interpstate.Rollbacked:
		// already resolved during the preceding Aborting/Rollbacking pass.
	case interpstate.Unknown:
		return result.New(result.InvalidStateTransition)
	default:
		return result.New(result.InvalidStateTransition)
	}
	return nil
}
