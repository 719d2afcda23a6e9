// Package interpstate defines the interpreter state enum shared by the
// evaluator, the atomic transaction manager and every object class's
// Update method (spec.md §4.1, §4.4). Its values and transitions mirror
// original_source/src/datastore/interp.c's datastore_interp_state_t
// exactly: a class's Update handler branches on this value to decide
// whether to apply, stage, finalize or unwind a change.
package interpstate

// State is the interpreter's current mode, visible to class Update handlers
// so they can distinguish a live auto-commit apply from a staged
// transaction being committed, aborted or rolled back.
type State int

const (
	// Unknown is the zero value; no Interpreter is ever left in this state
	// once constructed.
	Unknown State = iota
	// Preload is set only while reading the initial configuration file. A
	// command-dispatch NotFound is swallowed (treated as Ok) only in this
	// state, letting forward-referencing config lines survive a single pass.
	Preload
	// Dryrun evaluates commands against a duplicated, throwaway object
	// graph so validation errors surface without mutating live state.
	Dryrun
	// AutoCommit is the normal interactive mode: each command takes effect
	// immediately after successful validation.
	AutoCommit
	// Atomic marks the window between AtomicBegin and its matching
	// Commit/Abort; class Update handlers must stage rather than apply.
	Atomic
	// Committing is set for AtomicCommit's first (apply) pass.
	Committing
	// Committed is set for AtomicCommit's second (finalize) pass, once the
	// apply pass has fully succeeded.
	Committed
	// CommitFailure is set when either of AtomicCommit's passes fails;
	// AtomicCommit then runs AtomicRollback immediately.
	CommitFailure
	// Aborting is set for AtomicAbort's first (unwind) pass.
	Aborting
	// Aborted is set for AtomicAbort's second (finalize) pass.
	Aborted
	// Rollbacking is set for AtomicRollback's first (unwind) pass.
	Rollbacking
	// Rollbacked is set for AtomicRollback's second (finalize) pass, before
	// any auto-load fallback if that pass itself failed.
	Rollbacked
)

var names = [...]string{
	"Unknown", "Preload", "Dryrun", "AutoCommit", "Atomic",
	"Committing", "Committed", "CommitFailure",
	"Aborting", "Aborted", "Rollbacking", "Rollbacked",
}

func (s State) String() string {
	if int(s) >= 0 && int(s) < len(names) {
		return names[s]
	}
	return "State(?)"
}
