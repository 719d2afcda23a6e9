// Package interp implements the atomic transaction core: a single
// interpreter's state machine plus AtomicBegin/Commit/Abort/Rollback,
// grounded on original_source/src/datastore/interp.c's
// s_atomic_begin/s_atomic_commit/s_atomic_abort/s_atomic_rollback/
// s_atomic_auto_save/s_atomic_auto_load/s_update_all_objs.
package interp

import (
	"context"
	"path/filepath"
	"sync"

	"github.com/lagopus-go/dsinterp/internal/classes"
	"github.com/lagopus-go/dsinterp/internal/confsrc"
	"github.com/lagopus-go/dsinterp/internal/interpstate"
	"github.com/lagopus-go/dsinterp/internal/result"
)

// Loader reloads interpreter state from a previously written snapshot,
// used only as autoLoad's last-resort rollback fallback. Wiring an actual
// Loader (typically one that feeds the snapshot's serialized statements
// back through an Evaluator in Preload state) is the host's job — interp
// does not depend on eval to avoid a package cycle.
type Loader interface {
	Load(ctx context.Context, path string) error
}

// Interpreter is a single named interpreter's atomic transaction state.
type Interpreter struct {
	mu          sync.Mutex
	status      interpstate.State
	savedStatus interpstate.State

	classes *classes.Registry
	loader  Loader

	snapshotDir  string
	snapshotPath string

	currentConfigurator string
	diagnostic          string
}

// New constructs an Interpreter in AutoCommit state. snapshotDir is where
// atomic-begin snapshot files are written.
func New(classReg *classes.Registry, snapshotDir string) *Interpreter {
	return &Interpreter{
		status:      interpstate.AutoCommit,
		classes:     classReg,
		snapshotDir: snapshotDir,
	}
}

// SetLoader registers the snapshot loader used by autoLoad.
func (i *Interpreter) SetLoader(l Loader) {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.loader = l
}

// State returns the interpreter's current mode.
func (i *Interpreter) State() interpstate.State {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.status
}

// Diagnostic returns the last human-readable failure message recorded by a
// commit/abort/rollback attempt, for display to an operator; it is not
// part of the returned error so it survives the "successful rollback
// silences the original commit failure" behaviour documented on
// AtomicCommit.
func (i *Interpreter) Diagnostic() string {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.diagnostic
}

func (i *Interpreter) setStateLocked(s interpstate.State) { i.status = s }
func (i *Interpreter) saveStateLocked()                    { i.savedStatus = i.status }
func (i *Interpreter) restoreStateLocked()                 { i.status = i.savedStatus }

func (i *Interpreter) setDiagnosticLocked(msg string) { i.diagnostic = msg }

// AtomicBegin transitions AutoCommit -> Atomic, first serializing every
// live object to a fresh snapshot file so a failed commit can be unwound.
// configurator names the caller for diagnostic purposes only.
func (i *Interpreter) AtomicBegin(configurator string) error {
	i.mu.Lock()
	defer i.mu.Unlock()

	if i.status != interpstate.AutoCommit {
		return result.Newf(result.InvalidStateTransition,
			"atomic-begin requires AutoCommit, interpreter is %s", i.status)
	}

	i.saveStateLocked()
	i.currentConfigurator = configurator

	lines, err := i.classes.SerializeAll()
	if err != nil {
		return result.Newf(result.AnyFailures, "auto-save before atomic-begin: %v", err)
	}
	path, werr := i.writeSnapshotLocked(lines)
	if werr != nil {
		return werr
	}
	i.snapshotPath = path
	i.setStateLocked(interpstate.Atomic)
	return nil
}

func (i *Interpreter) writeSnapshotLocked(lines []string) (string, error) {
	i.unlinkSnapshotLocked()
	path := filepath.Join(i.snapshotDir, "atomic-auto-save.conf")
	var buf []byte
	for _, l := range lines {
		buf = append(buf, l...)
		buf = append(buf, '\n')
	}
	if err := confsrc.WriteSnapshotAtomic(path, buf); err != nil {
		return "", result.Newf(result.PosixAPIError, "write atomic auto-save file: %v", err)
	}
	return path, nil
}

func (i *Interpreter) unlinkSnapshotLocked() {
	if i.snapshotPath == "" {
		return
	}
	_ = confsrc.RemoveSnapshot(i.snapshotPath)
	i.snapshotPath = ""
}

// AtomicAbort unwinds a staged Atomic transaction in two passes (Aborting,
// then Aborted), unconditionally unlinks the snapshot and restores the
// pre-begin state, and returns whichever pass's error occurred first — it
// never silences a failure the way Commit/Rollback do, matching the
// original's s_atomic_abort which returns the raw update_all_objs result.
func (i *Interpreter) AtomicAbort() error {
	i.mu.Lock()
	defer i.mu.Unlock()

	if i.status != interpstate.Atomic {
		return result.Newf(result.InvalidStateTransition,
			"atomic-abort requires Atomic, interpreter is %s", i.status)
	}

	i.setDiagnosticLocked("")
	i.setStateLocked(interpstate.Aborting)
	firstErr := i.updateAllUnlocked(interpstate.Aborting)
	if firstErr == nil {
		i.setStateLocked(interpstate.Aborted)
		if err := i.updateAllUnlocked(interpstate.Aborted); err != nil {
			i.setDiagnosticLocked("failed to cleanup after abort: " + err.Error())
			firstErr = err
		}
	} else {
		i.setDiagnosticLocked("failed to abort: " + firstErr.Error())
	}

	i.unlinkSnapshotLocked()
	i.restoreStateLocked()
	return firstErr
}

// AtomicRollback unwinds a transaction in two passes (Rollbacking, then
// Rollbacked), falling back to autoLoad (reloading the pre-begin snapshot
// from scratch) if either pass fails. It is valid from CommitFailure
// always, or from Atomic only when force is true (an operator-forced
// rollback of an in-flight, not-yet-committed transaction).
func (i *Interpreter) AtomicRollback(ctx context.Context, force bool) error {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.setDiagnosticLocked("")
	return i.atomicRollbackLocked(ctx, force)
}

// atomicRollbackLocked never clears the diagnostic on entry: when it is
// invoked as AtomicCommit's automatic rollback cascade, the diagnostic
// already holds the original commit failure reason, which a clean rollback
// should not erase.
func (i *Interpreter) atomicRollbackLocked(ctx context.Context, force bool) error {
	if !(i.status == interpstate.CommitFailure || (i.status == interpstate.Atomic && force)) {
		return result.Newf(result.InvalidStateTransition,
			"atomic-rollback requires CommitFailure (or Atomic with force), interpreter is %s", i.status)
	}

	i.setStateLocked(interpstate.Rollbacking)
	var finalErr error
	if err := i.updateAllUnlocked(interpstate.Rollbacking); err == nil {
		i.setStateLocked(interpstate.Rollbacked)
		if err2 := i.updateAllUnlocked(interpstate.Rollbacked); err2 != nil {
			i.setDiagnosticLocked("failed to cleanup after rollback: " + err2.Error())
			finalErr = i.autoLoadLocked(ctx)
		}
	} else {
		i.setDiagnosticLocked("failed to rollback: " + err.Error())
		finalErr = i.autoLoadLocked(ctx)
	}

	i.unlinkSnapshotLocked()
	i.restoreStateLocked()
	return finalErr
}

// AtomicCommit finalizes a staged Atomic transaction in two passes
// (Committing, then Committed). If either pass fails, it automatically
// rolls back. Matching the original's s_atomic_commit exactly: a
// successful rollback silences the commit failure entirely (AtomicCommit
// returns nil) — only the human-readable Diagnostic retains the original
// failure reason. This is a deliberately preserved quirk, not a bug:
// from the caller's perspective a commit that self-heals via rollback
// leaves the interpreter in a well-defined, pre-transaction state, which
// is what the return value communicates.
func (i *Interpreter) AtomicCommit(ctx context.Context) error {
	i.mu.Lock()
	defer i.mu.Unlock()

	if i.status != interpstate.Atomic {
		return result.Newf(result.InvalidStateTransition,
			"atomic-commit requires Atomic, interpreter is %s", i.status)
	}

	i.setDiagnosticLocked("")
	i.setStateLocked(interpstate.Committing)
	if err := i.updateAllUnlocked(interpstate.Committing); err != nil {
		i.setDiagnosticLocked("failed to commit: " + err.Error())
		i.setStateLocked(interpstate.CommitFailure)
		rbErr := i.atomicRollbackLocked(ctx, false)
		i.unlinkSnapshotLocked()
		return rbErr
	}

	i.setStateLocked(interpstate.Committed)
	if err := i.updateAllUnlocked(interpstate.Committed); err != nil {
		i.setDiagnosticLocked("failed to cleanup after commit: " + err.Error())
		i.setStateLocked(interpstate.CommitFailure)
		rbErr := i.atomicRollbackLocked(ctx, false)
		i.unlinkSnapshotLocked()
		return rbErr
	}

	i.restoreStateLocked()
	i.unlinkSnapshotLocked()
	return nil
}

func (i *Interpreter) updateAllUnlocked(state interpstate.State) error {
	return i.classes.UpdateAll(state)
}

// autoLoadLocked is the rollback-of-last-resort: restore the pre-begin
// status, destroy every live object, then reload from the snapshot file
// written at AtomicBegin. The restore-before-destroy ordering is
// deliberate and copied exactly from s_atomic_auto_load, which calls
// s_restore_interp_state before datastore_interp_destroy_obj — destroy
// handlers run against the restored (pre-transaction) state value, not
// whatever Rollbacking/CommitFailure state the failed unwind left behind.
func (i *Interpreter) autoLoadLocked(ctx context.Context) error {
	i.restoreStateLocked()

	if errs := i.classes.DestroyAll(""); len(errs) > 0 {
		return result.Newf(result.AnyFailures, "auto-load: destroy before reload failed: %v", errs[0])
	}

	if i.loader == nil {
		return result.New(result.NotOperational)
	}
	if i.snapshotPath == "" {
		return result.New(result.NotFound)
	}
	if err := i.loader.Load(ctx, i.snapshotPath); err != nil {
		return result.Newf(result.AnyFailures, "auto-load: reload from snapshot failed: %v", err)
	}
	return nil
}
