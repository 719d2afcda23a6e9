package main

import (
	"context"
	"fmt"
	"os"

	"github.com/lagopus-go/dsinterp/internal/classes"
	"github.com/lagopus-go/dsinterp/internal/command"
	"github.com/lagopus-go/dsinterp/internal/eval"
	"github.com/lagopus-go/dsinterp/internal/gstate"
	"github.com/lagopus-go/dsinterp/internal/interp"
	"github.com/lagopus-go/dsinterp/internal/interpstate"
	"github.com/lagopus-go/dsinterp/internal/logging"
	"github.com/lagopus-go/dsinterp/internal/objects"
)

// system is the full set of interpreter components one dsinterpd process
// runs, wired once at startup and shared between the repl and load
// subcommands.
type system struct {
	log      *logging.Logger
	tracker  *gstate.Tracker
	classReg *classes.Registry
	objs     *objects.Classes
	commands *command.Registry
	interp   *interp.Interpreter
	eval     *eval.Evaluator
	state    interpstate.State
}

// newSystem registers every object class against a fresh registry, wires
// the atomic transaction core on top of it, and registers the
// administrative verbs the evaluator dispatches into. The returned
// system starts in Preload, the way a freshly started interpreter
// tolerates forward-referencing config lines until its first config file
// has been fully read (see setAutoCommit).
func newSystem(snapshotDir string, log *logging.Logger) (*system, error) {
	classReg := classes.NewRegistry()
	objs := objects.NewClasses()
	if err := objs.RegisterAll(classReg); err != nil {
		return nil, fmt.Errorf("register object classes: %w", err)
	}

	s := &system{
		log:      log,
		tracker:  gstate.New(),
		classReg: classReg,
		objs:     objs,
		commands: command.New(),
		interp:   interp.New(classReg, snapshotDir),
		state:    interpstate.Preload,
	}
	if err := registerAdminVerbs(s); err != nil {
		return nil, err
	}
	s.eval = eval.New(s.commands, func() interpstate.State { return s.state })
	return s, nil
}

// setAutoCommit switches the interpreter out of the initial preload
// window once its config file (if any) has been fully read, matching
// the original's transition out of DATASTORE_INTERP_STATE_PRELOAD after
// s_load_config completes.
func (s *system) setAutoCommit() { s.state = interpstate.AutoCommit }

func (s *system) startLifecycle(ctx context.Context) error {
	for _, st := range []gstate.State{gstate.Initializing, gstate.Initialized, gstate.Starting, gstate.Started} {
		if err := s.tracker.Set(st); err != nil {
			return err
		}
	}
	_ = ctx
	return nil
}

func (s *system) finishLifecycle() {
	for _, st := range []gstate.State{gstate.AcceptShutdown, gstate.ShuttingDown, gstate.Shutdown, gstate.Finalizing, gstate.Finalized} {
		_ = s.tracker.Set(st)
	}
}

// dumpInterpreterState implements the --dump-state debug flag: a YAML
// snapshot of the interpreter's mode and every live object, printed to
// stdout. Strictly a debug aid, never the format a rollback reloads.
func dumpInterpreterState(s *system) {
	out, err := s.interp.DumpStateYAML()
	if err != nil {
		s.log.Warning().Err(err).Log("dump-state failed")
		return
	}
	os.Stdout.Write(out)
}
