package main

import (
	"bytes"
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lagopus-go/dsinterp/internal/command"
	"github.com/lagopus-go/dsinterp/internal/confsrc"
	"github.com/lagopus-go/dsinterp/internal/eval"
	"github.com/lagopus-go/dsinterp/internal/gstate"
	"github.com/lagopus-go/dsinterp/internal/linereader"
)

// stdoutWriter adapts command.Output onto fmt.Println, used by load's
// straight-through evaluation of a config file's own "show"-style verbs.
type stdoutWriter struct{}

func (stdoutWriter) WriteLine(s string) { fmt.Println(s) }

func newLoadCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "load FILE",
		Short: "Load a configuration file, then run until signalled.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLoad(cmd.Context(), opts, args[0])
		},
	}
}

func runLoad(ctx context.Context, opts *rootOptions, path string) error {
	log, logfile, err := opts.openLogger()
	if err != nil {
		return err
	}
	if logfile != nil {
		defer logfile.Close()
	}

	sys, err := newSystem(opts.snapshotDir, log)
	if err != nil {
		return err
	}

	if err := writePidfile(opts.pidfile); err != nil {
		return err
	}
	defer removePidfile(opts.pidfile)

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	if d := opts.timeout(); d > 0 {
		var timeoutCancel context.CancelFunc
		runCtx, timeoutCancel = context.WithTimeout(runCtx, d)
		defer timeoutCancel()
	}

	if err := sys.startLifecycle(runCtx); err != nil {
		return err
	}
	go watchSignals(runCtx, sys.tracker, logfile)

	if err := loadConfigFile(runCtx, sys, path); err != nil {
		sys.finishLifecycle()
		return err
	}
	sys.setAutoCommit()
	log.Info().Str("path", path).Log("initial configuration loaded")

	err = sys.tracker.WaitFor(runCtx, gstate.RequestShutdown)
	if opts.dumpState {
		dumpInterpreterState(sys)
	}
	sys.finishLifecycle()
	if err != nil {
		return err
	}
	return nil
}

// loadConfigFile reads path, splits it into logical (backslash-joined)
// lines, and evaluates each in turn while the interpreter is still in
// Preload, tolerating forward references exactly as the original's
// s_load_config does.
func loadConfigFile(ctx context.Context, sys *system, path string) error {
	raw, err := confsrc.ReadFileContent(path)
	if err != nil {
		return err
	}

	lr := linereader.New(bytes.NewReader(raw))
	out := stdoutWriter{}
	sys.eval.FileContext = func() eval.FileContext {
		return eval.FileContext{Filename: path, Lineno: lr.Lineno(), ConfigType: eval.ConfigTypeFile}
	}
	for {
		line, ok, err := lr.ReadLogicalLine()
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		if err := sys.eval.EvalStr(ctx, line, out); err != nil {
			return fmt.Errorf("%s:%d: %w", path, lr.Lineno(), err)
		}
	}
}

var _ command.Output = stdoutWriter{}
