package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lagopus-go/dsinterp/internal/eval"
	"github.com/lagopus-go/dsinterp/internal/replfrontend"
)

func newReplCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Start an interactive session against a fresh, empty interpreter.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runRepl(cmd.Context(), opts)
		},
	}
}

func runRepl(ctx context.Context, opts *rootOptions) error {
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
	sys.setAutoCommit() // an interactive session has no preload config file
	sys.eval.FileContext = func() eval.FileContext {
		return eval.FileContext{ConfigType: eval.ConfigTypeStreamSession}
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

	fmt.Println("dsinterpd interactive session; type \"exit\" or Ctrl+D to leave.")
	repl := replfrontend.New(sys.eval, sys.tracker, sys.log, nil, nil)
	exitCode := repl.Run(runCtx)

	if opts.dumpState {
		dumpInterpreterState(sys)
	}
	sys.finishLifecycle()
	if exitCode != 0 {
		return fmt.Errorf("repl exited with code %d", exitCode)
	}
	return nil
}
