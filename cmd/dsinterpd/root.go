package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/lagopus-go/dsinterp/internal/logging"
)

// rootOptions carries the flags shared by every subcommand, matching the
// retrieved katomik CLI's layout: the flags an operator actually needs
// first, connection/daemon-style flags grouped in their own section.
type rootOptions struct {
	snapshotDir string
	logLevel    string
	logFile     string
	pidfile     string
	timeoutSecs int
	dumpState   bool
}

func (o *rootOptions) timeout() time.Duration {
	return time.Duration(o.timeoutSecs) * time.Second
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:           "dsinterpd",
		Short:         "Configuration interpreter and atomic transaction core.",
		SilenceErrors: true,
		SilenceUsage:  true,
	}
	root.CompletionOptions.DisableDefaultCmd = true
	root.SetHelpCommand(&cobra.Command{Use: "no-help", Hidden: true})

	f := root.PersistentFlags()
	f.SortFlags = false
	f.StringVar(&opts.snapshotDir, "snapshot-dir", os.TempDir(),
		"Directory atomic-begin snapshot files are written to.")
	f.IntVar(&opts.timeoutSecs, "to", 0,
		"Overall run timeout in seconds; zero means run until signalled.")
	f.BoolVar(&opts.dumpState, "dump-state", false,
		"Debug only: print a YAML snapshot of interpreter state and live objects to stdout on exit.")

	daemon := pflag.NewFlagSet("Daemon flags", pflag.ContinueOnError)
	daemon.StringVar(&opts.logLevel, "log-level", "info",
		"Minimum log level: trace, debug, info, notice, warn, error, crit, alert, emerg.")
	daemon.StringVar(&opts.logFile, "log-file", "",
		"Log file path; reopened on SIGHUP. Defaults to stderr.")
	daemon.StringVar(&opts.pidfile, "pidfile", "",
		"Pidfile path written on start and removed on clean shutdown.")
	root.PersistentFlags().AddFlagSet(daemon)

	root.AddCommand(newReplCmd(opts))
	root.AddCommand(newLoadCmd(opts))
	return root
}

func (o *rootOptions) openLogger() (*logging.Logger, *reopenableFile, error) {
	if o.logFile == "" {
		return logging.New(os.Stderr, o.logLevel), nil, nil
	}
	rf, err := openReopenableFile(o.logFile)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	return logging.New(rf, o.logLevel), rf, nil
}
