package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/lagopus-go/dsinterp/internal/gstate"
)

// watchSignals translates process signals into gstate transitions and log
// reopen requests: SIGINT/SIGTERM request a graceful shutdown, SIGQUIT an
// immediate one, SIGHUP reopens logfile (a no-op if logfile is nil). It
// runs until ctx is cancelled.
func watchSignals(ctx context.Context, tracker *gstate.Tracker, logfile *reopenableFile) {
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT, syscall.SIGHUP)
	defer signal.Stop(ch)

	for {
		select {
		case <-ctx.Done():
			return
		case sig := <-ch:
			switch sig {
			case syscall.SIGINT, syscall.SIGTERM:
				go func() { _ = tracker.RequestShutdown(ctx, gstate.Gracefully) }()
			case syscall.SIGQUIT:
				go func() { _ = tracker.RequestShutdown(ctx, gstate.RightNow) }()
			case syscall.SIGHUP:
				if logfile != nil {
					_ = logfile.Reopen()
				}
			}
		}
	}
}
