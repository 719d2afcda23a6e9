package main

import (
	"context"
	"os"
	"path/filepath"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/lagopus-go/dsinterp/internal/gstate"
)

func TestWatchSignalsRequestsGracefulShutdownOnSIGTERM(t *testing.T) {
	tracker := gstate.New()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan struct{})
	go func() {
		watchSignals(ctx, tracker, nil)
		close(done)
	}()

	require.NoError(t, syscall.Kill(os.Getpid(), syscall.SIGTERM))
	require.Eventually(t, func() bool {
		return tracker.Current() >= gstate.RequestShutdown
	}, time.Second, 5*time.Millisecond)

	cancel()
	<-done
}

func TestWatchSignalsReopensLogfileOnSIGHUP(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dsinterpd.log")
	rf, err := openReopenableFile(path)
	require.NoError(t, err)
	defer rf.Close()

	_, err = rf.Write([]byte("before rotate\n"))
	require.NoError(t, err)
	rotated := path + ".1"
	require.NoError(t, os.Rename(path, rotated))

	tracker := gstate.New()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan struct{})
	go func() {
		watchSignals(ctx, tracker, rf)
		close(done)
	}()

	require.NoError(t, syscall.Kill(os.Getpid(), syscall.SIGHUP))
	require.Eventually(t, func() bool {
		_, statErr := os.Stat(path)
		return statErr == nil
	}, time.Second, 5*time.Millisecond)

	cancel()
	<-done
}
