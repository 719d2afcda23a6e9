package main

import (
	"fmt"
	"os"
)

// writePidfile writes the current process id to path, failing if a
// pidfile already exists there (a stale pidfile left by a crashed
// instance must be removed by the operator, not silently overwritten).
func writePidfile(path string) error {
	if path == "" {
		return nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("pidfile %q: %w", path, err)
	}
	defer f.Close()
	_, err = fmt.Fprintf(f, "%d\n", os.Getpid())
	return err
}

// removePidfile tolerates the file already being gone.
func removePidfile(path string) {
	if path == "" {
		return
	}
	_ = os.Remove(path)
}
