package main

import (
	"os"
	"sync"
)

// reopenableFile is an io.Writer over a named log file that can be closed
// and reopened in place, the way a long-running daemon re-opens its log
// file on SIGHUP so an external logrotate can rename the old one out from
// under it without losing writes.
type reopenableFile struct {
	mu   sync.Mutex
	path string
	f    *os.File
}

func openReopenableFile(path string) (*reopenableFile, error) {
	r := &reopenableFile{path: path}
	if err := r.open(); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *reopenableFile) open() error {
	f, err := os.OpenFile(r.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	r.f = f
	return nil
}

func (r *reopenableFile) Write(p []byte) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.f.Write(p)
}

// Reopen closes the current file descriptor and opens path fresh, picking
// up a logrotate-renamed file under the same name.
func (r *reopenableFile) Reopen() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	_ = r.f.Close()
	f, err := os.OpenFile(r.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	r.f = f
	return nil
}

func (r *reopenableFile) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.f.Close()
}
