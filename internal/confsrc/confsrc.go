// Package confsrc resolves the on-disk locations the interpreter reads
// configuration and snapshot state from or writes snapshots to: the initial
// config file (preload), ad-hoc "load" command targets, and atomic-commit
// snapshot files. Remote (URL) sources are out of scope for this domain —
// a switch's configuration source is always a local path supplied by its
// host process or management CLI.
package confsrc

import (
	"os"
	"path/filepath"

	"github.com/lagopus-go/dsinterp/internal/result"
)

// ReadFileContent reads the full contents of a local configuration or
// snapshot file. NotFound is returned (rather than a bare os error) so
// callers can match it with errors.Is against the shared Result taxonomy.
func ReadFileContent(path string) ([]byte, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, result.Newf(result.NotFound, "config source %q: %v", path, err)
		}
		return nil, result.Newf(result.PosixAPIError, "config source %q: %v", path, err)
	}
	return b, nil
}

// WriteSnapshotAtomic writes data to a temp file in the same directory as
// path and renames it over path, so a reader never observes a partially
// written snapshot. Mode 0600 matches the sensitivity of captured runtime
// state (controller credentials, queue stats).
func WriteSnapshotAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".snapshot-*.tmp")
	if err != nil {
		return result.Newf(result.PosixAPIError, "create snapshot temp file: %v", err)
	}
	tmpName := tmp.Name()
	removed := false
	defer func() {
		if !removed {
			_ = os.Remove(tmpName)
		}
	}()

	if err := tmp.Chmod(0o600); err != nil {
		_ = tmp.Close()
		return result.Newf(result.PosixAPIError, "chmod snapshot temp file: %v", err)
	}
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return result.Newf(result.PosixAPIError, "write snapshot temp file: %v", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return result.Newf(result.PosixAPIError, "sync snapshot temp file: %v", err)
	}
	if err := tmp.Close(); err != nil {
		return result.Newf(result.PosixAPIError, "close snapshot temp file: %v", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return result.Newf(result.PosixAPIError, "rename snapshot into place: %v", err)
	}
	removed = true // the rename consumed tmpName; nothing left to unlink
	return nil
}

// RemoveSnapshot deletes a snapshot file, tolerating it already being gone
// (auto_load's rollback fallback path may race a concurrent cleanup).
func RemoveSnapshot(path string) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return result.Newf(result.PosixAPIError, "remove snapshot %q: %v", path, err)
	}
	return nil
}
