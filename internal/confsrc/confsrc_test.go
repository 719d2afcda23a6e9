package confsrc

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lagopus-go/dsinterp/internal/result"
)

func TestReadFileContentNotFound(t *testing.T) {
	_, err := ReadFileContent(filepath.Join(t.TempDir(), "missing.conf"))
	require.True(t, errors.Is(err, result.New(result.NotFound)))
}

func TestReadFileContentRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "switch.conf")
	require.NoError(t, os.WriteFile(path, []byte("channel ch0 create\n"), 0o644))

	got, err := ReadFileContent(path)
	require.NoError(t, err)
	require.Equal(t, "channel ch0 create\n", string(got))
}

func TestWriteSnapshotAtomicLeavesNoTempBehind(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "snapshot.db")

	require.NoError(t, WriteSnapshotAtomic(path, []byte("v1")))
	got, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "v1", string(got))

	require.NoError(t, WriteSnapshotAtomic(path, []byte("v2")))
	got, err = os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "v2", string(got))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, "snapshot.db", entries[0].Name())
}

func TestRemoveSnapshotToleratesAlreadyGone(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gone.db")
	require.NoError(t, RemoveSnapshot(path))
}
