package logging

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/joeycumines/logiface"
	"github.com/stretchr/testify/require"
)

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var out []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var m map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &m))
		out = append(out, m)
	}
	return out
}

func TestParseLevelRecognisesNames(t *testing.T) {
	require.Equal(t, logiface.LevelInformational, ParseLevel(""))
	require.Equal(t, logiface.LevelInformational, ParseLevel("bogus"))
	require.Equal(t, logiface.LevelDebug, ParseLevel("DEBUG"))
	require.Equal(t, logiface.LevelWarning, ParseLevel("warn"))
	require.Equal(t, logiface.LevelError, ParseLevel("err"))
}

func TestInfoLogIncludesFields(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, "info")

	l.Info().Str("bridge", "bridge0").Int("port", 3).Log("created bridge")

	lines := decodeLines(t, &buf)
	require.Len(t, lines, 1)
	require.Equal(t, "bridge0", lines[0]["bridge"])
	require.EqualValues(t, 3, lines[0]["port"])
}

func TestDebugSuppressedWhenLevelIsInfo(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, "info")

	l.Debug().Str("detail", "should not appear").Log("debug event")

	require.Empty(t, buf.String())
}

func TestStateTransitionLogsFromAndTo(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, "info")

	l.StateTransition("initializing", "started")

	lines := decodeLines(t, &buf)
	require.Len(t, lines, 1)
	require.Equal(t, "initializing", lines[0]["from"])
	require.Equal(t, "started", lines[0]["to"])
}

func TestCommitFailedLogsErrorAtWarning(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, "info")

	l.CommitFailed(42, errors.New("apply refused"))

	lines := decodeLines(t, &buf)
	require.Len(t, lines, 1)
	require.EqualValues(t, 42, lines[0]["txn"])
	require.Equal(t, "warn", lines[0]["level"])
}

func TestAutoloadFailedLogsPathAndError(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, "info")

	l.AutoloadFailed("/etc/dsinterp/startup.conf", errors.New("parse error"))

	lines := decodeLines(t, &buf)
	require.Len(t, lines, 1)
	require.Equal(t, "/etc/dsinterp/startup.conf", lines[0]["path"])
}
