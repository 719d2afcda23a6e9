package replfrontend

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lagopus-go/dsinterp/internal/command"
	"github.com/lagopus-go/dsinterp/internal/eval"
	"github.com/lagopus-go/dsinterp/internal/gstate"
	"github.com/lagopus-go/dsinterp/internal/interpstate"
	"github.com/lagopus-go/dsinterp/internal/logging"
)

func newTestEvaluator(t *testing.T) *eval.Evaluator {
	t.Helper()
	reg := command.New()
	require.NoError(t, reg.Add("show", func(_ context.Context, _ interpstate.State, argv []string, out command.Output) error {
		out.WriteLine("showed: " + strings.Join(argv[1:], " "))
		return nil
	}))
	require.NoError(t, reg.Add("show-version", func(_ context.Context, _ interpstate.State, _ []string, out command.Output) error {
		out.WriteLine("v1")
		return nil
	}))
	return eval.New(reg, func() interpstate.State { return interpstate.AutoCommit })
}

func TestExecutorWritesEvaluationOutput(t *testing.T) {
	var buf strings.Builder
	r := New(newTestEvaluator(t), nil, nil, &buf, nil)

	r.executor(context.Background())("show bridge0")

	require.Contains(t, buf.String(), "showed: bridge0")
	require.Equal(t, []string{"show bridge0"}, r.history)
}

func TestExecutorIgnoresBlankLine(t *testing.T) {
	var buf strings.Builder
	r := New(newTestEvaluator(t), nil, nil, &buf, nil)

	r.executor(context.Background())("   ")

	require.Empty(t, buf.String())
	require.Empty(t, r.history)
}

func TestExecutorLogsFailureWithoutPanicking(t *testing.T) {
	var buf, logBuf strings.Builder
	r := New(newTestEvaluator(t), nil, logging.New(&logBuf, "info"), &buf, nil)

	require.NotPanics(t, func() {
		r.executor(context.Background())("no-such-verb")
	})
	require.Contains(t, logBuf.String(), "command failed")
}

func TestFilterVerbsMatchesPrefix(t *testing.T) {
	suggestions := filterVerbs([]string{"show", "show-version", "bridge"}, "show")
	require.Len(t, suggestions, 2)
	texts := []string{suggestions[0].Text, suggestions[1].Text}
	require.ElementsMatch(t, []string{"show", "show-version"}, texts)
}

func TestFilterVerbsEmptyWordReturnsAll(t *testing.T) {
	suggestions := filterVerbs([]string{"show", "bridge"}, "")
	require.Len(t, suggestions, 2)
}

func TestExitCheckerRecognisesExitAndQuit(t *testing.T) {
	r := New(newTestEvaluator(t), nil, nil, nil, nil)
	require.True(t, r.exitChecker("exit", false))
	require.True(t, r.exitChecker("  quit  ", false))
	require.False(t, r.exitChecker("show", false))
}

func TestExitCheckerObservesShutdownTracker(t *testing.T) {
	tr := gstate.New()
	r := New(newTestEvaluator(t), tr, nil, nil, nil)

	require.False(t, r.exitChecker("anything", false))

	require.NoError(t, tr.Set(gstate.RequestShutdown))
	require.True(t, r.exitChecker("anything", false))
}
