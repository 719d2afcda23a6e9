package command

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lagopus-go/dsinterp/internal/interpstate"
	"github.com/lagopus-go/dsinterp/internal/result"
)

type recorder struct{ lines []string }

func (r *recorder) WriteLine(s string) { r.lines = append(r.lines, s) }

func TestAddFindAndDispatch(t *testing.T) {
	r := New()
	require.NoError(t, r.Add("show", func(ctx context.Context, state interpstate.State, argv []string, out Output) error {
		out.WriteLine("ok: " + argv[1])
		return nil
	}))

	proc, err := r.Find("show")
	require.NoError(t, err)

	rec := &recorder{}
	require.NoError(t, proc(context.Background(), interpstate.AutoCommit, []string{"show", "bridge"}, rec))
	require.Equal(t, []string{"ok: bridge"}, rec.lines)
}

func TestAddRejectsDuplicateAndEmptyVerb(t *testing.T) {
	r := New()
	noop := func(context.Context, interpstate.State, []string, Output) error { return nil }
	require.NoError(t, r.Add("set", noop))
	require.True(t, errors.Is(r.Add("set", noop), result.New(result.AlreadyExists)))
	require.True(t, errors.Is(r.Add("", noop), result.New(result.InvalidArgs)))
}

func TestFindUnknownVerbNotFound(t *testing.T) {
	r := New()
	_, err := r.Find("ghost")
	require.True(t, errors.Is(err, result.New(result.NotFound)))
}

func TestRemoveTolerantOfMissing(t *testing.T) {
	r := New()
	r.Remove("never-added")
}

func TestVerbsReturnsSortedNames(t *testing.T) {
	r := New()
	noop := func(context.Context, interpstate.State, []string, Output) error { return nil }
	require.NoError(t, r.Add("show", noop))
	require.NoError(t, r.Add("bridge", noop))
	require.NoError(t, r.Add("channel", noop))

	require.Equal(t, []string{"bridge", "channel", "show"}, r.Verbs())
}
