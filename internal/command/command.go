// Package command implements the per-interpreter verb registry the
// evaluator dispatches into, grounded on
// original_source/src/datastore/interp.c's s_add_cmd/s_find_cmd (the
// m_cmd_tbl hashmap keyed on argv[0]).
package command

import (
	"context"
	"sort"

	"github.com/lagopus-go/dsinterp/internal/hashmap"
	"github.com/lagopus-go/dsinterp/internal/interpstate"
	"github.com/lagopus-go/dsinterp/internal/result"
)

// Proc is a verb handler: argv is the fully tokenized statement including
// argv[0] (the verb itself), state is the interpreter's current mode, and
// out is where human-readable command output (e.g. "show" results) is
// written.
type Proc func(ctx context.Context, state interpstate.State, argv []string, out Output) error

// Output is the narrow write sink a Proc uses to emit result text, kept
// separate from io.Writer so command implementations can't accidentally
// assume buffering or flushing semantics.
type Output interface {
	WriteLine(string)
}

// Registry is a single interpreter's verb table.
type Registry struct {
	procs *hashmap.Map[string, Proc]
}

// New returns an empty Registry.
func New() *Registry {
	return &Registry{procs: hashmap.New[string, Proc](nil)}
}

// Add registers proc under verb. AlreadyExists if verb is taken, InvalidArgs
// if verb is empty or proc is nil.
func (r *Registry) Add(verb string, proc Proc) error {
	if verb == "" || proc == nil {
		return result.New(result.InvalidArgs)
	}
	_, err := r.procs.Add(verb, proc, false)
	return err
}

// Find looks up the handler for verb. NotFound if unregistered.
func (r *Registry) Find(verb string) (Proc, error) {
	return r.procs.Find(verb)
}

// Remove unregisters verb, tolerating it already being absent.
func (r *Registry) Remove(verb string) {
	_, _ = r.procs.Delete(verb, false)
}

// Verbs returns every registered verb, sorted, for use by a front end's
// completer.
func (r *Registry) Verbs() []string {
	var out []string
	_ = r.procs.Iterate(func(verb string, _ Proc, _ *hashmap.Handle[string, Proc]) bool {
		out = append(out, verb)
		return true
	})
	sort.Strings(out)
	return out
}
