package stats

import (
	"github.com/lagopus-go/dsinterp/internal/hashmap"
	"github.com/lagopus-go/dsinterp/internal/result"
)

// Registry is a process-wide named table of Accumulators, grounded on
// statistic.c's s_stat_tbl (a lagopus_hashmap_t keyed by name).
type Registry struct {
	accs *hashmap.Map[string, *Accumulator]
}

// NewRegistry constructs an empty Registry.
func NewRegistry() *Registry {
	return &Registry{accs: hashmap.New[string, *Accumulator](nil)}
}

// Create adds a new, reset Accumulator under name. AlreadyExists if name is
// already registered.
func (r *Registry) Create(name string) (*Accumulator, error) {
	if name == "" {
		return nil, result.New(result.InvalidArgs)
	}
	a := New(name)
	if _, err := r.accs.Add(name, a, false); err != nil {
		return nil, err
	}
	return a, nil
}

// Find looks up a previously-created Accumulator by name.
func (r *Registry) Find(name string) (*Accumulator, error) {
	if name == "" {
		return nil, result.New(result.InvalidArgs)
	}
	return r.accs.Find(name)
}

// DestroyByName removes and discards the named Accumulator. A missing name
// is tolerated, matching lagopus_statistic_destroy_by_name's silent no-op.
func (r *Registry) DestroyByName(name string) {
	if name == "" {
		return
	}
	_, _ = r.accs.Delete(name, false)
}
