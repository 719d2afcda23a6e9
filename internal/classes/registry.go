package classes

import (
	"sync"

	"github.com/lagopus-go/dsinterp/internal/hashmap"
	"github.com/lagopus-go/dsinterp/internal/result"
)

// Registry is the process-wide table of registered classes, grounded on
// original_source/src/datastore/interp.c's objtbl_record/s_tbl_order: each
// class registers itself once at init time and is thereafter looked up by
// name for dispatch and walked in Order for commit/abort/rollback/destroy.
type Registry struct {
	mu      sync.RWMutex
	classes *hashmap.Map[string, Class]
}

// NewRegistry constructs an empty Registry.
func NewRegistry() *Registry {
	return &Registry{classes: hashmap.New[string, Class](nil)}
}

// Register adds a class under its ClassName. AlreadyExists if the name is
// taken, InvalidArgs if c is nil or not present in Order.
func (r *Registry) Register(c Class) error {
	if err := requireVtable(c); err != nil {
		return err
	}
	if OrderIndex(c.ClassName()) < 0 {
		return result.Newf(result.InvalidArgs, "class %q is not in the fixed object-class order", c.ClassName())
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	_, err := r.classes.AddNoLock(c.ClassName(), c, false)
	return err
}

// Find looks up a registered class by name.
func (r *Registry) Find(name string) (Class, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.classes.FindNoLock(name)
}

// GetAllInOrder returns every registered class in Order (ascending, i.e.
// dependency order: policer-action first, bridge last). Classes never
// registered are simply absent, not an error — a minimal interpreter may
// not wire every class.
func (r *Registry) GetAllInOrder() []Class {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Class, 0, len(Order))
	for _, name := range Order {
		if c, err := r.classes.FindNoLock(name); err == nil {
			out = append(out, c)
		}
	}
	return out
}

// GetAllReverseOrder is GetAllInOrder reversed, used for teardown so that
// dependents are destroyed before their dependencies.
func (r *Registry) GetAllReverseOrder() []Class {
	fwd := r.GetAllInOrder()
	out := make([]Class, len(fwd))
	for i, c := range fwd {
		out[len(fwd)-1-i] = c
	}
	return out
}

// GetObjects returns the named class's live instances as a flat list:
// NotFound if the class was never registered. When sort is true, the
// class's own Compare provides a total, deterministic order; otherwise
// the list comes back in InstanceMap.Each's unspecified order. The
// caller's len(result) is the "count" half of spec.md §4.3's
// get_objects(name, &out_list, sort) -> count | NotFound.
func (r *Registry) GetObjects(name string, sort bool) ([]Object, error) {
	c, err := r.Find(name)
	if err != nil {
		return nil, err
	}
	if sort {
		return c.Instances().SortedBy(c.Compare), nil
	}
	var out []Object
	c.Instances().Each(func(obj Object) bool {
		out = append(out, obj)
		return true
	})
	return out, nil
}
