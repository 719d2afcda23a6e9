// Package configurator implements the named-configurator registry and its
// single process-wide exclusive lock, grounded on
// original_source/src/datastore/interp.c's s_add_cnf/s_cnf_lock/s_cnf_unlock
// family. A "configurator" is an external actor (a CLI session, an RPC
// handler, a config-file loader) that must serialize with every other
// configurator before mutating interpreter state.
package configurator

import (
	"sync"

	"github.com/lagopus-go/dsinterp/internal/hashmap"
	"github.com/lagopus-go/dsinterp/internal/result"
)

type entry struct {
	name    string
	hasLock bool
}

// Registry tracks every known configurator name and which one, if any,
// currently holds the exclusive lock.
type Registry struct {
	mu         sync.Mutex
	configs    *hashmap.Map[string, *entry]
	lockHolder *entry
}

// New returns an empty Registry.
func New() *Registry {
	return &Registry{configs: hashmap.New[string, *entry](nil)}
}

// Add registers a new configurator name. AlreadyExists if name is already
// registered, InvalidArgs if name is empty.
func (r *Registry) Add(name string) error {
	if name == "" {
		return result.New(result.InvalidArgs)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	_, err := r.configs.AddNoLock(name, &entry{name: name}, false)
	return err
}

// Delete unregisters a configurator. It is a no-op if name is unknown,
// matching the original's tolerant s_delete_cnf.
func (r *Registry) Delete(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, _ = r.configs.DeleteNoLock(name, true)
}

func (r *Registry) find(name string) (*entry, error) {
	return r.configs.FindNoLock(name)
}

// HasLock reports whether the named configurator currently holds the lock.
func (r *Registry) HasLock(name string) (bool, error) {
	if name == "" {
		return false, result.New(result.InvalidArgs)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	e, err := r.find(name)
	if err != nil {
		return false, err
	}
	return e.hasLock, nil
}

// Lock acquires the exclusive lock for name. Re-acquiring while already
// holding it is idempotent (returns nil). Acquiring while another
// configurator holds it returns Busy. name must already be Add'ed, else
// NotFound.
//
// A held lock whose entry's hasLock flag disagrees with the registry's
// lockHolder pointer indicates memory corruption in this bookkeeping and
// is treated as unrecoverable, matching the original's lagopus_exit_fatal
// calls guarding the same invariant.
func (r *Registry) Lock(name string) error {
	if name == "" {
		return result.New(result.InvalidArgs)
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.lockHolder == nil {
		e, err := r.find(name)
		if err != nil {
			return err
		}
		if e.hasLock {
			panic("configurator registry corrupted: entry marked locked with no lock holder recorded")
		}
		r.lockHolder = e
		e.hasLock = true
		return nil
	}

	if !r.lockHolder.hasLock {
		panic("configurator registry corrupted: lock holder recorded without its hasLock flag set")
	}
	if r.lockHolder.name == name {
		return nil
	}
	return result.New(result.Busy)
}

// Unlock releases the exclusive lock, which must currently be held by
// name. NotOwner if some other configurator holds it.
func (r *Registry) Unlock(name string) error {
	if name == "" {
		return result.New(result.InvalidArgs)
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.lockHolder == nil {
		return result.New(result.NotOwner)
	}
	if !r.lockHolder.hasLock {
		panic("configurator registry corrupted: lock holder recorded without its hasLock flag set")
	}
	if r.lockHolder.name != name {
		return result.New(result.NotOwner)
	}
	r.lockHolder.hasLock = false
	r.lockHolder = nil
	return nil
}
