// Package classes implements the object-class registry (spec.md §4.3) and
// the fixed object-class order (§3) that governs creation, serialization
// and destruction across bridges, ports, interfaces, controllers, channels,
// queues, policers and policer-actions.
package classes

import (
	"github.com/lagopus-go/dsinterp/internal/interpstate"
	"github.com/lagopus-go/dsinterp/internal/result"
)

// Object is the minimal contract every class instance satisfies: a class
// looks its instances up in a Name-keyed map (see Class.Instances).
type Object interface {
	// Name returns this instance's key within its class's instance map.
	// This is the short, unqualified name; Class.GetName may prepend a
	// namespace (duplicate/dry-run support).
	Name() string
}

// Class is the eight-method vtable every object kind registers. It is
// immutable after Register.
type Class interface {
	// ClassName is the unique, registered name of this class (e.g. "bridge").
	ClassName() string

	// Update applies staged changes to live state for obj, given the
	// interpreter's current state (AutoCommit, Committing, Committed, ...).
	// Handlers are expected to be idempotent within a single state value.
	Update(state interpstate.State, obj Object) error

	// Enable queries (doSet=false) or sets (doSet=true) the enable flag.
	// It always returns the resulting value in outEnabled.
	Enable(obj Object, doSet bool, newEnabled bool) (outEnabled bool, err error)

	// Serialize writes a re-parseable text representation of obj.
	Serialize(obj Object) (string, error)

	// Destroy frees any live resources held by obj.
	Destroy(obj Object) error

	// Compare provides a total order over two instances of this class, for
	// deterministic serialization and walk ordering.
	Compare(a, b Object) int

	// GetName returns the canonical full name, including namespace.
	GetName(obj Object) (string, error)

	// Duplicate clones obj into dstNamespace (used by dry-run).
	Duplicate(obj Object, dstNamespace string) (Object, error)

	// Instances returns the live, owning map of name -> instance for this
	// class. The registry walks this map; it never owns instances itself.
	Instances() *InstanceMap
}

// Order is the fixed object-class dependency order from spec.md §3: every
// dependency of class C appears earlier in this sequence. Destruction walks
// it in reverse.
var Order = []string{
	"policer-action",
	"policer",
	"queue",
	"interface",
	"port",
	"channel",
	"controller",
	"bridge",
}

// OrderIndex returns the position of name in Order, or -1.
func OrderIndex(name string) int {
	for i, n := range Order {
		if n == name {
			return i
		}
	}
	return -1
}

// requireVtable is called by Register to enforce that all eight methods
// exist; in Go, a Class satisfying the interface already guarantees this
// statically, so this is kept only to preserve spec.md's documented
// InvalidArgs-on-nil-vtable-entry behaviour for a nil Class interface
// value. A non-nil interface holding a nil pointer receiver is not
// detected.
func requireVtable(c Class) error {
	if c == nil {
		return result.New(result.InvalidArgs)
	}
	return nil
}
