// Package hashmap implements the typed, concurrent hashmap described in
// spec.md §4.2: add/find/delete/iterate with a freeup hook, a size/clear
// pair, *_no_lock variants for callers already holding an outer lock, and an
// AtforkChild hook.
//
// The original C implementation distinguishes "string-keyed" (heap-copied
// byte compare) maps from "word-keyed" (raw machine word, e.g. session ids
// or pointers) maps because C has no generics: a lagopus_hashmap_t erases
// its key type behind a void*. In Go, Map[K, V] is parameterised directly
// over any comparable K, so both flavours collapse into the same generic
// type; New[string, V] is the string-keyed map and New[uintptr, V] (or any
// other machine-word-sized comparable) is the word-keyed map. This is
// recorded as an intentional simplification in DESIGN.md, not a dropped
// feature — both keep identical add/find/delete/iterate semantics.
package hashmap

import (
	"sync"

	"github.com/lagopus-go/dsinterp/internal/result"
)

// FreeFunc is invoked on a value being evicted by Delete(freeValue=true) or
// Clear(freeValues=true). An overwriting Add never invokes it; the replaced
// value is returned to the caller instead.
type FreeFunc[V any] func(V)

// IterFunc is the iteration predicate. Returning false halts iteration
// (result.IterationHalted is then returned by Iterate). The handle h may be
// used to mutate the current entry's value in place via h.SetValue; it must
// not Add or Delete during iteration.
type IterFunc[K comparable, V any] func(key K, val V, h *Handle[K, V]) bool

// Handle is passed to the iteration predicate, granting in-place mutation
// of the current entry without exposing Add/Delete.
type Handle[K comparable, V any] struct {
	m   *Map[K, V]
	key K
}

// SetValue mutates the value of the entry currently being visited.
func (h *Handle[K, V]) SetValue(v V) {
	h.m.entries[h.key] = v
}

// Map is a string-keyed or word-keyed concurrent map, depending on K.
type Map[K comparable, V any] struct {
	mu      sync.RWMutex
	entries map[K]V
	free    FreeFunc[V]
}

// New constructs an empty Map. free may be nil if values need no cleanup.
func New[K comparable, V any](free FreeFunc[V]) *Map[K, V] {
	return &Map[K, V]{entries: make(map[K]V), free: free}
}

// Add inserts key->val. If the key exists and allowOverwrite is false,
// AlreadyExists is returned and prev holds the current value so the caller
// can decide what to do with the rejected val. If allowOverwrite is true and
// the key exists, prev holds the value that was just replaced (the caller
// owns cleaning it up; Add itself never invokes the free hook).
func (m *Map[K, V]) Add(key K, val V, allowOverwrite bool) (prev V, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.addNoLock(key, val, allowOverwrite)
}

func (m *Map[K, V]) addNoLock(key K, val V, allowOverwrite bool) (prev V, err error) {
	old, exists := m.entries[key]
	if exists && !allowOverwrite {
		return old, result.New(result.AlreadyExists)
	}
	m.entries[key] = val
	if exists {
		return old, nil
	}
	var zero V
	return zero, nil
}

// AddNoLock is the no-lock variant of Add, for callers already holding an
// outer lock around a compound operation.
func (m *Map[K, V]) AddNoLock(key K, val V, allowOverwrite bool) (V, error) {
	return m.addNoLock(key, val, allowOverwrite)
}

// Find looks up key. NotFound is distinct from a stored zero value.
func (m *Map[K, V]) Find(key K) (V, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.findNoLock(key)
}

func (m *Map[K, V]) findNoLock(key K) (V, error) {
	v, ok := m.entries[key]
	if !ok {
		var zero V
		return zero, result.New(result.NotFound)
	}
	return v, nil
}

// FindNoLock is the no-lock variant of Find.
func (m *Map[K, V]) FindNoLock(key K) (V, error) { return m.findNoLock(key) }

// Delete removes key. If freeValue is true and a free hook is registered,
// it is invoked on the removed value and out is the zero value; otherwise
// out is the removed value.
func (m *Map[K, V]) Delete(key K, freeValue bool) (out V, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.deleteNoLock(key, freeValue)
}

func (m *Map[K, V]) deleteNoLock(key K, freeValue bool) (out V, err error) {
	v, ok := m.entries[key]
	if !ok {
		var zero V
		return zero, result.New(result.NotFound)
	}
	delete(m.entries, key)
	if freeValue {
		if m.free != nil {
			m.free(v)
		}
		var zero V
		return zero, nil
	}
	return v, nil
}

// DeleteNoLock is the no-lock variant of Delete.
func (m *Map[K, V]) DeleteNoLock(key K, freeValue bool) (V, error) {
	return m.deleteNoLock(key, freeValue)
}

// Iterate visits every entry until fn returns false or all entries are
// visited. fn may call h.SetValue but must not Add/Delete. Returns
// IterationHalted iff some call to fn returned false.
func (m *Map[K, V]) Iterate(fn IterFunc[K, V]) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.iterateNoLock(fn)
}

func (m *Map[K, V]) iterateNoLock(fn IterFunc[K, V]) error {
	h := &Handle[K, V]{m: m}
	for k, v := range m.entries {
		h.key = k
		if !fn(k, v, h) {
			return result.New(result.IterationHalted)
		}
	}
	return nil
}

// IterateNoLock is the no-lock variant of Iterate.
func (m *Map[K, V]) IterateNoLock(fn IterFunc[K, V]) error {
	return m.iterateNoLock(fn)
}

// Size returns the number of entries.
func (m *Map[K, V]) Size() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}

// Clear removes every entry, invoking the free hook on each value first if
// freeValues is true and a hook is registered.
func (m *Map[K, V]) Clear(freeValues bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if freeValues && m.free != nil {
		for _, v := range m.entries {
			m.free(v)
		}
	}
	m.entries = make(map[K]V)
}

// AtforkChild reinitializes the internal lock, matching the original's
// atfork_child hook. Go programs do not continue the runtime across
// fork(2) the way the C library does (os/exec + forkExec never return into
// the parent's goroutines), and nothing in this module forks, so nothing
// calls it; it only replaces the map's lock with a fresh, unlocked one —
// see SPEC_FULL.md §5 and DESIGN.md's Open Question decision.
func (m *Map[K, V]) AtforkChild() {
	m.mu = sync.RWMutex{}
}
