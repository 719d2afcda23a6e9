package classes

import (
	"sort"

	"github.com/lagopus-go/dsinterp/internal/hashmap"
)

// InstanceMap is the name -> Object map owned by a single Class. It is a
// thin wrapper over hashmap.Map so that class implementations never touch
// locking directly, matching the original's per-class objtbl hashmap field.
type InstanceMap struct {
	m *hashmap.Map[string, Object]
}

// NewInstanceMap constructs an empty InstanceMap. destroy, if non-nil, is
// invoked on an instance evicted via Delete(freeValue=true).
func NewInstanceMap(destroy func(Object)) *InstanceMap {
	return &InstanceMap{m: hashmap.New[string, Object](destroy)}
}

func (im *InstanceMap) Add(obj Object, allowOverwrite bool) (Object, error) {
	return im.m.Add(obj.Name(), obj, allowOverwrite)
}

func (im *InstanceMap) Find(name string) (Object, error) {
	return im.m.Find(name)
}

func (im *InstanceMap) Delete(name string, freeValue bool) (Object, error) {
	return im.m.Delete(name, freeValue)
}

func (im *InstanceMap) Size() int { return im.m.Size() }

// Each visits every instance in unspecified order. Returning false from fn
// halts the walk early.
func (im *InstanceMap) Each(fn func(Object) bool) {
	_ = im.m.Iterate(func(_ string, v Object, _ *hashmap.Handle[string, Object]) bool {
		return fn(v)
	})
}

// SortedBy collects every instance and orders it with cmp, giving the
// deterministic compare-sorted walk spec.md requires for commit,
// serialization and destroy/duplicate, instead of Each's unspecified
// (randomized) map order.
func (im *InstanceMap) SortedBy(cmp func(a, b Object) int) []Object {
	var out []Object
	im.Each(func(o Object) bool {
		out = append(out, o)
		return true
	})
	sort.Slice(out, func(i, j int) bool { return cmp(out[i], out[j]) < 0 })
	return out
}
