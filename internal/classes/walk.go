package classes

import (
	"strings"

	"github.com/lagopus-go/dsinterp/internal/interpstate"
)

// hasNamespace reports whether name belongs to namespace, per spec.md's
// "name begins with namespace + ':'" rule. An empty namespace matches
// everything (the unscoped, whole-registry walk).
func hasNamespace(name, namespace string) bool {
	if namespace == "" {
		return true
	}
	return strings.HasPrefix(name, namespace+":")
}

// UpdateAll runs Update on every instance of every registered class, in
// Order and, within a class, in Class.Compare order, stopping at the first
// error. This generalizes s_update_all_objs, which is reused identically
// (same two-class-order walk) by AtomicCommit, AtomicAbort and
// AtomicRollback in internal/interp — only the interpreter state passed to
// Update differs between the three callers.
func (r *Registry) UpdateAll(state interpstate.State) error {
	for _, c := range r.GetAllInOrder() {
		for _, obj := range c.Instances().SortedBy(c.Compare) {
			if err := c.Update(state, obj); err != nil {
				return err
			}
		}
	}
	return nil
}

// DestroyAll destroys instances in reverse Order (dependents before
// dependencies) and, within a class, in reverse Class.Compare order. If
// namespace is non-empty, only objects whose name begins with
// "namespace:" are destroyed, matching destroy_obj's scoped teardown of a
// single dry-run namespace; an empty namespace destroys everything. It
// short-circuits on the first error.
func (r *Registry) DestroyAll(namespace string) []error {
	var errs []error
	for _, c := range r.GetAllReverseOrder() {
		sorted := c.Instances().SortedBy(c.Compare)
		for i := len(sorted) - 1; i >= 0; i-- {
			obj := sorted[i]
			if !hasNamespace(obj.Name(), namespace) {
				continue
			}
			deleted, err := c.Instances().Delete(obj.Name(), false)
			if err != nil {
				errs = append(errs, err)
				return errs
			}
			if err := c.Destroy(deleted); err != nil {
				errs = append(errs, err)
				return errs
			}
		}
	}
	return errs
}

// DuplicateAll clones every instance whose name begins with "srcNamespace:"
// (or, when srcNamespace is empty, every instance) into the same class's
// instance map under dstNamespace, giving a Dryrun session a throwaway
// copy of the whole configuration — or of one namespace within it — to
// evaluate commands against without touching the real objects. It walks
// classes in reverse Order but, within a class, forward in Class.Compare
// order, matching duplicate_obj exactly; it stops at the first error,
// which leaves any already-duplicated copies in place.
func (r *Registry) DuplicateAll(srcNamespace, dstNamespace string) error {
	for _, c := range r.GetAllReverseOrder() {
		for _, obj := range c.Instances().SortedBy(c.Compare) {
			if !hasNamespace(obj.Name(), srcNamespace) {
				continue
			}
			dup, err := c.Duplicate(obj, dstNamespace)
			if err != nil {
				return err
			}
			if _, err := c.Instances().Add(dup, false); err != nil {
				return err
			}
		}
	}
	return nil
}

// SerializeAll returns the re-parseable text of every instance of every
// registered class, in Order and, within a class, in Class.Compare order,
// one Class.Serialize result per line.
func (r *Registry) SerializeAll() ([]string, error) {
	var lines []string
	for _, c := range r.GetAllInOrder() {
		for _, obj := range c.Instances().SortedBy(c.Compare) {
			line, err := c.Serialize(obj)
			if err != nil {
				return nil, err
			}
			lines = append(lines, line)
		}
	}
	return lines, nil
}
