package objects

import (
	"fmt"
	"strings"

	"github.com/lagopus-go/dsinterp/internal/classes"
	"github.com/lagopus-go/dsinterp/internal/interpstate"
	"github.com/lagopus-go/dsinterp/internal/result"
)

// Instance is the concrete classes.Object shared by every object kind in
// this package: a name, a live enable flag (set directly, outside the
// atomic-commit staging window, matching datastore_*_is_enabled/
// set_enabled's lack of an interpreter-state argument), and a Staged
// type-specific info payload that Update stages through commit/abort/
// rollback.
type Instance[I any] struct {
	name    string
	enabled bool
	used    bool
	Info    Staged[I]
}

// NewInstance constructs an Instance carrying info as both its current and
// pending value.
func NewInstance[I any](name string, info I) *Instance[I] {
	return &Instance[I]{name: name, Info: NewStaged(info)}
}

func (o *Instance[I]) Name() string { return o.name }

// Enabled reports the live enable flag.
func (o *Instance[I]) Enabled() bool { return o.enabled }

// Used reports whether a dependent object currently references this
// instance (e.g. a port referencing an interface); used by a class's
// Destroy to refuse removal while still in use, mirroring
// datastore_*_is_used.
func (o *Instance[I]) Used() bool { return o.used }

// SetUsed marks or clears the in-use flag; called by the referencing
// class's constructor/Destroy.
func (o *Instance[I]) SetUsed(v bool) { o.used = v }

// genericClass implements classes.Class identically for every object kind
// in this package; only its name, serialization and an optional destroy
// hook are type-specific, supplied at construction. Compare orders
// instances by name for every kind.
type genericClass[I any] struct {
	name      string
	instances *classes.InstanceMap
	serialize func(*Instance[I]) (string, error)
	onDestroy func(*Instance[I]) error
}

func newGenericClass[I any](name string, serialize func(*Instance[I]) (string, error), onDestroy func(*Instance[I]) error) *genericClass[I] {
	return &genericClass[I]{
		name:      name,
		instances: classes.NewInstanceMap(nil),
		serialize: serialize,
		onDestroy: onDestroy,
	}
}

func (c *genericClass[I]) ClassName() string                   { return c.name }
func (c *genericClass[I]) Instances() *classes.InstanceMap      { return c.instances }

func (c *genericClass[I]) cast(obj classes.Object) (*Instance[I], error) {
	o, ok := obj.(*Instance[I])
	if !ok {
		return nil, result.Newf(result.InvalidObject, "%s: not a %T", c.name, (*Instance[I])(nil))
	}
	return o, nil
}

func (c *genericClass[I]) Update(state interpstate.State, obj classes.Object) error {
	o, err := c.cast(obj)
	if err != nil {
		return err
	}
	return ApplyState(state, &o.Info)
}

func (c *genericClass[I]) Enable(obj classes.Object, doSet bool, newEnabled bool) (bool, error) {
	o, err := c.cast(obj)
	if err != nil {
		return false, err
	}
	if doSet {
		o.enabled = newEnabled
	}
	return o.enabled, nil
}

func (c *genericClass[I]) Destroy(obj classes.Object) error {
	o, err := c.cast(obj)
	if err != nil {
		return err
	}
	if o.used {
		return result.Newf(result.NotAllowed, "%s %q: still in use", c.name, o.name)
	}
	if c.onDestroy != nil {
		return c.onDestroy(o)
	}
	return nil
}

func (c *genericClass[I]) Compare(a, b classes.Object) int {
	oa, errA := c.cast(a)
	ob, errB := c.cast(b)
	if errA != nil || errB != nil {
		return 0
	}
	return strings.Compare(oa.name, ob.name)
}

func (c *genericClass[I]) GetName(obj classes.Object) (string, error) {
	o, err := c.cast(obj)
	if err != nil {
		return "", err
	}
	return o.name, nil
}

func (c *genericClass[I]) Duplicate(obj classes.Object, dstNamespace string) (classes.Object, error) {
	o, err := c.cast(obj)
	if err != nil {
		return nil, err
	}
	dup := &Instance[I]{
		name:    dstNamespace + o.name,
		enabled: o.enabled,
		used:    o.used,
		Info:    NewStaged(o.Info.Current),
	}
	return dup, nil
}

func (c *genericClass[I]) Serialize(obj classes.Object) (string, error) {
	o, err := c.cast(obj)
	if err != nil {
		return "", err
	}
	if c.serialize != nil {
		return c.serialize(o)
	}
	return fmt.Sprintf("%s %s", c.name, o.name), nil
}

// create is the shared constructor body used by every New*Class.Create
// method: it builds an Instance, registers it in the class's InstanceMap,
// and returns AlreadyExists if the name is taken.
func create[I any](c *genericClass[I], name string, info I) (*Instance[I], error) {
	if name == "" {
		return nil, result.New(result.InvalidArgs)
	}
	o := NewInstance(name, info)
	if _, err := c.instances.Add(o, false); err != nil {
		return nil, err
	}
	return o, nil
}

// find looks up a class's own instance by name, returning a typed
// *Instance[I] rather than the classes.Object interface.
func find[I any](c *genericClass[I], name string) (*Instance[I], error) {
	obj, err := c.instances.Find(name)
	if err != nil {
		return nil, err
	}
	return c.cast(obj)
}

// resolveDependency looks up another registered class's instance by name;
// it does not mark it used (the calling Create does that via SetUsed once
// its own instance is registered). It is how Port validates its interface/policer/queue
// references, and Bridge/Controller validate theirs, honoring the fixed
// dependency order (policer-action, policer, queue, interface, port,
// channel, controller, bridge) without any class importing another's
// package.
func resolveDependency(reg *classes.Registry, className, objName string) (classes.Object, error) {
	if objName == "" {
		return nil, nil
	}
	c, err := reg.Find(className)
	if err != nil {
		return nil, result.Newf(result.NotFound, "referenced class %q: %v", className, err)
	}
	obj, err := c.Instances().Find(objName)
	if err != nil {
		return nil, result.Newf(result.NotFound, "%s %q: %v", className, objName, err)
	}
	return obj, nil
}
