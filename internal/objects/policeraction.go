package objects

import (
	"fmt"

	"github.com/lagopus-go/dsinterp/internal/classes"
)

// PolicerActionInfo mirrors datastore_policer_action_info_t: the single
// action a policer takes on packets exceeding its rate (discard being the
// only kind the original ships).
type PolicerActionInfo struct {
	Type string // e.g. "discard"
}

// PolicerActionClass is the "policer-action" class: the first entry in the
// fixed dependency order, since nothing else depends on it.
type PolicerActionClass struct {
	*genericClass[PolicerActionInfo]
}

// NewPolicerActionClass constructs an empty, unregistered PolicerActionClass.
func NewPolicerActionClass() *PolicerActionClass {
	return &PolicerActionClass{genericClass: newGenericClass[PolicerActionInfo](
		"policer-action",
		func(o *Instance[PolicerActionInfo]) (string, error) {
			return fmt.Sprintf("policer-action %s type %s", o.Name(), o.Info.Current.Type), nil
		},
		nil,
	)}
}

// Create registers a new policer-action instance.
func (c *PolicerActionClass) Create(name string, info PolicerActionInfo) (*Instance[PolicerActionInfo], error) {
	return create(c.genericClass, name, info)
}

// Find looks up a registered policer-action instance by name.
func (c *PolicerActionClass) Find(name string) (*Instance[PolicerActionInfo], error) {
	return find(c.genericClass, name)
}

var _ classes.Class = (*PolicerActionClass)(nil)
