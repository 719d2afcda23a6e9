package objects

import (
	"fmt"
	"strings"

	"github.com/lagopus-go/dsinterp/internal/classes"
)

// PolicerInfo mirrors datastore_policer_info_t.
type PolicerInfo struct {
	BandwidthLimit   uint64
	BurstSizeLimit   uint64
	BandwidthPercent uint8
	ActionNames      []string
}

// PolicerClass is the "policer" class: it depends on policer-action.
type PolicerClass struct {
	*genericClass[PolicerInfo]
}

// NewPolicerClass constructs an empty, unregistered PolicerClass.
func NewPolicerClass() *PolicerClass {
	return &PolicerClass{genericClass: newGenericClass[PolicerInfo](
		"policer",
		func(o *Instance[PolicerInfo]) (string, error) {
			i := o.Info.Current
			return fmt.Sprintf("policer %s bandwidth-limit %d burst-size-limit %d bandwidth-percent %d actions %s",
				o.Name(), i.BandwidthLimit, i.BurstSizeLimit, i.BandwidthPercent, strings.Join(i.ActionNames, ",")), nil
		},
		nil,
	)}
}

// Create registers a new policer instance, validating that every named
// policer-action already exists in reg (NotFound otherwise), and
// marking each one used.
func (c *PolicerClass) Create(reg *classes.Registry, name string, info PolicerInfo) (*Instance[PolicerInfo], error) {
	var resolved []classes.Object
	for _, actionName := range info.ActionNames {
		obj, err := resolveDependency(reg, "policer-action", actionName)
		if err != nil {
			return nil, err
		}
		if obj != nil {
			resolved = append(resolved, obj)
		}
	}
	o, err := create(c.genericClass, name, info)
	if err != nil {
		return nil, err
	}
	for _, obj := range resolved {
		if pa, ok := obj.(*Instance[PolicerActionInfo]); ok {
			pa.SetUsed(true)
		}
	}
	return o, nil
}

// Find looks up a registered policer instance by name.
func (c *PolicerClass) Find(name string) (*Instance[PolicerInfo], error) {
	return find(c.genericClass, name)
}

var _ classes.Class = (*PolicerClass)(nil)
