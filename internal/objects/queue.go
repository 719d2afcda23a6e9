package objects

import (
	"fmt"

	"github.com/lagopus-go/dsinterp/internal/classes"
)

// QueueInfo is this switch's per-port queue configuration: an OpenFlow
// queue ID, its scheduling priority, and the policer that rate-limits it.
type QueueInfo struct {
	ID          uint32
	Priority    uint8
	PolicerName string
}

// QueueClass is the "queue" class: it depends on policer.
type QueueClass struct {
	*genericClass[QueueInfo]
}

// NewQueueClass constructs an empty, unregistered QueueClass.
func NewQueueClass() *QueueClass {
	return &QueueClass{genericClass: newGenericClass[QueueInfo](
		"queue",
		func(o *Instance[QueueInfo]) (string, error) {
			i := o.Info.Current
			return fmt.Sprintf("queue %s id %d priority %d policer %s", o.Name(), i.ID, i.Priority, i.PolicerName), nil
		},
		nil,
	)}
}

// Create registers a new queue instance, validating its policer reference
// if one is set.
func (c *QueueClass) Create(reg *classes.Registry, name string, info QueueInfo) (*Instance[QueueInfo], error) {
	obj, err := resolveDependency(reg, "policer", info.PolicerName)
	if err != nil {
		return nil, err
	}
	o, err := create(c.genericClass, name, info)
	if err != nil {
		return nil, err
	}
	if p, ok := obj.(*Instance[PolicerInfo]); ok {
		p.SetUsed(true)
	}
	return o, nil
}

// Find looks up a registered queue instance by name.
func (c *QueueClass) Find(name string) (*Instance[QueueInfo], error) {
	return find(c.genericClass, name)
}

var _ classes.Class = (*QueueClass)(nil)
