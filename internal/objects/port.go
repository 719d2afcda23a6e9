package objects

import (
	"fmt"
	"strings"

	"github.com/lagopus-go/dsinterp/internal/classes"
)

// PortInfo mirrors the fields surfaced by datastore_port_get_*: the
// OpenFlow port number and the interface/policer/queues it binds.
type PortInfo struct {
	PortNumber    uint32
	InterfaceName string
	PolicerName   string
	QueueNames    []string
}

// PortClass is the "port" class: it depends on interface, policer and
// queue.
type PortClass struct {
	*genericClass[PortInfo]
}

// NewPortClass constructs an empty, unregistered PortClass.
func NewPortClass() *PortClass {
	return &PortClass{genericClass: newGenericClass[PortInfo](
		"port",
		func(o *Instance[PortInfo]) (string, error) {
			i := o.Info.Current
			return fmt.Sprintf("port %s number %d interface %s queues %s", o.Name(), i.PortNumber, i.InterfaceName, strings.Join(i.QueueNames, ",")), nil
		},
		nil,
	)}
}

// Create registers a new port instance, validating its interface, policer
// and queue references and marking each one used.
func (c *PortClass) Create(reg *classes.Registry, name string, info PortInfo) (*Instance[PortInfo], error) {
	ifaceObj, err := resolveDependency(reg, "interface", info.InterfaceName)
	if err != nil {
		return nil, err
	}
	policerObj, err := resolveDependency(reg, "policer", info.PolicerName)
	if err != nil {
		return nil, err
	}
	var queueObjs []classes.Object
	for _, qn := range info.QueueNames {
		qObj, err := resolveDependency(reg, "queue", qn)
		if err != nil {
			return nil, err
		}
		if qObj != nil {
			queueObjs = append(queueObjs, qObj)
		}
	}

	o, err := create(c.genericClass, name, info)
	if err != nil {
		return nil, err
	}
	if iface, ok := ifaceObj.(*Instance[InterfaceInfo]); ok {
		iface.SetUsed(true)
	}
	if p, ok := policerObj.(*Instance[PolicerInfo]); ok {
		p.SetUsed(true)
	}
	for _, qObj := range queueObjs {
		if q, ok := qObj.(*Instance[QueueInfo]); ok {
			q.SetUsed(true)
		}
	}
	return o, nil
}

// Find looks up a registered port instance by name.
func (c *PortClass) Find(name string) (*Instance[PortInfo], error) {
	return find(c.genericClass, name)
}

var _ classes.Class = (*PortClass)(nil)
