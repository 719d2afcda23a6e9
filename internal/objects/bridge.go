package objects

import (
	"fmt"
	"strings"

	"github.com/lagopus-go/dsinterp/internal/classes"
)

// BridgeInfo mirrors the scalar fields of datastore_bridge_info_t: the
// datapath's fail behavior and resource limits, plus the port and
// controller names bound to it (the original tracks these via a separate
// name-list table per bridge; flattened here onto the info struct).
type BridgeInfo struct {
	DpID              uint64
	FailMode          string // "secure", "standalone"
	MaxBufferedPackets uint32
	MaxPorts          uint32
	MaxTables         uint8
	PortNames         []string
	ControllerNames   []string
}

// BridgeClass is the "bridge" class: the root of the dependency order,
// depending on port and controller.
type BridgeClass struct {
	*genericClass[BridgeInfo]
}

// NewBridgeClass constructs an empty, unregistered BridgeClass.
func NewBridgeClass() *BridgeClass {
	return &BridgeClass{genericClass: newGenericClass[BridgeInfo](
		"bridge",
		func(o *Instance[BridgeInfo]) (string, error) {
			i := o.Info.Current
			return fmt.Sprintf("bridge %s dpid %d fail-mode %s ports %s controllers %s",
				o.Name(), i.DpID, i.FailMode, strings.Join(i.PortNames, ","), strings.Join(i.ControllerNames, ",")), nil
		},
		nil,
	)}
}

// Create registers a new bridge instance, validating its port and
// controller references and marking each one used.
func (c *BridgeClass) Create(reg *classes.Registry, name string, info BridgeInfo) (*Instance[BridgeInfo], error) {
	var portObjs, controllerObjs []classes.Object
	for _, pn := range info.PortNames {
		obj, err := resolveDependency(reg, "port", pn)
		if err != nil {
			return nil, err
		}
		if obj != nil {
			portObjs = append(portObjs, obj)
		}
	}
	for _, cn := range info.ControllerNames {
		obj, err := resolveDependency(reg, "controller", cn)
		if err != nil {
			return nil, err
		}
		if obj != nil {
			controllerObjs = append(controllerObjs, obj)
		}
	}

	o, err := create(c.genericClass, name, info)
	if err != nil {
		return nil, err
	}
	for _, obj := range portObjs {
		if p, ok := obj.(*Instance[PortInfo]); ok {
			p.SetUsed(true)
		}
	}
	for _, obj := range controllerObjs {
		if ctl, ok := obj.(*Instance[ControllerInfo]); ok {
			ctl.SetUsed(true)
		}
	}
	return o, nil
}

// Find looks up a registered bridge instance by name.
func (c *BridgeClass) Find(name string) (*Instance[BridgeInfo], error) {
	return find(c.genericClass, name)
}

var _ classes.Class = (*BridgeClass)(nil)
