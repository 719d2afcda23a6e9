package objects

import (
	"fmt"

	"github.com/lagopus-go/dsinterp/internal/classes"
)

// InterfaceInfo mirrors datastore_interface_info_t, flattened to the
// fields common across its eth/eth-dpdk-phy/eth-rawsock/vxlan variants.
type InterfaceInfo struct {
	Type       string // "ethernet-dpdk-phy", "ethernet-rawsock", "vxlan"
	Device     string
	PortNumber uint32
	MTU        uint16
	// DstPort, SrcPort and NetworkID are only meaningful for vxlan
	// interfaces, mirroring datastore_interface_vxlan.
	DstPort   uint32
	SrcPort   uint32
	NetworkID uint32
	TTL       uint8
}

// InterfaceClass is the "interface" class: it depends on nothing else in
// the object graph, but ports depend on it.
type InterfaceClass struct {
	*genericClass[InterfaceInfo]
}

// NewInterfaceClass constructs an empty, unregistered InterfaceClass.
func NewInterfaceClass() *InterfaceClass {
	return &InterfaceClass{genericClass: newGenericClass[InterfaceInfo](
		"interface",
		func(o *Instance[InterfaceInfo]) (string, error) {
			i := o.Info.Current
			return fmt.Sprintf("interface %s type %s device %s mtu %d", o.Name(), i.Type, i.Device, i.MTU), nil
		},
		nil,
	)}
}

// Create registers a new interface instance.
func (c *InterfaceClass) Create(name string, info InterfaceInfo) (*Instance[InterfaceInfo], error) {
	return create(c.genericClass, name, info)
}

// Find looks up a registered interface instance by name.
func (c *InterfaceClass) Find(name string) (*Instance[InterfaceInfo], error) {
	return find(c.genericClass, name)
}

var _ classes.Class = (*InterfaceClass)(nil)
