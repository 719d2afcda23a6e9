package objects

import (
	"fmt"

	"github.com/lagopus-go/dsinterp/internal/classes"
)

// ControllerInfo mirrors datastore_controller_get_*: the channel it binds
// to, its negotiated role, and its connection type.
type ControllerInfo struct {
	ChannelName    string
	Role           string // "equal", "master", "slave"
	ConnectionType string // "main", "auxiliary"
}

// ControllerClass is the "controller" class: it depends on channel.
type ControllerClass struct {
	*genericClass[ControllerInfo]
}

// NewControllerClass constructs an empty, unregistered ControllerClass.
func NewControllerClass() *ControllerClass {
	return &ControllerClass{genericClass: newGenericClass[ControllerInfo](
		"controller",
		func(o *Instance[ControllerInfo]) (string, error) {
			i := o.Info.Current
			return fmt.Sprintf("controller %s channel %s role %s", o.Name(), i.ChannelName, i.Role), nil
		},
		nil,
	)}
}

// Create registers a new controller instance, validating its channel
// reference and marking it used.
func (c *ControllerClass) Create(reg *classes.Registry, name string, info ControllerInfo) (*Instance[ControllerInfo], error) {
	chObj, err := resolveDependency(reg, "channel", info.ChannelName)
	if err != nil {
		return nil, err
	}
	o, err := create(c.genericClass, name, info)
	if err != nil {
		return nil, err
	}
	if ch, ok := chObj.(*Instance[ChannelInfo]); ok {
		ch.SetUsed(true)
	}
	return o, nil
}

// Find looks up a registered controller instance by name.
func (c *ControllerClass) Find(name string) (*Instance[ControllerInfo], error) {
	return find(c.genericClass, name)
}

var _ classes.Class = (*ControllerClass)(nil)
