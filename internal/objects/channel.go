package objects

import (
	"fmt"

	"github.com/lagopus-go/dsinterp/internal/classes"
)

// ChannelInfo is the OpenFlow transport endpoint a controller binds to
// (datastore_controller_get_channel_name's referent); the original has no
// standalone channel.h, the channel concept only surfaces as a name field
// on controller, so its fields are inferred from the channel-name getter's
// usage: an address and the wire protocol the channel negotiates over.
type ChannelInfo struct {
	Dst      string // host:port the channel connects to
	Protocol string // "tls", "tcp"
}

// ChannelClass is the "channel" class: it depends on nothing else, but
// controller depends on it.
type ChannelClass struct {
	*genericClass[ChannelInfo]
}

// NewChannelClass constructs an empty, unregistered ChannelClass.
func NewChannelClass() *ChannelClass {
	return &ChannelClass{genericClass: newGenericClass[ChannelInfo](
		"channel",
		func(o *Instance[ChannelInfo]) (string, error) {
			i := o.Info.Current
			return fmt.Sprintf("channel %s dst %s protocol %s", o.Name(), i.Dst, i.Protocol), nil
		},
		nil,
	)}
}

// Create registers a new channel instance.
func (c *ChannelClass) Create(name string, info ChannelInfo) (*Instance[ChannelInfo], error) {
	return create(c.genericClass, name, info)
}

// Find looks up a registered channel instance by name.
func (c *ChannelClass) Find(name string) (*Instance[ChannelInfo], error) {
	return find(c.genericClass, name)
}

var _ classes.Class = (*ChannelClass)(nil)
