package objects

import (
	"github.com/lagopus-go/dsinterp/internal/classes"
)

// Classes groups one instance of each of the eight object classes, in the
// same fixed dependency order as classes.Order.
type Classes struct {
	PolicerAction *PolicerActionClass
	Policer       *PolicerClass
	Queue         *QueueClass
	Interface     *InterfaceClass
	Port          *PortClass
	Channel       *ChannelClass
	Controller    *ControllerClass
	Bridge        *BridgeClass
}

// NewClasses constructs one fresh, unregistered instance of every object
// class.
func NewClasses() *Classes {
	return &Classes{
		PolicerAction: NewPolicerActionClass(),
		Policer:       NewPolicerClass(),
		Queue:         NewQueueClass(),
		Interface:     NewInterfaceClass(),
		Port:          NewPortClass(),
		Channel:       NewChannelClass(),
		Controller:    NewControllerClass(),
		Bridge:        NewBridgeClass(),
	}
}

// RegisterAll registers every class in reg, in dependency order. Returns
// the first registration error encountered (AlreadyExists if reg already
// carries a class under one of these names).
func (cs *Classes) RegisterAll(reg *classes.Registry) error {
	for _, c := range []classes.Class{
		cs.PolicerAction,
		cs.Policer,
		cs.Queue,
		cs.Interface,
		cs.Port,
		cs.Channel,
		cs.Controller,
		cs.Bridge,
	} {
		if err := reg.Register(c); err != nil {
			return err
		}
	}
	return nil
}
