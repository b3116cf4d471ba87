package hub

// Component is the interface producers implement to plug into the hub. A
// component contributes zero or more item definitions and zero or more
// observer registrations, and receives a back-reference to the hub that
// added it.
type Component interface {
	// Items returns the item definitions this component contributes.
	Items() []Definition

	// Observers returns the callbacks to run after the named items are
	// (re)computed.
	Observers() []ObserverBinding

	// Bind hands the component a reference to the hub that is adding it.
	// It is called before the component's definitions are read.
	Bind(h *Hub)
}

// ObserverBinding associates an observer callback with an item name. One name
// may carry many observers; they run in registration order.
type ObserverBinding struct {
	Item string
	Fn   Observer
}
