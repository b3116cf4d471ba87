// Package printer contributes observers that log every (re)computed value of
// the watched item names. It defines no items of its own.
package printer

import (
	"context"

	"github.com/vk/itemhub/internal/ctxlog"
	"github.com/vk/itemhub/internal/hub"
)

// Component implements the hub.Component interface for this package.
type Component struct {
	watch []string
	hub   *hub.Hub
}

// New creates a printer component watching the given item names.
func New(names ...string) *Component {
	return &Component{watch: names}
}

// Bind stores the back-reference to the hub that added this component.
func (c *Component) Bind(h *hub.Hub) {
	c.hub = h
}

// Items returns nothing; this component only observes.
func (c *Component) Items() []hub.Definition {
	return nil
}

// Observers returns one logging observer per watched name.
func (c *Component) Observers() []hub.ObserverBinding {
	bindings := make([]hub.ObserverBinding, 0, len(c.watch))
	for _, name := range c.watch {
		name := name
		bindings = append(bindings, hub.ObserverBinding{
			Item: name,
			Fn: func(ctx context.Context, value any) {
				ctxlog.FromContext(ctx).Info("Item computed.", "item", name, "value", value)
			},
		})
	}
	return bindings
}
