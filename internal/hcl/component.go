package hcl

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/vk/itemhub/internal/config"
	"github.com/vk/itemhub/internal/hub"
	"github.com/zclconf/go-cty/cty"
)

// Component adapts a loaded config model into a hub component, so items
// declared in .hcl files enter the hub through the same registration path as
// compiled-in components.
type Component struct {
	model *config.Model
	hub   *hub.Hub
}

// NewComponent wraps the given model.
func NewComponent(model *config.Model) *Component {
	return &Component{model: model}
}

// Bind stores the back-reference to the hub that added this component.
func (c *Component) Bind(h *hub.Hub) {
	c.hub = h
}

// Observers returns nothing; declarative item files carry no callbacks.
func (c *Component) Observers() []hub.ObserverBinding {
	return nil
}

// Items translates every loaded definition into a hub definition whose
// factory evaluates the item's value expression on demand.
func (c *Component) Items() []hub.Definition {
	defs := make([]hub.Definition, 0, len(c.model.Items))
	for _, def := range c.model.Items {
		defs = append(defs, hub.Definition{
			Name:    def.Name,
			Uses:    def.Uses,
			UsedBy:  def.UsedBy,
			Factory: itemFactory(def),
		})
	}
	return defs
}

// itemFactory builds a factory that resolves the definition's uses relations
// through the hub, exposes them to the expression as attributes of an `item`
// object, and evaluates the value expression. Because resolution goes through
// Hub.Get, fetching a declared item transitively initializes everything its
// expression references.
func itemFactory(def *config.ItemDefinition) hub.Factory {
	return func(ctx context.Context, h *hub.Hub) (any, error) {
		vars := make(map[string]cty.Value, len(def.Uses))
		for _, dep := range def.Uses {
			depVal, err := h.Get(ctx, dep)
			if err != nil {
				return nil, err
			}
			ctyVal, err := toCtyValue(depVal)
			if err != nil {
				return nil, fmt.Errorf("item %q (%s): converting value of %q: %w",
					def.Name, def.Source, dep, err)
			}
			vars[dep] = ctyVal
		}

		evalCtx := &hcl.EvalContext{}
		if len(vars) > 0 {
			evalCtx.Variables = map[string]cty.Value{"item": cty.ObjectVal(vars)}
		}

		val, diags := def.Value.Value(evalCtx)
		if diags.HasErrors() {
			return nil, fmt.Errorf("item %q (%s): evaluating value: %w",
				def.Name, def.Source, diags)
		}
		return fromCtyValue(val)
	}
}
