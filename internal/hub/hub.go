package hub

import (
	"context"
	"fmt"

	"github.com/vk/itemhub/internal/ctxlog"
)

// Hub owns the mapping from name to Item and the observer registrations. All
// definitions enter through Add; there is no undefine or redefine. The hub is
// strictly single-threaded: every operation runs to completion before
// returning, and nothing in here is safe for concurrent use.
type Hub struct {
	// items holds every defined item; order preserves definition order so
	// that propagation scans are deterministic.
	items map[string]*Item
	order []string

	// observers maps an item name to its callbacks, in registration order.
	observers map[string][]Observer
}

// New creates an empty hub.
func New() *Hub {
	return &Hub{
		items:     make(map[string]*Item),
		observers: make(map[string][]Observer),
	}
}

// Has reports whether a definition exists for the given name.
func (h *Hub) Has(id string) bool {
	_, ok := h.items[id]
	return ok
}

// Names returns all defined item names in definition order.
func (h *Hub) Names() []string {
	out := make([]string, len(h.order))
	copy(out, h.order)
	return out
}

// Item returns the defined item for the given name, without initializing it.
func (h *Hub) Item(id string) (*Item, error) {
	it, ok := h.items[id]
	if !ok {
		return nil, &NotFoundError{Name: id}
	}
	return it, nil
}

// Get returns the named item's value, initializing it first if its factory
// has not yet run. The returned value must be treated as read-only; Hub.Set
// is the only sanctioned mutation path.
func (h *Hub) Get(ctx context.Context, id string) (any, error) {
	it, ok := h.items[id]
	if !ok {
		return nil, &NotFoundError{Name: id}
	}
	if err := h.ensureInitialized(ctx, it); err != nil {
		return nil, err
	}
	return it.value, nil
}

// ref returns a live handle to the named item's value, initializing the item
// if needed. Internal affordance for propagation; writes through a Ref bypass
// observers and dependents.
func (h *Hub) ref(ctx context.Context, id string) (*Ref, error) {
	it, ok := h.items[id]
	if !ok {
		return nil, &NotFoundError{Name: id}
	}
	if err := h.ensureInitialized(ctx, it); err != nil {
		return nil, err
	}
	return it.ref(), nil
}

// Set overwrites the named item's value directly, without re-running its
// factory. Set does not propagate: dependents keep whatever they last
// observed until the item is re-initialized through Update. Callers relying
// on consistency must follow a Set of a dependency with an Update of its
// consumers.
func (h *Hub) Set(ctx context.Context, id string, value any) error {
	it, ok := h.items[id]
	if !ok {
		return &NotFoundError{Name: id}
	}
	ctxlog.FromContext(ctx).Debug("Storing item value directly.", "item", id)
	it.set(value)
	return nil
}

// Update forces re-initialization of the named item: the factory runs again
// and the change is fully propagated. Updating an item that was never
// initialized is a no-op.
func (h *Hub) Update(ctx context.Context, id string) error {
	it, ok := h.items[id]
	if !ok {
		return &NotFoundError{Name: id}
	}
	if !it.initialized {
		return nil
	}
	return h.initialize(ctx, it)
}

// Observe registers an observer against an item name. Observers run in
// registration order after every (re)initialization of the item. The name
// does not need to be defined yet.
func (h *Hub) Observe(id string, fn Observer) {
	h.observers[id] = append(h.observers[id], fn)
}

// Add asks the component for its item definitions and observer registrations
// and merges them into the hub. It fails fast with AlreadyDefinedError on the
// first name collision; definitions merged before the collision remain
// defined. The component receives a back-reference to the hub before its
// contributions are read.
func (h *Hub) Add(ctx context.Context, c Component) error {
	logger := ctxlog.FromContext(ctx)
	c.Bind(h)

	defs := c.Items()
	for _, def := range defs {
		if err := h.define(ctx, def); err != nil {
			return err
		}
	}

	bindings := c.Observers()
	for _, b := range bindings {
		h.Observe(b.Item, b.Fn)
	}

	logger.Debug("Component added.", "items", len(defs), "observers", len(bindings))
	return nil
}

// AddMany adds each component in turn, stopping at the first failure.
func (h *Hub) AddMany(ctx context.Context, components ...Component) error {
	for _, c := range components {
		if err := h.Add(ctx, c); err != nil {
			return err
		}
	}
	return nil
}

// define stores a single item definition and reconciles the uses/used-by
// relations against everything already defined, so both directions of every
// relation are consistent no matter which side declared it.
func (h *Hub) define(ctx context.Context, def Definition) error {
	if def.Name == "" {
		return fmt.Errorf("item definition has no name")
	}
	if def.Factory == nil {
		return fmt.Errorf("item definition %q has no factory", def.Name)
	}
	if _, exists := h.items[def.Name]; exists {
		return &AlreadyDefinedError{Name: def.Name}
	}

	it := newItem(def)

	// Push this item's declarations onto the other side of each relation.
	for _, id := range it.uses {
		if other, ok := h.items[id]; ok {
			other.addUsedBy(it.name)
		}
	}
	for _, id := range it.usedBy {
		if other, ok := h.items[id]; ok {
			other.addUses(it.name)
		}
	}

	// Pull in relations previously declared against this name from the
	// other side.
	for _, name := range h.order {
		other := h.items[name]
		if other.Uses(it.name) {
			it.addUsedBy(other.name)
		}
		if other.UsedBy(it.name) {
			it.addUses(other.name)
		}
	}

	h.items[it.name] = it
	h.order = append(h.order, it.name)

	ctxlog.FromContext(ctx).Debug("Item defined.",
		"item", it.name, "uses", it.uses, "used_by", it.usedBy)

	// An already-initialized item must never observe a dependency as
	// perpetually uninitialized, so a definition something initialized
	// already depends on is computed right away.
	if h.isUsedByInitializedItems(it.name) {
		return h.initialize(ctx, it)
	}
	return nil
}

// isUsedByInitializedItems reports whether any already-initialized item
// declares a dependency on the given name.
func (h *Hub) isUsedByInitializedItems(id string) bool {
	for _, name := range h.order {
		other := h.items[name]
		if other.initialized && other.Uses(id) {
			return true
		}
	}
	return false
}
