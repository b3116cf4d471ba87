package hub

import (
	"context"
	"fmt"
)

// Factory produces an item's value. It receives the hub so it can resolve
// other items by name; doing so recursively initializes them.
type Factory func(ctx context.Context, h *Hub) (any, error)

// Observer is a callback invoked with an item's value after every
// (re)initialization of that item.
type Observer func(ctx context.Context, value any)

// UseFunc is invoked on an item when a relation it uses has been (re)computed.
// The id names the changed relation; prev is nil when the relation had no
// prior value.
type UseFunc func(ctx context.Context, id string, value any, prev any)

// RefFunc is the by-reference variant of UseFunc, for items declared to track
// a relation through a live handle instead of a value snapshot.
type RefFunc func(ctx context.Context, id string, ref *Ref, prev any)

// Definition is a single item contribution from a component: the name, the
// factory, the declared relations, and the optional hooks through which
// propagation is applied to the item's own state.
type Definition struct {
	Name     string
	Factory  Factory
	Uses     []string
	UsedBy   []string
	OnUse    UseFunc
	OnUseRef RefFunc
}

// Item is a single named slot in the hub: its factory, cached value,
// initialization state, and the named relations to other items it consumes
// or is consumed by.
//
// An Item is created once, at definition time, and lives for the hub's
// lifetime. Re-initialization replaces its cached value but never its
// identity or relations.
type Item struct {
	name        string
	factory     Factory
	value       any
	initialized bool

	// uses and usedBy are mutual inverses, reconciled by the hub at
	// definition time: for any pair (a, b), a.usedBy contains b iff
	// b.uses contains a, regardless of which side declared the relation.
	uses   []string
	usedBy []string

	onUse    UseFunc
	onUseRef RefFunc
}

func newItem(def Definition) *Item {
	return &Item{
		name:     def.Name,
		factory:  def.Factory,
		uses:     appendUniqueAll(nil, def.Uses),
		usedBy:   appendUniqueAll(nil, def.UsedBy),
		onUse:    def.OnUse,
		onUseRef: def.OnUseRef,
	}
}

// Name returns the item's unique identifier.
func (it *Item) Name() string {
	return it.name
}

// IsInitialized reports whether the factory has run since the item was
// defined, or a value was stored directly.
func (it *Item) IsInitialized() bool {
	return it.initialized
}

// Value returns the item's current value. Callers must treat the result as
// read-only; Hub.Set is the only sanctioned mutation path.
func (it *Item) Value() any {
	return it.value
}

// Uses reports whether this item declares that it consumes the named item.
func (it *Item) Uses(id string) bool {
	return containsID(it.uses, id)
}

// UsedBy reports whether this item declares that it is consumed by the named
// item.
func (it *Item) UsedBy(id string) bool {
	return containsID(it.usedBy, id)
}

// UsesIDs returns the names of the items this item consumes, in declaration
// order.
func (it *Item) UsesIDs() []string {
	out := make([]string, len(it.uses))
	copy(out, it.uses)
	return out
}

// UsedByIDs returns the names of the items that consume this item, in
// declaration order.
func (it *Item) UsedByIDs() []string {
	out := make([]string, len(it.usedBy))
	copy(out, it.usedBy)
	return out
}

// initializeValue runs the factory and caches its result. The caller decides
// what happens to any previous value.
func (it *Item) initializeValue(ctx context.Context, h *Hub) error {
	value, err := it.factory(ctx, h)
	if err != nil {
		return fmt.Errorf("initializing item %q: %w", it.name, err)
	}
	it.value = value
	it.initialized = true
	return nil
}

// set overwrites the value directly without invoking the factory.
func (it *Item) set(value any) {
	it.value = value
	it.initialized = true
}

// ref returns a live handle to this item's stored value.
func (it *Item) ref() *Ref {
	return &Ref{item: it}
}

// applyUse tells the item that the relation named id now has the given value.
// How the item folds this into its own state is defined by the producing
// component; items without a hook ignore the notification.
func (it *Item) applyUse(ctx context.Context, id string, value any, prev any) {
	if it.onUse != nil {
		it.onUse(ctx, id, value, prev)
	}
}

// applyUseRef is the by-reference variant of applyUse.
func (it *Item) applyUseRef(ctx context.Context, id string, ref *Ref, prev any) {
	if it.onUseRef != nil {
		it.onUseRef(ctx, id, ref, prev)
	}
}

func (it *Item) addUses(id string) {
	it.uses = appendUnique(it.uses, id)
}

func (it *Item) addUsedBy(id string) {
	it.usedBy = appendUnique(it.usedBy, id)
}

func containsID(ids []string, id string) bool {
	for _, existing := range ids {
		if existing == id {
			return true
		}
	}
	return false
}

func appendUnique(ids []string, id string) []string {
	if containsID(ids, id) {
		return ids
	}
	return append(ids, id)
}

func appendUniqueAll(ids []string, add []string) []string {
	for _, id := range add {
		ids = appendUnique(ids, id)
	}
	return ids
}
