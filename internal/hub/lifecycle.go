package hub

import (
	"context"

	"github.com/vk/itemhub/internal/ctxlog"
)

// This file implements the initialize-on-demand and propagation algorithm.
//
// Initializing an item runs its factory, dispatches observers, then settles
// the relation graph in two passes:
//
//   - track-to (pull): everything the item uses is initialized first and
//     applied to the item by value; items declaring they are used by this
//     item are initialized and handed a live reference to it.
//   - track-from (push): consumers that were already initialized are told
//     about the new value, by reference along the item's used-by list and by
//     value via a full definition-order scan.
//
// Together the two passes give define-in-any-order, resolve-lazily,
// stay-consistent-under-reinitialization semantics without a topological
// sort. Both passes deliberately rescan the full item set: every
// initialization re-validates full consistency. Recursion terminates only
// while the relation graph is acyclic; cycles are not detected.

// ensureInitialized initializes the item if its factory has not run yet.
// Between two update triggers the factory therefore runs at most once no
// matter how many times the item is fetched.
func (h *Hub) ensureInitialized(ctx context.Context, it *Item) error {
	if it.initialized {
		return nil
	}
	return h.initialize(ctx, it)
}

// initialize (re)computes the item's value and propagates the change.
func (h *Hub) initialize(ctx context.Context, it *Item) error {
	logger := ctxlog.FromContext(ctx)

	var prev any
	if it.initialized {
		prev = it.value
	}

	if err := it.initializeValue(ctx, h); err != nil {
		return err
	}
	logger.Debug("Item initialized.", "item", it.name, "reinitialized", prev != nil)

	h.dispatchObservers(ctx, it)

	if err := h.trackTo(ctx, it); err != nil {
		return err
	}
	return h.trackFrom(ctx, it, prev)
}

// dispatchObservers invokes every observer registered against the item's
// name with the freshly computed value, in registration order.
func (h *Hub) dispatchObservers(ctx context.Context, it *Item) {
	for _, fn := range h.observers[it.name] {
		fn(ctx, it.value)
	}
}

// trackTo pulls the item's dependencies forward: every item it uses is
// initialized (recursively, if needed) and applied by value. Separately,
// every defined item declaring it is used by this item is initialized and
// receives a live reference to it, so reverse-injected consumers can attach
// themselves once this item's value exists.
func (h *Hub) trackTo(ctx context.Context, it *Item) error {
	for _, id := range it.uses {
		dep, ok := h.items[id]
		if !ok {
			return &NotFoundError{Name: id}
		}
		if err := h.ensureInitialized(ctx, dep); err != nil {
			return err
		}
		it.applyUse(ctx, id, dep.value, nil)
	}

	for _, name := range h.order {
		other := h.items[name]
		if other == it {
			continue
		}
		if other.UsedBy(it.name) {
			if err := h.ensureInitialized(ctx, other); err != nil {
				return err
			}
			other.applyUseRef(ctx, it.name, it.ref(), nil)
		}
	}
	return nil
}

// trackFrom pushes the change backward to dependents: every already
// initialized consumer from the item's used-by list receives a live
// reference together with the previous value, and a full scan notifies every
// initialized item that declares it uses this one, by value. Consumers that
// have not been initialized yet are skipped; they pick the value up when
// their own initialization pulls it.
func (h *Hub) trackFrom(ctx context.Context, it *Item, prev any) error {
	for _, id := range it.usedBy {
		other, ok := h.items[id]
		if !ok || !other.initialized {
			continue
		}
		other.applyUseRef(ctx, it.name, it.ref(), prev)
	}

	for _, name := range h.order {
		other := h.items[name]
		if other == it || !other.initialized {
			continue
		}
		if other.Uses(it.name) {
			other.applyUse(ctx, it.name, it.value, prev)
		}
	}
	return nil
}
