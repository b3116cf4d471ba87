package hub

// Ref is a live handle into an item's stored value. Reading through a Ref
// always observes the item's current value, including values stored after the
// Ref was handed out.
//
// Refs exist for the hub's internal propagation: items declared to track a
// relation by reference receive a Ref instead of a value snapshot. The write
// path is package-private: external callers cannot mutate an item through a
// read handle, and writes that bypass Hub.Set skip observer dispatch.
type Ref struct {
	item *Item
}

// Value returns the referenced item's current value.
func (r *Ref) Value() any {
	return r.item.value
}

// Item returns the name of the referenced item.
func (r *Ref) Item() string {
	return r.item.name
}

// set overwrites the referenced item's value directly, without running the
// factory, dispatching observers, or propagating. Internal escape hatch only.
func (r *Ref) set(value any) {
	r.item.value = value
	r.item.initialized = true
}
