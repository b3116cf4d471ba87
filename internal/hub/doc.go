// Package hub is the runtime registry at the heart of the application. It
// holds named, lazily-computed items, each produced by a component-supplied
// factory and optionally related to other items by name.
//
// Items are resolved on demand: the first Get of a name runs its factory,
// which may itself Get other names, recursively initializing everything the
// item structurally depends on. After a factory runs, registered observers
// are dispatched with the fresh value, and the change is propagated in both
// directions along the declared uses/used-by relations so that previously
// initialized consumers stay consistent.
//
// The hub is a single-threaded, in-process object graph cache. It is not a
// general IoC container: there is no autowiring by type, no persistence, and
// no concurrency guarantee. Cyclic relations are not guarded against; a cycle
// causes unbounded recursion.
//
// For a detailed walk-through of the propagation algorithm, see lifecycle.go.
package hub
