package hub

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDependencyPropagation(t *testing.T) {
	ctx := context.Background()
	h := New()

	mustAdd(t, h,
		Definition{Name: "a", Factory: staticValue(1)},
		Definition{
			Name: "b",
			Uses: []string{"a"},
			Factory: func(ctx context.Context, h *Hub) (any, error) {
				val, err := h.Get(ctx, "a")
				if err != nil {
					return nil, err
				}
				return val.(int) + 1, nil
			},
		},
	)

	val, err := h.Get(ctx, "b")
	require.NoError(t, err)
	assert.Equal(t, 2, val)

	require.NoError(t, h.Set(ctx, "a", 10))
	require.NoError(t, h.Update(ctx, "b"))

	val, err = h.Get(ctx, "b")
	require.NoError(t, err)
	assert.Equal(t, 11, val)
}

func TestSet_DoesNotPropagate(t *testing.T) {
	// Set only stores the value; dependents are refreshed by the
	// initialize/update paths, never by Set itself. This asymmetry is
	// part of the contract, so it is pinned here.
	ctx := context.Background()
	h := New()

	mustAdd(t, h,
		Definition{Name: "a", Factory: staticValue(1)},
		Definition{
			Name: "b",
			Uses: []string{"a"},
			Factory: func(ctx context.Context, h *Hub) (any, error) {
				val, err := h.Get(ctx, "a")
				if err != nil {
					return nil, err
				}
				return val.(int) + 1, nil
			},
		},
	)

	val, err := h.Get(ctx, "b")
	require.NoError(t, err)
	assert.Equal(t, 2, val)

	require.NoError(t, h.Set(ctx, "a", 10))

	val, err = h.Get(ctx, "b")
	require.NoError(t, err)
	assert.Equal(t, 2, val, "b must keep its stale value until explicitly updated")
}

func TestInitializeOnUse(t *testing.T) {
	// Fetching b (which uses a) must initialize a as a side effect, and a
	// later direct fetch of a must not re-run its factory.
	ctx := context.Background()
	h := New()

	aRuns := 0
	mustAdd(t, h,
		Definition{
			Name: "a",
			Factory: func(context.Context, *Hub) (any, error) {
				aRuns++
				return "a-value", nil
			},
		},
		Definition{Name: "b", Uses: []string{"a"}, Factory: staticValue("b-value")},
	)

	_, err := h.Get(ctx, "b")
	require.NoError(t, err)
	assert.Equal(t, 1, aRuns, "initializing b must initialize a")

	itemA, err := h.Item("a")
	require.NoError(t, err)
	assert.True(t, itemA.IsInitialized())

	val, err := h.Get(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, "a-value", val)
	assert.Equal(t, 1, aRuns)
}

func TestObserverOrdering(t *testing.T) {
	ctx := context.Background()
	h := New()

	var events []string
	c := &stubComponent{
		defs: []Definition{{
			Name: "x",
			Factory: func(context.Context, *Hub) (any, error) {
				events = append(events, "factory")
				return 42, nil
			},
		}},
		obs: []ObserverBinding{
			{Item: "x", Fn: func(ctx context.Context, value any) {
				events = append(events, "first")
				assert.Equal(t, 42, value)
			}},
			{Item: "x", Fn: func(ctx context.Context, value any) {
				events = append(events, "second")
			}},
		},
	}
	require.NoError(t, h.Add(ctx, c))

	_, err := h.Get(ctx, "x")
	require.NoError(t, err)
	assert.Equal(t, []string{"factory", "first", "second"}, events,
		"observers run after the factory, in registration order")

	events = nil
	require.NoError(t, h.Update(ctx, "x"))
	assert.Equal(t, []string{"factory", "first", "second"}, events,
		"every re-initialization dispatches observers exactly once each")
}

func TestObserver_NotRunForOtherItems(t *testing.T) {
	ctx := context.Background()
	h := New()

	calls := 0
	c := &stubComponent{
		defs: []Definition{
			{Name: "watched", Factory: staticValue(1)},
			{Name: "other", Factory: staticValue(2)},
		},
		obs: []ObserverBinding{
			{Item: "watched", Fn: func(context.Context, any) { calls++ }},
		},
	}
	require.NoError(t, h.Add(ctx, c))

	_, err := h.Get(ctx, "other")
	require.NoError(t, err)
	assert.Zero(t, calls)

	_, err = h.Get(ctx, "watched")
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}

func TestRegistrationTimeInitialization(t *testing.T) {
	// When an already-initialized item declares a dependency on a name that
	// is only defined later, the late definition is initialized immediately
	// so no initialized item ever observes an uninitialized dependency.
	ctx := context.Background()
	h := New()

	mustAdd(t, h, Definition{Name: "consumer", Uses: []string{"late"}, Factory: staticValue("c")})

	// The dependency does not exist yet; fetching the consumer fails.
	_, err := h.Get(ctx, "consumer")
	var notFound *NotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "late", notFound.Name)

	// Force the consumer itself initialized via Set, then define the
	// missing dependency.
	require.NoError(t, h.Set(ctx, "consumer", "stored"))

	lateRuns := 0
	mustAdd(t, h, Definition{
		Name: "late",
		Factory: func(context.Context, *Hub) (any, error) {
			lateRuns++
			return "late-value", nil
		},
	})

	assert.Equal(t, 1, lateRuns, "defining a name an initialized item uses must initialize it")

	it, err := h.Item("late")
	require.NoError(t, err)
	assert.True(t, it.IsInitialized())
}

func TestUseHook_ReceivesPushAndPull(t *testing.T) {
	ctx := context.Background()
	h := New()

	type event struct {
		id    string
		value any
		prev  any
	}
	var got []event

	mustAdd(t, h,
		Definition{Name: "source", Factory: staticValue(1)},
		Definition{
			Name:    "sink",
			Uses:    []string{"source"},
			Factory: staticValue("sink"),
			OnUse: func(ctx context.Context, id string, value any, prev any) {
				got = append(got, event{id, value, prev})
			},
		},
	)

	// Initializing sink pulls source in, which pushes back to the (by then
	// initialized) sink before sink's own pull applies the value. Both
	// notifications carry no previous value.
	_, err := h.Get(ctx, "sink")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, event{"source", 1, nil}, got[0])
	assert.Equal(t, event{"source", 1, nil}, got[1])

	// Push: re-initializing source notifies the initialized sink with the
	// old value attached.
	require.NoError(t, h.Update(ctx, "source"))
	require.Len(t, got, 3)
	assert.Equal(t, event{"source", 1, 1}, got[2])
}

func TestRefHook_TracksByReference(t *testing.T) {
	ctx := context.Background()
	h := New()

	var ref *Ref
	mustAdd(t, h,
		Definition{Name: "source", Factory: staticValue("first")},
		Definition{
			Name:    "tracker",
			Uses:    []string{"source"},
			Factory: staticValue("tracker"),
			OnUseRef: func(ctx context.Context, id string, r *Ref, prev any) {
				assert.Equal(t, "source", id)
				ref = r
			},
		},
	)

	// Initializing the tracker pulls the source in; the source's push pass
	// hands the tracker a live reference.
	_, err := h.Get(ctx, "tracker")
	require.NoError(t, err)
	require.NotNil(t, ref)

	require.NoError(t, h.Update(ctx, "source"))
	assert.Equal(t, "source", ref.Item())
	assert.Equal(t, "first", ref.Value())

	// The handle stays live across later stores.
	require.NoError(t, h.Set(ctx, "source", "second"))
	assert.Equal(t, "second", ref.Value())
}

func TestReverseInjection(t *testing.T) {
	// An item may declare it is used by another item. When the consumer
	// initializes, the declaring item is initialized and handed a live
	// reference to the consumer, so it can attach itself.
	ctx := context.Background()
	h := New()

	var seen []string
	mustAdd(t, h,
		Definition{
			Name:    "plugin",
			UsedBy:  []string{"manager"},
			Factory: staticValue("plugin-value"),
			OnUseRef: func(ctx context.Context, id string, r *Ref, prev any) {
				seen = append(seen, id+"="+r.Value().(string))
			},
		},
		Definition{Name: "manager", Factory: staticValue("manager-value")},
	)

	pluginItem, err := h.Item("plugin")
	require.NoError(t, err)
	managerItem, err := h.Item("manager")
	require.NoError(t, err)
	assert.True(t, pluginItem.UsedBy("manager"))
	assert.True(t, managerItem.Uses("plugin"), "relations reconcile from either side")

	_, err = h.Get(ctx, "manager")
	require.NoError(t, err)

	assert.True(t, pluginItem.IsInitialized(), "initializing the consumer initializes the declaring item")
	require.NotEmpty(t, seen)
	assert.Equal(t, "manager=manager-value", seen[0])
}

func TestTransitiveInitialization(t *testing.T) {
	ctx := context.Background()
	h := New()

	order := make([]string, 0, 3)
	track := func(name string, value any) Factory {
		return func(context.Context, *Hub) (any, error) {
			order = append(order, name)
			return value, nil
		}
	}

	mustAdd(t, h,
		Definition{Name: "c", Uses: []string{"b"}, Factory: func(ctx context.Context, h *Hub) (any, error) {
			order = append(order, "c")
			return h.Get(ctx, "b")
		}},
		Definition{Name: "b", Uses: []string{"a"}, Factory: func(ctx context.Context, h *Hub) (any, error) {
			order = append(order, "b")
			return h.Get(ctx, "a")
		}},
		Definition{Name: "a", Factory: track("a", 7)},
	)

	val, err := h.Get(ctx, "c")
	require.NoError(t, err)
	assert.Equal(t, 7, val)
	assert.Equal(t, []string{"c", "b", "a"}, order)

	for _, name := range []string{"a", "b", "c"} {
		it, err := h.Item(name)
		require.NoError(t, err)
		assert.True(t, it.IsInitialized(), name)
	}
}
