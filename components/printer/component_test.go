package printer

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/itemhub/internal/ctxlog"
	"github.com/vk/itemhub/internal/hub"
)

type staticComponent struct {
	defs []hub.Definition
}

func (c *staticComponent) Items() []hub.Definition          { return c.defs }
func (c *staticComponent) Observers() []hub.ObserverBinding { return nil }
func (c *staticComponent) Bind(*hub.Hub)                    {}

func TestComponent_LogsWatchedItems(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo}))
	ctx := ctxlog.WithLogger(context.Background(), logger)

	h := hub.New()
	require.NoError(t, h.Add(ctx, &staticComponent{defs: []hub.Definition{
		{Name: "watched", Factory: func(context.Context, *hub.Hub) (any, error) { return "visible", nil }},
		{Name: "silent", Factory: func(context.Context, *hub.Hub) (any, error) { return "hidden", nil }},
	}}))
	require.NoError(t, h.Add(ctx, New("watched")))

	_, err := h.Get(ctx, "watched")
	require.NoError(t, err)
	_, err = h.Get(ctx, "silent")
	require.NoError(t, err)

	logs := buf.String()
	assert.Contains(t, logs, "Item computed.")
	assert.Contains(t, logs, "item=watched")
	assert.Contains(t, logs, "value=visible")
	assert.NotContains(t, logs, "hidden")
}

func TestComponent_LogsEveryReinitialization(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo}))
	ctx := ctxlog.WithLogger(context.Background(), logger)

	h := hub.New()
	require.NoError(t, h.Add(ctx, &staticComponent{defs: []hub.Definition{
		{Name: "counter", Factory: func(context.Context, *hub.Hub) (any, error) { return 1, nil }},
	}}))
	require.NoError(t, h.Add(ctx, New("counter")))

	_, err := h.Get(ctx, "counter")
	require.NoError(t, err)
	require.NoError(t, h.Update(ctx, "counter"))

	assert.Equal(t, 2, bytes.Count(buf.Bytes(), []byte("item=counter")))
}

func TestComponent_ContributesNoItems(t *testing.T) {
	c := New("a", "b")
	assert.Empty(t, c.Items())
	assert.Len(t, c.Observers(), 2)
}
