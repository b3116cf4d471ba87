package integrationtests

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vk/itemhub/internal/testutil"
)

func TestResolve_DependencyExpressions(t *testing.T) {
	result := testutil.RunIntegrationTest(t, map[string]string{
		"items.hcl": `
			item "base" {
				value = 10
			}

			item "derived" {
				uses  = ["base"]
				value = item.base * 2
			}
		`,
	})

	require.NoError(t, result.Err)
	require.Contains(t, result.Output, "derived = 20")
}

func TestResolve_TransitiveChain(t *testing.T) {
	result := testutil.RunIntegrationTest(t, map[string]string{
		"items.hcl": `
			item "a" {
				value = 1
			}

			item "b" {
				uses  = ["a"]
				value = item.a + 1
			}

			item "c" {
				uses  = ["b"]
				value = item.b + 1
			}
		`,
	})

	require.NoError(t, result.Err)
	require.Contains(t, result.Output, "c = 3")
}

func TestResolve_UpdateReevaluatesExpressions(t *testing.T) {
	result := testutil.RunIntegrationTest(t, map[string]string{
		"items.hcl": `
			item "base" {
				value = 1
			}

			item "derived" {
				uses  = ["base"]
				value = item.base + 1
			}
		`,
	})
	require.NoError(t, result.Err)

	ctx := context.Background()
	h := result.App.Hub()

	require.NoError(t, h.Set(ctx, "base", float64(41)))
	require.NoError(t, h.Update(ctx, "derived"))

	val, err := h.Get(ctx, "derived")
	require.NoError(t, err)
	require.Equal(t, float64(42), val)
}

func TestResolve_UsedByInitializesDeclaringItem(t *testing.T) {
	result := testutil.RunIntegrationTest(t, map[string]string{
		"items.hcl": `
			item "plugin" {
				used_by = ["manager"]
				value   = "plugin"
			}

			item "manager" {
				value = "manager"
			}
		`,
	})

	require.NoError(t, result.Err)

	plugin, err := result.App.Hub().Item("plugin")
	require.NoError(t, err)
	require.True(t, plugin.IsInitialized())
}
