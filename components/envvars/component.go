// Package envvars contributes the process environment to the hub as a single
// lazily-computed item.
package envvars

import (
	"context"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/vk/itemhub/internal/ctxlog"
	"github.com/vk/itemhub/internal/hub"
)

// ItemName is the name of the contributed item. Its value is a
// map[string]string of environment variables.
const ItemName = "env_vars"

// Component implements the hub.Component interface for this package.
type Component struct {
	// DotenvPath optionally points at a .env file whose entries are
	// overlaid onto the process environment. A missing file is ignored.
	DotenvPath string

	hub *hub.Hub
}

// Bind stores the back-reference to the hub that added this component.
func (c *Component) Bind(h *hub.Hub) {
	c.hub = h
}

// Observers returns nothing; this component only produces a value.
func (c *Component) Observers() []hub.ObserverBinding {
	return nil
}

// Items contributes the env_vars definition.
func (c *Component) Items() []hub.Definition {
	return []hub.Definition{{
		Name:    ItemName,
		Factory: c.factory,
	}}
}

func (c *Component) factory(ctx context.Context, h *hub.Hub) (any, error) {
	envMap := make(map[string]string)
	for _, e := range os.Environ() {
		pair := strings.SplitN(e, "=", 2)
		if len(pair) == 2 {
			envMap[pair[0]] = pair[1]
		}
	}

	if c.DotenvPath != "" {
		overlay, err := godotenv.Read(c.DotenvPath)
		if err != nil {
			if !os.IsNotExist(err) {
				return nil, err
			}
			ctxlog.FromContext(ctx).Debug("No .env file found, using process environment only.", "path", c.DotenvPath)
		}
		for k, v := range overlay {
			envMap[k] = v
		}
	}

	return envMap, nil
}
