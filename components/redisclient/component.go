// Package redisclient contributes a lazily-built *redis.Client item and the
// configuration item it is derived from. The client connects on first use,
// not at definition time, so carrying this component costs nothing unless
// something actually resolves it.
package redisclient

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/vk/itemhub/internal/hub"

	"github.com/vk/itemhub/components/envvars"
)

const (
	// ConfigItemName is the name of the configuration item (*redis.Options).
	ConfigItemName = "redis_config"
	// ClientItemName is the name of the client item (*redis.Client).
	ClientItemName = "redis_client"

	// addrEnvVar is consulted from the env_vars item when no explicit
	// address is configured.
	addrEnvVar  = "REDIS_ADDR"
	defaultAddr = "localhost:6379"
)

// Component implements the hub.Component interface for this package.
type Component struct {
	// Addr overrides both the REDIS_ADDR environment value and the
	// default address when set.
	Addr string

	hub *hub.Hub
}

// Bind stores the back-reference to the hub that added this component.
func (c *Component) Bind(h *hub.Hub) {
	c.hub = h
}

// Observers returns nothing; this component only produces values.
func (c *Component) Observers() []hub.ObserverBinding {
	return nil
}

// Items contributes the config and client definitions. The config consumes
// the env_vars item, so resolving the redis client transitively initializes
// the environment snapshot.
func (c *Component) Items() []hub.Definition {
	return []hub.Definition{
		{
			Name:    ConfigItemName,
			Uses:    []string{envvars.ItemName},
			Factory: c.configFactory,
		},
		{
			Name:    ClientItemName,
			Uses:    []string{ConfigItemName},
			Factory: c.clientFactory,
		},
	}
}

func (c *Component) configFactory(ctx context.Context, h *hub.Hub) (any, error) {
	addr := c.Addr
	if addr == "" {
		val, err := h.Get(ctx, envvars.ItemName)
		if err != nil {
			return nil, err
		}
		env, ok := val.(map[string]string)
		if !ok {
			return nil, fmt.Errorf("item %q holds %T, expected map[string]string", envvars.ItemName, val)
		}
		addr = env[addrEnvVar]
	}
	if addr == "" {
		addr = defaultAddr
	}

	return &redis.Options{Addr: addr}, nil
}

func (c *Component) clientFactory(ctx context.Context, h *hub.Hub) (any, error) {
	val, err := h.Get(ctx, ConfigItemName)
	if err != nil {
		return nil, err
	}
	opts, ok := val.(*redis.Options)
	if !ok {
		return nil, fmt.Errorf("item %q holds %T, expected *redis.Options", ConfigItemName, val)
	}

	return redis.NewClient(opts), nil
}
