// Package httpclient contributes a shared, lazily-built *http.Client item and
// the configuration item it is derived from.
package httpclient

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/vk/itemhub/internal/ctxlog"
	"github.com/vk/itemhub/internal/hub"
)

const (
	// ConfigItemName is the name of the configuration item (*Config).
	ConfigItemName = "http_client_config"
	// ClientItemName is the name of the client item (*http.Client).
	ClientItemName = "http_client"
)

// Config holds the tunables for the shared HTTP client.
type Config struct {
	Timeout             time.Duration
	MaxIdleConns        int
	MaxIdleConnsPerHost int
	IdleConnTimeout     time.Duration
}

// Component implements the hub.Component interface for this package.
type Component struct {
	// Defaults seeds the config item's factory. Zero fields fall back to
	// the package defaults, and changes are picked up whenever the config
	// item is re-initialized through Update.
	Defaults Config

	hub    *hub.Hub
	client *http.Client
}

// Bind stores the back-reference to the hub that added this component.
func (c *Component) Bind(h *hub.Hub) {
	c.hub = h
}

// Observers returns nothing; this component only produces values.
func (c *Component) Observers() []hub.ObserverBinding {
	return nil
}

// Items contributes the config and client definitions. The client declares it
// uses the config; when the config is re-stored and updated, the use hook
// retunes the already-shared client in place rather than replacing it.
func (c *Component) Items() []hub.Definition {
	return []hub.Definition{
		{
			Name:    ConfigItemName,
			Factory: c.configFactory,
		},
		{
			Name:    ClientItemName,
			Uses:    []string{ConfigItemName},
			Factory: c.clientFactory,
			OnUse:   c.onConfigChange,
		},
	}
}

func (c *Component) configFactory(ctx context.Context, h *hub.Hub) (any, error) {
	cfg := c.Defaults
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.MaxIdleConns == 0 {
		cfg.MaxIdleConns = 100
	}
	if cfg.MaxIdleConnsPerHost == 0 {
		cfg.MaxIdleConnsPerHost = 10
	}
	if cfg.IdleConnTimeout == 0 {
		cfg.IdleConnTimeout = 90 * time.Second
	}
	return &cfg, nil
}

func (c *Component) clientFactory(ctx context.Context, h *hub.Hub) (any, error) {
	val, err := h.Get(ctx, ConfigItemName)
	if err != nil {
		return nil, err
	}
	cfg, ok := val.(*Config)
	if !ok {
		return nil, fmt.Errorf("item %q holds %T, expected *httpclient.Config", ConfigItemName, val)
	}

	c.client = &http.Client{
		Timeout: cfg.Timeout,
		Transport: &http.Transport{
			MaxIdleConns:        cfg.MaxIdleConns,
			MaxIdleConnsPerHost: cfg.MaxIdleConnsPerHost,
			IdleConnTimeout:     cfg.IdleConnTimeout,
		},
	}
	return c.client, nil
}

// onConfigChange retunes the live client when the config item changes. The
// client object is shared by reference, so the timeout change is visible to
// every holder without re-resolving.
func (c *Component) onConfigChange(ctx context.Context, id string, value any, prev any) {
	cfg, ok := value.(*Config)
	if !ok || c.client == nil {
		return
	}
	ctxlog.FromContext(ctx).Debug("Retuning shared HTTP client.", "timeout", cfg.Timeout)
	c.client.Timeout = cfg.Timeout
}
