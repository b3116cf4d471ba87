// Package socketioclient contributes a lazily-configured socket.io client
// item and the configuration item it is derived from. Building the item does
// not open a connection; callers dial explicitly through Client.Connect.
package socketioclient

import (
	"context"
	"crypto/tls"
	"fmt"
	"net/url"
	"time"

	"github.com/vk/itemhub/internal/ctxlog"
	"github.com/vk/itemhub/internal/hub"
	"github.com/zishang520/engine.io-client-go/transports"
	"github.com/zishang520/engine.io/v2/types"
	"github.com/zishang520/socket.io-client-go/socket"
)

const (
	// ConfigItemName is the name of the configuration item (*Config).
	ConfigItemName = "socketio_config"
	// ClientItemName is the name of the client item (*Client).
	ClientItemName = "socketio_client"
)

// Config holds the connection settings for the socket.io client.
type Config struct {
	URL                string
	Namespace          string
	ConnectTimeout     time.Duration
	InsecureSkipVerify bool
}

// Client wraps a configured but not yet connected socket.io client.
type Client struct {
	baseURL   string
	namespace string
	opts      *socket.Options

	manager *socket.Manager
	io      *socket.Socket
}

// Socket returns the underlying socket after a successful Connect.
func (c *Client) Socket() *socket.Socket {
	return c.io
}

// Connect dials the configured endpoint and blocks until the connection is
// established, the server rejects it, or the context expires.
func (c *Client) Connect(ctx context.Context) error {
	logger := ctxlog.FromContext(ctx).With("url", c.baseURL, "namespace", c.namespace)
	logger.Debug("Connecting socket.io client.")

	done := make(chan error, 1)

	c.manager = socket.NewManager(c.baseURL, c.opts)
	c.io = c.manager.Socket(c.namespace, c.opts)

	c.io.On(types.EventName("connect"), func(...any) {
		logger.Info("Successfully connected.", "sid", c.io.Id())
		done <- nil
	})
	c.io.On(types.EventName("connect_error"), func(errs ...any) {
		if len(errs) > 0 {
			if err, ok := errs[0].(error); ok {
				done <- err
				return
			}
		}
		done <- fmt.Errorf("socket.io connection failed")
	})

	c.io.Connect()

	select {
	case <-ctx.Done():
		c.io.Disconnect()
		return fmt.Errorf("timed out while waiting for initial connection: %w", ctx.Err())
	case err := <-done:
		return err
	}
}

// Close disconnects the client if it ever connected.
func (c *Client) Close() {
	if c.io != nil {
		c.io.Disconnect()
	}
}

// Component implements the hub.Component interface for this package.
type Component struct {
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

// Items contributes the config and client definitions.
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
		},
	}
}

func (c *Component) configFactory(ctx context.Context, h *hub.Hub) (any, error) {
	return &Config{
		URL:            "http://localhost:3000/socket.io",
		Namespace:      "/",
		ConnectTimeout: 10 * time.Second,
	}, nil
}

func (c *Component) clientFactory(ctx context.Context, h *hub.Hub) (any, error) {
	val, err := h.Get(ctx, ConfigItemName)
	if err != nil {
		return nil, err
	}
	cfg, ok := val.(*Config)
	if !ok {
		return nil, fmt.Errorf("item %q holds %T, expected *socketioclient.Config", ConfigItemName, val)
	}

	parsedURL, err := url.Parse(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse URL: %w", err)
	}

	opts := socket.DefaultOptions()
	opts.SetPath(parsedURL.Path)
	opts.SetTransports(types.NewSet(transports.WebSocket))
	if cfg.InsecureSkipVerify {
		ctxlog.FromContext(ctx).Warn("Skipping TLS certificate verification.")
		opts.SetTLSClientConfig(&tls.Config{InsecureSkipVerify: true})
	}

	return &Client{
		baseURL:   fmt.Sprintf("%s://%s", parsedURL.Scheme, parsedURL.Host),
		namespace: cfg.Namespace,
		opts:      opts,
	}, nil
}
