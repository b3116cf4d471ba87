package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/vk/itemhub/internal/config"
	"github.com/vk/itemhub/internal/ctxlog"
	"github.com/vk/itemhub/internal/hcl"
	"github.com/vk/itemhub/internal/hub"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW   io.Writer
	logger *slog.Logger
	hub    *hub.Hub
	config *Config
	model  *config.Model
}

// NewApp is the constructor for the main application. It returns a fully
// initialized App instance, including its own isolated logger and hub. It
// panics on fatal startup errors; the entrypoint recovers and reports them.
func NewApp(outW io.Writer, appConfig *Config, loader config.Loader, components ...hub.Component) *App {
	logger := newLogger(appConfig.LogLevel, appConfig.LogFormat, outW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	// Load all item definitions into the format-agnostic model first.
	cfgModel, err := loader.Load(ctx, appConfig.ItemsPath)
	if err != nil {
		// A failure to load config is a fatal startup error.
		panic(fmt.Errorf("failed to load configuration: %w", err))
	}
	logger.Debug("Configuration loaded and translated into unified model.", "items", len(cfgModel.Items))

	// Create and populate the hub with the compiled-in components.
	h := hub.New()
	if len(components) == 0 {
		components = coreComponents(appConfig)
	}
	if err := h.AddMany(ctx, components...); err != nil {
		// A name collision between compiled-in components is a programmer
		// error, so we panic.
		panic(err)
	}
	logger.Debug("All components registered.", "count", len(components))

	// Definitions from the loaded model join the same hub. A collision with
	// a compiled-in item is a config error and just as fatal.
	if err := h.Add(ctx, hcl.NewComponent(cfgModel)); err != nil {
		panic(fmt.Errorf("failed to register configured items: %w", err))
	}
	logger.Debug("Configured item definitions registered.")

	return &App{
		outW:   outW,
		logger: logger,
		hub:    h,
		config: appConfig,
		model:  cfgModel,
	}
}

// Hub returns the application's hub. This is primarily for testing.
func (a *App) Hub() *hub.Hub {
	return a.hub
}
