package app

import (
	"context"
	"fmt"

	"github.com/vk/itemhub/internal/ctxlog"
)

// Run resolves the requested items and prints each name and value to the
// application's output writer. With no explicit request it resolves every
// defined item in definition order, which initializes them on first touch.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	names := a.config.GetItems
	if len(names) == 0 {
		// Default to the items declared in config files, in definition
		// order. Compiled-in items stay lazy unless requested or used.
		for _, def := range a.model.Items {
			names = append(names, def.Name)
		}
	}

	if len(names) == 0 {
		a.logger.Warn("No items defined, nothing to resolve.")
		return nil
	}

	a.logger.Info("Resolving items.", "count", len(names))
	for _, name := range names {
		value, err := a.hub.Get(ctx, name)
		if err != nil {
			return fmt.Errorf("resolving item %q: %w", name, err)
		}
		fmt.Fprintf(a.outW, "%s = %v\n", name, value)
	}

	a.logger.Debug("App.Run method finished.")
	return nil
}
