package config

import "context"

// Loader is the interface for a format-specific item definition loader.
type Loader interface {
	// Load reads item definitions from the given paths (files or
	// directories, searched recursively) and translates them into the
	// format-agnostic model.
	Load(ctx context.Context, paths ...string) (*Model, error)
}
