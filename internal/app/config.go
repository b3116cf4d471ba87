package app

import "errors"

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	ItemsPath string // hcl files

	// GetItems narrows the resolve pass to the named items. Empty means
	// every defined item, in definition order.
	GetItems []string

	// WatchItems are logged through an observer whenever they are
	// (re)computed.
	WatchItems []string

	// DotenvPath is an optional .env file overlaid on the environment
	// snapshot item.
	DotenvPath string

	LogFormat string
	LogLevel  string
}

func NewConfig(cfg Config) (*Config, error) {
	if cfg.ItemsPath == "" {
		return nil, errors.New("ItemsPath is a required configuration field and cannot be empty")
	}

	// Future validations for other fields can be added here.

	return &cfg, nil
}
