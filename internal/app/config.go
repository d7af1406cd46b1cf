package app

import "errors"

// Config holds everything an App needs to load a graph and run it once.
type Config struct {
	GraphPath   string
	LogFormat   string
	LogLevel    string
	Parallelism int
}

// NewConfig validates cfg and returns it, failing fast on missing required
// fields rather than deferring the error to first use.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.GraphPath == "" {
		return nil, errors.New("GraphPath is a required configuration field and cannot be empty")
	}
	if cfg.Parallelism <= 0 {
		cfg.Parallelism = 1
	}
	return &cfg, nil
}
