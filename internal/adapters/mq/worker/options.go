// Package worker runs jobs from a queue on a fixed set of goroutines.
package worker

import (
	"github.com/okian/iplstat/pkg/logger"
)

// Option applies a configuration option to the Pool.
type Option func(*poolConfig)

type poolConfig struct {
	name   string
	logger logger.Logger
}

// WithName sets the pool name used to label worker loggers.
func WithName(name string) Option {
	return func(c *poolConfig) {
		if name != "" {
			c.name = name
		}
	}
}

// WithLogger sets a custom logger for the pool.
func WithLogger(logger logger.Logger) Option {
	return func(c *poolConfig) {
		if logger != nil {
			c.logger = logger
		}
	}
}
