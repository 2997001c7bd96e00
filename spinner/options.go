package spinner

import (
	"go.uber.org/zap"

	"github.com/lixenwraith/super-spinner/core"
)

// Spawner runs fn on another goroutine
type Spawner func(fn func())

type options struct {
	logger *zap.Logger
	spawn  Spawner
}

// Option customizes an Orchestrator or Bootstrap
type Option func(*options)

// WithLogger sets the component logger
func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithSpawner replaces the goroutine launcher, tests use it to control request timing
func WithSpawner(fn Spawner) Option {
	return func(o *options) {
		if fn != nil {
			o.spawn = fn
		}
	}
}

func buildOptions(opts []Option) options {
	o := options{
		logger: zap.NewNop(),
		spawn:  core.Go,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
