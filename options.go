package bytebuf

import (
	"github.com/hupe1980/bytebuf/resource"
)

// Options configures store and view construction.
type Options struct {
	// Logger receives debug-level lifecycle events (growth, chunk map/unmap).
	// Defaults to a noop logger.
	Logger *Logger

	// Metrics receives allocation/release/copy counters.
	// Defaults to NoopMetricsCollector.
	Metrics MetricsCollector

	// Controller accounts native allocations and mapped chunks against a
	// memory budget. Nil disables accounting.
	Controller *resource.Controller
}

func applyOptions(optFns []func(o *Options)) *Options {
	o := &Options{
		Logger:  NoopLogger(),
		Metrics: NoopMetricsCollector{},
	}
	for _, fn := range optFns {
		fn(o)
	}
	if o.Logger == nil {
		o.Logger = NoopLogger()
	}
	if o.Metrics == nil {
		o.Metrics = NoopMetricsCollector{}
	}
	return o
}

// WithLogger sets the logger.
func WithLogger(l *Logger) func(o *Options) {
	return func(o *Options) {
		o.Logger = l
	}
}

// WithMetrics sets the metrics collector.
func WithMetrics(m MetricsCollector) func(o *Options) {
	return func(o *Options) {
		o.Metrics = m
	}
}

// WithController sets the resource controller used for memory accounting.
func WithController(c *resource.Controller) func(o *Options) {
	return func(o *Options) {
		o.Controller = c
	}
}
