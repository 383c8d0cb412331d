package bootstrap

import (
	"io"
	"time"

	"github.com/kbukum/beankit/di"
	"github.com/kbukum/beankit/logger"
)

// Option configures the App during creation.
// Options are non-generic so they can be used with any config type.
type Option func(*appOptions)

// appOptions collects all option values before applying to App.
type appOptions struct {
	logger          *logger.Logger
	container       *di.Container
	containerOpts   []di.Option
	gracefulTimeout *time.Duration
	summaryOut      io.Writer
	quiet           bool
}

// resolveOptions applies all options and returns the collected values.
func resolveOptions(opts []Option) *appOptions {
	o := &appOptions{}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithLogger sets a custom logger for the application.
// If not set, the logger is auto-initialized from the config's Logging field.
func WithLogger(l *logger.Logger) Option {
	return func(o *appOptions) {
		o.logger = l
	}
}

// WithGracefulTimeout sets the maximum duration for graceful shutdown.
func WithGracefulTimeout(d time.Duration) Option {
	return func(o *appOptions) {
		o.gracefulTimeout = &d
	}
}

// WithContainer sets a prebuilt DI container. Container settings from the
// config are ignored in that case.
func WithContainer(c *di.Container) Option {
	return func(o *appOptions) {
		o.container = c
	}
}

// WithContainerOptions passes extra options to the container built from config.
func WithContainerOptions(opts ...di.Option) Option {
	return func(o *appOptions) {
		o.containerOpts = append(o.containerOpts, opts...)
	}
}

// WithSummaryOutput redirects the startup summary.
func WithSummaryOutput(w io.Writer) Option {
	return func(o *appOptions) {
		o.summaryOut = w
	}
}

// WithoutSummary disables the startup summary.
func WithoutSummary() Option {
	return func(o *appOptions) {
		o.quiet = true
	}
}
