package di

import (
	"strings"

	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/kbukum/beankit/errors"
	"github.com/kbukum/beankit/logger"
)

// Option configures a Container.
type Option func(*Container)

// WithLogger sets the logger; the container tags it with component=di.
func WithLogger(l *logger.Logger) Option {
	return func(c *Container) {
		if l != nil {
			c.log = l
		}
	}
}

// WithTracer sets the tracer used for startup, instantiation and close spans.
func WithTracer(t trace.Tracer) Option {
	return func(c *Container) {
		if t != nil {
			c.tracer = t
		}
	}
}

// WithMeter sets the meter the container instruments are created on.
func WithMeter(m metric.Meter) Option {
	return func(c *Container) {
		if m != nil {
			c.meter = m
		}
	}
}

// WithCyclePolicy sets how dependency cycles are treated. Default RejectCycles.
func WithCyclePolicy(p CyclePolicy) Option {
	return func(c *Container) {
		c.cyclePolicy = p
	}
}

// ParseCyclePolicy parses "reject" or "allow_setter". Empty means reject.
func ParseCyclePolicy(s string) (CyclePolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "reject":
		return RejectCycles, nil
	case "allow_setter":
		return AllowSetterCycles, nil
	default:
		return RejectCycles, errors.InvalidInput("cycle_policy", "must be reject or allow_setter, got "+s)
	}
}

// ParseEagerPolicy parses "registration" or "dependency". Empty means registration.
func ParseEagerPolicy(s string) (EagerPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "registration":
		return InRegistrationOrder, nil
	case "dependency":
		return InDependencyOrder, nil
	default:
		return InRegistrationOrder, errors.InvalidInput("eager_order", "must be registration or dependency, got "+s)
	}
}
