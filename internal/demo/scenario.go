// Package demo holds the walkthrough scenarios run by cmd/beandemo.
// Each scenario registers its beans on a fresh container and then
// exercises them, printing what happens to an io.Writer.
package demo

import (
	"context"
	"fmt"
	"io"

	"github.com/kbukum/beankit/bootstrap"
	"github.com/kbukum/beankit/config"
	"github.com/kbukum/beankit/di"
	"github.com/kbukum/beankit/errors"
)

// Scenario is one runnable walkthrough.
type Scenario struct {
	Name        string
	Description string
	Register    func(c *di.Container, out io.Writer) error
	Run         func(ctx context.Context, c *di.Container, out io.Writer) error
}

var scenarios = []Scenario{
	helloWorld(),
	shapes(),
	scope(),
	initialization(),
	injection(),
	accessingBeans(),
	stereotype(),
	cdi(),
}

// All returns every scenario in run order.
func All() []Scenario {
	return append([]Scenario(nil), scenarios...)
}

// Names returns scenario names in run order.
func Names() []string {
	names := make([]string, len(scenarios))
	for i, s := range scenarios {
		names[i] = s.Name
	}
	return names
}

// Lookup finds a scenario by name.
func Lookup(name string) (Scenario, error) {
	for _, s := range scenarios {
		if s.Name == name {
			return s, nil
		}
	}
	return Scenario{}, errors.NotFound("scenario", name)
}

// Run executes s in its own application built from cfg. The container is
// started before s.Run and closed after it, so pre-destroy output follows.
func Run(ctx context.Context, cfg config.AppConfig, s Scenario, out io.Writer, opts ...bootstrap.Option) error {
	app, err := bootstrap.NewApp(&cfg, opts...)
	if err != nil {
		return err
	}
	app.OnRegister(func(_ context.Context, a *bootstrap.App[*config.AppConfig]) error {
		return s.Register(a.Container, out)
	})

	fmt.Fprintf(out, "=== %s: %s\n", s.Name, s.Description)
	return app.RunTask(ctx, func(ctx context.Context) error {
		return s.Run(ctx, app.Container, out)
	})
}

// registerAll stops at the first failing builder.
func registerAll(c *di.Container, regs ...func(*di.Container) error) error {
	for _, r := range regs {
		if err := r(c); err != nil {
			return err
		}
	}
	return nil
}
