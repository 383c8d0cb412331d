package demo

import (
	"context"
	"fmt"
	"io"

	"github.com/kbukum/beankit/di"
)

type EagerInitialization struct{}

func (*EagerInitialization) SayHello() string { return "Hello from EagerInitialization" }

type LazyInitialization struct{}

func (*LazyInitialization) SayHello() string { return "Hello from LazyInitialization" }

func initialization() Scenario {
	return Scenario{
		Name:        "initialization",
		Description: "eager singletons are built at startup, lazy ones on first lookup",
		Register: func(c *di.Container, out io.Writer) error {
			return registerAll(c,
				di.Define[*EagerInitialization]("eagerInitialization").
					Factory(func(di.Args) (*EagerInitialization, error) {
						fmt.Fprintln(out, "EagerInitialization initialized")
						return &EagerInitialization{}, nil
					}).Register,
				di.Define[*LazyInitialization]("lazyInitialization").
					Lazy().
					Factory(func(di.Args) (*LazyInitialization, error) {
						fmt.Fprintln(out, "LazyInitialization initialized")
						return &LazyInitialization{}, nil
					}).Register,
			)
		},
		Run: func(_ context.Context, c *di.Container, out io.Writer) error {
			fmt.Fprintln(out, "Application initialization has been completed")

			eager, err := di.Resolve[*EagerInitialization](c)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "Calling SayHello on EagerInitialization: %s\n", eager.SayHello())

			lazy, err := di.Resolve[*LazyInitialization](c)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "Calling SayHello on LazyInitialization: %s\n", lazy.SayHello())
			return nil
		},
	}
}
