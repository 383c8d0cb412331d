package demo

import (
	"context"
	"fmt"
	"io"
	"sync/atomic"

	"github.com/kbukum/beankit/di"
)

// SingletonBean is shared by every lookup.
type SingletonBean struct{ Serial int64 }

// PrototypeBean is created anew on every lookup.
type PrototypeBean struct{ Serial int64 }

const scopeLookups = 4

func scope() Scenario {
	return Scenario{
		Name:        "scope",
		Description: "singleton identity versus a new prototype per lookup",
		Register: func(c *di.Container, _ io.Writer) error {
			var singletons, prototypes atomic.Int64
			return registerAll(c,
				di.Define[*SingletonBean]("singleton").
					Factory(func(di.Args) (*SingletonBean, error) {
						return &SingletonBean{Serial: singletons.Add(1)}, nil
					}).Register,
				di.Define[*PrototypeBean]("prototype").
					Prototype().
					Factory(func(di.Args) (*PrototypeBean, error) {
						return &PrototypeBean{Serial: prototypes.Add(1)}, nil
					}).Register,
			)
		},
		Run: func(_ context.Context, c *di.Container, out io.Writer) error {
			fmt.Fprintln(out, "Singleton objects")
			for range scopeLookups {
				b, err := di.Resolve[*SingletonBean](c)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "SingletonBean#%d %p\n", b.Serial, b)
			}

			fmt.Fprintln(out, "Prototype objects")
			for range scopeLookups {
				b, err := di.Resolve[*PrototypeBean](c)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "PrototypeBean#%d %p\n", b.Serial, b)
			}
			return nil
		},
	}
}
