package demo

import (
	"context"
	"fmt"
	"io"

	"github.com/kbukum/beankit/di"
)

func helloWorld() Scenario {
	return Scenario{
		Name:        "helloworld",
		Description: "a single value bean looked up by id",
		Register: func(c *di.Container, _ io.Writer) error {
			return di.Define[string]("helloWorld").Value("Hello World").Register(c)
		},
		Run: func(_ context.Context, c *di.Container, out io.Writer) error {
			text, err := di.ResolveNamed[string](c, "helloWorld")
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "Bean value: %s\n", text)
			return nil
		},
	}
}
