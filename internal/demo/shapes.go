package demo

import (
	"context"
	"fmt"
	"io"

	"github.com/kbukum/beankit/di"
)

// Shape is implemented by every shape bean.
type Shape interface {
	FindArea() string
}

type Circle struct{}

func (*Circle) FindArea() string { return "Calculating area of circle" }
func (*Circle) String() string { return "Circle" }

type Rectangle struct{}

func (*Rectangle) FindArea() string { return "Calculating area of rectangle" }
func (*Rectangle) String() string { return "Rectangle" }

type Triangle struct{}

func (*Triangle) FindArea() string { return "Calculating area of triangle" }
func (*Triangle) String() string { return "Triangle" }

// ShapeRunner runs the shape qualified as "Rectangle".
type ShapeRunner struct {
	Shape Shape
	out   io.Writer
}

func (r *ShapeRunner) Run() {
	fmt.Fprintf(r.out, "Running shape: %v\n", r.Shape)
	fmt.Fprintln(r.out, r.Shape.FindArea())
}

func shapes() Scenario {
	shapeType := di.TypeOf[Shape]()
	return Scenario{
		Name:        "shapes",
		Description: "primary and qualified implementations of one interface",
		Register: func(c *di.Container, out io.Writer) error {
			return registerAll(c,
				di.Define[*Circle]("circle").Value(&Circle{}).Provides(shapeType).Primary().Register,
				di.Define[*Rectangle]("rectangle").Value(&Rectangle{}).Provides(shapeType).Qualifier("Rectangle").Register,
				di.Define[*Triangle]("triangle").Value(&Triangle{}).Provides(shapeType).Register,
				di.Define[*ShapeRunner]("shapeRunner").
					Factory(di.Ctor1(func(s Shape) (*ShapeRunner, error) {
						return &ShapeRunner{Shape: s, out: out}, nil
					}), di.Dep[Shape]().Qualified("Rectangle")).
					PostConstruct(func(*ShapeRunner) error {
						fmt.Fprintln(out, "****** Starting calculation ******")
						return nil
					}).
					PreDestroy(func(*ShapeRunner) error {
						fmt.Fprintln(out, "****** Calculation completed ******")
						return nil
					}).
					Register,
			)
		},
		Run: func(_ context.Context, c *di.Container, out io.Writer) error {
			runner, err := di.Resolve[*ShapeRunner](c)
			if err != nil {
				return err
			}
			runner.Run()

			primary, err := di.Resolve[Shape](c)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "Primary shape: %v\n", primary)
			return nil
		},
	}
}
