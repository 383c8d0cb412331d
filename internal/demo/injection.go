package demo

import (
	"context"
	"fmt"
	"io"

	"github.com/kbukum/beankit/di"
)

type Student struct {
	ID   int
	Name string
	Age  int
}

// StudentSource serves a fixed list of students.
type StudentSource struct{}

func (*StudentSource) Students() []Student {
	return []Student{
		{ID: 1, Name: "Karan", Age: 12},
		{ID: 2, Name: "Lucky", Age: 8},
		{ID: 3, Name: "Ravi", Age: 18},
	}
}

// FieldInjected receives its source through field injection.
type FieldInjected struct {
	Source *StudentSource
}

// ConstructorInjected receives its source as a constructor argument.
type ConstructorInjected struct {
	source *StudentSource
}

// SetterInjected receives its source through SetSource after construction.
type SetterInjected struct {
	source *StudentSource
}

func (s *SetterInjected) SetSource(src *StudentSource) { s.source = src }

func iterate(out io.Writer, kind string, src *StudentSource) {
	fmt.Fprintf(out, "Iterating students from %s injection\n", kind)
	for _, st := range src.Students() {
		fmt.Fprintf(out, "  Student{id=%d, name=%s, age=%d}\n", st.ID, st.Name, st.Age)
	}
}

func injection() Scenario {
	return Scenario{
		Name:        "injection",
		Description: "field, constructor and setter injection of one data source",
		Register: func(c *di.Container, _ io.Writer) error {
			return registerAll(c,
				di.Define[*StudentSource]("studentSource").Value(&StudentSource{}).Register,
				di.Define[*FieldInjected]("fieldInjection").
					Factory(func(di.Args) (*FieldInjected, error) { return &FieldInjected{}, nil }).
					Inject(di.Field("Source", func(f *FieldInjected) **StudentSource { return &f.Source })).
					Register,
				di.Define[*ConstructorInjected]("constructorInjection").
					Factory(di.Ctor1(func(src *StudentSource) (*ConstructorInjected, error) {
						return &ConstructorInjected{source: src}, nil
					}), di.Dep[*StudentSource]()).
					Register,
				di.Define[*SetterInjected]("setterInjection").
					Factory(func(di.Args) (*SetterInjected, error) { return &SetterInjected{}, nil }).
					Inject(di.Setter("SetSource", (*SetterInjected).SetSource)).
					Register,
			)
		},
		Run: func(_ context.Context, c *di.Container, out io.Writer) error {
			f, err := di.Resolve[*FieldInjected](c)
			if err != nil {
				return err
			}
			iterate(out, "field", f.Source)

			ci, err := di.Resolve[*ConstructorInjected](c)
			if err != nil {
				return err
			}
			iterate(out, "constructor", ci.source)

			si, err := di.Resolve[*SetterInjected](c)
			if err != nil {
				return err
			}
			iterate(out, "setter", si.source)
			return nil
		},
	}
}
