package demo

import (
	"context"
	"fmt"
	"io"

	"github.com/kbukum/beankit/di"
)

type Member struct {
	ID      int
	Name    string
	Married bool
}

// MemberSource serves a fixed list of members.
type MemberSource struct{}

func (*MemberSource) Data() []Member {
	return []Member{
		{ID: 1, Name: "Rahul", Married: true},
		{ID: 2, Name: "Sahil", Married: false},
	}
}

// MemberService gets its source through an injected setter.
type MemberService struct {
	source *MemberSource
}

func (s *MemberService) SetSource(src *MemberSource) { s.source = src }
func (s *MemberService) Source() *MemberSource { return s.source }

func cdi() Scenario {
	return Scenario{
		Name:        "cdi",
		Description: "named beans listed by id, setter injection by type",
		Register: func(c *di.Container, _ io.Writer) error {
			return registerAll(c,
				di.Define[*MemberSource]("memberSource").Value(&MemberSource{}).Register,
				di.Define[*MemberService]("memberService").
					Factory(func(di.Args) (*MemberService, error) { return &MemberService{}, nil }).
					Inject(di.Setter("SetSource", (*MemberService).SetSource)).
					Register,
			)
		},
		Run: func(_ context.Context, c *di.Container, out io.Writer) error {
			for _, name := range c.Names() {
				fmt.Fprintln(out, name)
			}
			svc, err := di.Resolve[*MemberService](c)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "%+v\n", svc.Source().Data())
			return nil
		},
	}
}
