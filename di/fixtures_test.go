package di

import (
	"fmt"
	"sync"
	"testing"

	"github.com/kbukum/beankit/logger"
)

type Address struct {
	City  string
	State string
}

type Person struct {
	Name    string
	Address *Address
}

type Shape interface {
	Draw() string
}

type Circle struct{}

func (*Circle) Draw() string { return "circle" }

type Rectangle struct{}

func (*Rectangle) Draw() string { return "rectangle" }

// node is a generic bean used for graph and lifecycle tests.
type node struct {
	name string
	deps []*node
}

// recorder collects lifecycle events in order.
type recorder struct {
	mu     sync.Mutex
	events []string
}

func (r *recorder) add(format string, args ...any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, fmt.Sprintf(format, args...))
}

func (r *recorder) list() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.events...)
}

func newTestContainer(t *testing.T, opts ...Option) *Container {
	t.Helper()
	return New(append([]Option{WithLogger(logger.Nop())}, opts...)...)
}

// nodeDef defines a *node singleton named id that depends on the named nodes
// by qualifier and records its post-construct and pre-destroy calls.
func nodeDef(id string, rec *recorder, deps ...string) *Builder[*node] {
	depList := make([]Dependency, len(deps))
	for i, d := range deps {
		depList[i] = Dep[*node]().Qualified(d)
	}
	b := Define[*node](id).Factory(func(args Args) (*node, error) {
		n := &node{name: id}
		for i := range args {
			dep, err := Arg[*node](args, i)
			if err != nil {
				return nil, err
			}
			n.deps = append(n.deps, dep)
		}
		return n, nil
	}, depList...)
	if rec != nil {
		b.PostConstruct(func(n *node) error { rec.add("init:%s", n.name); return nil }).
			PreDestroy(func(n *node) error { rec.add("destroy:%s", n.name); return nil })
	}
	return b
}
