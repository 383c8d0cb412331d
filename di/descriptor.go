package di

import (
	"fmt"
	"reflect"
)

// Scope controls how many instances a descriptor produces.
type Scope int

const (
	Singleton Scope = iota // One cached instance per container
	Prototype              // A new instance per request
)

func (s Scope) String() string {
	switch s {
	case Singleton:
		return "singleton"
	case Prototype:
		return "prototype"
	default:
		return fmt.Sprintf("scope(%d)", int(s))
	}
}

// InitMode controls when a singleton is created.
type InitMode int

const (
	Eager InitMode = iota // Created during Startup
	Lazy                  // Created on first access
)

func (m InitMode) String() string {
	switch m {
	case Eager:
		return "eager"
	case Lazy:
		return "lazy"
	default:
		return fmt.Sprintf("init(%d)", int(m))
	}
}

// State is the lifecycle state of a managed bean.
type State int32

const (
	StateRegistered State = iota
	StateResolving
	StateInstantiated
	StateInitialized
	StateActive
	StateDestroyed
)

var stateNames = [...]string{"registered", "resolving", "instantiated", "initialized", "active", "destroyed"}

func (s State) String() string {
	if s >= 0 && int(s) < len(stateNames) {
		return stateNames[s]
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// InjectionKind tells setter injection from field injection. Both are applied
// after construction and behave the same for cycle handling.
type InjectionKind int

const (
	SetterInjection InjectionKind = iota
	FieldInjection
)

func (k InjectionKind) String() string {
	if k == FieldInjection {
		return "field"
	}
	return "setter"
}

// TypeOf returns the type identifier used to register and look up T.
func TypeOf[T any]() reflect.Type {
	return reflect.TypeFor[T]()
}

// Dependency names a required collaborator by type and optional qualifier.
type Dependency struct {
	Type      reflect.Type
	Qualifier string
}

// Dep declares a dependency on type D.
func Dep[D any]() Dependency {
	return Dependency{Type: TypeOf[D]()}
}

// Qualified returns a copy of d restricted to the given qualifier.
func (d Dependency) Qualified(qualifier string) Dependency {
	d.Qualifier = qualifier
	return d
}

func (d Dependency) String() string {
	if d.Type == nil {
		return "<nil>"
	}
	if d.Qualifier != "" {
		return fmt.Sprintf("%s(%s)", d.Type, d.Qualifier)
	}
	return d.Type.String()
}

// Injection is a setter or field target filled after construction.
type Injection struct {
	Dependency
	Name  string
	Kind  InjectionKind
	Apply func(instance, value any) error
}

// Qualified returns a copy of i whose dependency is restricted to qualifier.
func (i Injection) Qualified(qualifier string) Injection {
	i.Dependency = i.Dependency.Qualified(qualifier)
	return i
}

// Args holds resolved constructor arguments in declaration order.
type Args []any

// Factory builds the raw object of a descriptor from its resolved arguments.
type Factory func(args Args) (any, error)

// Hook is a post-construct or pre-destroy callback.
type Hook func(instance any) error

// Descriptor declares how the container builds one managed component.
type Descriptor struct {
	ID       string
	Type     reflect.Type
	Provides []reflect.Type

	Scope Scope
	Init  InitMode

	// Dependencies are resolved in order and passed to Factory.
	Dependencies []Dependency
	Injections   []Injection
	Factory      Factory

	PostConstruct Hook
	PreDestroy    Hook

	Qualifier string
	Primary   bool

	// shared marks a Factory that returns one fixed value.
	shared bool
}

// typeKeys returns every type identifier the descriptor can be looked up by.
func (d *Descriptor) typeKeys() []reflect.Type {
	keys := make([]reflect.Type, 0, 1+len(d.Provides))
	keys = append(keys, d.Type)
	for _, p := range d.Provides {
		if p != d.Type {
			keys = append(keys, p)
		}
	}
	return keys
}

// edges returns constructor dependencies followed by injections.
func (d *Descriptor) edges() []edge {
	out := make([]edge, 0, len(d.Dependencies)+len(d.Injections))
	for i, dep := range d.Dependencies {
		out = append(out, edge{dep: dep, label: fmt.Sprintf("arg[%d]", i), constructor: true})
	}
	for _, inj := range d.Injections {
		out = append(out, edge{dep: inj.Dependency, label: inj.Name})
	}
	return out
}

// PostConstructor is used when a descriptor declares no PostConstruct hook.
type PostConstructor interface {
	PostConstruct() error
}

// PreDestroyer is used when a descriptor declares no PreDestroy hook.
type PreDestroyer interface {
	PreDestroy() error
}
