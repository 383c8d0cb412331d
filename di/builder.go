package di

import "reflect"

// Builder assembles a Descriptor for beans of type T.
//
// Example:
//
//	di.Define[*Person]("person").
//	    Factory(di.Ctor2(NewPerson), di.Dep[Name](), di.Dep[*Address]().Qualified("secondary_address")).
//	    Prototype().
//	    Register(c)
type Builder[T any] struct {
	d Descriptor
}

// Define starts a descriptor with the given id. Defaults are Singleton and Eager.
func Define[T any](id string) *Builder[T] {
	return &Builder[T]{d: Descriptor{ID: id, Type: TypeOf[T]()}}
}

// Singleton sets the singleton scope.
func (b *Builder[T]) Singleton() *Builder[T] { b.d.Scope = Singleton; return b }

// Prototype sets the prototype scope.
func (b *Builder[T]) Prototype() *Builder[T] { b.d.Scope = Prototype; return b }

// Eager creates the singleton during Startup.
func (b *Builder[T]) Eager() *Builder[T] { b.d.Init = Eager; return b }

// Lazy defers creation of the singleton to its first lookup.
func (b *Builder[T]) Lazy() *Builder[T] { b.d.Init = Lazy; return b }

// Qualifier sets the disambiguation key.
func (b *Builder[T]) Qualifier(q string) *Builder[T] { b.d.Qualifier = q; return b }

// Primary marks the descriptor as the default among same-type candidates.
func (b *Builder[T]) Primary() *Builder[T] { b.d.Primary = true; return b }

// Provides adds extra type identifiers, usually interfaces T implements.
func (b *Builder[T]) Provides(types ...reflect.Type) *Builder[T] {
	b.d.Provides = append(b.d.Provides, types...)
	return b
}

// Factory sets the constructor and its ordered dependencies.
func (b *Builder[T]) Factory(fn func(Args) (T, error), deps ...Dependency) *Builder[T] {
	b.d.Dependencies = deps
	b.d.shared = false
	b.d.Factory = func(args Args) (any, error) {
		v, err := fn(args)
		if err != nil {
			return nil, err
		}
		return v, nil
	}
	return b
}

// Value registers a bean backed by a fixed value. A prototype receives a
// copy of v per request, so T must be a value type there; Register rejects
// a prototype Value of pointer, map, slice, chan, func or interface type.
func (b *Builder[T]) Value(v T) *Builder[T] {
	b.Factory(func(Args) (T, error) { return v, nil })
	b.d.shared = true
	return b
}

// Inject appends setter or field injections.
func (b *Builder[T]) Inject(injections ...Injection) *Builder[T] {
	b.d.Injections = append(b.d.Injections, injections...)
	return b
}

// PostConstruct sets the hook run after injection.
func (b *Builder[T]) PostConstruct(fn func(T) error) *Builder[T] {
	b.d.PostConstruct = typedHook(b.d.ID, fn)
	return b
}

// PreDestroy sets the hook run on Close (singletons) or Destroy (prototypes).
func (b *Builder[T]) PreDestroy(fn func(T) error) *Builder[T] {
	b.d.PreDestroy = typedHook(b.d.ID, fn)
	return b
}

// Descriptor returns a copy of the assembled descriptor.
func (b *Builder[T]) Descriptor() Descriptor {
	d := b.d
	d.Provides = append([]reflect.Type(nil), b.d.Provides...)
	d.Dependencies = append([]Dependency(nil), b.d.Dependencies...)
	d.Injections = append([]Injection(nil), b.d.Injections...)
	return d
}

// Register adds the descriptor to c.
func (b *Builder[T]) Register(c *Container) error {
	return c.Register(b.Descriptor())
}

func typedHook[T any](id string, fn func(T) error) Hook {
	if fn == nil {
		return nil
	}
	return func(instance any) error {
		v, ok := instance.(T)
		if !ok {
			return errTypeMismatch(id, instance, TypeOf[T]())
		}
		return fn(v)
	}
}

// Setter injects a D into a T through a setter method.
func Setter[T, D any](name string, set func(T, D)) Injection {
	return Injection{
		Dependency: Dep[D](),
		Name:       name,
		Kind:       SetterInjection,
		Apply: func(instance, value any) error {
			target, dep, err := castPair[T, D](name, instance, value)
			if err != nil {
				return err
			}
			set(target, dep)
			return nil
		},
	}
}

// Field injects a D into a T by assigning through the returned pointer.
func Field[T, D any](name string, field func(T) *D) Injection {
	return Injection{
		Dependency: Dep[D](),
		Name:       name,
		Kind:       FieldInjection,
		Apply: func(instance, value any) error {
			target, dep, err := castPair[T, D](name, instance, value)
			if err != nil {
				return err
			}
			*field(target) = dep
			return nil
		},
	}
}

func castPair[T, D any](name string, instance, value any) (T, D, error) {
	var (
		zt T
		zd D
	)
	target, ok := instance.(T)
	if !ok {
		return zt, zd, errTypeMismatch(name, instance, TypeOf[T]())
	}
	dep, ok := value.(D)
	if !ok {
		return zt, zd, errTypeMismatch(name, value, TypeOf[D]())
	}
	return target, dep, nil
}

// Arg returns the i-th resolved argument as a D.
func Arg[D any](args Args, i int) (D, error) {
	var zero D
	if i < 0 || i >= len(args) {
		return zero, errTypeMismatch("arg", nil, TypeOf[D]()).WithDetail("index", i)
	}
	v, ok := args[i].(D)
	if !ok {
		return zero, errTypeMismatch("arg", args[i], TypeOf[D]()).WithDetail("index", i)
	}
	return v, nil
}

// Ctor0 adapts a no-argument constructor.
func Ctor0[T any](fn func() (T, error)) func(Args) (T, error) {
	return func(Args) (T, error) { return fn() }
}

// Ctor1 adapts a one-argument constructor.
func Ctor1[T, A any](fn func(A) (T, error)) func(Args) (T, error) {
	return func(args Args) (T, error) {
		var zero T
		a, err := Arg[A](args, 0)
		if err != nil {
			return zero, err
		}
		return fn(a)
	}
}

// Ctor2 adapts a two-argument constructor.
func Ctor2[T, A, B any](fn func(A, B) (T, error)) func(Args) (T, error) {
	return func(args Args) (T, error) {
		var zero T
		a, err := Arg[A](args, 0)
		if err != nil {
			return zero, err
		}
		b, err := Arg[B](args, 1)
		if err != nil {
			return zero, err
		}
		return fn(a, b)
	}
}

// Ctor3 adapts a three-argument constructor.
func Ctor3[T, A, B, C any](fn func(A, B, C) (T, error)) func(Args) (T, error) {
	return func(args Args) (T, error) {
		var zero T
		a, err := Arg[A](args, 0)
		if err != nil {
			return zero, err
		}
		b, err := Arg[B](args, 1)
		if err != nil {
			return zero, err
		}
		c, err := Arg[C](args, 2)
		if err != nil {
			return zero, err
		}
		return fn(a, b, c)
	}
}
