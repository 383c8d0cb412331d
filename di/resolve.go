package di

import "fmt"

// Resolve returns the single bean of type T.
//
// Example:
//
//	addr, err := di.Resolve[*Address](c)
//	if err != nil {
//	    return fmt.Errorf("resolving address: %w", err)
//	}
func Resolve[T any](c *Container) (T, error) {
	v, err := c.GetByType(TypeOf[T]())
	return as[T](TypeOf[T]().String(), v, err)
}

// ResolveNamed returns the bean registered under id as a T.
func ResolveNamed[T any](c *Container, id string) (T, error) {
	v, err := c.GetByName(id)
	return as[T](id, v, err)
}

// ResolveQualified returns the bean of type T selected by qualifier.
//
// Example:
//
//	secondary, err := di.ResolveQualified[*Address](c, "secondary_address")
func ResolveQualified[T any](c *Container, qualifier string) (T, error) {
	v, err := c.GetByQualifier(TypeOf[T](), qualifier)
	return as[T](qualifier, v, err)
}

// MustResolve resolves a bean of type T, panics on error.
// Use this in wiring code where a missing bean is a programming error.
func MustResolve[T any](c *Container) T {
	v, err := Resolve[T](c)
	if err != nil {
		panic(fmt.Sprintf("di: failed to resolve %s: %v", TypeOf[T](), err))
	}
	return v
}

// TryResolve resolves a bean of type T, returns zero value and false on any error.
// Use this when a dependency is optional.
//
// Example:
//
//	if repo, ok := di.TryResolve[EmployeeRepository](c); ok {
//	    repo.Save(emp)
//	}
func TryResolve[T any](c *Container) (T, bool) {
	v, err := Resolve[T](c)
	if err != nil {
		var zero T
		return zero, false
	}
	return v, true
}

func as[T any](id string, v any, err error) (T, error) {
	var zero T
	if err != nil {
		return zero, err
	}
	result, ok := v.(T)
	if !ok {
		return zero, errTypeMismatch(id, v, TypeOf[T]())
	}
	return result, nil
}
