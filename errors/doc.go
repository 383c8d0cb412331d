// Package errors provides the structured error type used across beankit.
//
// Every failure surfaced by the container is an *AppError carrying a
// machine-readable code, a human-readable message and optional details
// (bean id, type, qualifier, cycle path). Package-level sentinels built with
// New are matched with the standard library errors.Is, which compares codes:
//
//	if errors.Is(err, di.ErrCircularDependency) {
//	    path := errors.DetailOf(err, "path")
//	}
package errors
