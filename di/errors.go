package di

import (
	"fmt"
	"reflect"

	"github.com/kbukum/beankit/errors"
)

// Sentinel errors. Match them with errors.Is; any error carrying the same
// code matches, whatever its message or details.
var (
	ErrDuplicateID           = errors.New(errors.ErrCodeDuplicateID, "duplicate descriptor id")
	ErrInvalidDescriptor     = errors.New(errors.ErrCodeInvalidDescriptor, "invalid descriptor")
	ErrAlreadyStarted        = errors.New(errors.ErrCodeAlreadyStarted, "container already started")
	ErrNotFound              = errors.New(errors.ErrCodeNotFound, "descriptor not found")
	ErrUnsatisfiedDependency = errors.New(errors.ErrCodeUnsatisfiedDependency, "unsatisfied dependency")
	ErrAmbiguousMatch        = errors.New(errors.ErrCodeAmbiguousMatch, "ambiguous match")
	ErrCircularDependency    = errors.New(errors.ErrCodeCircularDependency, "circular dependency")
	ErrTypeMismatch          = errors.New(errors.ErrCodeTypeMismatch, "type mismatch")
	ErrInstantiationFailed   = errors.New(errors.ErrCodeInstantiationFailed, "instantiation failed")
	ErrDestroyFailed         = errors.New(errors.ErrCodeDestroyFailed, "destroy failed")
	ErrNotStarted            = errors.New(errors.ErrCodeNotStarted, "container not started")
	ErrContainerClosed       = errors.New(errors.ErrCodeContainerClosed, "container closed")
)

func errDuplicateID(id string) *errors.AppError {
	return errors.Newf(errors.ErrCodeDuplicateID, "descriptor %q is already registered", id).
		WithDetail("id", id)
}

func errInvalidDescriptor(id string, cause error) *errors.AppError {
	return errors.Newf(errors.ErrCodeInvalidDescriptor, "descriptor %q is invalid", id).
		WithDetail("id", id).
		WithCause(cause)
}

func errAlreadyStarted(cause error) *errors.AppError {
	err := errors.New(errors.ErrCodeAlreadyStarted, "container already started")
	if cause != nil {
		err.WithCause(cause)
	}
	return err
}

func errNotFound(id string) *errors.AppError {
	return errors.Newf(errors.ErrCodeNotFound, "no descriptor with id %q", id).
		WithDetail("id", id)
}

func errUnsatisfied(dep Dependency, requiredBy string) *errors.AppError {
	msg := fmt.Sprintf("no descriptor matches %s", dep)
	if requiredBy != "" {
		msg += fmt.Sprintf(" (required by %q)", requiredBy)
	}
	err := errors.New(errors.ErrCodeUnsatisfiedDependency, msg).
		WithDetail("type", typeName(dep.Type))
	if dep.Qualifier != "" {
		err.WithDetail("qualifier", dep.Qualifier)
	}
	if requiredBy != "" {
		err.WithDetail("required_by", requiredBy)
	}
	return err
}

func errAmbiguous(dep Dependency, candidates []string, requiredBy string) *errors.AppError {
	msg := fmt.Sprintf("%d descriptors match %s: %v", len(candidates), dep, candidates)
	if requiredBy != "" {
		msg += fmt.Sprintf(" (required by %q)", requiredBy)
	}
	err := errors.New(errors.ErrCodeAmbiguousMatch, msg).
		WithDetail("type", typeName(dep.Type)).
		WithDetail("candidates", candidates)
	if dep.Qualifier != "" {
		err.WithDetail("qualifier", dep.Qualifier)
	}
	if requiredBy != "" {
		err.WithDetail("required_by", requiredBy)
	}
	return err
}

func errMultiplePrimary(t reflect.Type, existing, id string) *errors.AppError {
	return errors.Newf(errors.ErrCodeAmbiguousMatch,
		"descriptor %q and %q are both primary for %s", existing, id, typeName(t)).
		WithDetail("type", typeName(t)).
		WithDetail("candidates", []string{existing, id})
}

func errCircular(path []string) *errors.AppError {
	return errors.Newf(errors.ErrCodeCircularDependency, "circular dependency: %s", errors.FormatPath(path)).
		WithDetail("path", path)
}

func errTypeMismatch(id string, got any, want reflect.Type) *errors.AppError {
	return errors.Newf(errors.ErrCodeTypeMismatch, "bean %q is %T, expected %s", id, got, typeName(want)).
		WithDetail("id", id).
		WithDetail("type", typeName(want))
}

func errInstantiation(id, phase string, cause error) *errors.AppError {
	return errors.Newf(errors.ErrCodeInstantiationFailed, "bean %q failed in %s", id, phase).
		WithDetail("id", id).
		WithDetail("phase", phase).
		WithCause(cause)
}

func errDestroy(id string, cause error) *errors.AppError {
	return errors.Newf(errors.ErrCodeDestroyFailed, "pre-destroy of bean %q failed", id).
		WithDetail("id", id).
		WithCause(cause)
}

func errNotStarted(cause error) *errors.AppError {
	err := errors.New(errors.ErrCodeNotStarted, "container not started")
	if cause != nil {
		err.Message = "container failed to start"
		err.WithCause(cause)
	}
	return err
}

func errClosed() *errors.AppError {
	return errors.New(errors.ErrCodeContainerClosed, "container closed")
}

func typeName(t reflect.Type) string {
	if t == nil {
		return "<nil>"
	}
	return t.String()
}
