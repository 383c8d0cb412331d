package errors

// ErrorCode represents a machine-readable error code.
type ErrorCode string

// Registration errors
const (
	// ErrCodeDuplicateID indicates a descriptor id is already registered.
	ErrCodeDuplicateID ErrorCode = "DUPLICATE_ID"
	// ErrCodeInvalidDescriptor indicates a descriptor failed validation.
	ErrCodeInvalidDescriptor ErrorCode = "INVALID_DESCRIPTOR"
	// ErrCodeAlreadyStarted indicates the container no longer accepts registrations.
	ErrCodeAlreadyStarted ErrorCode = "ALREADY_STARTED"
)

// Resolution errors
const (
	// ErrCodeNotFound indicates no descriptor exists for the requested id.
	ErrCodeNotFound ErrorCode = "NOT_FOUND"
	// ErrCodeUnsatisfiedDependency indicates no descriptor matches a required type.
	ErrCodeUnsatisfiedDependency ErrorCode = "UNSATISFIED_DEPENDENCY"
	// ErrCodeAmbiguousMatch indicates qualifier/primary metadata could not pick one candidate.
	ErrCodeAmbiguousMatch ErrorCode = "AMBIGUOUS_MATCH"
	// ErrCodeCircularDependency indicates a dependency cycle.
	ErrCodeCircularDependency ErrorCode = "CIRCULAR_DEPENDENCY"
	// ErrCodeTypeMismatch indicates a resolved instance does not have the requested type.
	ErrCodeTypeMismatch ErrorCode = "TYPE_MISMATCH"
	// ErrCodeInstantiationFailed indicates a factory or lifecycle hook returned an error.
	ErrCodeInstantiationFailed ErrorCode = "INSTANTIATION_FAILED"
	// ErrCodeDestroyFailed indicates a pre-destroy hook returned an error.
	ErrCodeDestroyFailed ErrorCode = "DESTROY_FAILED"
)

// Container state errors
const (
	// ErrCodeNotStarted indicates a lookup before a successful startup.
	ErrCodeNotStarted ErrorCode = "NOT_STARTED"
	// ErrCodeContainerClosed indicates the container has been closed.
	ErrCodeContainerClosed ErrorCode = "CONTAINER_CLOSED"
)

// Generic errors
const (
	// ErrCodeInvalidInput indicates the input is invalid.
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"
	// ErrCodeInternal indicates an unexpected internal failure.
	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)

// fatalCodes lists codes that describe a broken registration graph rather than
// a transient construction failure.
var fatalCodes = map[ErrorCode]bool{
	ErrCodeDuplicateID:           true,
	ErrCodeInvalidDescriptor:     true,
	ErrCodeUnsatisfiedDependency: true,
	ErrCodeAmbiguousMatch:        true,
	ErrCodeCircularDependency:    true,
}

// IsConfigurationCode reports whether the code points at a wiring mistake
// (fixable only by changing registrations).
func IsConfigurationCode(code ErrorCode) bool {
	return fatalCodes[code]
}
