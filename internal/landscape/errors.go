package landscape

import (
	"errors"
	"fmt"
)

// Sentinel errors classifying every failure the landscape packages can
// produce. Callers test them with errors.Is.
var (
	// ErrConfiguration marks parameters, files, or arguments that do
	// not describe a valid landscape.
	ErrConfiguration = errors.New("invalid landscape configuration")
	// ErrCodomainLength marks a fitness table whose shape does not
	// match the landscape parameters.
	ErrCodomainLength = errors.New("codomain length mismatch")
	// ErrDimensionMismatch marks a solution whose length differs from
	// the landscape's problem size.
	ErrDimensionMismatch = errors.New("solution dimension mismatch")
	// ErrInternalConsistency marks a violated invariant, such as a
	// duplicate in the reconstructed optimum set.
	ErrInternalConsistency = errors.New("internal consistency check failed")
)

// Error carries a landscape failure together with the operation and
// component it occurred in. The sentinel classifying the failure sits
// in Err, so errors.Is sees through it.
type Error struct {
	// Message describes the failure.
	Message string
	// Op is the operation that caused the failure.
	Op string
	// Component is the component where the failure occurred.
	Component string
	// Err is the sentinel or underlying error, if any.
	Err error
}

// Error returns the string representation of the error.
func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	var prefix string
	if e.Component != "" && e.Op != "" {
		prefix = fmt.Sprintf("%s: %s", e.Component, e.Op)
	} else if e.Component != "" {
		prefix = e.Component
	} else if e.Op != "" {
		prefix = e.Op
	}

	if e.Err != nil {
		if prefix != "" {
			return fmt.Sprintf("%s: %s: %v", prefix, e.Message, e.Err)
		}
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}

	if prefix != "" {
		return fmt.Sprintf("%s: %s", prefix, e.Message)
	}
	return e.Message
}

// Unwrap returns the sentinel or underlying error, if any.
func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// WithOperation adds operation context to the error.
func (e *Error) WithOperation(op string) *Error {
	e.Op = op
	return e
}

// WithComponent adds component context to the error.
func (e *Error) WithComponent(component string) *Error {
	e.Component = component
	return e
}

// NewConfigurationErrorf creates an ErrConfiguration with a formatted
// message.
func NewConfigurationErrorf(format string, args ...interface{}) *Error {
	return &Error{
		Message: fmt.Sprintf(format, args...),
		Err:     ErrConfiguration,
	}
}

// NewCodomainLengthError creates an ErrCodomainLength describing the
// expected and actual table shape.
func NewCodomainLengthError(clique, want, got int) *Error {
	return &Error{
		Message: fmt.Sprintf("clique %d expects %d fitness entries, got %d", clique, want, got),
		Err:     ErrCodomainLength,
	}
}

// NewCodomainLengthErrorf creates an ErrCodomainLength with a formatted
// message.
func NewCodomainLengthErrorf(format string, args ...interface{}) *Error {
	return &Error{
		Message: fmt.Sprintf(format, args...),
		Err:     ErrCodomainLength,
	}
}

// NewDimensionMismatchError creates an ErrDimensionMismatch describing
// the expected and actual solution length.
func NewDimensionMismatchError(want, got int) *Error {
	return &Error{
		Message: fmt.Sprintf("solution has %d variables, landscape has %d", got, want),
		Err:     ErrDimensionMismatch,
	}
}

// NewDimensionMismatchErrorf creates an ErrDimensionMismatch with a
// formatted message.
func NewDimensionMismatchErrorf(format string, args ...interface{}) *Error {
	return &Error{
		Message: fmt.Sprintf(format, args...),
		Err:     ErrDimensionMismatch,
	}
}

// NewInternalConsistencyErrorf creates an ErrInternalConsistency with a
// formatted message.
func NewInternalConsistencyErrorf(format string, args ...interface{}) *Error {
	return &Error{
		Message: fmt.Sprintf(format, args...),
		Err:     ErrInternalConsistency,
	}
}

// WrapError wraps an underlying error, typically from IO, with
// additional context. If err is nil, WrapError returns nil.
func WrapError(err error, message string) *Error {
	if err == nil {
		return nil
	}
	return &Error{
		Message: message,
		Err:     err,
	}
}

// WrapErrorf wraps an underlying error with formatted context.
// If err is nil, WrapErrorf returns nil.
func WrapErrorf(err error, format string, args ...interface{}) *Error {
	if err == nil {
		return nil
	}
	return &Error{
		Message: fmt.Sprintf(format, args...),
		Err:     err,
	}
}
