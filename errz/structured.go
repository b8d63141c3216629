package errz

import (
	"fmt"
)

// ErrorKind represents the category of a runtime error.
type ErrorKind int

const (
	// ErrRuntime indicates a general runtime error.
	ErrRuntime ErrorKind = iota
	// ErrDivisionByZero indicates an integer division with a zero divisor.
	ErrDivisionByZero
	// ErrStackUnderflow indicates a pop from an empty operand stack, which
	// means the executing instruction sequence is malformed.
	ErrStackUnderflow
	// ErrBadProgram indicates an instruction sequence the machine cannot
	// execute: an unknown opcode, or residual values left on the stack.
	ErrBadProgram
)

// String returns the string representation of the error kind.
func (k ErrorKind) String() string {
	switch k {
	case ErrDivisionByZero:
		return "division by zero"
	case ErrStackUnderflow:
		return "stack underflow"
	case ErrBadProgram:
		return "malformed program"
	case ErrRuntime:
		return "runtime error"
	default:
		return "error"
	}
}

// StructuredError is a rich error type carrying the error category and the
// source location responsible, for actionable diagnostics.
type StructuredError struct {
	Message  string
	Kind     ErrorKind
	Location SourceLocation
	Cause    error
}

// Error implements the error interface.
func (e *StructuredError) Error() string {
	if e.Location.IsZero() {
		return fmt.Sprintf("%s: %s", e.Kind.String(), e.Message)
	}
	return fmt.Sprintf("%s: %s (%d:%d)", e.Kind.String(), e.Message, e.Location.Line, e.Location.Column)
}

// Unwrap returns the underlying cause of the error.
func (e *StructuredError) Unwrap() error {
	return e.Cause
}

// FriendlyErrorMessage returns a human-friendly error message with visual
// context including a source snippet when one is available.
func (e *StructuredError) FriendlyErrorMessage() string {
	return NewFormatter(false).Format(e.ToFormatted())
}

// ToFormatted converts the error to a FormattedError for display.
func (e *StructuredError) ToFormatted() *FormattedError {
	f := &FormattedError{
		Kind:     e.Kind.String(),
		Message:  e.Message,
		Filename: e.Location.Filename,
		Line:     e.Location.Line,
		Column:   e.Location.Column,
	}
	if e.Location.Source != "" {
		f.SourceLines = []SourceLineEntry{
			{Number: e.Location.Line, Text: e.Location.Source, IsMain: true},
		}
	}
	return f
}

// GetLocation returns the source location of the error.
func (e *StructuredError) GetLocation() SourceLocation {
	return e.Location
}

// WithCause wraps the error with a cause.
func (e *StructuredError) WithCause(cause error) *StructuredError {
	e.Cause = cause
	return e
}

// NewStructuredError creates a new StructuredError with the given parameters.
func NewStructuredError(kind ErrorKind, message string, loc SourceLocation) *StructuredError {
	return &StructuredError{
		Message:  message,
		Kind:     kind,
		Location: loc,
	}
}

// NewStructuredErrorf creates a new StructuredError with a formatted message.
func NewStructuredErrorf(kind ErrorKind, loc SourceLocation, format string, args ...any) *StructuredError {
	return &StructuredError{
		Message:  fmt.Sprintf(format, args...),
		Kind:     kind,
		Location: loc,
	}
}
