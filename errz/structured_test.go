package errz

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestErrorKindString(t *testing.T) {
	tests := []struct {
		kind ErrorKind
		want string
	}{
		{ErrRuntime, "runtime error"},
		{ErrDivisionByZero, "division by zero"},
		{ErrStackUnderflow, "stack underflow"},
		{ErrBadProgram, "malformed program"},
		{ErrorKind(99), "error"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			require.Equal(t, tt.want, tt.kind.String())
		})
	}
}

func TestStructuredError(t *testing.T) {
	err := NewStructuredError(ErrStackUnderflow, "attempted pop on an empty stack", SourceLocation{})
	require.Equal(t, "stack underflow: attempted pop on an empty stack", err.Error())

	located := NewStructuredErrorf(ErrDivisionByZero, SourceLocation{Line: 1, Column: 5},
		"cannot divide %d by zero", 7)
	require.Equal(t, "division by zero: cannot divide 7 by zero (1:5)", located.Error())
}

func TestStructuredErrorCause(t *testing.T) {
	cause := errors.New("boom")
	err := NewStructuredError(ErrRuntime, "execution failed", SourceLocation{}).WithCause(cause)
	require.ErrorIs(t, err, cause)
}

func TestStructuredErrorFriendlyMessage(t *testing.T) {
	err := NewStructuredError(ErrDivisionByZero, "cannot divide 7 by zero", SourceLocation{
		Line:   1,
		Column: 5,
		Source: "7 / 0",
	})
	expected := strings.Join([]string{
		"division by zero: cannot divide 7 by zero",
		"  --> 1:5",
		"   |",
		" 1 | 7 / 0",
		"   |     ^",
		"",
	}, "\n")
	require.Equal(t, expected, err.FriendlyErrorMessage())
}

func TestSourceLocation(t *testing.T) {
	require.True(t, SourceLocation{}.IsZero())
	require.False(t, SourceLocation{Line: 1, Column: 1}.IsZero())

	loc := SourceLocation{Filename: "calc.abacus", Line: 3, Column: 7}
	require.Equal(t, "calc.abacus:3:7", loc.String())
	require.Equal(t, "3:7", SourceLocation{Line: 3, Column: 7}.String())
}
