package main

import (
	"testing"

	"github.com/abacus-io/abacus/errz"
	"github.com/abacus-io/abacus/op"
	"github.com/abacus-io/abacus/vm"
	"github.com/stretchr/testify/require"
)

func TestGetOutputText(t *testing.T) {
	output, err := getOutput(7, "")
	require.Nil(t, err)
	require.Equal(t, "7", output)

	output, err = getOutput(-4, "text")
	require.Nil(t, err)
	require.Equal(t, "-4", output)
}

func TestGetOutputJSON(t *testing.T) {
	output, err := getOutput(7, "json")
	require.Nil(t, err)
	require.Contains(t, output, "7")
}

func TestGetOutputUnknownFormat(t *testing.T) {
	_, err := getOutput(7, "yaml")
	require.NotNil(t, err)
	require.Contains(t, err.Error(), `unknown output format: "yaml"`)
}

func TestFormatStep(t *testing.T) {
	push := vm.StepEvent{IP: 0, Opcode: op.Push, OpcodeName: "PUSH", Arg: 3, StackDepth: 0}
	require.Equal(t, "   0  PUSH 3  (depth 0)", formatStep(push))

	add := vm.StepEvent{IP: 4, Opcode: op.Add, OpcodeName: "ADD", StackDepth: 2}
	require.Equal(t, "   4  ADD   (depth 2)", formatStep(add))
}

func TestErrorText(t *testing.T) {
	err := errz.NewStructuredError(errz.ErrDivisionByZero, "cannot divide 2 by zero",
		errz.SourceLocation{Line: 1, Column: 3, Source: "2 / 0"})
	text := errorText(err)
	require.Contains(t, text, "division by zero: cannot divide 2 by zero")
	require.Contains(t, text, "2 / 0")
}
