package bytecode

import (
	"testing"

	"github.com/abacus-io/abacus/errz"
	"github.com/abacus-io/abacus/op"
	"github.com/stretchr/testify/require"
)

func TestInstructionString(t *testing.T) {
	tests := []struct {
		instr Instruction
		want  string
	}{
		{Instruction{Op: op.Push, Arg: 3}, "PUSH 3"},
		{Instruction{Op: op.Push, Arg: -42}, "PUSH -42"},
		{Instruction{Op: op.Add}, "ADD"},
		{Instruction{Op: op.Sub}, "SUB"},
		{Instruction{Op: op.Mul}, "MUL"},
		{Instruction{Op: op.Div}, "DIV"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			require.Equal(t, tt.want, tt.instr.String())
		})
	}
}

func TestCodeAccessors(t *testing.T) {
	code := NewCode(CodeParams{
		ID:       "test-id",
		Filename: "calc.abacus",
		Source:   "1 + 2",
		Instructions: []Instruction{
			{Op: op.Push, Arg: 1},
			{Op: op.Push, Arg: 2},
			{Op: op.Add},
		},
		Locations: []errz.SourceLocation{
			{Line: 1, Column: 1},
			{Line: 1, Column: 5},
			{Line: 1, Column: 3},
		},
	})
	require.Equal(t, "test-id", code.ID())
	require.Equal(t, "calc.abacus", code.Filename())
	require.Equal(t, "1 + 2", code.Source())
	require.Equal(t, 3, code.InstructionCount())
	require.Equal(t, Instruction{Op: op.Push, Arg: 2}, code.InstructionAt(1))
	require.Equal(t, errz.SourceLocation{Line: 1, Column: 3}, code.LocationAt(2))
	require.Equal(t, "PUSH 1\nPUSH 2\nADD", code.String())

	// Out of range offsets return zero values
	require.Equal(t, Instruction{}, code.InstructionAt(-1))
	require.Equal(t, Instruction{}, code.InstructionAt(3))
	require.True(t, code.LocationAt(99).IsZero())
}

func TestCodeImmutability(t *testing.T) {
	instructions := []Instruction{{Op: op.Push, Arg: 1}}
	code := NewCode(CodeParams{Instructions: instructions})

	// Mutating the input slice does not affect the code
	instructions[0] = Instruction{Op: op.Div}
	require.Equal(t, Instruction{Op: op.Push, Arg: 1}, code.InstructionAt(0))

	// Mutating the returned copy does not affect the code
	copied := code.Instructions()
	copied[0] = Instruction{Op: op.Mul}
	require.Equal(t, Instruction{Op: op.Push, Arg: 1}, code.InstructionAt(0))
}

func TestEmptyCode(t *testing.T) {
	code := NewCode(CodeParams{})
	require.Equal(t, 0, code.InstructionCount())
	require.Equal(t, "", code.String())
	require.Nil(t, Validate(code))
}
