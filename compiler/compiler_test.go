package compiler

import (
	"context"
	"testing"

	"github.com/abacus-io/abacus/ast"
	"github.com/abacus-io/abacus/bytecode"
	"github.com/abacus-io/abacus/op"
	"github.com/abacus-io/abacus/parser"
	"github.com/abacus-io/abacus/token"
	"github.com/stretchr/testify/require"
)

func compileSource(t *testing.T, source string, options ...Option) *bytecode.Code {
	t.Helper()
	node, err := parser.Parse(context.Background(), source)
	require.Nil(t, err)
	code, err := Compile(node, options...)
	require.Nil(t, err)
	return code
}

func TestCompileInt(t *testing.T) {
	code := compileSource(t, "42")
	require.Equal(t, 1, code.InstructionCount())
	require.Equal(t, bytecode.Instruction{Op: op.Push, Arg: 42}, code.InstructionAt(0))
}

func TestCompileSequences(t *testing.T) {
	tests := []struct {
		input string
		want  []bytecode.Instruction
	}{
		{
			input: "1 + 2 * 3",
			want: []bytecode.Instruction{
				{Op: op.Push, Arg: 1},
				{Op: op.Push, Arg: 2},
				{Op: op.Push, Arg: 3},
				{Op: op.Mul},
				{Op: op.Add},
			},
		},
		{
			input: "(1 + 2) * 3",
			want: []bytecode.Instruction{
				{Op: op.Push, Arg: 1},
				{Op: op.Push, Arg: 2},
				{Op: op.Add},
				{Op: op.Push, Arg: 3},
				{Op: op.Mul},
			},
		},
		{
			// Unary minus compiles as subtraction from zero
			input: "-7 / 2",
			want: []bytecode.Instruction{
				{Op: op.Push, Arg: 0},
				{Op: op.Push, Arg: 7},
				{Op: op.Sub},
				{Op: op.Push, Arg: 2},
				{Op: op.Div},
			},
		},
		{
			input: "8 - 3 - 2",
			want: []bytecode.Instruction{
				{Op: op.Push, Arg: 8},
				{Op: op.Push, Arg: 3},
				{Op: op.Sub},
				{Op: op.Push, Arg: 2},
				{Op: op.Sub},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			code := compileSource(t, tt.input)
			require.Equal(t, tt.want, code.Instructions())
		})
	}
}

func TestCompileListing(t *testing.T) {
	code := compileSource(t, "1 + 2 * 3")
	require.Equal(t, "PUSH 1\nPUSH 2\nPUSH 3\nMUL\nADD", code.String())
}

func TestCompileLocations(t *testing.T) {
	code := compileSource(t, "10 + 2", WithFilename("calc.abacus"), WithSource("10 + 2"))
	require.Equal(t, 3, code.InstructionCount())

	// PUSH 10 points at the literal, ADD at the operator
	loc := code.LocationAt(0)
	require.Equal(t, "calc.abacus", loc.Filename)
	require.Equal(t, 1, loc.Line)
	require.Equal(t, 1, loc.Column)
	require.Equal(t, "10 + 2", loc.Source)

	opLoc := code.LocationAt(2)
	require.Equal(t, 1, opLoc.Line)
	require.Equal(t, 4, opLoc.Column)
}

func TestCompileNil(t *testing.T) {
	code, err := Compile(nil)
	require.Nil(t, err)
	require.Equal(t, 0, code.InstructionCount())
}

func TestCompileUnknownNode(t *testing.T) {
	type bogus struct{ ast.Expr }
	_, err := Compile(&ast.Infix{
		X:  &ast.Int{Literal: "1", Value: 1},
		Op: op.Add,
		Y:  &bogus{},
	})
	require.NotNil(t, err)
	require.Contains(t, err.Error(), "unknown ast node type")
}

func TestCompileInvalidOperator(t *testing.T) {
	_, err := Compile(&ast.Infix{
		X:  &ast.Int{Literal: "1", Value: 1},
		Op: op.Push,
		Y:  &ast.Int{Literal: "2", Value: 2},
	})
	require.NotNil(t, err)
	require.Contains(t, err.Error(), "invalid infix operator")
}

func TestCompileCodeID(t *testing.T) {
	code := compileSource(t, "1", WithCodeID("fixed-id"))
	require.Equal(t, "fixed-id", code.ID())

	// Generated IDs are unique
	first := compileSource(t, "1")
	second := compileSource(t, "1")
	require.NotEmpty(t, first.ID())
	require.NotEqual(t, first.ID(), second.ID())
}

func TestCompileIdempotent(t *testing.T) {
	// Compiling the same text twice yields identical instruction sequences
	first := compileSource(t, "(4 - 1) * -2")
	second := compileSource(t, "(4 - 1) * -2")
	require.Equal(t, first.Instructions(), second.Instructions())
}

func TestCompileUnaryMinusLocations(t *testing.T) {
	node, err := parser.Parse(context.Background(), "-5")
	require.Nil(t, err)
	infix, ok := node.(*ast.Infix)
	require.True(t, ok)

	// The synthesized zero literal sits at the position of the minus sign
	require.Equal(t, token.Position{}, infix.X.Pos())

	code, err := Compile(node, WithSource("-5"))
	require.Nil(t, err)
	require.Equal(t, "PUSH 0\nPUSH 5\nSUB", code.String())
	require.Equal(t, 1, code.LocationAt(0).Column)
	require.Equal(t, 2, code.LocationAt(1).Column)
}
