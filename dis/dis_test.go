package dis

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/abacus-io/abacus/bytecode"
	"github.com/abacus-io/abacus/compiler"
	"github.com/abacus-io/abacus/op"
	"github.com/abacus-io/abacus/parser"
	"github.com/fatih/color"
	"github.com/stretchr/testify/require"
)

func compile(t *testing.T, source string) *bytecode.Code {
	t.Helper()
	node, err := parser.Parse(context.Background(), source)
	require.Nil(t, err)
	code, err := compiler.Compile(node, compiler.WithSource(source))
	require.Nil(t, err)
	return code
}

func TestDisassemble(t *testing.T) {
	code := compile(t, "1 + 2 * 3")
	instructions, err := Disassemble(code)
	require.Nil(t, err)
	require.Len(t, instructions, 5)

	require.Equal(t, Instruction{
		Offset:   0,
		Opcode:   op.Push,
		Name:     "PUSH",
		Operands: "1",
		Info:     "1:1",
	}, instructions[0])

	require.Equal(t, "MUL", instructions[3].Name)
	require.Equal(t, "", instructions[3].Operands)
	require.Equal(t, "1:7", instructions[3].Info)

	require.Equal(t, "ADD", instructions[4].Name)
	require.Equal(t, "1:3", instructions[4].Info)
}

func TestDisassembleUnknownOpcode(t *testing.T) {
	code := bytecode.NewCode(bytecode.CodeParams{
		Instructions: []bytecode.Instruction{{Op: op.Code(99)}},
	})
	_, err := Disassemble(code)
	require.NotNil(t, err)
	require.Contains(t, err.Error(), "unknown opcode at offset 0: 99")
}

func TestPrint(t *testing.T) {
	prevNoColor := color.NoColor
	color.NoColor = true
	defer func() { color.NoColor = prevNoColor }()

	code := compile(t, "(1 + 2) * 3")
	instructions, err := Disassemble(code)
	require.Nil(t, err)

	var buf bytes.Buffer
	require.Nil(t, Print(instructions, &buf))

	expected := `
+--------+--------+----------+------+
| OFFSET | OPCODE | OPERANDS | INFO |
+--------+--------+----------+------+
|      0 | PUSH   |        1 | 1:2  |
|      1 | PUSH   |        2 | 1:6  |
|      2 | ADD    |          | 1:4  |
|      3 | PUSH   |        3 | 1:11 |
|      4 | MUL    |          | 1:9  |
+--------+--------+----------+------+
`
	require.Equal(t, strings.TrimSpace(expected)+"\n", buf.String())
}

func TestSprint(t *testing.T) {
	require.Equal(t, "PUSH 1\nPUSH 2\nPUSH 3\nMUL\nADD", Sprint(compile(t, "1 + 2 * 3")))
	require.Equal(t, "PUSH 0\nPUSH 7\nSUB\nPUSH 2\nDIV", Sprint(compile(t, "-7 / 2")))
	require.Equal(t, "", Sprint(bytecode.NewCode(bytecode.CodeParams{})))
}
