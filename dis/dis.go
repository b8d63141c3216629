// Package dis supports analysis of Abacus bytecode by disassembling it.
// This works with the opcodes defined in the `op` package and the compiled
// Code type from the `bytecode` package.
package dis

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/abacus-io/abacus/bytecode"
	"github.com/abacus-io/abacus/internal/table"
	"github.com/abacus-io/abacus/op"
)

// Instruction represents a single decoded instruction and its operand.
type Instruction struct {
	Offset   int
	Opcode   op.Code
	Name     string
	Operands string
	Info     string
}

// Disassemble returns a parsed representation of the given bytecode.
func Disassemble(code *bytecode.Code) ([]Instruction, error) {
	var instructions []Instruction
	count := code.InstructionCount()
	for offset := 0; offset < count; offset++ {
		instr := code.InstructionAt(offset)
		info := op.GetInfo(instr.Op)
		if info.Name == "" {
			return nil, fmt.Errorf("unknown opcode at offset %d: %d", offset, instr.Op)
		}
		var operands string
		if info.OperandCount > 0 {
			operands = fmt.Sprintf("%d", instr.Arg)
		}
		var annotation string
		if loc := code.LocationAt(offset); !loc.IsZero() {
			annotation = loc.String()
		}
		instructions = append(instructions, Instruction{
			Offset:   offset,
			Opcode:   instr.Op,
			Name:     info.Name,
			Operands: operands,
			Info:     annotation,
		})
	}
	return instructions, nil
}

var (
	boldText   = color.New(color.Bold)
	yellowText = color.New(color.FgYellow)
	cyanText   = color.New(color.FgCyan)
)

// Print a table representation of the given instructions to the given writer.
func Print(instructions []Instruction, writer io.Writer) error {
	var lines [][]string
	for _, instr := range instructions {
		lines = append(lines, []string{
			fmt.Sprintf("%d", instr.Offset),
			boldText.Sprint(instr.Name),
			yellowText.Sprint(instr.Operands),
			cyanText.Sprint(instr.Info),
		})
	}
	return table.NewTable(writer).
		WithHeader([]string{"OFFSET", "OPCODE", "OPERANDS", "INFO"}).
		WithColumnAlignment([]table.Alignment{
			table.AlignRight,
			table.AlignLeft,
			table.AlignRight,
			table.AlignLeft,
		}).
		WithHeaderAlignment([]table.Alignment{
			table.AlignCenter,
			table.AlignCenter,
			table.AlignCenter,
			table.AlignCenter,
		}).
		WithRows(lines).
		Render()
}

// Sprint returns the plain one-instruction-per-line listing for the given
// code, for example "PUSH 1\nPUSH 2\nADD".
func Sprint(code *bytecode.Code) string {
	var sb strings.Builder
	count := code.InstructionCount()
	for i := 0; i < count; i++ {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(code.InstructionAt(i).String())
	}
	return sb.String()
}
