// Package bytecode defines the instruction representation produced by the
// compiler and executed by the virtual machine.
package bytecode

import (
	"fmt"
	"strings"

	"github.com/abacus-io/abacus/errz"
	"github.com/abacus-io/abacus/op"
)

// MaxStackDepth is the maximum operand stack depth a program may use.
// The static Validate check and the VM both enforce this limit.
const MaxStackDepth = 1024

// Instruction is a single stack-machine operation. Push carries its integer
// operand inline in Arg; the arithmetic opcodes take no operand.
type Instruction struct {
	Op  op.Code
	Arg int64
}

// OperandCount returns the number of operands the instruction's opcode takes.
func (i Instruction) OperandCount() int {
	return op.GetInfo(i.Op).OperandCount
}

// String renders the instruction in its human-readable listing form, for
// example "PUSH 3" or "ADD".
func (i Instruction) String() string {
	if i.OperandCount() > 0 {
		return fmt.Sprintf("%s %d", i.Op, i.Arg)
	}
	return i.Op.String()
}

// Code represents a compiled program: an ordered instruction sequence plus
// the source it was compiled from. It is immutable after creation and safe
// for concurrent use. The instruction order is itself the program; execution
// is strictly sequential with no jumps.
type Code struct {
	id           string
	filename     string
	source       string
	instructions []Instruction

	// Source map: one location per instruction for error reporting
	locations []errz.SourceLocation
}

// CodeParams contains parameters for creating a new Code.
type CodeParams struct {
	ID           string
	Filename     string
	Source       string
	Instructions []Instruction
	Locations    []errz.SourceLocation
}

// NewCode creates a new immutable Code from the given parameters. Input
// slices are copied to ensure immutability. The Code is fully immutable
// after construction; there are no mutation methods.
func NewCode(params CodeParams) *Code {
	var instructions []Instruction
	if len(params.Instructions) > 0 {
		instructions = make([]Instruction, len(params.Instructions))
		copy(instructions, params.Instructions)
	}
	var locations []errz.SourceLocation
	if len(params.Locations) > 0 {
		locations = make([]errz.SourceLocation, len(params.Locations))
		copy(locations, params.Locations)
	}
	return &Code{
		id:           params.ID,
		filename:     params.Filename,
		source:       params.Source,
		instructions: instructions,
		locations:    locations,
	}
}

// ID returns the unique identifier for this compiled program.
func (c *Code) ID() string {
	return c.id
}

// Filename returns the name of the file the program was compiled from.
func (c *Code) Filename() string {
	return c.filename
}

// Source returns the source text the program was compiled from.
func (c *Code) Source() string {
	return c.source
}

// InstructionCount returns the number of instructions in the program.
func (c *Code) InstructionCount() int {
	return len(c.instructions)
}

// InstructionAt returns the instruction at the given offset.
func (c *Code) InstructionAt(offset int) Instruction {
	if offset < 0 || offset >= len(c.instructions) {
		return Instruction{}
	}
	return c.instructions[offset]
}

// Instructions returns a copy of the program's instruction sequence.
func (c *Code) Instructions() []Instruction {
	instructions := make([]Instruction, len(c.instructions))
	copy(instructions, c.instructions)
	return instructions
}

// LocationAt returns the source location of the instruction at the given
// offset. A zero location is returned when no source map entry exists.
func (c *Code) LocationAt(offset int) errz.SourceLocation {
	if offset < 0 || offset >= len(c.locations) {
		return errz.SourceLocation{}
	}
	return c.locations[offset]
}

// String returns the one-instruction-per-line listing of the program.
func (c *Code) String() string {
	var sb strings.Builder
	for i, instr := range c.instructions {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(instr.String())
	}
	return sb.String()
}
