package vm

import (
	"github.com/abacus-io/abacus/errz"
	"github.com/abacus-io/abacus/op"
)

// Observer is an interface for observing VM execution events.
// Implementations can be used for tracing, debugging, or instruction
// counting without modifying the VM's core.
type Observer interface {
	// OnStep is called before each instruction executes.
	// Returns false to halt execution immediately.
	OnStep(event StepEvent) bool
}

// StepEvent contains information about a single instruction step.
type StepEvent struct {
	// IP is the instruction pointer (index into the instruction sequence).
	IP int

	// Opcode is the operation being executed.
	Opcode op.Code

	// OpcodeName is the human-readable name of the opcode.
	OpcodeName string

	// Arg is the inline operand, meaningful only when the opcode takes one.
	Arg int64

	// Location is the source location of the instruction.
	Location errz.SourceLocation

	// StackDepth is the depth of the value stack before the instruction.
	StackDepth int
}

// ObserverFunc adapts a function to the Observer interface.
type ObserverFunc func(event StepEvent) bool

// OnStep implements the Observer interface.
func (f ObserverFunc) OnStep(event StepEvent) bool {
	return f(event)
}
