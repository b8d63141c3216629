// Package vm provides a VirtualMachine that executes compiled Abacus code.
package vm

import (
	"context"
	"fmt"
	"sync"

	"github.com/abacus-io/abacus/bytecode"
	"github.com/abacus-io/abacus/errz"
	"github.com/abacus-io/abacus/op"
)

const (
	// MaxStackDepth is the maximum operand stack depth.
	MaxStackDepth = bytecode.MaxStackDepth

	// DefaultContextCheckInterval is the number of instructions between
	// deterministic checks of ctx.Done(). Set to 0 to disable.
	DefaultContextCheckInterval = 1024
)

// VirtualMachine executes a compiled instruction sequence against an operand
// stack. Each call to Run is a fresh execution from an empty stack; no state
// persists across runs.
type VirtualMachine struct {
	ip       int // instruction pointer
	sp       int // stack pointer; -1 when the stack is empty
	code     *bytecode.Code
	running  bool
	runMutex sync.Mutex
	stack    [MaxStackDepth]int64

	// contextCheckInterval is the number of instructions between deterministic
	// checks of ctx.Done(). A value of 0 disables the checks.
	contextCheckInterval int

	// observer receives a callback for each executed instruction.
	// If nil, no callbacks are made.
	observer Observer
}

// New creates a new Virtual Machine that will run the given code.
func New(code *bytecode.Code, options ...Option) *VirtualMachine {
	machine := &VirtualMachine{
		code:                 code,
		sp:                   -1,
		contextCheckInterval: DefaultContextCheckInterval,
	}
	for _, opt := range options {
		opt(machine)
	}
	return machine
}

func (vm *VirtualMachine) start() error {
	vm.runMutex.Lock()
	defer vm.runMutex.Unlock()
	if vm.running {
		return fmt.Errorf("vm is already running")
	}
	vm.running = true
	return nil
}

func (vm *VirtualMachine) stop() {
	vm.runMutex.Lock()
	defer vm.runMutex.Unlock()
	vm.running = false
}

// Run the machine's instruction sequence to completion. The execution starts
// from an empty stack regardless of any prior runs. On error the stack is
// discarded, so TOS reports no result.
func (vm *VirtualMachine) Run(ctx context.Context) error {
	if err := vm.start(); err != nil {
		return err
	}
	defer vm.stop()
	vm.ip = 0
	vm.sp = -1
	if err := vm.eval(ctx); err != nil {
		vm.sp = -1
		return err
	}
	return nil
}

// eval is the dispatch loop. Execution is strictly sequential: there are no
// jumps, so the instruction pointer only ever advances by one.
func (vm *VirtualMachine) eval(ctx context.Context) error {
	count := vm.code.InstructionCount()
	checkInterval := vm.contextCheckInterval
	var steps int
	for vm.ip < count {
		steps++
		if checkInterval > 0 && steps%checkInterval == 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
		}
		instr := vm.code.InstructionAt(vm.ip)
		if vm.observer != nil {
			event := StepEvent{
				IP:         vm.ip,
				Opcode:     instr.Op,
				OpcodeName: instr.Op.String(),
				Arg:        instr.Arg,
				Location:   vm.code.LocationAt(vm.ip),
				StackDepth: vm.sp + 1,
			}
			if !vm.observer.OnStep(event) {
				return vm.runtimeError(errz.ErrRuntime, "execution halted by observer")
			}
		}
		switch instr.Op {
		case op.Push:
			if err := vm.push(instr.Arg); err != nil {
				return err
			}
		case op.Add, op.Sub, op.Mul, op.Div:
			b, err := vm.pop()
			if err != nil {
				return err
			}
			a, err := vm.pop()
			if err != nil {
				return err
			}
			var result int64
			switch instr.Op {
			case op.Add:
				result = a + b
			case op.Sub:
				result = a - b
			case op.Mul:
				result = a * b
			case op.Div:
				if b == 0 {
					return vm.runtimeError(errz.ErrDivisionByZero,
						"cannot divide %d by zero", a)
				}
				result = floorDiv(a, b)
			}
			if err := vm.push(result); err != nil {
				return err
			}
		default:
			return vm.runtimeError(errz.ErrBadProgram, "unknown opcode: %d", instr.Op)
		}
		vm.ip++
	}
	if vm.sp > 0 {
		return vm.runtimeError(errz.ErrBadProgram,
			"%d values left on the stack, expected at most 1", vm.sp+1)
	}
	return nil
}

// TOS returns the top of stack value, if the stack is non-empty. After a
// successful run this is the program's result. The boolean distinguishes
// "no result" from any numeric result.
func (vm *VirtualMachine) TOS() (int64, bool) {
	if vm.sp >= 0 {
		return vm.stack[vm.sp], true
	}
	return 0, false
}

func (vm *VirtualMachine) push(value int64) error {
	if vm.sp >= MaxStackDepth-1 {
		return vm.runtimeError(errz.ErrRuntime,
			"stack depth exceeds the maximum of %d", MaxStackDepth)
	}
	vm.sp++
	vm.stack[vm.sp] = value
	return nil
}

// pop defends against malformed instruction sequences from any source, not
// only this module's own compiler.
func (vm *VirtualMachine) pop() (int64, error) {
	if vm.sp < 0 {
		return 0, vm.runtimeError(errz.ErrStackUnderflow,
			"attempted pop on an empty stack")
	}
	value := vm.stack[vm.sp]
	vm.sp--
	return value, nil
}

// floorDiv divides with the quotient rounded toward negative infinity, so
// for example floorDiv(-7, 2) is -4. Go's native division truncates toward
// zero instead.
func floorDiv(a, b int64) int64 {
	quotient := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		quotient--
	}
	return quotient
}

func (vm *VirtualMachine) runtimeError(kind errz.ErrorKind, format string, args ...any) *errz.StructuredError {
	return errz.NewStructuredErrorf(kind, vm.code.LocationAt(vm.ip), format, args...)
}
