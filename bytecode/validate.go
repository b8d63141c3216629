package bytecode

import (
	"fmt"

	"github.com/hashicorp/go-multierror"

	"github.com/abacus-io/abacus/op"
)

// Validate statically checks an instruction sequence before execution by
// simulating its effect on stack depth. Every defect found is reported, not
// just the first, so a hand-built program can be fixed in one pass:
//
//   - unknown opcodes
//   - arithmetic instructions with fewer than two values on the stack
//   - stack depth exceeding MaxStackDepth
//   - residual values other than one left at the end (zero is allowed only
//     for an empty program)
//
// Validation is advisory. The VM performs the same checks dynamically, so
// skipping Validate never makes execution unsafe.
func Validate(code *Code) error {
	var result *multierror.Error
	depth := 0
	count := code.InstructionCount()
	for i := 0; i < count; i++ {
		instr := code.InstructionAt(i)
		switch instr.Op {
		case op.Push:
			depth++
			if depth > MaxStackDepth {
				result = multierror.Append(result, fmt.Errorf(
					"offset %d (%s): stack depth %d exceeds the maximum of %d",
					i, instr, depth, MaxStackDepth))
			}
		case op.Add, op.Sub, op.Mul, op.Div:
			if depth < 2 {
				result = multierror.Append(result, fmt.Errorf(
					"offset %d (%s): stack underflow: %d value(s) on the stack",
					i, instr, depth))
				// Continue as if the operation produced its result, to avoid
				// cascading reports from one missing operand.
				depth = 1
			} else {
				depth--
			}
		default:
			result = multierror.Append(result, fmt.Errorf(
				"offset %d: unknown opcode: %d", i, instr.Op))
		}
	}
	if count > 0 && depth != 1 {
		result = multierror.Append(result, fmt.Errorf(
			"program leaves %d values on the stack, expected 1", depth))
	}
	return result.ErrorOrNil()
}
