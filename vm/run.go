package vm

import (
	"context"
	"errors"

	"github.com/abacus-io/abacus/bytecode"
)

// ErrNoResult indicates a run that completed without leaving a value on the
// stack, which happens only for an empty instruction sequence. It is distinct
// from every numeric result.
var ErrNoResult = errors.New("no result")

// Run the given code in a new Virtual Machine and return the result.
func Run(ctx context.Context, main *bytecode.Code, options ...Option) (int64, error) {
	machine := New(main, options...)
	if err := machine.Run(ctx); err != nil {
		return 0, err
	}
	if result, exists := machine.TOS(); exists {
		return result, nil
	}
	return 0, ErrNoResult
}
