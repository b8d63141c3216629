package vm

import (
	"context"
	"testing"

	"github.com/abacus-io/abacus/op"
	"github.com/stretchr/testify/require"
)

func TestObserverSeesEveryStep(t *testing.T) {
	code := compile(t, "1 + 2 * 3")
	var events []StepEvent
	observer := ObserverFunc(func(event StepEvent) bool {
		events = append(events, event)
		return true
	})
	result, err := Run(context.Background(), code, WithObserver(observer))
	require.Nil(t, err)
	require.Equal(t, int64(7), result)

	require.Len(t, events, 5)
	require.Equal(t, []op.Code{op.Push, op.Push, op.Push, op.Mul, op.Add},
		[]op.Code{events[0].Opcode, events[1].Opcode, events[2].Opcode, events[3].Opcode, events[4].Opcode})

	// The first event fires before anything is pushed
	require.Equal(t, 0, events[0].IP)
	require.Equal(t, 0, events[0].StackDepth)
	require.Equal(t, "PUSH", events[0].OpcodeName)
	require.Equal(t, int64(1), events[0].Arg)

	// MUL executes with three values on the stack
	require.Equal(t, 3, events[3].StackDepth)
}

func TestObserverHaltsExecution(t *testing.T) {
	code := compile(t, "1 + 2 * 3")
	var steps int
	observer := ObserverFunc(func(event StepEvent) bool {
		steps++
		return steps < 3
	})
	_, err := Run(context.Background(), code, WithObserver(observer))
	require.NotNil(t, err)
	require.Contains(t, err.Error(), "execution halted by observer")
	require.Equal(t, 3, steps)
}

func TestObserverLocation(t *testing.T) {
	code := compile(t, "5 / 0")
	var locations []string
	observer := ObserverFunc(func(event StepEvent) bool {
		locations = append(locations, event.Location.String())
		return true
	})
	_, err := Run(context.Background(), code, WithObserver(observer))
	require.NotNil(t, err)
	require.Equal(t, []string{"1:1", "1:5", "1:3"}, locations)
}
