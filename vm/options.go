package vm

// Option is a configuration function for a Virtual Machine.
type Option func(*VirtualMachine)

// WithContextCheckInterval sets how often the VM checks ctx.Done() during
// execution. The interval is specified in number of instructions. A value of
// 0 disables the deterministic checking. The default is
// DefaultContextCheckInterval (1024).
func WithContextCheckInterval(interval int) Option {
	return func(vm *VirtualMachine) {
		vm.contextCheckInterval = interval
	}
}

// WithObserver sets an observer for VM execution events. The observer
// receives a callback for every executed instruction, enabling tracers and
// debuggers without modifying the VM itself.
//
// Observer methods are called synchronously during execution, so
// implementations should be fast to avoid impacting performance.
// Returning false from OnStep halts execution immediately.
func WithObserver(observer Observer) Option {
	return func(vm *VirtualMachine) {
		vm.observer = observer
	}
}
