// Package abacus compiles textual arithmetic expressions into stack-machine
// instructions and executes them.
//
// The pipeline is lexer → parser → compiler → virtual machine. Compile runs
// the first three stages and Run executes the result:
//
//	code, err := abacus.Compile("1 + 2 * 3")
//	if err != nil {
//	    return err
//	}
//	result, err := abacus.Run(ctx, code) // 7
//
// Eval composes both for one-shot evaluation.
package abacus

import (
	"context"

	"github.com/abacus-io/abacus/bytecode"
	"github.com/abacus-io/abacus/compiler"
	"github.com/abacus-io/abacus/lexer"
	"github.com/abacus-io/abacus/parser"
	"github.com/abacus-io/abacus/vm"
)

// ErrNoResult indicates an execution that completed without producing a
// value, which happens only for an empty program.
var ErrNoResult = vm.ErrNoResult

// Option configures an Abacus compilation or execution.
type Option func(*options)

type options struct {
	filename string
	maxDepth int
	observer vm.Observer
}

func collectOptions(opts ...Option) *options {
	o := &options{}
	for _, opt := range opts {
		if opt != nil {
			opt(o)
		}
	}
	return o
}

func (o *options) parserOpts() []parser.Option {
	var opts []parser.Option
	if o.filename != "" {
		opts = append(opts, parser.WithFilename(o.filename))
	}
	if o.maxDepth > 0 {
		opts = append(opts, parser.WithMaxDepth(o.maxDepth))
	}
	return opts
}

func (o *options) compilerOpts(source string) []compiler.Option {
	opts := []compiler.Option{compiler.WithSource(source)}
	if o.filename != "" {
		opts = append(opts, compiler.WithFilename(o.filename))
	}
	return opts
}

func (o *options) vmOpts() []vm.Option {
	var opts []vm.Option
	if o.observer != nil {
		opts = append(opts, vm.WithObserver(o.observer))
	}
	return opts
}

// WithFilename sets the filename for the source code being evaluated.
// This is used for error messages.
func WithFilename(filename string) Option {
	return func(o *options) {
		o.filename = filename
	}
}

// WithMaxDepth sets the maximum expression nesting depth accepted by the
// parser. The default is parser.DefaultMaxDepth.
func WithMaxDepth(depth int) Option {
	return func(o *options) {
		o.maxDepth = depth
	}
}

// WithObserver sets an observer for VM execution events. The observer
// receives a callback for every executed instruction, enabling tracers
// and debuggers.
func WithObserver(observer vm.Observer) Option {
	return func(o *options) {
		o.observer = observer
	}
}

// Compile the given source code into stack-machine instructions. The error
// is whichever of the lexical or syntax errors occurred first, unmodified.
func Compile(source string, opts ...Option) (*bytecode.Code, error) {
	o := collectOptions(opts...)
	p := parser.New(lexer.New(source), o.parserOpts()...)
	node, err := p.Parse(context.Background())
	if err != nil {
		return nil, err
	}
	return compiler.Compile(node, o.compilerOpts(source)...)
}

// Run the given compiled code in a new virtual machine and return its
// result. An empty program returns ErrNoResult.
func Run(ctx context.Context, code *bytecode.Code, opts ...Option) (int64, error) {
	return vm.Run(ctx, code, collectOptions(opts...).vmOpts()...)
}

// Eval compiles and runs the given source code.
func Eval(ctx context.Context, source string, opts ...Option) (int64, error) {
	code, err := Compile(source, opts...)
	if err != nil {
		return 0, err
	}
	return Run(ctx, code, opts...)
}
