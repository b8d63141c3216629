// Package compiler translates an Abacus abstract syntax tree (AST) into the
// corresponding stack-machine instructions.
//
// Code generation is a single post-order traversal: operands are emitted
// before their operator, so the instruction order alone encodes evaluation
// order and no jumps are needed. The compiler is purely structural. It never
// evaluates constants and never reorders operands.
package compiler

import (
	"fmt"
	"strings"

	"github.com/gofrs/uuid"

	"github.com/abacus-io/abacus/ast"
	"github.com/abacus-io/abacus/bytecode"
	"github.com/abacus-io/abacus/errz"
	"github.com/abacus-io/abacus/op"
	"github.com/abacus-io/abacus/token"
)

// Option is a configuration function for a Compiler.
type Option func(*Compiler)

// WithFilename sets the source filename recorded on the compiled code and
// stamped onto instruction locations.
func WithFilename(filename string) Option {
	return func(c *Compiler) {
		c.filename = filename
	}
}

// WithSource sets the original source text, used to attach source snippets
// to instruction locations for error messages.
func WithSource(source string) Option {
	return func(c *Compiler) {
		c.source = source
	}
}

// WithCodeID sets the ID assigned to the compiled code. By default a random
// UUID is generated. Fixed IDs are useful in tests.
func WithCodeID(id string) Option {
	return func(c *Compiler) {
		c.codeID = id
	}
}

// Compiler is used to compile an Abacus AST into its corresponding
// stack-machine instructions.
type Compiler struct {
	filename string
	source   string
	codeID   string

	// sourceLines is the source split on newlines, built lazily for the
	// location source map.
	sourceLines []string

	instructions []bytecode.Instruction
	locations    []errz.SourceLocation
}

// New creates and returns a new Compiler.
func New(options ...Option) (*Compiler, error) {
	c := &Compiler{}
	for _, opt := range options {
		opt(c)
	}
	if c.codeID == "" {
		id, err := uuid.NewV4()
		if err != nil {
			return nil, fmt.Errorf("compile error: failed to generate code id: %w", err)
		}
		c.codeID = id.String()
	}
	if c.source != "" {
		c.sourceLines = strings.Split(c.source, "\n")
	}
	return c, nil
}

// Compile the given AST node and return the compiled code. A nil node
// compiles to an empty program.
func (c *Compiler) Compile(node ast.Expr) (*bytecode.Code, error) {
	c.instructions = nil
	c.locations = nil
	if node != nil {
		if err := c.compile(node); err != nil {
			return nil, err
		}
	}
	return bytecode.NewCode(bytecode.CodeParams{
		ID:           c.codeID,
		Filename:     c.filename,
		Source:       c.source,
		Instructions: c.instructions,
		Locations:    c.locations,
	}), nil
}

// Compile is a shorthand to compile an AST node with a single-use Compiler.
func Compile(node ast.Expr, options ...Option) (*bytecode.Code, error) {
	c, err := New(options...)
	if err != nil {
		return nil, err
	}
	return c.Compile(node)
}

// compile emits instructions for one node in post-order. The node set is a
// closed union; the default case is an internal invariant violation rather
// than a user-facing error, since the parser never produces other nodes.
func (c *Compiler) compile(node ast.Expr) error {
	switch node := node.(type) {
	case *ast.Int:
		c.emit(node.Pos(), bytecode.Instruction{Op: op.Push, Arg: node.Value})
	case *ast.Infix:
		if err := c.compile(node.X); err != nil {
			return err
		}
		if err := c.compile(node.Y); err != nil {
			return err
		}
		if !node.Op.IsBinaryOp() {
			return fmt.Errorf("compile error: invalid infix operator: %d", node.Op)
		}
		c.emit(node.OpPos, bytecode.Instruction{Op: node.Op})
	default:
		return fmt.Errorf("compile error: unknown ast node type: %T", node)
	}
	return nil
}

// emit appends one instruction along with the source location of the node
// that produced it.
func (c *Compiler) emit(pos token.Position, instr bytecode.Instruction) {
	loc := errz.SourceLocation{
		Filename: c.filename,
		Line:     pos.LineNumber(),
		Column:   pos.ColumnNumber(),
	}
	if pos.Line < len(c.sourceLines) {
		loc.Source = c.sourceLines[pos.Line]
	}
	c.instructions = append(c.instructions, instr)
	c.locations = append(c.locations, loc)
}
