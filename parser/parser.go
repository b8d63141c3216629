// Package parser is used to generate the abstract syntax tree (AST) for an
// expression.
//
// A parser is created by calling New() with a lexer as input. The parser
// should then be used only once, by calling parser.Parse() to produce the AST.
//
// The grammar is classic recursive descent with one method per precedence
// level:
//
//	expr   := term (('+' | '-') term)*
//	term   := factor (('*' | '/') factor)*
//	factor := INT | '(' expr ')' | '+' factor | '-' factor
package parser

import (
	"context"
	"fmt"
	"strconv"

	"github.com/abacus-io/abacus/ast"
	"github.com/abacus-io/abacus/lexer"
	"github.com/abacus-io/abacus/op"
	"github.com/abacus-io/abacus/token"
)

// DefaultMaxDepth is the default maximum nesting depth for parsing.
const DefaultMaxDepth = 500

// Parse the provided input as an Abacus expression and return the AST. This
// is a shorthand way to create a Lexer and Parser and then call Parse on that.
func Parse(ctx context.Context, input string, options ...Option) (ast.Expr, error) {
	return New(lexer.New(input), options...).Parse(ctx)
}

// Option is a configuration function for a Parser.
type Option func(*Parser)

// WithFilename sets the file name used in error locations.
func WithFilename(filename string) Option {
	return func(p *Parser) {
		p.filename = filename
	}
}

// WithMaxDepth sets the maximum nesting depth for the parser.
// This prevents stack overflow on deeply nested input.
// The default is 500.
func WithMaxDepth(depth int) Option {
	return func(p *Parser) {
		p.maxDepth = depth
	}
}

// Parser object
type Parser struct {
	// the Context supplied in the Parse() call
	ctx context.Context

	// l is our lexer
	l *lexer.Lexer

	// curToken is the one token of lookahead
	curToken token.Token

	// lexErr is set when the lexer failed to produce curToken
	lexErr error

	// The filename of the input
	filename string

	// Current recursion depth
	depth int

	// Maximum allowed recursion depth
	maxDepth int
}

// New returns a Parser for the expression provided by the given Lexer.
func New(l *lexer.Lexer, options ...Option) *Parser {
	p := &Parser{l: l, maxDepth: DefaultMaxDepth}
	for _, opt := range options {
		opt(p)
	}
	if p.filename != "" {
		l.SetFilename(p.filename)
	}
	// Prime the token pump. A lexer error here is reported by Parse.
	p.curToken, p.lexErr = l.Next()
	return p
}

// Parse the expression that is provided via the lexer. Exactly one expression
// is consumed and the token stream must then be exhausted: trailing tokens
// after a complete expression are a syntax error.
func (p *Parser) Parse(ctx context.Context) (ast.Expr, error) {
	p.ctx = ctx
	if p.lexErr != nil {
		return nil, p.lexErr
	}
	expr, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if p.curToken.Type != token.EOF {
		return nil, p.tokenError(p.curToken, "unexpected trailing input: %s",
			tokenDescription(p.curToken))
	}
	return expr, nil
}

// next advances to the next token from the lexer. Lexer errors abort the
// parse and propagate unmodified, so the caller of Parse can distinguish
// lexical errors from syntax errors.
func (p *Parser) next() error {
	p.curToken, p.lexErr = p.l.Next()
	return p.lexErr
}

// expect consumes the current token if it has the given type and otherwise
// fails with a syntax error.
func (p *Parser) expect(typ token.Type) (token.Token, error) {
	if p.curToken.Type != typ {
		return token.Token{}, p.tokenError(p.curToken, "expected %s, got %s",
			tokenTypeDescription(typ), tokenDescription(p.curToken))
	}
	tok := p.curToken
	if err := p.next(); err != nil {
		return token.Token{}, err
	}
	return tok, nil
}

// parseExpr implements: expr := term (('+' | '-') term)*
func (p *Parser) parseExpr() (ast.Expr, error) {
	if err := p.ctx.Err(); err != nil {
		return nil, err
	}
	left, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	for p.curToken.Type == token.PLUS || p.curToken.Type == token.MINUS {
		opTok := p.curToken
		if err := p.next(); err != nil {
			return nil, err
		}
		right, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		left = &ast.Infix{
			X:     left,
			OpPos: opTok.StartPosition,
			Op:    opcodeFor(opTok.Type),
			Y:     right,
		}
	}
	return left, nil
}

// parseTerm implements: term := factor (('*' | '/') factor)*
func (p *Parser) parseTerm() (ast.Expr, error) {
	left, err := p.parseFactor()
	if err != nil {
		return nil, err
	}
	for p.curToken.Type == token.ASTERISK || p.curToken.Type == token.SLASH {
		opTok := p.curToken
		if err := p.next(); err != nil {
			return nil, err
		}
		right, err := p.parseFactor()
		if err != nil {
			return nil, err
		}
		left = &ast.Infix{
			X:     left,
			OpPos: opTok.StartPosition,
			Op:    opcodeFor(opTok.Type),
			Y:     right,
		}
	}
	return left, nil
}

// parseFactor implements: factor := INT | '(' expr ')' | '+' factor | '-' factor
func (p *Parser) parseFactor() (ast.Expr, error) {
	p.depth++
	defer func() { p.depth-- }()
	if p.depth > p.maxDepth {
		return nil, p.tokenError(p.curToken, "exceeded maximum expression depth (%d)", p.maxDepth)
	}
	switch p.curToken.Type {
	case token.INT:
		return p.parseInt()
	case token.LPAREN:
		if err := p.next(); err != nil {
			return nil, err
		}
		expr, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.RPAREN); err != nil {
			return nil, err
		}
		return expr, nil
	case token.PLUS:
		// Unary plus contributes nothing: the operand subtree is returned
		// unchanged, with no AST node inserted.
		if err := p.next(); err != nil {
			return nil, err
		}
		return p.parseFactor()
	case token.MINUS:
		// Unary minus is rewritten as subtraction from zero, so negation
		// needs no opcode of its own.
		opTok := p.curToken
		if err := p.next(); err != nil {
			return nil, err
		}
		operand, err := p.parseFactor()
		if err != nil {
			return nil, err
		}
		return &ast.Infix{
			X:     &ast.Int{ValuePos: opTok.StartPosition, Literal: "0", Value: 0},
			OpPos: opTok.StartPosition,
			Op:    op.Sub,
			Y:     operand,
		}, nil
	default:
		return nil, p.tokenError(p.curToken, "expected an expression, got %s",
			tokenDescription(p.curToken))
	}
}

func (p *Parser) parseInt() (ast.Expr, error) {
	tok := p.curToken
	value, err := strconv.ParseInt(tok.Literal, 10, 64)
	if err != nil {
		return nil, p.tokenError(tok, "invalid integer literal %q", tok.Literal)
	}
	if err := p.next(); err != nil {
		return nil, err
	}
	return &ast.Int{ValuePos: tok.StartPosition, Literal: tok.Literal, Value: value}, nil
}

// tokenError builds a SyntaxError located at the given token.
func (p *Parser) tokenError(tok token.Token, format string, args ...any) error {
	return NewSyntaxError(ErrorOpts{
		Message:       fmt.Sprintf(format, args...),
		File:          p.l.Filename(),
		StartPosition: tok.StartPosition,
		EndPosition:   tok.EndPosition,
		SourceCode:    p.l.GetLineText(tok),
	})
}

// opcodeFor maps an operator token to the shared operator enum. Token types
// never travel past the parser.
func opcodeFor(t token.Type) op.Code {
	switch t {
	case token.PLUS:
		return op.Add
	case token.MINUS:
		return op.Sub
	case token.ASTERISK:
		return op.Mul
	case token.SLASH:
		return op.Div
	default:
		return op.Invalid
	}
}
