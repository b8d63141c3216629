package parser

import (
	"fmt"

	"github.com/abacus-io/abacus/errz"
	"github.com/abacus-io/abacus/token"
)

// ErrorOpts is a struct that holds a variety of error data. All fields are
// optional, although one of `Cause` or `Message` are recommended. If `Cause`
// is set, `Message` will be ignored.
type ErrorOpts struct {
	ErrType       string
	Message       string
	Cause         error
	File          string
	StartPosition token.Position
	EndPosition   token.Position
	SourceCode    string
}

// NewParserError returns a new BaseParserError populated with the given
// error data.
func NewParserError(opts ErrorOpts) *BaseParserError {
	return &BaseParserError{
		errType:       opts.ErrType,
		message:       opts.Message,
		cause:         opts.Cause,
		file:          opts.File,
		startPosition: opts.StartPosition,
		endPosition:   opts.EndPosition,
		sourceCode:    opts.SourceCode,
	}
}

// ParserError is an interface that all parser errors implement.
type ParserError interface {
	Type() string
	Message() string
	Cause() error
	File() string
	StartPosition() token.Position
	EndPosition() token.Position
	SourceCode() string
	Error() string
	errz.FriendlyError
}

// BaseParserError is the simplest implementation of ParserError.
type BaseParserError struct {
	// Type of the error, e.g. "syntax error"
	errType string
	// The error message
	message string
	// The wrapped error
	cause error
	// File where the error occurred
	file string
	// Start position of the error in the input string
	startPosition token.Position
	// End position of the error in the input string
	endPosition token.Position
	// Relevant line of source code text
	sourceCode string
}

func (e *BaseParserError) Error() string {
	var msg string
	if e.cause != nil {
		msg = e.cause.Error()
	} else if e.message != "" {
		msg = e.message
	}
	if e.errType != "" {
		msg = fmt.Sprintf("%s: %s", e.errType, msg)
	}
	return msg
}

func (e *BaseParserError) FriendlyErrorMessage() string {
	formatter := errz.NewFormatter(false)
	return formatter.Format(e.ToFormatted())
}

// ToFormatted converts the parser error to a FormattedError for display.
func (e *BaseParserError) ToFormatted() *errz.FormattedError {
	start := e.StartPosition()
	end := e.EndPosition()

	message := e.message
	if e.cause != nil {
		message = e.cause.Error()
	}

	f := &errz.FormattedError{
		Kind:      e.errType,
		Message:   message,
		Filename:  e.file,
		Line:      start.LineNumber(),
		Column:    start.ColumnNumber(),
		EndColumn: end.ColumnNumber(),
	}
	if e.sourceCode != "" {
		f.SourceLines = []errz.SourceLineEntry{
			{Number: start.LineNumber(), Text: e.sourceCode, IsMain: true},
		}
	}
	return f
}

func (e *BaseParserError) Cause() error {
	return e.cause
}

func (e *BaseParserError) Message() string {
	return e.message
}

func (e *BaseParserError) StartPosition() token.Position {
	return e.startPosition
}

func (e *BaseParserError) EndPosition() token.Position {
	return e.endPosition
}

func (e *BaseParserError) File() string {
	return e.file
}

func (e *BaseParserError) SourceCode() string {
	return e.sourceCode
}

func (e *BaseParserError) Unwrap() error {
	return e.cause
}

func (e *BaseParserError) Type() string {
	return e.errType
}

// NewSyntaxError returns a new SyntaxError populated with the given error data.
func NewSyntaxError(opts ErrorOpts) *SyntaxError {
	opts.ErrType = "syntax error"
	return &SyntaxError{BaseParserError: NewParserError(opts)}
}

// SyntaxError indicates the input does not match the expression grammar.
type SyntaxError struct {
	*BaseParserError
}

func tokenDescription(t token.Token) string {
	switch t.Type {
	case token.EOF:
		return "end of input"
	default:
		if t.Literal == "" {
			return string(t.Type)
		}
		return fmt.Sprintf("%q", t.Literal)
	}
}

func tokenTypeDescription(t token.Type) string {
	switch t {
	case token.EOF:
		return "end of input"
	case token.INT:
		return "an integer"
	default:
		return fmt.Sprintf("%q", string(t))
	}
}
