package lexer

import (
	"fmt"

	"github.com/abacus-io/abacus/errz"
	"github.com/abacus-io/abacus/token"
)

// Error is a lexical error: the input contained a character outside the
// recognized set. It identifies the offending character and its position.
type Error struct {
	Char     rune           // the unrecognized character
	Position token.Position // where the character appears in the input
	LineText string         // the source line containing the character
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("unexpected character: %q (%d:%d)",
		e.Char, e.Position.LineNumber(), e.Position.ColumnNumber())
}

// FriendlyErrorMessage returns a human-friendly message with source context.
func (e *Error) FriendlyErrorMessage() string {
	return errz.NewFormatter(false).Format(e.ToFormatted())
}

// ToFormatted converts the error to a FormattedError for display.
func (e *Error) ToFormatted() *errz.FormattedError {
	f := &errz.FormattedError{
		Kind:     "lex error",
		Message:  fmt.Sprintf("unexpected character: %q", e.Char),
		Filename: e.Position.File,
		Line:     e.Position.LineNumber(),
		Column:   e.Position.ColumnNumber(),
	}
	if e.LineText != "" {
		f.SourceLines = []errz.SourceLineEntry{
			{Number: e.Position.LineNumber(), Text: e.LineText, IsMain: true},
		}
	}
	return f
}
