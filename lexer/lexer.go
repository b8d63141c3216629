// Package lexer provides the lexical scanner that converts Abacus source code
// into a stream of tokens.
package lexer

import (
	"github.com/abacus-io/abacus/token"
)

// Option is a configuration function for a Lexer.
type Option func(*Lexer)

// WithFile sets the filename stamped onto token positions.
func WithFile(filename string) Option {
	return func(l *Lexer) {
		l.file = filename
	}
}

// Lexer scans an input string and produces tokens on demand. Once the input
// is exhausted, Next returns an EOF token on every subsequent call.
type Lexer struct {
	input     []rune
	position  int  // index of the current rune
	char      rune // current rune under examination; 0 when exhausted
	line      int  // 0-indexed line of the current rune
	lineStart int  // rune offset of the start of the current line
	file      string
}

// New returns a Lexer for the given input.
func New(input string, options ...Option) *Lexer {
	l := &Lexer{input: []rune(input), position: -1}
	for _, opt := range options {
		opt(l)
	}
	l.readChar()
	return l
}

// Filename returns the filename associated with the input, if any.
func (l *Lexer) Filename() string {
	return l.file
}

// SetFilename sets the filename stamped onto token positions.
func (l *Lexer) SetFilename(filename string) {
	l.file = filename
}

// Position returns the position of the rune the Lexer is currently on.
func (l *Lexer) Position() token.Position {
	return token.Position{
		Char:      l.position,
		LineStart: l.lineStart,
		Line:      l.line,
		Column:    l.position - l.lineStart,
		File:      l.file,
	}
}

// Next returns the next token in the input. At the end of the input an EOF
// token is returned, from then on forever. A non-nil error is returned
// together with an ILLEGAL token when an unrecognized character is found.
func (l *Lexer) Next() (token.Token, error) {
	l.skipWhitespace()
	var tok token.Token
	switch l.char {
	case 0:
		pos := l.Position()
		return token.Token{Type: token.EOF, StartPosition: pos, EndPosition: pos}, nil
	case '+':
		tok = l.charToken(token.PLUS)
	case '-':
		tok = l.charToken(token.MINUS)
	case '*':
		tok = l.charToken(token.ASTERISK)
	case '/':
		tok = l.charToken(token.SLASH)
	case '(':
		tok = l.charToken(token.LPAREN)
	case ')':
		tok = l.charToken(token.RPAREN)
	default:
		if isDigit(l.char) {
			return l.readInteger(), nil
		}
		return l.illegalToken()
	}
	return tok, nil
}

// GetLineText returns the text of the line that contains the given token.
// For an EOF token that falls on an empty final line, the previous line is
// returned as context.
func (l *Lexer) GetLineText(tok token.Token) string {
	start := tok.StartPosition.LineStart
	if start > len(l.input) {
		start = len(l.input)
	}
	end := start
	for end < len(l.input) && l.input[end] != '\n' {
		end++
	}
	if start == end && start > 0 && tok.Type == token.EOF {
		prevEnd := start - 1
		prevStart := prevEnd
		for prevStart > 0 && l.input[prevStart-1] != '\n' {
			prevStart--
		}
		return string(l.input[prevStart:prevEnd])
	}
	return string(l.input[start:end])
}

// readChar advances the Lexer to the next rune in the input.
func (l *Lexer) readChar() {
	if l.char == '\n' {
		l.line++
		l.lineStart = l.position + 1
	}
	l.position++
	if l.position >= len(l.input) {
		l.char = 0
		l.position = len(l.input)
	} else {
		l.char = l.input[l.position]
	}
}

func (l *Lexer) skipWhitespace() {
	for l.char == ' ' || l.char == '\t' || l.char == '\r' || l.char == '\n' {
		l.readChar()
	}
}

// charToken builds a single character token of the given type and advances.
func (l *Lexer) charToken(typ token.Type) token.Token {
	pos := l.Position()
	tok := token.Token{
		Type:          typ,
		Literal:       string(l.char),
		StartPosition: pos,
		EndPosition:   pos,
	}
	l.readChar()
	return tok
}

// readInteger consumes a greedy run of digits as one INT token.
func (l *Lexer) readInteger() token.Token {
	start := l.Position()
	for isDigit(l.char) {
		l.readChar()
	}
	literal := string(l.input[start.Char:l.position])
	return token.Token{
		Type:          token.INT,
		Literal:       literal,
		StartPosition: start,
		EndPosition:   start.Advance(len(literal) - 1),
	}
}

// illegalToken captures an unrecognized character as an ILLEGAL token and a
// lexical error, then advances past the character.
func (l *Lexer) illegalToken() (token.Token, error) {
	pos := l.Position()
	char := l.char
	tok := token.Token{
		Type:          token.ILLEGAL,
		Literal:       string(char),
		StartPosition: pos,
		EndPosition:   pos,
	}
	err := &Error{Char: char, Position: pos, LineText: l.GetLineText(tok)}
	l.readChar()
	return tok, err
}

func isDigit(ch rune) bool {
	return ch >= '0' && ch <= '9'
}
