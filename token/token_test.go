package token

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPosition(t *testing.T) {
	tok := Token{
		Type:    INT,
		Literal: "42",
		StartPosition: Position{
			Line:   2,
			Column: 0,
		},
	}
	// Switches to 1-indexed
	require.Equal(t, 3, tok.StartPosition.LineNumber())
	require.Equal(t, 1, tok.StartPosition.ColumnNumber())
}

func TestPositionAdvance(t *testing.T) {
	pos := Position{Char: 10, LineStart: 8, Line: 1, Column: 2, File: "calc"}
	end := pos.Advance(3)
	require.Equal(t, Position{Char: 13, LineStart: 8, Line: 1, Column: 5, File: "calc"}, end)
}

func TestPositionIsValid(t *testing.T) {
	require.False(t, NoPos.IsValid())
	require.True(t, Position{Char: 1}.IsValid())
	require.True(t, Position{File: "calc"}.IsValid())
}
