package ast

import (
	"github.com/abacus-io/abacus/token"
)

// Int is an expression node that holds an integer literal.
type Int struct {
	ValuePos token.Position // position of the literal
	Literal  string         // the literal text (e.g., "42")
	Value    int64          // the parsed value
}

func (x *Int) exprNode() {}

func (x *Int) Pos() token.Position { return x.ValuePos }
func (x *Int) End() token.Position { return x.ValuePos.Advance(len(x.Literal)) }

func (x *Int) String() string { return x.Literal }
