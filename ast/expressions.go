package ast

import (
	"bytes"

	"github.com/abacus-io/abacus/op"
	"github.com/abacus-io/abacus/token"
)

// Infix is an operator expression where the operator is between the operands.
// Examples include "x + y" and "5 - 1". The operator is identified by its
// opcode rather than by its lexical token, so downstream stages never inspect
// token types.
type Infix struct {
	X     Expr           // left operand
	OpPos token.Position // position of operator
	Op    op.Code        // operator: op.Add, op.Sub, op.Mul, or op.Div
	Y     Expr           // right operand
}

func (x *Infix) exprNode() {}

func (x *Infix) Pos() token.Position { return x.X.Pos() }
func (x *Infix) End() token.Position { return x.Y.End() }

func (x *Infix) String() string {
	var out bytes.Buffer
	out.WriteString("(")
	out.WriteString(x.X.String())
	out.WriteString(" " + x.Op.Symbol() + " ")
	out.WriteString(x.Y.String())
	out.WriteString(")")
	return out.String()
}
