// Package ast defines the abstract syntax tree representation of Abacus code.
//
// The node set is a closed union: an expression is either an integer literal
// (Int) or a binary operation (Infix). The tree is built once by the parser
// and never mutated afterward.
package ast

import "github.com/abacus-io/abacus/token"

// Node represents a portion of the syntax tree. All nodes have position
// information indicating where they appear in the source code.
type Node interface {
	// Pos returns the position of the first character belonging to the node.
	Pos() token.Position

	// End returns the position of the first character immediately after the node.
	End() token.Position

	// String returns a human friendly representation of the Node. This should
	// be similar to the original source code, but not necessarily identical.
	String() string
}

// Expr represents an expression node. Expressions evaluate to a value
// and may be embedded within other expressions.
type Expr interface {
	Node
	exprNode()
}
