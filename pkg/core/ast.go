package core

import (
	"strings"

	"github.com/leapstack-labs/csvql/pkg/token"
)

// Node is the base interface for all AST nodes.
type Node interface {
	// Pos returns the position of the token that started the node.
	Pos() token.Position
	// String renders the node as an s-expression.
	String() string
}

// Expr is a marker interface for expression nodes.
type Expr interface {
	Node
	exprNode() // Marker method to distinguish expressions
}

// Program is the ordered forest of top-level statements produced by the parser.
// The parser only ever emits *ImportStmt and *SelectStmt; the element type is
// Node so consumers must handle (and reject) anything else.
type Program []Node

// String renders one statement per line.
func (p Program) String() string {
	lines := make([]string, len(p))
	for i, n := range p {
		lines[i] = n.String()
	}
	return strings.Join(lines, "\n")
}
