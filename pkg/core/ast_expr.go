package core

import (
	"fmt"
	"strconv"

	"github.com/leapstack-labs/csvql/pkg/token"
)

// ---------- Expression Types ----------

// BinaryExpr represents a binary expression. Op holds the operator text as
// written (=, <=, +, ...) or the keyword AND / OR.
type BinaryExpr struct {
	Left  Expr
	Op    string
	Right Expr
}

func (*BinaryExpr) exprNode() {}

// Pos implements Node.
func (b *BinaryExpr) Pos() token.Position {
	if b.Left != nil {
		return b.Left.Pos()
	}
	return token.Position{}
}

func (b *BinaryExpr) String() string {
	return fmt.Sprintf("(%s %s %s)", b.Op, b.Left, b.Right)
}

// Identifier references a column, or an imported source name.
type Identifier struct {
	Name  string
	Start token.Position
}

func (*Identifier) exprNode() {}

// Pos implements Node.
func (i *Identifier) Pos() token.Position { return i.Start }

func (i *Identifier) String() string { return i.Name }

// StringLiteral is a single-quoted string.
type StringLiteral struct {
	Value string
	Start token.Position
}

func (*StringLiteral) exprNode() {}

// Pos implements Node.
func (s *StringLiteral) Pos() token.Position { return s.Start }

func (s *StringLiteral) String() string { return "'" + s.Value + "'" }

// NumberLiteral is a numeric literal, already converted to float64.
type NumberLiteral struct {
	Value float64
	Start token.Position
}

func (*NumberLiteral) exprNode() {}

// Pos implements Node.
func (n *NumberLiteral) Pos() token.Position { return n.Start }

func (n *NumberLiteral) String() string {
	return strconv.FormatFloat(n.Value, 'f', -1, 64)
}

// BooleanLiteral is TRUE or FALSE.
type BooleanLiteral struct {
	Value bool
	Start token.Position
}

func (*BooleanLiteral) exprNode() {}

// Pos implements Node.
func (b *BooleanLiteral) Pos() token.Position { return b.Start }

func (b *BooleanLiteral) String() string {
	if b.Value {
		return "TRUE"
	}
	return "FALSE"
}
