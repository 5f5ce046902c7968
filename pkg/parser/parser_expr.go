package parser

import (
	"strconv"

	"github.com/leapstack-labs/csvql/pkg/core"
	"github.com/leapstack-labs/csvql/pkg/token"
)

// Binary expression folding.
//
// Every operator is consumed by the same left-associative loop. Operators bind
// with the following strengths (lowest first), so that a condition such as
// a = '1' AND b = '2' folds into AND(a = '1', b = '2'):
//
//	PrecedenceOr       = 1  OR
//	PrecedenceAnd      = 2  AND
//	PrecedenceBitOr    = 3  |
//	PrecedenceBitAnd   = 4  &
//	PrecedenceEquality = 5  =, !=
//	PrecedenceCompare  = 6  <, <=, >, >=
//	PrecedenceAddition = 7  +, -
//	PrecedenceMultiply = 8  *, /

// Precedence constants for operator folding.
const (
	PrecedenceNone = iota
	PrecedenceOr
	PrecedenceAnd
	PrecedenceBitOr
	PrecedenceBitAnd
	PrecedenceEquality
	PrecedenceCompare
	PrecedenceAddition
	PrecedenceMultiply
)

// Precedence returns the binding strength of tok as a binary operator, or
// PrecedenceNone when tok is not an operator.
func Precedence(tok token.Token) int {
	switch tok.Type {
	case token.OR:
		return PrecedenceOr
	case token.AND:
		return PrecedenceAnd
	case token.OPERATOR:
		switch tok.Literal {
		case "|":
			return PrecedenceBitOr
		case "&":
			return PrecedenceBitAnd
		case "=", "!=":
			return PrecedenceEquality
		case "<", "<=", ">", ">=":
			return PrecedenceCompare
		case "+", "-":
			return PrecedenceAddition
		case "*", "/":
			return PrecedenceMultiply
		}
	}
	return PrecedenceNone
}

// parseBinaryExpr parses expression (operator expression)*.
func parseBinaryExpr(c cursor) (core.Expr, cursor, error) {
	return parseBinaryExprWithPrecedence(c, PrecedenceOr)
}

// parseBinaryExprWithPrecedence folds operators whose precedence is at least
// minPrecedence, left to right.
func parseBinaryExprWithPrecedence(c cursor, minPrecedence int) (core.Expr, cursor, error) {
	left, c, err := parseExpression(c)
	if err != nil {
		return nil, c, err
	}

	for {
		op, ok := c.current()
		if !ok {
			break
		}
		prec := Precedence(op)
		if prec == PrecedenceNone || prec < minPrecedence {
			break
		}

		right, next, err := parseBinaryExprWithPrecedence(c.advance(), prec+1)
		if err != nil {
			return nil, c, err
		}

		left = &core.BinaryExpr{Left: left, Op: op.Literal, Right: right}
		c = next
	}

	return left, c, nil
}

// parseExpression parses a single operand.
//
//	expression → NUMBER | STRING | TRUE | FALSE | IDENT | '(' binaryExpr ')'
func parseExpression(c cursor) (core.Expr, cursor, error) {
	tok, ok := c.current()
	if !ok {
		return nil, c, endOfInput(ErrUnexpectedEndOfInput)
	}

	switch tok.Type {
	case token.NUMBER:
		v, err := strconv.ParseFloat(tok.Literal, 64)
		if err != nil {
			return nil, c, core.NewParseError(&tok, ErrInvalidNumber, tok.Literal)
		}
		return &core.NumberLiteral{Value: v, Start: tok.Pos}, c.advance(), nil

	case token.STRING:
		return &core.StringLiteral{Value: tok.Literal, Start: tok.Pos}, c.advance(), nil

	case token.TRUE:
		return &core.BooleanLiteral{Value: true, Start: tok.Pos}, c.advance(), nil

	case token.FALSE:
		return &core.BooleanLiteral{Value: false, Start: tok.Pos}, c.advance(), nil

	case token.IDENT:
		return &core.Identifier{Name: tok.Literal, Start: tok.Pos}, c.advance(), nil

	case token.LPAREN:
		inner, next, err := parseBinaryExpr(c.advance())
		if err != nil {
			return nil, c, err
		}
		closing, ok := next.current()
		if !ok {
			return nil, next, endOfInput(ErrExpectedCloseParen, "end of input")
		}
		if closing.Type != token.RPAREN {
			return nil, next, core.NewParseError(&closing, ErrExpectedCloseParen, closing)
		}
		return inner, next.advance(), nil
	}

	return nil, c, core.NewParseError(&tok, ErrUnexpectedToken, tok)
}
