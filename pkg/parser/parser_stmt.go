package parser

import (
	"github.com/leapstack-labs/csvql/pkg/core"
	"github.com/leapstack-labs/csvql/pkg/token"
)

// Statement parsing.
//
// Grammar:
//
//	statement   → importStmt | selectStmt
//	importStmt  → IMPORT expression FROM expression
//	selectStmt  → SELECT '*' FROM expression [whereClause]
//	whereClause → WHERE binaryExpr

// parseStatement dispatches on the leading keyword.
func parseStatement(c cursor) (core.Node, cursor, error) {
	tok, ok := c.current()
	if !ok {
		return nil, c, endOfInput(ErrUnexpectedEndOfInput)
	}

	switch tok.Type {
	case token.IMPORT:
		return parseImportStmt(c)
	case token.SELECT:
		return parseSelectStmt(c)
	default:
		return nil, c, core.NewParseError(&tok, ErrUnexpectedToken, tok)
	}
}

// parseImportStmt parses IMPORT expression FROM expression.
func parseImportStmt(c cursor) (*core.ImportStmt, cursor, error) {
	start, _ := c.current()
	c, err := c.expectKeyword(token.IMPORT)
	if err != nil {
		return nil, c, err
	}

	name, c, err := parseExpression(c)
	if err != nil {
		return nil, c, err
	}

	c, err = c.expectKeyword(token.FROM)
	if err != nil {
		return nil, c, err
	}

	source, c, err := parseExpression(c)
	if err != nil {
		return nil, c, err
	}

	return &core.ImportStmt{Name: name, Source: source, Start: start.Pos}, c, nil
}

// parseSelectStmt parses SELECT '*' FROM expression [WHERE binaryExpr].
func parseSelectStmt(c cursor) (*core.SelectStmt, cursor, error) {
	start, _ := c.current()
	c, err := c.expectKeyword(token.SELECT)
	if err != nil {
		return nil, c, err
	}

	// '*' is lexed as an operator; only its text makes it the wildcard.
	star, ok := c.current()
	if !ok {
		return nil, c, endOfInput(ErrExpectedStar, "end of input")
	}
	if star.Type != token.OPERATOR || star.Literal != "*" {
		return nil, c, core.NewParseError(&star, ErrExpectedStar, star)
	}
	c = c.advance()

	c, err = c.expectKeyword(token.FROM)
	if err != nil {
		return nil, c, err
	}

	source, c, err := parseExpression(c)
	if err != nil {
		return nil, c, err
	}

	stmt := &core.SelectStmt{Source: source, Start: start.Pos}

	if c.check(token.WHERE) {
		where, next, err := parseWhereClause(c)
		if err != nil {
			return nil, c, err
		}
		stmt.Where = where
		c = next
	}

	return stmt, c, nil
}

// parseWhereClause parses WHERE binaryExpr.
func parseWhereClause(c cursor) (*core.WhereClause, cursor, error) {
	start, _ := c.current()
	c, err := c.expectKeyword(token.WHERE)
	if err != nil {
		return nil, c, err
	}

	cond, c, err := parseBinaryExpr(c)
	if err != nil {
		return nil, c, err
	}

	return &core.WhereClause{Condition: cond, Start: start.Pos}, c, nil
}
