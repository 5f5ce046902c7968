// Package parser turns csvql query text into a core.Program.
//
// # Usage
//
//	prog, err := parser.ParseString("IMPORT file FROM 'data.csv' SELECT * FROM file")
//	if err != nil {
//	    // handle error (a *core.Error of kind KindLex or KindParse)
//	}
//
// # Grammar Overview
//
// The parser is a recursive descent parser with one token of lookahead:
//
//	program     → statement*
//	statement   → importStmt | selectStmt
//	importStmt  → IMPORT expression FROM expression
//	selectStmt  → SELECT '*' FROM expression [whereClause]
//	whereClause → WHERE binaryExpr
//	binaryExpr  → expression (operator expression)*
//	expression  → NUMBER | STRING | TRUE | FALSE | IDENT | '(' binaryExpr ')'
//	operator    → OPERATOR | AND | OR
//
// See each file for detailed grammar rules for that section.
//
// Parser state is a cursor value passed into every grammar function and
// returned with its result, so nothing is shared between two parses.
package parser

import (
	"github.com/leapstack-labs/csvql/pkg/core"
	"github.com/leapstack-labs/csvql/pkg/token"
)

// ParseString tokenizes and parses query text.
func ParseString(query string) (core.Program, error) {
	tokens, err := Tokenize(query)
	if err != nil {
		return nil, err
	}
	return Parse(tokens)
}

// Parse parses a token sequence into a program. On error no partial program
// is returned.
func Parse(tokens []token.Token) (core.Program, error) {
	c := cursor{tokens: tokens}
	var prog core.Program

	for !c.atEnd() {
		stmt, next, err := parseStatement(c)
		if err != nil {
			return nil, err
		}
		prog = append(prog, stmt)
		c = next
	}

	return prog, nil
}

// ---------- Cursor ----------

// cursor is the explicit parser state: the token slice and the index of the
// current token. Methods never modify the receiver.
type cursor struct {
	tokens []token.Token
	pos    int
}

// atEnd reports whether every token has been consumed.
func (c cursor) atEnd() bool {
	return c.pos >= len(c.tokens)
}

// current returns the current token, or false at end of input.
func (c cursor) current() (token.Token, bool) {
	if c.atEnd() {
		return token.Token{}, false
	}
	return c.tokens[c.pos], true
}

// check returns true if the current token is of the given type.
func (c cursor) check(t token.TokenType) bool {
	tok, ok := c.current()
	return ok && tok.Type == t
}

// advance returns a cursor positioned on the next token.
func (c cursor) advance() cursor {
	return cursor{tokens: c.tokens, pos: c.pos + 1}
}

// expectKeyword consumes the current token if it is the keyword t.
func (c cursor) expectKeyword(t token.TokenType) (cursor, error) {
	tok, ok := c.current()
	if !ok {
		return c, endOfInput(ErrExpectedKeyword, t, "end of input")
	}
	if tok.Type != t {
		return c, core.NewParseError(&tok, ErrExpectedKeyword, t, tok)
	}
	return c.advance(), nil
}

// endOfInput builds the parse error used when tokens run out mid-statement.
func endOfInput(format string, args ...any) error {
	return core.NewParseError(nil, format, args...)
}
