// Package token defines the token types produced by the csvql lexer.
package token

import "fmt"

// TokenType represents the type of a lexical token.
//
//nolint:revive // Accept stutter as token.TokenType is clear and widely used
type TokenType int32

const (
	// Special tokens
	EOF TokenType = iota
	ILLEGAL

	// Literals
	IDENT  // identifier
	NUMBER // 123, 45.67
	STRING // 'hello'

	// Operators and delimiters
	OPERATOR // = != < <= >= > & | + - * /
	LPAREN   // (
	RPAREN   // )

	// Keywords (alphabetical)
	AND
	FALSE
	FROM
	IMPORT
	OR
	SELECT
	TRUE
	WHERE
)

// String returns a human-readable representation of the token type.
func (t TokenType) String() string {
	if name, ok := tokenNames[t]; ok {
		return name
	}
	return fmt.Sprintf("TOKEN(%d)", t)
}

// tokenNames maps token types to their string representations.
var tokenNames = map[TokenType]string{
	EOF:     "EOF",
	ILLEGAL: "ILLEGAL",

	IDENT:  "IDENT",
	NUMBER: "NUMBER",
	STRING: "STRING",

	OPERATOR: "OPERATOR",
	LPAREN:   "(",
	RPAREN:   ")",

	AND:    "AND",
	FALSE:  "FALSE",
	FROM:   "FROM",
	IMPORT: "IMPORT",
	OR:     "OR",
	SELECT: "SELECT",
	TRUE:   "TRUE",
	WHERE:  "WHERE",
}

// keywords maps uppercase reserved words to their token types.
var keywords = map[string]TokenType{
	"AND":    AND,
	"FALSE":  FALSE,
	"FROM":   FROM,
	"IMPORT": IMPORT,
	"OR":     OR,
	"SELECT": SELECT,
	"TRUE":   TRUE,
	"WHERE":  WHERE,
}

// LookupIdent returns the keyword token type for an uppercased word,
// or IDENT when the word is not reserved.
func LookupIdent(upper string) TokenType {
	if tok, ok := keywords[upper]; ok {
		return tok
	}
	return IDENT
}

// Keywords returns the reserved words in declaration order.
func Keywords() []string {
	return []string{"IMPORT", "FROM", "SELECT", "WHERE", "AND", "OR", "TRUE", "FALSE"}
}

// IsKeyword returns true if the token type is a keyword.
func IsKeyword(t TokenType) bool {
	return t >= AND && t <= WHERE
}

// Token represents a lexical token with position information.
type Token struct {
	Type    TokenType
	Literal string
	Pos     Position
}

// String describes the token for error messages.
func (t Token) String() string {
	switch {
	case t.Type == EOF:
		return "end of input"
	case IsKeyword(t.Type):
		return "keyword " + t.Literal
	case t.Type == STRING:
		return fmt.Sprintf("string '%s'", t.Literal)
	case t.Type == IDENT:
		return fmt.Sprintf("identifier %q", t.Literal)
	case t.Type == NUMBER:
		return "number " + t.Literal
	case t.Type == OPERATOR:
		return fmt.Sprintf("operator %q", t.Literal)
	default:
		return fmt.Sprintf("%q", t.Literal)
	}
}
