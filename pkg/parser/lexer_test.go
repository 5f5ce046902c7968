package parser_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/csvql/pkg/core"
	"github.com/leapstack-labs/csvql/pkg/parser"
	"github.com/leapstack-labs/csvql/pkg/token"
)

type tokenSpec struct {
	typ token.TokenType
	lit string
}

func specsOf(tokens []token.Token) []tokenSpec {
	out := make([]tokenSpec, len(tokens))
	for i, tok := range tokens {
		out[i] = tokenSpec{typ: tok.Type, lit: tok.Literal}
	}
	return out
}

func TestTokenize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []tokenSpec
	}{
		{
			name:  "import statement",
			input: "IMPORT file FROM 'data.csv'",
			want: []tokenSpec{
				{token.IMPORT, "IMPORT"},
				{token.IDENT, "file"},
				{token.FROM, "FROM"},
				{token.STRING, "data.csv"},
			},
		},
		{
			name:  "keywords are case insensitive",
			input: "select * from Users where a and b or c",
			want: []tokenSpec{
				{token.SELECT, "SELECT"},
				{token.OPERATOR, "*"},
				{token.FROM, "FROM"},
				{token.IDENT, "Users"},
				{token.WHERE, "WHERE"},
				{token.IDENT, "a"},
				{token.AND, "AND"},
				{token.IDENT, "b"},
				{token.OR, "OR"},
				{token.IDENT, "c"},
			},
		},
		{
			name:  "two character operators",
			input: "a<=1 b>=2 c!=3 d<e>f",
			want: []tokenSpec{
				{token.IDENT, "a"}, {token.OPERATOR, "<="}, {token.NUMBER, "1"},
				{token.IDENT, "b"}, {token.OPERATOR, ">="}, {token.NUMBER, "2"},
				{token.IDENT, "c"}, {token.OPERATOR, "!="}, {token.NUMBER, "3"},
				{token.IDENT, "d"}, {token.OPERATOR, "<"}, {token.IDENT, "e"},
				{token.OPERATOR, ">"}, {token.IDENT, "f"},
			},
		},
		{
			name:  "single character operators",
			input: "= & | + - * /",
			want: []tokenSpec{
				{token.OPERATOR, "="}, {token.OPERATOR, "&"}, {token.OPERATOR, "|"},
				{token.OPERATOR, "+"}, {token.OPERATOR, "-"}, {token.OPERATOR, "*"},
				{token.OPERATOR, "/"},
			},
		},
		{
			name:  "numbers and parens",
			input: "(12.5 + 3)",
			want: []tokenSpec{
				{token.LPAREN, "("}, {token.NUMBER, "12.5"}, {token.OPERATOR, "+"},
				{token.NUMBER, "3"}, {token.RPAREN, ")"},
			},
		},
		{
			name:  "strings are verbatim",
			input: "'  Mixed Case, with spaces '",
			want:  []tokenSpec{{token.STRING, "  Mixed Case, with spaces "}},
		},
		{
			name:  "booleans",
			input: "true FALSE",
			want:  []tokenSpec{{token.TRUE, "TRUE"}, {token.FALSE, "FALSE"}},
		},
		{
			name:  "identifier with digits and underscores",
			input: "_col_2",
			want:  []tokenSpec{{token.IDENT, "_col_2"}},
		},
		{
			name:  "whitespace only",
			input: " \t\r\n\v ",
			want:  []tokenSpec{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens, err := parser.Tokenize(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, specsOf(tokens))
		})
	}
}

func TestTokenize_Empty(t *testing.T) {
	tokens, err := parser.Tokenize("")
	require.NoError(t, err)
	assert.Empty(t, tokens)
}

func TestTokenize_Positions(t *testing.T) {
	tokens, err := parser.Tokenize("IMPORT a\n  FROM 'x'")
	require.NoError(t, err)
	require.Len(t, tokens, 4)

	assert.Equal(t, token.Position{Line: 1, Column: 1, Offset: 0}, tokens[0].Pos)
	assert.Equal(t, token.Position{Line: 1, Column: 8, Offset: 7}, tokens[1].Pos)
	assert.Equal(t, token.Position{Line: 2, Column: 3, Offset: 11}, tokens[2].Pos)
	assert.Equal(t, token.Position{Line: 2, Column: 8, Offset: 16}, tokens[3].Pos)
}

func TestTokenize_Errors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantMsg string
	}{
		{"double quote", `SELECT * FROM "x"`, `invalid character '"'`},
		{"semicolon", "SELECT * FROM x;", "invalid character ';'"},
		{"open brace", "{", "invalid character '{'"},
		{"close brace", "}", "invalid character '}'"},
		{"unterminated string", "IMPORT a FROM 'data.csv", "unterminated string literal"},
		{"unrecognized character", "a # b", "unrecognized character '#'"},
		{"lone bang", "a ! b", "unrecognized character '!'"},
		{"second decimal point", "1.2.3", "unrecognized character '.'"},
		{"non ascii", "é", "unrecognized character 'é'"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens, err := parser.Tokenize(tt.input)
			require.Error(t, err)
			assert.Nil(t, tokens)
			assert.True(t, core.IsKind(err, core.KindLex), "expected lex error, got %v", err)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestTokenize_ErrorPosition(t *testing.T) {
	_, err := parser.Tokenize("SELECT\n  ;")
	require.Error(t, err)

	var cerr *core.Error
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, 2, cerr.Pos.Line)
	assert.Equal(t, 3, cerr.Pos.Column)
}
