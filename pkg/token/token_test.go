package token

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLookupIdent(t *testing.T) {
	tests := []struct {
		word string
		want TokenType
	}{
		{"IMPORT", IMPORT},
		{"FROM", FROM},
		{"SELECT", SELECT},
		{"WHERE", WHERE},
		{"AND", AND},
		{"OR", OR},
		{"TRUE", TRUE},
		{"FALSE", FALSE},
		{"amount", IDENT},
		{"select", IDENT}, // callers uppercase before lookup
	}

	for _, tt := range tests {
		t.Run(tt.word, func(t *testing.T) {
			assert.Equal(t, tt.want, LookupIdent(tt.word))
		})
	}
}

func TestKeywordsAreAllReserved(t *testing.T) {
	for _, kw := range Keywords() {
		typ := LookupIdent(kw)
		assert.True(t, IsKeyword(typ), "%s should be a keyword", kw)
		assert.Equal(t, kw, typ.String())
	}
	assert.False(t, IsKeyword(IDENT))
	assert.False(t, IsKeyword(OPERATOR))
}

func TestTokenString(t *testing.T) {
	assert.Equal(t, "end of input", Token{Type: EOF}.String())
	assert.Equal(t, "keyword FROM", Token{Type: FROM, Literal: "FROM"}.String())
	assert.Equal(t, `identifier "file"`, Token{Type: IDENT, Literal: "file"}.String())
	assert.Equal(t, "string 'data.csv'", Token{Type: STRING, Literal: "data.csv"}.String())
	assert.Equal(t, `operator "<="`, Token{Type: OPERATOR, Literal: "<="}.String())
	assert.Equal(t, "TOKEN(999)", TokenType(999).String())
}

func TestPositionString(t *testing.T) {
	assert.Equal(t, "-", Position{}.String())
	assert.Equal(t, "2:7", Position{Line: 2, Column: 7, Offset: 12}.String())
}
