package parser

import (
	"unicode/utf8"

	"github.com/leapstack-labs/csvql/pkg/core"
	"github.com/leapstack-labs/csvql/pkg/token"
)

// Lexer tokenizes query text. All scan state lives on the Lexer value, so
// separate queries never share a cursor.
type Lexer struct {
	input   string
	pos     int  // current position in input
	readPos int  // reading position (after current char)
	ch      byte // current char under examination
	line    int  // line of ch (1-based)
	col     int  // column of ch (1-based)
}

// NewLexer creates a new Lexer for the given input.
func NewLexer(input string) *Lexer {
	l := &Lexer{
		input: input,
		line:  1,
		col:   0,
	}
	l.readChar()
	return l
}

// readChar advances to the next character.
func (l *Lexer) readChar() {
	if l.pos < len(l.input) && l.readPos > 0 && l.ch == '\n' {
		l.line++
		l.col = 0
	}
	if l.readPos >= len(l.input) {
		l.ch = 0
	} else {
		l.ch = l.input[l.readPos]
	}
	l.pos = l.readPos
	l.readPos++
	l.col++
}

// peekChar returns the next character without advancing.
func (l *Lexer) peekChar() byte {
	if l.readPos >= len(l.input) {
		return 0
	}
	return l.input[l.readPos]
}

// atEOF reports whether the whole input has been consumed. A NUL byte inside
// the input is not end of input.
func (l *Lexer) atEOF() bool {
	return l.pos >= len(l.input)
}

// currentPos returns the position of the current character.
func (l *Lexer) currentPos() token.Position {
	return token.Position{
		Line:   l.line,
		Column: l.col,
		Offset: l.pos,
	}
}

// NextToken returns the next token, an EOF token once the input is consumed,
// or a lex error.
func (l *Lexer) NextToken() (token.Token, error) {
	l.skipWhitespace()

	pos := l.currentPos()
	if l.atEOF() {
		return token.Token{Type: token.EOF, Pos: pos}, nil
	}

	if isInvalid(l.ch) {
		return token.Token{}, core.NewLexError(pos, ErrInvalidChar, rune(l.ch))
	}

	// Two-character operators win over their one-character prefixes.
	if l.peekChar() == '=' && (l.ch == '!' || l.ch == '<' || l.ch == '>') {
		lit := l.input[l.pos : l.pos+2]
		l.readChar()
		l.readChar()
		return token.Token{Type: token.OPERATOR, Literal: lit, Pos: pos}, nil
	}

	switch {
	case isIdentStart(l.ch):
		lit := l.readIdentifier()
		upper := toUpperASCII(lit)
		if typ := token.LookupIdent(upper); typ != token.IDENT {
			return token.Token{Type: typ, Literal: upper, Pos: pos}, nil
		}
		return token.Token{Type: token.IDENT, Literal: lit, Pos: pos}, nil

	case isDigit(l.ch):
		return token.Token{Type: token.NUMBER, Literal: l.readNumber(), Pos: pos}, nil

	case l.ch == '\'':
		lit, ok := l.readString()
		if !ok {
			return token.Token{}, core.NewLexError(pos, ErrUnterminatedString)
		}
		return token.Token{Type: token.STRING, Literal: lit, Pos: pos}, nil

	case l.ch == '(':
		l.readChar()
		return token.Token{Type: token.LPAREN, Literal: "(", Pos: pos}, nil

	case l.ch == ')':
		l.readChar()
		return token.Token{Type: token.RPAREN, Literal: ")", Pos: pos}, nil

	case isOperator(l.ch):
		lit := string(l.ch)
		l.readChar()
		return token.Token{Type: token.OPERATOR, Literal: lit, Pos: pos}, nil
	}

	r, _ := utf8.DecodeRuneInString(l.input[l.pos:])
	return token.Token{}, core.NewLexError(pos, ErrUnrecognizedChar, r)
}

// skipWhitespace skips space, tab, newline, carriage return and vertical tab.
func (l *Lexer) skipWhitespace() {
	for !l.atEOF() && (l.ch == ' ' || l.ch == '\t' || l.ch == '\n' || l.ch == '\r' || l.ch == '\v') {
		l.readChar()
	}
}

// readIdentifier reads a run of letters, digits and underscores.
func (l *Lexer) readIdentifier() string {
	start := l.pos
	for !l.atEOF() && (isIdentStart(l.ch) || isDigit(l.ch)) {
		l.readChar()
	}
	return l.input[start:l.pos]
}

// readNumber reads digits with at most one decimal point. A second point is
// left for the next token, where it fails as an unrecognized character.
func (l *Lexer) readNumber() string {
	start := l.pos
	seenDot := false
	for !l.atEOF() {
		switch {
		case isDigit(l.ch):
		case l.ch == '.' && !seenDot:
			seenDot = true
		default:
			return l.input[start:l.pos]
		}
		l.readChar()
	}
	return l.input[start:l.pos]
}

// readString reads a single-quoted string verbatim; there are no escapes.
// It returns false when the input ends before the closing quote.
func (l *Lexer) readString() (string, bool) {
	l.readChar() // skip opening quote
	start := l.pos
	for !l.atEOF() {
		if l.ch == '\'' {
			lit := l.input[start:l.pos]
			l.readChar() // skip closing quote
			return lit, true
		}
		l.readChar()
	}
	return "", false
}

// isInvalid reports characters the language rejects outright.
func isInvalid(ch byte) bool {
	return ch == '"' || ch == ';' || ch == '{' || ch == '}'
}

// isOperator reports single-character binary operators.
func isOperator(ch byte) bool {
	switch ch {
	case '=', '<', '>', '&', '|', '+', '-', '*', '/':
		return true
	}
	return false
}

// isIdentStart returns true if ch can start an identifier.
func isIdentStart(ch byte) bool {
	return ch == '_' || (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}

// isDigit returns true if ch is a digit.
func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func toUpperASCII(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'a' && c <= 'z' {
			b[i] = c - 'a' + 'A'
		}
	}
	return string(b)
}

// Tokenize returns all tokens of the input in source order, without a
// trailing EOF token. The first lex error aborts tokenization.
func Tokenize(input string) ([]token.Token, error) {
	l := NewLexer(input)
	var tokens []token.Token
	for {
		tok, err := l.NextToken()
		if err != nil {
			return nil, err
		}
		if tok.Type == token.EOF {
			return tokens, nil
		}
		tokens = append(tokens, tok)
	}
}
