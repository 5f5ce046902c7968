package parser

// Lexer messages
const (
	ErrInvalidChar        = "invalid character %q"
	ErrUnrecognizedChar   = "unrecognized character %q"
	ErrUnterminatedString = "unterminated string literal"
)

// Parser messages
const (
	ErrExpectedKeyword      = "expected %s keyword, found %s"
	ErrExpectedStar         = "expected '*' after SELECT, found %s"
	ErrExpectedCloseParen   = "expected closing parenthesis, found %s"
	ErrUnexpectedToken      = "unexpected token %s"
	ErrUnexpectedEndOfInput = "unexpected end of input"
	ErrInvalidNumber        = "invalid number literal %q"
)
