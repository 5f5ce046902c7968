package core

import (
	"errors"
	"fmt"

	"github.com/leapstack-labs/csvql/pkg/token"
)

// ErrorKind classifies a failure by the pipeline stage that produced it.
type ErrorKind int

// ErrorKind constants, in pipeline order.
const (
	KindLex ErrorKind = iota + 1
	KindParse
	KindCodegen
	KindExecution
)

func (k ErrorKind) String() string {
	switch k {
	case KindLex:
		return "lex error"
	case KindParse:
		return "parse error"
	case KindCodegen:
		return "codegen error"
	case KindExecution:
		return "execution error"
	default:
		return fmt.Sprintf("error(%d)", int(k))
	}
}

// Error is the single error type returned by the compiler and the engine.
//
// Token is set for parse errors that point at an offending token and is nil
// for the end-of-input parse error. Pos locates lex and parse errors. Err holds
// the underlying cause of execution errors.
type Error struct {
	Kind    ErrorKind
	Message string
	Token   *token.Token
	Pos     token.Position
	Err     error
}

func (e *Error) Error() string {
	msg := e.Message
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s at line %d, column %d: %s", e.Kind, e.Pos.Line, e.Pos.Column, msg)
	}
	return fmt.Sprintf("%s: %s", e.Kind, msg)
}

// Unwrap returns the underlying cause, if any.
func (e *Error) Unwrap() error {
	return e.Err
}

// AtEnd reports whether this is the end-of-input parse error.
func (e *Error) AtEnd() bool {
	return e.Kind == KindParse && e.Token == nil
}

// IsKind reports whether err is (or wraps) a *Error of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == kind
}

// NewLexError builds a lex error at pos.
func NewLexError(pos token.Position, format string, args ...any) *Error {
	return &Error{Kind: KindLex, Message: fmt.Sprintf(format, args...), Pos: pos}
}

// NewParseError builds a parse error pointing at tok. A nil tok produces the
// end-of-input error.
func NewParseError(tok *token.Token, format string, args ...any) *Error {
	e := &Error{Kind: KindParse, Message: fmt.Sprintf(format, args...)}
	if tok != nil {
		t := *tok
		e.Token = &t
		e.Pos = t.Pos
	}
	return e
}

// NewCodegenError builds a codegen error for node.
func NewCodegenError(node Node, format string, args ...any) *Error {
	e := &Error{Kind: KindCodegen, Message: fmt.Sprintf(format, args...)}
	if node != nil {
		e.Pos = node.Pos()
	}
	return e
}

// NewExecutionError wraps a read or decode failure.
func NewExecutionError(err error, format string, args ...any) *Error {
	return &Error{Kind: KindExecution, Message: fmt.Sprintf(format, args...), Err: err}
}
