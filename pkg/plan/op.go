package plan

import (
	"fmt"
	"strconv"

	"github.com/leapstack-labs/csvql/pkg/core"
)

// OpKind identifies the operation an Op performs.
type OpKind uint8

// OpKind constants.
const (
	OpField OpKind = iota
	OpConst
	OpEq
	OpNe
	OpLt
	OpLe
	OpGt
	OpGe
	OpAnd
	OpOr
	OpAdd
	OpSub
	OpMul
	OpDiv
	OpBitAnd
	OpBitOr
)

var opSymbols = map[OpKind]string{
	OpEq:     "=",
	OpNe:     "!=",
	OpLt:     "<",
	OpLe:     "<=",
	OpGt:     ">",
	OpGe:     ">=",
	OpAnd:    "AND",
	OpOr:     "OR",
	OpAdd:    "+",
	OpSub:    "-",
	OpMul:    "*",
	OpDiv:    "/",
	OpBitAnd: "&",
	OpBitOr:  "|",
}

// opsBySymbol maps operator text, as it appears in a BinaryExpr, to its kind.
var opsBySymbol = func() map[string]OpKind {
	m := make(map[string]OpKind, len(opSymbols))
	for k, s := range opSymbols {
		m[s] = k
	}
	return m
}()

func (k OpKind) String() string {
	switch k {
	case OpField:
		return "field"
	case OpConst:
		return "const"
	}
	if s, ok := opSymbols[k]; ok {
		return s
	}
	return fmt.Sprintf("op(%d)", int(k))
}

// Op is a node of a compiled predicate. Field is set for OpField, Const for
// OpConst, and Left and Right for every binary kind.
type Op struct {
	Kind  OpKind
	Left  *Op
	Right *Op
	Field string
	Const Value
}

// Eval evaluates the op against one record.
func (o *Op) Eval(r core.Record) Value {
	switch o.Kind {
	case OpField:
		v, ok := r.Get(o.Field)
		if !ok {
			return Null()
		}
		return String(v)
	case OpConst:
		return o.Const
	case OpAnd:
		return Bool(o.Left.Eval(r).Truthy() && o.Right.Eval(r).Truthy())
	case OpOr:
		return Bool(o.Left.Eval(r).Truthy() || o.Right.Eval(r).Truthy())
	}

	a, b := o.Left.Eval(r), o.Right.Eval(r)
	switch o.Kind {
	case OpEq:
		return Bool(equal(a, b))
	case OpNe:
		return Bool(!equal(a, b))
	case OpLt:
		c, ok := compare(a, b)
		return Bool(ok && c < 0)
	case OpLe:
		c, ok := compare(a, b)
		return Bool(ok && c <= 0)
	case OpGt:
		c, ok := compare(a, b)
		return Bool(ok && c > 0)
	case OpGe:
		c, ok := compare(a, b)
		return Bool(ok && c >= 0)
	case OpAdd:
		return add(a, b)
	case OpSub:
		return arith(a, b, func(x, y float64) float64 { return x - y })
	case OpMul:
		return arith(a, b, func(x, y float64) float64 { return x * y })
	case OpDiv:
		return arith(a, b, func(x, y float64) float64 { return x / y })
	case OpBitAnd:
		return bitwise(a, b, func(x, y int32) int32 { return x & y })
	case OpBitOr:
		return bitwise(a, b, func(x, y int32) int32 { return x | y })
	}
	return Null()
}

// Match reports whether the record satisfies the predicate. A nil predicate
// matches every record.
func (o *Op) Match(r core.Record) bool {
	if o == nil {
		return true
	}
	return o.Eval(r).Truthy()
}

// String renders the op as an s-expression.
func (o *Op) String() string {
	if o == nil {
		return "<nil>"
	}
	switch o.Kind {
	case OpField:
		return "$" + o.Field
	case OpConst:
		switch o.Const.Kind() {
		case ValueString:
			return strconv.Quote(o.Const.Text())
		case ValueNull:
			return "NULL"
		default:
			return o.Const.Text()
		}
	}
	return fmt.Sprintf("(%s %s %s)", o.Kind, o.Left, o.Right)
}
