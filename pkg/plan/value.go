package plan

import (
	"math"
	"strconv"
	"strings"
)

// ValueKind is the dynamic type of a Value.
type ValueKind uint8

// ValueKind constants.
const (
	ValueNull ValueKind = iota
	ValueString
	ValueNumber
	ValueBool
)

func (k ValueKind) String() string {
	switch k {
	case ValueString:
		return "string"
	case ValueNumber:
		return "number"
	case ValueBool:
		return "bool"
	default:
		return "null"
	}
}

// Value is the result of evaluating an Op against a record. The zero Value is
// null, which is what a missing column evaluates to.
type Value struct {
	kind ValueKind
	str  string
	num  float64
	b    bool
}

// Null returns the null value.
func Null() Value { return Value{} }

// String returns a string value.
func String(s string) Value { return Value{kind: ValueString, str: s} }

// Number returns a numeric value.
func Number(n float64) Value { return Value{kind: ValueNumber, num: n} }

// Bool returns a boolean value.
func Bool(b bool) Value { return Value{kind: ValueBool, b: b} }

// Kind returns the dynamic type of v.
func (v Value) Kind() ValueKind { return v.kind }

// IsNull reports whether v is null.
func (v Value) IsNull() bool { return v.kind == ValueNull }

// Truthy reports whether v counts as true in a condition: a non-empty string,
// a number other than zero and NaN, or true.
func (v Value) Truthy() bool {
	switch v.kind {
	case ValueString:
		return v.str != ""
	case ValueNumber:
		return v.num != 0 && !math.IsNaN(v.num)
	case ValueBool:
		return v.b
	default:
		return false
	}
}

// Text renders v as text. Null renders as the empty string.
func (v Value) Text() string {
	switch v.kind {
	case ValueString:
		return v.str
	case ValueNumber:
		return strconv.FormatFloat(v.num, 'f', -1, 64)
	case ValueBool:
		if v.b {
			return "TRUE"
		}
		return "FALSE"
	default:
		return ""
	}
}

// Float returns v as a number. Blank text converts to 0, text that is not a
// number and null to NaN; bools convert to 0 and 1.
func (v Value) Float() float64 {
	switch v.kind {
	case ValueNumber:
		return v.num
	case ValueBool:
		if v.b {
			return 1
		}
		return 0
	case ValueString:
		s := strings.TrimSpace(v.str)
		if s == "" {
			return 0
		}
		n, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return math.NaN()
		}
		return n
	default:
		return math.NaN()
	}
}

// numeric reports whether a comparison between a and b is numeric.
func numeric(a, b Value) bool {
	return a.kind == ValueNumber || b.kind == ValueNumber ||
		a.kind == ValueBool || b.kind == ValueBool
}

// equal implements = as strict equality: values of different kinds are never
// equal, so a text cell never equals a number literal.
func equal(a, b Value) bool {
	if a.kind != b.kind {
		return false
	}
	switch a.kind {
	case ValueNull:
		return true
	case ValueBool:
		return a.b == b.b
	case ValueNumber:
		return a.num == b.num
	default:
		return a.str == b.str
	}
}

// compare orders a against b and reports false when they are not comparable:
// either side is null, or a numeric comparison meets NaN.
func compare(a, b Value) (int, bool) {
	if a.IsNull() || b.IsNull() {
		return 0, false
	}
	if numeric(a, b) {
		x, y := a.Float(), b.Float()
		switch {
		case math.IsNaN(x) || math.IsNaN(y):
			return 0, false
		case x < y:
			return -1, true
		case x > y:
			return 1, true
		default:
			return 0, true
		}
	}
	return strings.Compare(a.str, b.str), true
}

// add implements +: a numeric sum when neither side is text, otherwise
// concatenation of both sides' text.
func add(a, b Value) Value {
	if a.IsNull() || b.IsNull() {
		return Null()
	}
	if a.kind == ValueString || b.kind == ValueString {
		return String(a.Text() + b.Text())
	}
	return Number(a.Float() + b.Float())
}

// arith applies a numeric operator. Null on either side gives null.
func arith(a, b Value, fn func(x, y float64) float64) Value {
	if a.IsNull() || b.IsNull() {
		return Null()
	}
	return Number(fn(a.Float(), b.Float()))
}

// bitwise applies fn to both sides truncated to 32-bit integers.
func bitwise(a, b Value, fn func(x, y int32) int32) Value {
	if a.IsNull() || b.IsNull() {
		return Null()
	}
	return Number(float64(fn(toInt32(a.Float()), toInt32(b.Float()))))
}

// toInt32 truncates f and wraps it modulo 2^32. NaN and infinities give 0.
func toInt32(f float64) int32 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	m := math.Mod(math.Trunc(f), 1<<32)
	if m < 0 {
		m += 1 << 32
	}
	return int32(uint32(m))
}
