package plan_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/csvql/pkg/core"
	"github.com/leapstack-labs/csvql/pkg/parser"
	"github.com/leapstack-labs/csvql/pkg/plan"
)

// predicate compiles the WHERE condition of a one-statement query.
func predicate(t *testing.T, where string) *plan.Op {
	t.Helper()
	prog, err := parser.ParseString("SELECT * FROM 'x.csv' WHERE " + where)
	require.NoError(t, err)
	p, err := plan.Generate(prog)
	require.NoError(t, err)
	return p.Scans()[0].Predicate
}

func TestOp_Match(t *testing.T) {
	row := core.Record{
		Columns: []string{"name", "amount", "city", "zero", "empty"},
		Values:  []string{"alice", "80078", "Oslo", "0", ""},
	}

	tests := []struct {
		where string
		want  bool
	}{
		// string ordering is lexicographic
		{"amount <= '80078'", true},
		{"amount <= '9'", true},
		{"amount > '9'", false},
		// a number on either side makes an ordering numeric
		{"amount <= 80078", true},
		{"amount > 9", true},
		{"empty <= 5", true},
		{"empty >= 0", true},
		// equality is strict: text never equals a number
		{"amount = 80078", false},
		{"amount = 80078.0", false},
		{"amount != 80078", true},
		{"amount = '80078'", true},
		{"empty = 0", false},
		{"amount - 0 = 80078", true},
		{"name > 1", false},
		{"name < 1", false},
		{"name = 'alice'", true},
		{"name = 'Alice'", false},
		{"name != 'bob'", true},
		{"city = 'Oslo' AND amount >= 80000", true},
		{"city = 'Bergen' AND amount >= 80000", false},
		{"city = 'Bergen' OR name = 'alice'", true},
		// missing columns are null
		{"missing = 'x'", false},
		{"missing != 'x'", true},
		{"missing < 'x'", false},
		{"missing = missing", true},
		{"missing != other", false},
		// truthiness of bare operands
		{"name", true},
		{"empty", false},
		{"missing", false},
		{"zero", true},
		{"zero - 0", false},
		{"TRUE", true},
		{"FALSE", false},
		// booleans only equal booleans
		{"TRUE = TRUE", true},
		{"TRUE = 1", false},
		{"TRUE > FALSE", true},
		// arithmetic
		{"amount - 78 = 80000", true},
		{"2 * 3 = 6", true},
		{"7 / 2 = 3.5", true},
		{"name + 'x' = 'alicex'", true},
		{"1 + 2 = 3", true},
		{"amount + 1 = '800781'", true},
		{"name - 1", false},
		{"(6 & 3) = 2", true},
		{"(6 | 3) = 7", true},
		{"6 & 3 = 2", false},
		// parenthesized grouping
		{"(city = 'Bergen' OR city = 'Oslo') AND name = 'alice'", true},
	}

	for _, tt := range tests {
		t.Run(tt.where, func(t *testing.T) {
			assert.Equal(t, tt.want, predicate(t, tt.where).Match(row))
		})
	}
}

func TestOp_MatchNil(t *testing.T) {
	var op *plan.Op
	assert.True(t, op.Match(core.Record{}))
	assert.Equal(t, "<nil>", op.String())
}

func TestOp_DuplicateColumnLastWins(t *testing.T) {
	row := core.Record{Columns: []string{"a", "a"}, Values: []string{"1", "2"}}
	assert.True(t, predicate(t, "a = '2'").Match(row))
	assert.False(t, predicate(t, "a = '1'").Match(row))
}

func TestOp_ShortRowOmitsColumns(t *testing.T) {
	row := core.Record{Columns: []string{"a", "b"}, Values: []string{"1"}}
	assert.True(t, predicate(t, "a = '1'").Match(row))
	assert.False(t, predicate(t, "b = ''").Match(row))
}

func TestOp_Eval(t *testing.T) {
	row := core.Record{Columns: []string{"n"}, Values: []string{"abc"}}

	v := predicate(t, "n - 1").Eval(row)
	assert.Equal(t, plan.ValueNumber, v.Kind())
	assert.True(t, math.IsNaN(v.Float()))

	v = predicate(t, "n + 1").Eval(row)
	assert.Equal(t, plan.String("abc1"), v)

	v = predicate(t, "missing + 1").Eval(row)
	assert.True(t, v.IsNull())
}

func TestValue(t *testing.T) {
	assert.Equal(t, "1.5", plan.Number(1.5).Text())
	assert.Equal(t, "TRUE", plan.Bool(true).Text())
	assert.Equal(t, "", plan.Null().Text())
	assert.Equal(t, float64(1), plan.Bool(true).Float())
	assert.Equal(t, float64(42), plan.String(" 42 ").Float())
	assert.Equal(t, float64(0), plan.String("  ").Float())
	assert.True(t, math.IsNaN(plan.String("abc").Float()))
	assert.True(t, math.IsNaN(plan.Null().Float()))
	assert.False(t, plan.Number(math.NaN()).Truthy())
	assert.Equal(t, "null", plan.Null().Kind().String())
	assert.Equal(t, "number", plan.ValueNumber.String())
}
