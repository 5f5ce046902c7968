package core

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordGet(t *testing.T) {
	r := Record{
		Columns: []string{"id", "name", "id", "missing"},
		Values:  []string{"1", "alice", "2"},
	}

	v, ok := r.Get("name")
	assert.True(t, ok)
	assert.Equal(t, "alice", v)

	v, ok = r.Get("id")
	assert.True(t, ok)
	assert.Equal(t, "2", v, "last duplicate column wins")

	_, ok = r.Get("missing")
	assert.False(t, ok, "columns past the row's last field are absent")

	assert.Equal(t, 3, r.Len())
	assert.Equal(t, map[string]string{"id": "2", "name": "alice"}, r.Map())
}

func TestRecordMarshalJSONKeepsHeaderOrder(t *testing.T) {
	r := Record{
		Columns: []string{"zeta", "alpha", "quote"},
		Values:  []string{"z", "a", `say "hi"`},
	}

	b, err := json.Marshal(r)
	require.NoError(t, err)
	assert.Equal(t, `{"zeta":"z","alpha":"a","quote":"say \"hi\""}`, string(b))

	b, err = json.Marshal([]Record{})
	require.NoError(t, err)
	assert.Equal(t, `[]`, string(b))
}
