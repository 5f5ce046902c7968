package core

import (
	"bytes"
	"encoding/json"
)

// Record is one decoded row: column name -> string value, kept in header order.
// Values may be shorter than Columns when the row had fewer fields than the
// header; those columns are absent from the record.
type Record struct {
	Columns []string
	Values  []string
}

// Get returns the value of column name. When a header repeats a name the last
// occurrence wins, matching object-assignment semantics.
func (r Record) Get(name string) (string, bool) {
	n := len(r.Values)
	if len(r.Columns) < n {
		n = len(r.Columns)
	}
	for i := n - 1; i >= 0; i-- {
		if r.Columns[i] == name {
			return r.Values[i], true
		}
	}
	return "", false
}

// Len returns the number of fields present in the record.
func (r Record) Len() int {
	if len(r.Values) < len(r.Columns) {
		return len(r.Values)
	}
	return len(r.Columns)
}

// Map returns the record as a plain map.
func (r Record) Map() map[string]string {
	m := make(map[string]string, r.Len())
	for i := 0; i < r.Len(); i++ {
		m[r.Columns[i]] = r.Values[i]
	}
	return m
}

// MarshalJSON encodes the record as a JSON object in header order.
func (r Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	seen := make(map[string]bool, r.Len())
	first := true
	for i := 0; i < r.Len(); i++ {
		name := r.Columns[i]
		if seen[name] {
			continue
		}
		seen[name] = true
		value, _ := r.Get(name)

		if !first {
			buf.WriteByte(',')
		}
		first = false

		k, err := json.Marshal(name)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(value)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
