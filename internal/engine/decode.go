package engine

import (
	"encoding/csv"
	"io"
	"strconv"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/leapstack-labs/csvql/pkg/core"
)

// RowDecoder turns a byte stream into records.
type RowDecoder interface {
	NewRows(r io.Reader) Rows
}

// Rows yields records in file order. Next returns io.EOF after the last one.
type Rows interface {
	Next() (core.Record, error)
}

// csvDecoder reads delimited text whose first row is the header.
type csvDecoder struct {
	comma rune
}

func (d *csvDecoder) NewRows(r io.Reader) Rows {
	// Strip a UTF-8 or UTF-16 byte-order mark; UTF-16 input is transcoded.
	text := transform.NewReader(r, unicode.BOMOverride(unicode.UTF8.NewDecoder()))

	cr := csv.NewReader(text)
	cr.Comma = d.comma
	cr.FieldsPerRecord = -1
	return &csvRows{reader: cr}
}

type csvRows struct {
	reader *csv.Reader
	header []string
}

func (r *csvRows) Next() (core.Record, error) {
	if r.header == nil {
		header, err := r.reader.Read()
		if err != nil {
			return core.Record{}, err
		}
		r.header = header
	}

	fields, err := r.reader.Read()
	if err != nil {
		return core.Record{}, err
	}

	columns := r.header
	if len(fields) > len(r.header) {
		columns = make([]string, len(fields))
		copy(columns, r.header)
		for i := len(r.header); i < len(fields); i++ {
			columns[i] = "_" + strconv.Itoa(i)
		}
	}

	return core.Record{Columns: columns, Values: fields}, nil
}
