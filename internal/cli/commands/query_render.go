package commands

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"gopkg.in/yaml.v3"

	"github.com/leapstack-labs/csvql/internal/cli/config"
	"github.com/leapstack-labs/csvql/pkg/core"
)

// nullCell is shown for a column a record does not have.
const nullCell = "NULL"

func renderRecords(w io.Writer, records []core.Record, format string) error {
	cols := collectColumns(records)

	switch format {
	case config.OutputJSON:
		return renderJSON(w, records)
	case config.OutputYAML:
		return renderYAML(w, records)
	case config.OutputCSV:
		return renderCSV(w, cols, records)
	case config.OutputMarkdown, "markdown":
		return renderMarkdown(w, cols, records)
	default:
		return renderTable(w, cols, records)
	}
}

// collectColumns returns every header column in first-seen order, including
// columns a short row has no field for. Records from different sources, or
// rows with extra fields, contribute their own columns.
func collectColumns(records []core.Record) []string {
	seen := make(map[string]bool)
	var cols []string
	for _, r := range records {
		for _, name := range r.Columns {
			if !seen[name] {
				seen[name] = true
				cols = append(cols, name)
			}
		}
	}
	return cols
}

func newTable(w io.Writer, cols []string, records []core.Record) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)

	// Header
	headerRow := make(table.Row, len(cols))
	for i, col := range cols {
		headerRow[i] = col
	}
	t.AppendHeader(headerRow)

	// Rows
	for _, r := range records {
		row := make(table.Row, len(cols))
		for i, col := range cols {
			if v, ok := r.Get(col); ok {
				row[i] = v
			} else {
				row[i] = nullCell
			}
		}
		t.AppendRow(row)
	}
	return t
}

func renderTable(w io.Writer, cols []string, records []core.Record) error {
	if len(records) == 0 {
		_, _ = fmt.Fprintln(w, "(0 rows)")
		return nil
	}

	newTable(w, cols, records).Render()
	_, _ = fmt.Fprintf(w, "(%d rows)\n", len(records))
	return nil
}

func renderMarkdown(w io.Writer, cols []string, records []core.Record) error {
	if len(records) == 0 {
		_, _ = fmt.Fprintln(w, "(0 rows)")
		return nil
	}

	newTable(w, cols, records).RenderMarkdown()
	return nil
}

func renderJSON(w io.Writer, records []core.Record) error {
	if records == nil {
		records = []core.Record{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(records)
}

// renderYAML writes a sequence of mappings, keeping each record's header order.
func renderYAML(w io.Writer, records []core.Record) error {
	doc := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
	if len(records) == 0 {
		doc.Style = yaml.FlowStyle
	}

	for _, r := range records {
		m := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		seen := make(map[string]bool, r.Len())
		for i := 0; i < r.Len(); i++ {
			name := r.Columns[i]
			if seen[name] {
				continue
			}
			seen[name] = true
			v, _ := r.Get(name)
			m.Content = append(m.Content,
				&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: name},
				&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: v},
			)
		}
		doc.Content = append(doc.Content, m)
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return err
	}
	return enc.Close()
}

func renderCSV(w io.Writer, cols []string, records []core.Record) error {
	cw := csv.NewWriter(w)
	if len(cols) > 0 {
		if err := cw.Write(cols); err != nil {
			return err
		}
	}

	values := make([]string, len(cols))
	for _, r := range records {
		for i, col := range cols {
			values[i], _ = r.Get(col)
		}
		if err := cw.Write(values); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}
