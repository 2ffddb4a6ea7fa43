// Package formatter renders simulation traces and scene tables as box tables,
// CSV, JSON or a summary report.
package formatter

import (
	"fmt"
	"io"
)

// Report is tabular output. Rows render in table and CSV form; Records, when
// set, is the structured form used for JSON.
type Report struct {
	Title   string
	Headers []string
	Rows    [][]string
	Numeric []bool // right-aligned columns
	Records any
}

// Formatter writes a report
type Formatter interface {
	Format(w io.Writer, r Report) error
}

// Output formats accepted by NewFormatter
const (
	FormatTable = "table"
	FormatCSV   = "csv"
	FormatJSON  = "json"
)

// NewFormatter returns the formatter for name
func NewFormatter(name string) (Formatter, error) {
	switch name {
	case FormatTable, "":
		return NewTableFormatter(), nil
	case FormatCSV:
		return NewCSVFormatter(), nil
	case FormatJSON:
		return NewJSONFormatter(), nil
	default:
		return nil, fmt.Errorf("unknown output format %q (want table, csv or json)", name)
	}
}
