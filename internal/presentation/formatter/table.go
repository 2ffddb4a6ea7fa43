package formatter

import (
	"fmt"
	"io"
	"strings"

	"github.com/penwyp/go-sticky-scroll/internal/util"
)

type TableFormatter struct {
	minWidth int
}

func NewTableFormatter() *TableFormatter {
	return &TableFormatter{minWidth: 5}
}

func (f *TableFormatter) Format(w io.Writer, r Report) error {
	// Calculate optimal column widths based on content
	widths := f.calculateColumnWidths(r)

	if r.Title != "" {
		if _, err := fmt.Fprintln(w, r.Title); err != nil {
			return err
		}
	}

	var b strings.Builder

	// Print top border
	f.printBorder(&b, widths, "top")

	// Print header
	f.printRow(&b, r.Headers, widths, nil)

	// Print header separator
	f.printBorder(&b, widths, "middle")

	for _, row := range r.Rows {
		f.printRow(&b, row, widths, r.Numeric)
	}

	// Print bottom border
	f.printBorder(&b, widths, "bottom")

	_, err := io.WriteString(w, b.String())
	return err
}

// calculateColumnWidths sizes every column to its widest cell, measured in
// terminal cells so wide scene names stay aligned
func (f *TableFormatter) calculateColumnWidths(r Report) []int {
	widths := make([]int, len(r.Headers))

	for i, header := range r.Headers {
		widths[i] = util.GetDisplayWidth(header)
	}

	for _, row := range r.Rows {
		for i, value := range row {
			if i >= len(widths) {
				break
			}
			if w := util.GetDisplayWidth(value); w > widths[i] {
				widths[i] = w
			}
		}
	}

	// Apply minimum widths for readability
	for i := range widths {
		if widths[i] < f.minWidth {
			widths[i] = f.minWidth
		}
	}

	return widths
}

// printBorder prints table borders (top, middle, bottom)
func (f *TableFormatter) printBorder(b *strings.Builder, widths []int, borderType string) {
	var left, middle, right string

	switch borderType {
	case "top":
		left, middle, right = "┌", "┬", "┐"
	case "middle":
		left, middle, right = "├", "┼", "┤"
	case "bottom":
		left, middle, right = "└", "┴", "┘"
	}

	b.WriteString(left)
	for i, width := range widths {
		b.WriteString(strings.Repeat("─", width+2)) // +2 for padding spaces
		if i < len(widths)-1 {
			b.WriteString(middle)
		}
	}
	b.WriteString(right)
	b.WriteString("\n")
}

// printRow prints a row; numeric columns are right-aligned
func (f *TableFormatter) printRow(b *strings.Builder, values []string, widths []int, numeric []bool) {
	b.WriteString("│")
	for i, width := range widths {
		value := ""
		if i < len(values) {
			value = values[i]
		}
		leftAlign := i >= len(numeric) || !numeric[i]
		b.WriteString(" ")
		b.WriteString(util.PadString(value, width, leftAlign))
		b.WriteString(" │")
	}
	b.WriteString("\n")
}
