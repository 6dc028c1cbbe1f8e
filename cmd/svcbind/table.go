package main

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"
)

// TableWriter renders rows inside a box-drawn border. Column widths are
// counted in runes so masked values and non-ASCII names stay aligned.
type TableWriter struct {
	headers []string
	rows    [][]string
	widths  []int
}

// NewTableWriter creates a table with one column per header.
func NewTableWriter(headers []string) *TableWriter {
	t := &TableWriter{headers: headers, widths: make([]int, len(headers))}
	t.measure(headers)
	return t
}

// AddRow appends a row. Cells beyond the header count are dropped.
func (t *TableWriter) AddRow(row []string) {
	if len(row) > len(t.headers) {
		row = row[:len(t.headers)]
	}
	t.rows = append(t.rows, row)
	t.measure(row)
}

func (t *TableWriter) measure(row []string) {
	for i, cell := range row {
		t.widths[i] = max(t.widths[i], utf8.RuneCountInString(cell))
	}
}

// Print writes the table to w.
func (t *TableWriter) Print(w io.Writer) {
	var b strings.Builder
	t.border(&b, "┌", "┬", "┐")
	t.line(&b, t.headers)
	t.border(&b, "├", "┼", "┤")
	for _, row := range t.rows {
		t.line(&b, row)
	}
	t.border(&b, "└", "┴", "┘")
	fmt.Fprint(w, b.String())
}

func (t *TableWriter) border(b *strings.Builder, left, mid, right string) {
	segments := make([]string, len(t.widths))
	for i, width := range t.widths {
		segments[i] = strings.Repeat("─", width+2)
	}
	b.WriteString(left + strings.Join(segments, mid) + right + "\n")
}

func (t *TableWriter) line(b *strings.Builder, row []string) {
	b.WriteString("│")
	for i, width := range t.widths {
		cell := ""
		if i < len(row) {
			cell = row[i]
		}
		b.WriteString(" " + cell + strings.Repeat(" ", width-utf8.RuneCountInString(cell)) + " │")
	}
	b.WriteString("\n")
}
