// Package table renders simple bordered text tables. Cell widths ignore ANSI
// escape sequences so colored cells stay aligned.
package table

import (
	"io"
	"regexp"
	"strings"

	"github.com/mattn/go-runewidth"
)

// Alignment controls how a cell is padded within its column.
type Alignment int

const (
	AlignLeft Alignment = iota
	AlignRight
	AlignCenter
)

var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*[A-Za-z]`)

func stripAnsi(s string) string {
	return ansiPattern.ReplaceAllString(s, "")
}

func displayWidth(s string) int {
	return runewidth.StringWidth(stripAnsi(s))
}

// Table accumulates a header and rows and writes them on Render.
type Table struct {
	w               io.Writer
	header          []string
	rows            [][]string
	alignment       []Alignment
	headerAlignment []Alignment
}

// NewTable returns a table that renders to w.
func NewTable(w io.Writer) *Table {
	return &Table{w: w}
}

func (t *Table) WithHeader(header []string) *Table {
	t.header = header
	return t
}

func (t *Table) WithColumnAlignment(alignment []Alignment) *Table {
	t.alignment = alignment
	return t
}

func (t *Table) WithHeaderAlignment(alignment []Alignment) *Table {
	t.headerAlignment = alignment
	return t
}

func (t *Table) WithRows(rows [][]string) *Table {
	t.rows = append(t.rows, rows...)
	return t
}

// Append adds one row.
func (t *Table) Append(row []string) *Table {
	t.rows = append(t.rows, row)
	return t
}

func (t *Table) columns() int {
	n := len(t.header)
	for _, row := range t.rows {
		if len(row) > n {
			n = len(row)
		}
	}
	return n
}

func (t *Table) widths(n int) []int {
	widths := make([]int, n)
	measure := func(row []string) {
		for i, cell := range row {
			if w := displayWidth(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}
	measure(t.header)
	for _, row := range t.rows {
		measure(row)
	}
	return widths
}

// Render writes the table. Short rows are padded with empty cells.
func (t *Table) Render() error {
	n := t.columns()
	if n == 0 {
		return nil
	}
	widths := t.widths(n)

	var sb strings.Builder
	separator := func() {
		sb.WriteByte('+')
		for _, w := range widths {
			sb.WriteString(strings.Repeat("-", w+2))
			sb.WriteByte('+')
		}
		sb.WriteByte('\n')
	}
	line := func(row []string, alignment []Alignment) {
		sb.WriteByte('|')
		for i, w := range widths {
			var cell string
			if i < len(row) {
				cell = row[i]
			}
			align := AlignLeft
			if i < len(alignment) {
				align = alignment[i]
			}
			sb.WriteByte(' ')
			sb.WriteString(pad(cell, w, align))
			sb.WriteString(" |")
		}
		sb.WriteByte('\n')
	}

	separator()
	if len(t.header) > 0 {
		line(t.header, t.headerAlignment)
		separator()
	}
	for _, row := range t.rows {
		line(row, t.alignment)
	}
	if len(t.rows) > 0 {
		separator()
	}
	_, err := io.WriteString(t.w, sb.String())
	return err
}

func pad(s string, width int, align Alignment) string {
	gap := width - displayWidth(s)
	if gap <= 0 {
		return s
	}
	switch align {
	case AlignRight:
		return strings.Repeat(" ", gap) + s
	case AlignCenter:
		left := gap / 2
		return strings.Repeat(" ", left) + s + strings.Repeat(" ", gap-left)
	default:
		return s + strings.Repeat(" ", gap)
	}
}
