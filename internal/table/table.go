// Package table renders simple bordered ASCII tables. Cell widths are
// computed on ANSI-stripped text, so colored cells align correctly.
package table

import (
	"io"
	"regexp"
	"strings"
)

// Alignment controls how cell content is padded within its column.
type Alignment int

const (
	AlignLeft Alignment = iota
	AlignCenter
	AlignRight
)

// Table accumulates rows and renders them with +---+ borders.
type Table struct {
	writer          io.Writer
	header          []string
	rows            [][]string
	columnAlignment []Alignment
	headerAlignment []Alignment
}

// NewTable returns a Table that renders to the given writer.
func NewTable(writer io.Writer) *Table {
	return &Table{writer: writer}
}

// WithHeader sets the header row.
func (t *Table) WithHeader(header []string) *Table {
	t.header = header
	return t
}

// WithColumnAlignment sets the per-column alignment for body rows.
// Unspecified columns default to AlignLeft.
func (t *Table) WithColumnAlignment(alignment []Alignment) *Table {
	t.columnAlignment = alignment
	return t
}

// WithHeaderAlignment sets the per-column alignment for the header row.
func (t *Table) WithHeaderAlignment(alignment []Alignment) *Table {
	t.headerAlignment = alignment
	return t
}

// Append adds one body row.
func (t *Table) Append(row []string) *Table {
	t.rows = append(t.rows, row)
	return t
}

// WithRows sets all body rows at once.
func (t *Table) WithRows(rows [][]string) *Table {
	t.rows = rows
	return t
}

var ansiPattern = regexp.MustCompile("\x1b\\[[0-9;]*m")

func stripAnsi(s string) string {
	return ansiPattern.ReplaceAllString(s, "")
}

// displayWidth returns the visible width of a cell, ignoring ANSI codes.
func displayWidth(s string) int {
	return len([]rune(stripAnsi(s)))
}

func (t *Table) columnCount() int {
	count := len(t.header)
	for _, row := range t.rows {
		if len(row) > count {
			count = len(row)
		}
	}
	return count
}

func (t *Table) columnWidths(count int) []int {
	widths := make([]int, count)
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

func alignmentAt(alignments []Alignment, index int) Alignment {
	if index < len(alignments) {
		return alignments[index]
	}
	return AlignLeft
}

// pad fills a cell to the given display width. Padding is computed from the
// ANSI-stripped width but applied around the original string, so escape
// codes survive.
func pad(s string, width int, alignment Alignment) string {
	gap := width - displayWidth(s)
	if gap <= 0 {
		return s
	}
	switch alignment {
	case AlignRight:
		return strings.Repeat(" ", gap) + s
	case AlignCenter:
		left := gap / 2
		return strings.Repeat(" ", left) + s + strings.Repeat(" ", gap-left)
	default:
		return s + strings.Repeat(" ", gap)
	}
}

// Render writes the table. The layout is:
//
//	+---------+------+
//	| HEADER1 |  H2  |
//	+---------+------+
//	| ROW1    | ROW2 |
//	+---------+------+
func (t *Table) Render() error {
	count := t.columnCount()
	if count == 0 {
		return nil
	}
	widths := t.columnWidths(count)

	var border strings.Builder
	for _, w := range widths {
		border.WriteString("+")
		border.WriteString(strings.Repeat("-", w+2))
	}
	border.WriteString("+\n")

	writeRow := func(row []string, alignments []Alignment) error {
		var line strings.Builder
		for i := 0; i < count; i++ {
			var cell string
			if i < len(row) {
				cell = row[i]
			}
			line.WriteString("| ")
			line.WriteString(pad(cell, widths[i], alignmentAt(alignments, i)))
			line.WriteString(" ")
		}
		line.WriteString("|\n")
		_, err := io.WriteString(t.writer, line.String())
		return err
	}

	if _, err := io.WriteString(t.writer, border.String()); err != nil {
		return err
	}
	if len(t.header) > 0 {
		if err := writeRow(t.header, t.headerAlignment); err != nil {
			return err
		}
		if _, err := io.WriteString(t.writer, border.String()); err != nil {
			return err
		}
	}
	for _, row := range t.rows {
		if err := writeRow(row, t.columnAlignment); err != nil {
			return err
		}
	}
	if _, err := io.WriteString(t.writer, border.String()); err != nil {
		return err
	}
	return nil
}
