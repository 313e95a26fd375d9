package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Table lays out cells in space-separated columns with an optional header
// underlined by a rule. Widths ignore ANSI escapes, so styled cells align.
type Table struct {
	header []string
	rows   [][]string
	widths []int
	gap    string
}

// NewTable creates a table with cols columns.
func NewTable(cols int) *Table {
	return &Table{widths: make([]int, cols), gap: "  "}
}

// SetHeader sets the header cells.
func (t *Table) SetHeader(cells ...string) {
	t.header = t.fit(cells)
}

// AddRow appends a row. Missing cells are blank; extra cells are dropped.
func (t *Table) AddRow(cells ...string) {
	t.rows = append(t.rows, t.fit(cells))
}

func (t *Table) fit(cells []string) []string {
	row := make([]string, len(t.widths))
	copy(row, cells)
	for i, c := range row {
		t.widths[i] = max(t.widths[i], lipgloss.Width(c))
	}
	return row
}

// String renders the table; an empty table renders as "".
func (t *Table) String() string {
	if t.header == nil && len(t.rows) == 0 {
		return ""
	}

	var sb strings.Builder
	if t.header != nil {
		t.writeRow(&sb, t.header)
		rule := make([]string, len(t.widths))
		for i, w := range t.widths {
			rule[i] = strings.Repeat("─", w)
		}
		t.writeRow(&sb, rule)
	}
	for _, row := range t.rows {
		t.writeRow(&sb, row)
	}
	return sb.String()
}

func (t *Table) writeRow(sb *strings.Builder, row []string) {
	last := len(row) - 1
	for i, cell := range row {
		if i > 0 {
			sb.WriteString(t.gap)
		}
		sb.WriteString(cell)
		if i < last {
			sb.WriteString(strings.Repeat(" ", t.widths[i]-lipgloss.Width(cell)))
		}
	}
	sb.WriteString("\n")
}
