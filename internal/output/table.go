package output

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// Table is a bordered report table. Columns may carry their own style and
// empty cells render as a placeholder.
type Table struct {
	headers []string
	rows    [][]string
	columns map[int]lipgloss.Style
	empty   string
	header  lipgloss.Style
	border  lipgloss.Style
}

// NewTable creates a table with the given headers.
func NewTable(headers ...string) *Table {
	return &Table{
		headers: headers,
		columns: make(map[int]lipgloss.Style),
		empty:   "-",
		header:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
		border:  lipgloss.NewStyle().Foreground(ColorDimGray),
	}
}

// Row adds a row.
func (t *Table) Row(cells ...string) *Table {
	row := make([]string, len(cells))
	for i, cell := range cells {
		if cell == "" {
			cell = t.empty
		}
		row[i] = cell
	}
	t.rows = append(t.rows, row)
	return t
}

// Column sets the style of body cells in column col.
func (t *Table) Column(col int, style lipgloss.Style) *Table {
	t.columns[col] = style
	return t
}

// Placeholder sets the text shown for empty cells.
func (t *Table) Placeholder(s string) *Table {
	t.empty = s
	return t
}

// String renders the table.
func (t *Table) String() string {
	tbl := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(t.border).
		Headers(t.headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return t.header
			}
			return t.columns[col]
		})

	for _, row := range t.rows {
		tbl.Row(row...)
	}
	return tbl.String()
}
