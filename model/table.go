package model

import "strings"

// Table is an ordered grid of rows, optionally with header rows, explicit
// column widths, and a caption.
type Table struct {
	Rows         []TableRow `json:"rows"`
	HeaderRows   int        `json:"headerRows,omitempty"`
	ColumnWidths []float64  `json:"columnWidths,omitempty"`
	Caption      string     `json:"caption,omitempty"`
}

// NewTable returns an empty table.
func NewTable() *Table { return &Table{} }

// WithHeader returns an empty table configured with n header rows.
func WithHeader(n int) *Table { return &Table{HeaderRows: n} }

// AddRow appends a row.
func (t *Table) AddRow(r TableRow) { t.Rows = append(t.Rows, r) }

// RowCount returns the number of rows.
func (t *Table) RowCount() int { return len(t.Rows) }

// ColumnCount derives the column count from the first row, per spec.
func (t *Table) ColumnCount() int {
	if len(t.Rows) == 0 {
		return 0
	}
	return len(t.Rows[0].Cells)
}

// IsEmpty reports whether the table has no rows.
func (t *Table) IsEmpty() bool { return len(t.Rows) == 0 }

// Header returns the header rows.
func (t *Table) Header() []TableRow {
	if t.HeaderRows > len(t.Rows) {
		return t.Rows
	}
	return t.Rows[:t.HeaderRows]
}

// Body returns the non-header rows.
func (t *Table) Body() []TableRow {
	if t.HeaderRows > len(t.Rows) {
		return nil
	}
	return t.Rows[t.HeaderRows:]
}

// PlainText renders rows newline-separated, cells within a row tab-separated.
func (t *Table) PlainText() string {
	lines := make([]string, len(t.Rows))
	for i, r := range t.Rows {
		lines[i] = r.PlainText()
	}
	return strings.Join(lines, "\n")
}

// HasMergedCells reports whether any cell spans more than one row or column.
func (t *Table) HasMergedCells() bool {
	for _, r := range t.Rows {
		for _, c := range r.Cells {
			if c.IsMerged() {
				return true
			}
		}
	}
	return false
}

// TableRow is an ordered sequence of cells.
type TableRow struct {
	Cells    []TableCell `json:"cells"`
	IsHeader bool        `json:"isHeader,omitempty"`
}

// NewRow builds a non-header row from cells.
func NewRow(cells ...TableCell) TableRow { return TableRow{Cells: cells} }

// HeaderRow builds a header row from cells.
func HeaderRow(cells ...TableCell) TableRow { return TableRow{Cells: cells, IsHeader: true} }

// RowFromStrings builds a row of plain-text cells.
func RowFromStrings(values ...string) TableRow {
	cells := make([]TableCell, len(values))
	for i, v := range values {
		cells[i] = TextCell(v)
	}
	return TableRow{Cells: cells}
}

// PlainText joins the row's cells with a tab.
func (r TableRow) PlainText() string {
	parts := make([]string, len(r.Cells))
	for i, c := range r.Cells {
		parts[i] = c.PlainText()
	}
	return strings.Join(parts, "\t")
}

// VerticalAlignment is a table cell's vertical alignment.
//
// ENUM(top, middle, bottom)
type VerticalAlignment int

const (
	VAlignTop VerticalAlignment = iota
	VAlignMiddle
	VAlignBottom
)

// TableCell is one cell of a table row.
type TableCell struct {
	Content           []*Paragraph      `json:"content"`
	Rowspan           int               `json:"rowspan,omitempty"`
	Colspan           int               `json:"colspan,omitempty"`
	Alignment         Alignment         `json:"alignment"`
	VerticalAlignment VerticalAlignment `json:"verticalAlignment"`
}

// TextCell builds a single-paragraph, unspanned cell from plain text.
func TextCell(text string) TableCell {
	return TableCell{Content: []*Paragraph{WithText(text)}, Rowspan: 1, Colspan: 1}
}

// EmptyCell builds a content-less, unspanned cell.
func EmptyCell() TableCell {
	return TableCell{Rowspan: 1, Colspan: 1}
}

// PlainText joins the cell's paragraphs' plain text with a space.
func (c TableCell) PlainText() string {
	parts := make([]string, 0, len(c.Content))
	for _, p := range c.Content {
		parts = append(parts, p.PlainText())
	}
	return strings.Join(parts, " ")
}

// IsEmpty reports whether the cell has no content or only whitespace.
func (c TableCell) IsEmpty() bool {
	return len(c.Content) == 0 || strings.TrimSpace(c.PlainText()) == ""
}

// IsMerged reports whether the cell spans more than one row or column.
func (c TableCell) IsMerged() bool { return c.Rowspan > 1 || c.Colspan > 1 }
