package table

import (
	"strings"

	"unpdf/model"
)

// ToTableModel converts a detected region into the document model's Table
// type, per §4.7's "Detected → model table" rule: the first row becomes
// the header when the region has more than one row; each span is assigned
// to the column whose start is at or below its x (10pt leftward
// tolerance) and bounded by the next column, falling back to the nearest
// column by distance; a cell's content is its assigned spans' texts,
// trimmed and space-joined; column widths come from adjacent column
// starts, with the last column extending to right_x.
func ToTableModel(d Detected) *model.Table {
	t := model.NewTable()
	if len(d.Rows) > 1 {
		t.HeaderRows = 1
	}

	columns := d.Columns
	for rowIdx, row := range d.Rows {
		cellContents := make([][]string, len(columns))
		for _, s := range row.Spans {
			col := findColumnForSpan(s.X, columns, d.RightX)
			if col < len(cellContents) {
				cellContents[col] = append(cellContents[col], strings.TrimSpace(s.Text))
			}
		}

		cells := make([]model.TableCell, len(cellContents))
		for i, contents := range cellContents {
			cells[i] = model.TextCell(strings.Join(contents, " "))
		}

		if rowIdx == 0 && t.HeaderRows > 0 {
			t.AddRow(model.HeaderRow(cells...))
		} else {
			t.AddRow(model.NewRow(cells...))
		}
	}

	widths := make([]float64, len(columns))
	for i := range columns {
		if i+1 < len(columns) {
			widths[i] = columns[i+1] - columns[i]
		} else {
			widths[i] = d.RightX - columns[i]
		}
	}
	t.ColumnWidths = widths

	return t
}

func findColumnForSpan(spanX float64, columns []float64, rightX float64) int {
	if len(columns) == 0 {
		return 0
	}
	for i, colStart := range columns {
		colEnd := rightX + 100.0
		if i+1 < len(columns) {
			colEnd = columns[i+1]
		}
		if spanX >= colStart-10.0 && spanX < colEnd-10.0 {
			return i
		}
	}
	closest := 0
	minDist := absF(spanX - columns[0])
	for i, colStart := range columns {
		if d := absF(spanX - colStart); d < minDist {
			minDist = d
			closest = i
		}
	}
	return closest
}
