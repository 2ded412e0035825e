// Package widget models the table widgets analyzer results are rendered into:
// a styled title paragraph and data tables backed by a columnar data source.
package widget

import (
	"fmt"
)

// Paragraph is a block of styled text.
type Paragraph struct {
	Text  string
	Width int
	Style map[string]string
}

// TableColumn binds a data source field to a display title and formatter.
type TableColumn struct {
	Field     string
	Title     string
	Formatter Formatter
}

// DataTable is a table widget. Width and Height are in pixels.
type DataTable struct {
	Source     *ColumnDataSource
	Columns    []TableColumn
	Width      int
	Height     int
	RowHeaders bool
}

// NewDataTable checks every column refers to a field present in source.
func NewDataTable(source *ColumnDataSource, columns []TableColumn, width, height int) (*DataTable, error) {
	for _, col := range columns {
		if !hasName(source, col.Field) {
			return nil, fmt.Errorf("%w: %q", ErrUnknownField, col.Field)
		}
	}
	return &DataTable{
		Source:  source,
		Columns: columns,
		Width:   width,
		Height:  height,
	}, nil
}

func hasName(source *ColumnDataSource, name string) bool {
	for _, n := range source.Names() {
		if n == name {
			return true
		}
	}
	return false
}

// Cell returns the formatted value at row for the i-th column.
func (t *DataTable) Cell(row, i int) string {
	col := t.Columns[i]
	v := t.Source.Column(col.Field)[row]
	if col.Formatter == nil {
		return v.String()
	}
	return col.Formatter.Format(v)
}
