package table

import (
	"errors"
	"fmt"

	"github.com/jwtly10/tradetables/internal/analysis"
	"github.com/jwtly10/tradetables/internal/widget"
)

// ErrUnsupportedType is returned for a column type outside the known set.
var ErrUnsupportedType = errors.New("unsupported column data type")

// ColumnType is the declared display type of a table column.
type ColumnType int

const (
	Datetime ColumnType = iota + 1
	Float
	Int
	Percentage
	String
)

func (t ColumnType) String() string {
	switch t {
	case Datetime:
		return "Datetime"
	case Float:
		return "Float"
	case Int:
		return "Int"
	case Percentage:
		return "Percentage"
	case String:
		return "String"
	}
	return fmt.Sprintf("ColumnType(%d)", int(t))
}

// Column is a labelled, typed sequence of values.
type Column struct {
	Label  string
	Type   ColumnType
	Values []analysis.Value
}

// NewColumn starts an empty column.
func NewColumn(label string, ctype ColumnType) *Column {
	return &Column{Label: label, Type: ctype}
}

func (c *Column) Append(v analysis.Value) {
	c.Values = append(c.Values, v)
}

// Spec describes one table: columns that share a row count.
type Spec []*Column

// Rows returns the length of the first column.
func (s Spec) Rows() int {
	if len(s) == 0 {
		return 0
	}
	return len(s[0].Values)
}

// FormatterFor maps a column type to its display formatter.
func FormatterFor(ctype ColumnType) (widget.Formatter, error) {
	switch ctype {
	case Float:
		return widget.NewNumberFormatter("0.000"), nil
	case Int:
		return widget.NewNumberFormatter(""), nil
	case Datetime:
		return widget.NewDateFormatter("%c"), nil
	case String:
		return widget.NewStringFormatter(), nil
	case Percentage:
		return widget.NewNumberFormatter("0.000 %"), nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupportedType, ctype)
}
