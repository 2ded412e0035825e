package widget

import (
	"errors"
	"fmt"

	"github.com/jwtly10/tradetables/internal/analysis"
)

var (
	ErrColumnLength = errors.New("column length mismatch")
	ErrUnknownField = errors.New("unknown column field")
)

// ColumnDataSource stores named, equally sized columns of values.
type ColumnDataSource struct {
	names []string
	data  map[string][]analysis.Value
}

func NewColumnDataSource() *ColumnDataSource {
	return &ColumnDataSource{
		data: make(map[string][]analysis.Value),
	}
}

// Add appends a column under name. All columns must have the same length.
func (c *ColumnDataSource) Add(values []analysis.Value, name string) error {
	if _, exists := c.data[name]; exists {
		return fmt.Errorf("column %q already present", name)
	}
	if len(c.names) > 0 && len(values) != c.Rows() {
		return fmt.Errorf("%w: column %q has %d values, source has %d", ErrColumnLength, name, len(values), c.Rows())
	}
	c.names = append(c.names, name)
	c.data[name] = values
	return nil
}

func (c *ColumnDataSource) Column(name string) []analysis.Value {
	return c.data[name]
}

func (c *ColumnDataSource) Names() []string {
	return c.names
}

// Rows returns the shared column length.
func (c *ColumnDataSource) Rows() int {
	if len(c.names) == 0 {
		return 0
	}
	return len(c.data[c.names[0]])
}
