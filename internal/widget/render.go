package widget

import (
	"fmt"
	"html"
	"io"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// Format selects how widgets are written out.
type Format string

const (
	FormatTable    Format = "table"
	FormatMarkdown Format = "markdown"
	FormatCSV      Format = "csv"
	FormatHTML     Format = "html"
)

func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatTable, FormatMarkdown, FormatCSV, FormatHTML:
		return f, nil
	case "md":
		return FormatMarkdown, nil
	case "":
		return FormatTable, nil
	}
	return "", fmt.Errorf("unknown output format %q (want table|markdown|csv|html)", s)
}

// Renderer writes a title and its tables in one output format.
type Renderer struct {
	format        Format
	pixelsPerChar int
}

// NewRenderer returns a renderer. pixelsPerChar converts widget pixel widths to
// terminal columns; zero disables width limits.
func NewRenderer(format Format, pixelsPerChar int) *Renderer {
	return &Renderer{
		format:        format,
		pixelsPerChar: pixelsPerChar,
	}
}

func (r *Renderer) Render(w io.Writer, title *Paragraph, tables []*DataTable) error {
	if title != nil {
		if _, err := fmt.Fprintln(w, r.title(title)); err != nil {
			return err
		}
	}
	for _, dt := range tables {
		out := r.table(dt)
		if _, err := fmt.Fprintln(w, out); err != nil {
			return err
		}
	}
	return nil
}

func (r *Renderer) title(p *Paragraph) string {
	switch r.format {
	case FormatMarkdown:
		return "### " + p.Text
	case FormatCSV:
		return "# " + p.Text
	case FormatHTML:
		return fmt.Sprintf("<p style=\"%s\">%s</p>", styleAttr(p.Style), html.EscapeString(p.Text))
	}

	style := lipgloss.NewStyle()
	switch p.Style["font-size"] {
	case "large", "x-large", "xx-large":
		style = style.Bold(true)
	}
	if chars := r.chars(p.Width); chars > 0 {
		style = style.MaxWidth(chars)
	}
	return style.Render(p.Text)
}

func (r *Renderer) table(dt *DataTable) string {
	t := table.NewWriter()
	t.SetStyle(table.StyleLight)
	t.Style().Format.Header = text.FormatDefault

	header := make(table.Row, len(dt.Columns))
	var configs []table.ColumnConfig
	for i, col := range dt.Columns {
		header[i] = col.Title
		if _, numeric := col.Formatter.(*NumberFormatter); numeric {
			configs = append(configs, table.ColumnConfig{Number: i + 1, Align: text.AlignRight})
		}
	}
	t.AppendHeader(header)
	t.SetColumnConfigs(configs)

	for row := 0; row < dt.Source.Rows(); row++ {
		cells := make(table.Row, len(dt.Columns))
		for i := range dt.Columns {
			cells[i] = dt.Cell(row, i)
		}
		t.AppendRow(cells)
	}

	switch r.format {
	case FormatMarkdown:
		return t.RenderMarkdown()
	case FormatCSV:
		return t.RenderCSV()
	case FormatHTML:
		return t.RenderHTML()
	}
	if chars := r.chars(dt.Width); chars > 0 {
		t.SetAllowedRowLength(chars)
	}
	return t.Render()
}

func (r *Renderer) chars(px int) int {
	if r.pixelsPerChar <= 0 || px <= 0 {
		return 0
	}
	return px / r.pixelsPerChar
}

func styleAttr(style map[string]string) string {
	keys := make([]string, 0, len(style))
	for k := range style {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k + ": " + style[k]
	}
	return strings.Join(parts, "; ")
}
