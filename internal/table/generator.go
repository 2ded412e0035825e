// Package table turns analyzer results into titled table widgets.
package table

import (
	"fmt"
	"reflect"

	"github.com/jwtly10/tradetables/internal/analysis"
	"github.com/jwtly10/tradetables/internal/config"
	"github.com/jwtly10/tradetables/internal/logging"
	"github.com/jwtly10/tradetables/internal/strategy"
	"github.com/jwtly10/tradetables/internal/widget"
)

var tableLog = logging.New("tables")

// Analyzer exposes the nested statistics of a finished run.
type Analyzer interface {
	Analysis() *analysis.Analysis
}

// Tabular is implemented by analyzers that lay out their own tables instead
// of the generic Performance/Value listing.
type Tabular interface {
	Analyzer
	AnalysisTables() (title string, specs []Spec)
}

// Run lists the strategies active in the backtest that produced a result.
type Run interface {
	Strategies() []strategy.Strategy
}

// Generator builds table widgets for analyzers. It is safe for concurrent use.
type Generator struct {
	scheme config.Scheme
	run    Run
}

// NewGenerator returns a generator for scheme. run may be nil when results
// come from a single strategy.
func NewGenerator(scheme config.Scheme, run Run) *Generator {
	return &Generator{
		scheme: scheme,
		run:    run,
	}
}

// GenericTable lists every leaf of the analyzer's analysis as a row of a two
// column "Performance"/"Value" table. Nested keys are joined with " - ".
// The title is the analyzer's type name.
func GenericTable(a Analyzer) (string, []Spec) {
	perf := NewColumn("Performance", String)
	value := NewColumn("Value", String)

	var walk func(an *analysis.Analysis, parent string)
	walk = func(an *analysis.Analysis, parent string) {
		_ = an.Each(func(key string, n analysis.Node) error {
			label := key
			if parent != "" {
				label = parent + " - " + key
			}
			if n.IsLeaf() {
				perf.Append(analysis.String(label))
				value.Append(analysis.String(n.Value().String()))
			} else {
				walk(n.Analysis(), label)
			}
			return nil
		})
	}
	if an := a.Analysis(); an != nil {
		walk(an, "")
	}

	return TypeName(a), []Spec{{perf, value}}
}

// TypeName returns the unqualified type name of v, looking through pointers.
func TypeName(v any) string {
	t := reflect.TypeOf(v)
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == nil {
		return ""
	}
	return t.Name()
}

// BuildTables renders the analyzer's tables for the given strategy run. The
// title gets a "(strategy label)" suffix when more than one strategy is active.
func (g *Generator) BuildTables(a Analyzer, s strategy.Strategy, params strategy.Params) (*widget.Paragraph, []*widget.DataTable, error) {
	var (
		title string
		specs []Spec
	)
	if t, ok := a.(Tabular); ok {
		title, specs = t.AnalysisTables()
	} else {
		title, specs = GenericTable(a)
	}

	if g.multiStrategy() && s != nil {
		title += fmt.Sprintf(" (%s)", strategy.Label(s, params))
	}

	tables := make([]*widget.DataTable, 0, len(specs))
	for i, spec := range specs {
		dt, err := g.dataTable(spec)
		if err != nil {
			return nil, nil, fmt.Errorf("%s table %d: %w", title, i, err)
		}
		tables = append(tables, dt)
	}

	tableLog.Debug("Built analyzer tables", "title", title, "tables", len(tables))

	return &widget.Paragraph{
		Text:  title,
		Width: g.scheme.TableWidth,
		Style: map[string]string{"font-size": g.scheme.TitleFontSize},
	}, tables, nil
}

func (g *Generator) multiStrategy() bool {
	return g.run != nil && len(g.run.Strategies()) > 1
}

func (g *Generator) dataTable(spec Spec) (*widget.DataTable, error) {
	source := widget.NewColumnDataSource()
	columns := make([]widget.TableColumn, 0, len(spec))

	for i, c := range spec {
		field := fmt.Sprintf("col%d", i)
		if err := source.Add(c.Values, field); err != nil {
			return nil, err
		}
		formatter, err := FormatterFor(c.Type)
		if err != nil {
			return nil, fmt.Errorf("column %q: %w", c.Label, err)
		}
		columns = append(columns, widget.TableColumn{
			Field:     field,
			Title:     c.Label,
			Formatter: formatter,
		})
	}

	// the +2 accounts for the header rows above the data
	height := (spec.Rows() + 2) * g.scheme.RowHeight
	return widget.NewDataTable(source, columns, g.scheme.TableWidth, height)
}
