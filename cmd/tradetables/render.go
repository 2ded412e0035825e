package main

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jwtly10/tradetables/internal/analysis"
	"github.com/jwtly10/tradetables/internal/table"
	"github.com/jwtly10/tradetables/internal/widget"
)

// documentAnalyzer serves an analysis read from a file under a chosen title.
type documentAnalyzer struct {
	name string
	an   *analysis.Analysis
}

func (d *documentAnalyzer) Analysis() *analysis.Analysis {
	return d.an
}

func (d *documentAnalyzer) AnalysisTables() (string, []table.Spec) {
	_, specs := table.GenericTable(d)
	return d.name, specs
}

func newRenderCmd(a *app) *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "render <analysis.yaml|->",
		Short: "Render a nested YAML analysis as a Performance/Value table",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var in io.Reader = cmd.InOrStdin()
			if args[0] != "-" {
				f, err := os.Open(args[0])
				if err != nil {
					return err
				}
				defer func() { _ = f.Close() }()
				in = f
			}

			an, err := analysis.ParseYAML(in)
			if err != nil {
				return err
			}

			title := name
			if title == "" {
				title = documentTitle(args[0])
			}

			g := table.NewGenerator(a.cfg.Scheme, nil)
			doc := &documentAnalyzer{name: title, an: an}
			return writeAnalyzers(cmd.OutOrStdout(), a.renderer(), []table.Analyzer{doc}, func(an table.Analyzer) (*widget.Paragraph, []*widget.DataTable, error) {
				return g.BuildTables(an, nil, nil)
			})
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "table title (default: file name)")
	return cmd
}

func documentTitle(path string) string {
	if path == "-" {
		return "Analysis"
	}
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
