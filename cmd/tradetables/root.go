package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/jwtly10/tradetables/internal/config"
	"github.com/jwtly10/tradetables/internal/logging"
	"github.com/jwtly10/tradetables/internal/table"
	"github.com/jwtly10/tradetables/internal/widget"
)

// app carries the loaded configuration to subcommands.
type app struct {
	cfgFile string
	cfg     *config.Config
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "tradetables",
		Short: "Render backtest analyzer results as tables",
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(a.cfgFile, cmd.Root().PersistentFlags())
			if err != nil {
				return err
			}
			if _, err := widget.ParseFormat(cfg.Scheme.Format); err != nil {
				return err
			}
			logging.Enable(cfg.DebugTopics, cmd.ErrOrStderr())
			a.cfg = cfg
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.cfgFile, "config", "", "config file (default: ./tradetables.yaml)")
	flags.StringP("format", "o", "", "output format (table|markdown|csv|html)")
	flags.Int("table-width", 0, "table width in pixels")
	flags.Int("row-height", 0, "table row height in pixels")
	flags.Float64("initial-balance", 0, "starting balance for each strategy")
	flags.String("debug-topics", "", "comma-separated debug topics, or all")

	_ = root.RegisterFlagCompletionFunc("format", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"table", "markdown", "csv", "html"}, cobra.ShellCompDirectiveNoFileComp
	})

	root.AddCommand(newBacktestCmd(a))
	root.AddCommand(newRenderCmd(a))
	return root
}

func (a *app) renderer() *widget.Renderer {
	format, _ := widget.ParseFormat(a.cfg.Scheme.Format)
	return widget.NewRenderer(format, a.cfg.Scheme.PixelsPerChar)
}

// writeAnalyzers builds and writes the tables of each analyzer in turn.
func writeAnalyzers(w io.Writer, r *widget.Renderer, analyzers []table.Analyzer, build func(table.Analyzer) (*widget.Paragraph, []*widget.DataTable, error)) error {
	for _, an := range analyzers {
		title, tables, err := build(an)
		if err != nil {
			return fmt.Errorf("build %s tables: %w", table.TypeName(an), err)
		}
		if err := r.Render(w, title, tables); err != nil {
			return err
		}
	}
	return nil
}
