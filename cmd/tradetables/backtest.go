package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jwtly10/tradetables/internal/analyzer"
	"github.com/jwtly10/tradetables/internal/backtest"
	"github.com/jwtly10/tradetables/internal/feed"
	"github.com/jwtly10/tradetables/internal/strategy"
	"github.com/jwtly10/tradetables/internal/table"
	"github.com/jwtly10/tradetables/internal/widget"
)

func newBacktestCmd(a *app) *cobra.Command {
	var (
		barsPath   string
		strategies []string
	)

	cmd := &cobra.Command{
		Use:   "backtest",
		Short: "Run SMA cross strategies over CSV bars and print analyzer tables",
		Example: `  tradetables backtest --bars nas100_m15.csv
  tradetables backtest --bars nas100_m15.csv --strategy 10:30 --strategy 20:50 -o markdown`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			bars, err := feed.LoadCSVFile(barsPath)
			if err != nil {
				return err
			}

			engine := backtest.NewEngine(bars, a.cfg.InitialBalance)
			for _, spec := range strategies {
				s, err := parseSMACross(spec)
				if err != nil {
					return err
				}
				engine.AddStrategy(s)
			}

			g := table.NewGenerator(a.cfg.Scheme, engine)
			r := a.renderer()
			out := cmd.OutOrStdout()

			for _, res := range engine.Run() {
				err := writeAnalyzers(out, r, analyzer.Defaults(res), func(an table.Analyzer) (*widget.Paragraph, []*widget.DataTable, error) {
					return g.BuildTables(an, res.Strategy, res.Params)
				})
				if err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&barsPath, "bars", "", "CSV file of timestamp,open,high,low,close,volume bars")
	cmd.Flags().StringArrayVar(&strategies, "strategy", []string{"10:30"}, "SMA cross periods as fast:slow (repeatable)")
	_ = cmd.MarkFlagRequired("bars")

	return cmd
}

// parseSMACross reads "fast:slow".
func parseSMACross(spec string) (*strategy.SMACross, error) {
	fastStr, slowStr, ok := strings.Cut(spec, ":")
	if !ok {
		return nil, fmt.Errorf("strategy %q: want fast:slow", spec)
	}
	fast, err := strconv.Atoi(strings.TrimSpace(fastStr))
	if err != nil {
		return nil, fmt.Errorf("strategy %q: fast period: %w", spec, err)
	}
	slow, err := strconv.Atoi(strings.TrimSpace(slowStr))
	if err != nil {
		return nil, fmt.Errorf("strategy %q: slow period: %w", spec, err)
	}
	if fast <= 0 || slow <= fast {
		return nil, fmt.Errorf("strategy %q: need 0 < fast < slow", spec)
	}
	return strategy.NewSMACross(fast, slow), nil
}
