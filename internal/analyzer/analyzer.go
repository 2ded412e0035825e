// Package analyzer computes performance statistics for finished backtest runs.
package analyzer

import (
	"github.com/jwtly10/tradetables/internal/backtest"
	"github.com/jwtly10/tradetables/internal/logging"
	"github.com/jwtly10/tradetables/internal/table"
)

var analyzerLog = logging.New("analyzer")

// Defaults returns the standard analyzer set for a run, in display order.
func Defaults(r *backtest.Results) []table.Analyzer {
	return []table.Analyzer{
		NewTradeAnalyzer(r),
		NewDrawDown(r),
		NewSharpeRatio(r),
		NewReturns(r),
		NewTradeList(r),
	}
}
