package analyzer

import (
	"strconv"

	"github.com/jwtly10/tradetables/internal/analysis"
	"github.com/jwtly10/tradetables/internal/backtest"
	"github.com/jwtly10/tradetables/internal/table"
)

// TradeList lays out every closed trade in typed tables, one per direction.
type TradeList struct {
	trades []backtest.Trade
}

func NewTradeList(r *backtest.Results) *TradeList {
	return &TradeList{trades: r.Trades}
}

// Analysis keys each trade by its id.
func (l *TradeList) Analysis() *analysis.Analysis {
	an := analysis.New()
	for _, t := range l.trades {
		entry := an.Child(strconv.Itoa(t.ID))
		entry.Set("direction", analysis.String(string(t.Direction)))
		entry.Set("entry_time", analysis.Time(t.EntryTime))
		entry.Set("exit_time", analysis.Time(t.ExitTime))
		entry.Set("pnl", analysis.Float(t.PnL))
		entry.Set("exit_reason", analysis.String(string(t.ExitReason)))
	}
	return an
}

// AnalysisTables returns a long and a short trade table, skipping a direction
// with no trades.
func (l *TradeList) AnalysisTables() (string, []table.Spec) {
	var specs []table.Spec
	for _, dir := range []backtest.Direction{backtest.Long, backtest.Short} {
		if spec := l.spec(dir); spec.Rows() > 0 {
			specs = append(specs, spec)
		}
	}
	return "TradeList", specs
}

func (l *TradeList) spec(dir backtest.Direction) table.Spec {
	var (
		id         = table.NewColumn("#", table.Int)
		entryTime  = table.NewColumn("Entry Time", table.Datetime)
		exitTime   = table.NewColumn("Exit Time", table.Datetime)
		entryPrice = table.NewColumn("Entry", table.Float)
		exitPrice  = table.NewColumn("Exit", table.Float)
		size       = table.NewColumn("Size", table.Float)
		pnl        = table.NewColumn("PnL", table.Float)
		ret        = table.NewColumn("Return", table.Percentage)
		reason     = table.NewColumn(string(dir)+" Exit", table.String)
	)

	for _, t := range l.trades {
		if t.Direction != dir {
			continue
		}
		id.Append(analysis.Int(int64(t.ID)))
		entryTime.Append(analysis.Time(t.EntryTime))
		exitTime.Append(analysis.Time(t.ExitTime))
		entryPrice.Append(analysis.Float(t.EntryPrice))
		exitPrice.Append(analysis.Float(t.ExitPrice))
		size.Append(analysis.Float(t.Size))
		pnl.Append(analysis.Float(t.PnL))
		ret.Append(analysis.Float(t.PnLPercent / 100))
		reason.Append(analysis.String(string(t.ExitReason)))
	}

	return table.Spec{id, entryTime, exitTime, entryPrice, exitPrice, size, pnl, ret, reason}
}
