package analyzer

import (
	"math"
	"time"

	"github.com/jwtly10/tradetables/internal/analysis"
	"github.com/jwtly10/tradetables/internal/backtest"
)

// TradeAnalyzer summarises closed trades: counts, win/loss pnl, profit
// factor, per-direction breakdown and trade duration.
type TradeAnalyzer struct {
	an *analysis.Analysis
}

func NewTradeAnalyzer(r *backtest.Results) *TradeAnalyzer {
	return &TradeAnalyzer{an: analyzeTrades(r.Trades)}
}

func (t *TradeAnalyzer) Analysis() *analysis.Analysis {
	return t.an
}

type pnlStats struct {
	count int
	total float64
	max   float64
}

func (s *pnlStats) add(pnl float64) {
	if s.count == 0 || math.Abs(pnl) > math.Abs(s.max) {
		s.max = pnl
	}
	s.count++
	s.total += pnl
}

func (s *pnlStats) average() float64 {
	if s.count == 0 {
		return 0
	}
	return s.total / float64(s.count)
}

func (s *pnlStats) write(an *analysis.Analysis) {
	an.Set("total", analysis.Int(int64(s.count)))
	pnl := an.Child("pnl")
	pnl.Set("total", analysis.Float(s.total))
	pnl.Set("average", analysis.Float(s.average()))
	pnl.Set("max", analysis.Float(s.max))
}

func analyzeTrades(trades []backtest.Trade) *analysis.Analysis {
	an := analysis.New()
	an.Child("total").Set("total", analysis.Int(int64(len(trades))))
	if len(trades) == 0 {
		return an
	}

	var (
		won, lost     pnlStats
		net           float64
		totalDuration time.Duration
		byDirection   = map[backtest.Direction]*[2]pnlStats{
			backtest.Long:  {},
			backtest.Short: {},
		}
	)

	for _, trade := range trades {
		net += trade.PnL
		totalDuration += trade.ExitTime.Sub(trade.EntryTime)

		dir := byDirection[trade.Direction]
		switch {
		case trade.PnL > 0:
			won.add(trade.PnL)
			dir[0].add(trade.PnL)
		case trade.PnL < 0:
			lost.add(trade.PnL)
			dir[1].add(trade.PnL)
		}
	}

	an.Child("total").Set("closed", analysis.Int(int64(len(trades))))
	won.write(an.Child("won"))
	lost.write(an.Child("lost"))

	pnl := an.Child("pnl")
	pnl.Child("gross").Set("profit", analysis.Float(won.total))
	pnl.Child("gross").Set("loss", analysis.Float(lost.total))
	pnl.Child("net").Set("total", analysis.Float(net))
	pnl.Child("net").Set("average", analysis.Float(net/float64(len(trades))))

	an.Set("win_rate", analysis.Float(float64(won.count)/float64(len(trades))*100))
	if lost.total != 0 {
		an.Set("profit_factor", analysis.Float(won.total/-lost.total))
	}

	for _, d := range []backtest.Direction{backtest.Long, backtest.Short} {
		stats := byDirection[d]
		dir := an.Child(string(d))
		dir.Set("won", analysis.Int(int64(stats[0].count)))
		dir.Set("lost", analysis.Int(int64(stats[1].count)))
		dir.Set("pnl", analysis.Float(stats[0].total+stats[1].total))
	}

	length := an.Child("len")
	length.Set("total", analysis.Duration(totalDuration))
	length.Set("average", analysis.Duration((totalDuration / time.Duration(len(trades))).Round(time.Minute)))

	analyzerLog.Debug("Analyzed trades", "trades", len(trades), "won", won.count, "lost", lost.count, "net", net)
	return an
}
