package analyzer

import (
	"math"

	"github.com/jwtly10/tradetables/internal/analysis"
	"github.com/jwtly10/tradetables/internal/backtest"
)

const notAvailable = "n/a"

// tradeReturns gives each trade's pnl relative to the balance it was taken from.
func tradeReturns(r *backtest.Results) []float64 {
	returns := make([]float64, 0, len(r.Trades))
	balance := r.InitialBalance
	for _, trade := range r.Trades {
		if balance != 0 {
			returns = append(returns, trade.PnL/balance)
		}
		balance += trade.PnL
	}
	return returns
}

// SharpeRatio is the mean per-trade return over its sample standard deviation.
// It is not annualised.
type SharpeRatio struct {
	an *analysis.Analysis
}

func NewSharpeRatio(r *backtest.Results) *SharpeRatio {
	an := analysis.New()
	ratio, ok := sharpe(tradeReturns(r))
	if ok {
		an.Set("sharperatio", analysis.Float(ratio))
	} else {
		an.Set("sharperatio", analysis.String(notAvailable))
	}
	return &SharpeRatio{an: an}
}

func (s *SharpeRatio) Analysis() *analysis.Analysis {
	return s.an
}

func sharpe(returns []float64) (float64, bool) {
	if len(returns) < 2 {
		return 0, false
	}

	var mean float64
	for _, r := range returns {
		mean += r
	}
	mean /= float64(len(returns))

	var variance float64
	for _, r := range returns {
		variance += (r - mean) * (r - mean)
	}
	std := math.Sqrt(variance / float64(len(returns)-1))
	if std == 0 {
		return 0, false
	}
	return mean / std, true
}

// Returns reports the total and average return of the run and its span.
type Returns struct {
	an *analysis.Analysis
}

func NewReturns(r *backtest.Results) *Returns {
	an := analysis.New()
	an.Set("start", analysis.Time(r.Start))
	an.Set("end", analysis.Time(r.End))
	an.Child("balance").Set("initial", analysis.Float(r.InitialBalance))
	an.Child("balance").Set("final", analysis.Float(r.FinalBalance))

	var total float64
	if r.InitialBalance != 0 {
		total = (r.FinalBalance - r.InitialBalance) / r.InitialBalance * 100
	}
	an.Set("rtot", analysis.Float(total))

	returns := tradeReturns(r)
	if len(returns) > 0 {
		var sum float64
		for _, v := range returns {
			sum += v
		}
		an.Set("ravg", analysis.Float(sum/float64(len(returns))*100))
	} else {
		an.Set("ravg", analysis.String(notAvailable))
	}

	return &Returns{an: an}
}

func (r *Returns) Analysis() *analysis.Analysis {
	return r.an
}
