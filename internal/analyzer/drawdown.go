package analyzer

import (
	"github.com/jwtly10/tradetables/internal/analysis"
	"github.com/jwtly10/tradetables/internal/backtest"
)

// DrawDown tracks the balance's decline from its running peak, trade by trade.
// Lengths are counted in closed trades.
type DrawDown struct {
	an *analysis.Analysis
}

func NewDrawDown(r *backtest.Results) *DrawDown {
	peak := r.InitialBalance
	balance := r.InitialBalance

	var (
		moneydown, maxMoneydown float64
		pct, maxPct             float64
		length, maxLength       int
	)

	for _, trade := range r.Trades {
		balance += trade.PnL
		if balance >= peak {
			peak = balance
			length = 0
		} else {
			length++
		}

		moneydown = peak - balance
		pct = 0
		if peak > 0 {
			pct = moneydown / peak * 100
		}

		if moneydown > maxMoneydown {
			maxMoneydown = moneydown
			maxPct = pct
		}
		if length > maxLength {
			maxLength = length
		}
	}

	an := analysis.New()
	an.Set("len", analysis.Int(int64(length)))
	an.Set("drawdown", analysis.Float(pct))
	an.Set("moneydown", analysis.Float(moneydown))
	worst := an.Child("max")
	worst.Set("len", analysis.Int(int64(maxLength)))
	worst.Set("drawdown", analysis.Float(maxPct))
	worst.Set("moneydown", analysis.Float(maxMoneydown))

	return &DrawDown{an: an}
}

func (d *DrawDown) Analysis() *analysis.Analysis {
	return d.an
}
