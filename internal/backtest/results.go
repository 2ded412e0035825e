package backtest

import (
	"time"

	"github.com/jwtly10/tradetables/internal/strategy"
)

// Results is the outcome of running one strategy over the engine's bars.
type Results struct {
	Strategy       strategy.Strategy
	Params         strategy.Params
	InitialBalance float64
	FinalBalance   float64
	Trades         []Trade

	Start time.Time
	End   time.Time
}

// Label identifies the run as "Name [params]".
func (r *Results) Label() string {
	return strategy.Label(r.Strategy, r.Params)
}
