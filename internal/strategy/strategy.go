package strategy

import (
	"fmt"
	"math"
	"strings"

	"github.com/jwtly10/tradetables/internal/types"
)

// Account is the read-only view of the broker a strategy sees on each bar.
type Account interface {
	Balance() float64
	PositionCount() int
}

type Strategy interface {
	// Name identifies the strategy in labels and table titles.
	Name() string
	// Params returns the configured parameters, in declaration order.
	Params() Params
	OnBar(bars []types.Bar, currentIndex int, acct Account) []types.Signal
}

// Param is a single named strategy parameter.
type Param struct {
	Name  string
	Value any
}

// Params is an ordered parameter list.
type Params []Param

func (p Params) String() string {
	parts := make([]string, len(p))
	for i, param := range p {
		parts[i] = fmt.Sprintf("%s: %v", param.Name, param.Value)
	}
	return strings.Join(parts, ", ")
}

// Label returns "Name [k: v, ...]" for the strategy. When params is nil the
// strategy's own parameters are used; without parameters the bare name is returned.
func Label(s Strategy, params Params) string {
	if params == nil {
		params = s.Params()
	}
	label := s.Name()
	if len(params) > 0 {
		label += " [" + params.String() + "]"
	}
	return label
}

// IndicatorsReady calls .Ready() on all indicators and returns true if all are ready
func IndicatorsReady(indicators ...Indicator) bool {
	for _, ind := range indicators {
		if !ind.Ready() {
			return false
		}
	}
	return true
}

// Risk describes how a strategy sizes and protects its trades.
type Risk struct {
	RiskPercentage float64 // percent of balance risked per trade
	RiskRatio      float64 // take profit distance as a multiple of the stop distance
	BalanceToRisk  float64 // fixed balance to size from; zero uses the live balance
}

// OpenLong creates a long signal at the bar close with the given stop distance.
func OpenLong(r Risk, bar types.Bar, stopDistance float64, acct Account) types.Signal {
	entry := bar.Close
	return types.Signal{
		Type:   types.Open,
		Action: types.Buy,
		Price:  entry,
		SL:     entry - stopDistance,
		TP:     entry + stopDistance*r.RiskRatio,
		Size:   positionSize(r, acct, stopDistance),
	}
}

// OpenShort creates a short signal at the bar close with the given stop distance.
func OpenShort(r Risk, bar types.Bar, stopDistance float64, acct Account) types.Signal {
	entry := bar.Close
	return types.Signal{
		Type:   types.Open,
		Action: types.Sell,
		Price:  entry,
		SL:     entry + stopDistance,
		TP:     entry - stopDistance*r.RiskRatio,
		Size:   positionSize(r, acct, stopDistance),
	}
}

// positionSize risks RiskPercentage of the balance between entry and stop.
func positionSize(r Risk, acct Account, stopDistance float64) float64 {
	balance := r.BalanceToRisk
	if balance == 0 {
		balance = acct.Balance()
	}
	stopDistance = math.Abs(stopDistance)
	if stopDistance == 0 {
		return 0
	}

	size := balance * (r.RiskPercentage / 100) / stopDistance
	strategyLog.Debug("Calculated position size", "size", size, "balance", balance, "stopDistance", stopDistance)
	return size
}
