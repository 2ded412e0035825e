// Package backtest replays bars through strategies and records closed trades.
package backtest

import (
	"log/slog"

	"github.com/jwtly10/tradetables/internal/strategy"
	"github.com/jwtly10/tradetables/internal/types"
)

type Engine struct {
	Bars           []types.Bar
	initialBalance float64
	strategies     []strategy.Strategy
}

func NewEngine(bars []types.Bar, initialBalance float64) *Engine {
	return &Engine{
		Bars:           bars,
		initialBalance: initialBalance,
	}
}

// AddStrategy registers a strategy to be run. Each strategy trades its own account.
func (e *Engine) AddStrategy(s strategy.Strategy) *Engine {
	e.strategies = append(e.strategies, s)
	return e
}

// Strategies lists the registered strategies in registration order.
func (e *Engine) Strategies() []strategy.Strategy {
	return e.strategies
}

// Run executes every registered strategy and returns one Results per strategy.
func (e *Engine) Run() []*Results {
	all := make([]*Results, 0, len(e.strategies))
	for _, s := range e.strategies {
		all = append(all, e.run(s))
	}
	return all
}

func (e *Engine) run(s strategy.Strategy) *Results {
	broker := NewBroker(e.initialBalance)
	results := &Results{
		Strategy:       s,
		Params:         s.Params(),
		InitialBalance: e.initialBalance,
		Trades:         []Trade{},
	}

	slog.Debug("Starting backtest", "strategy", s.Name(), "initial_balance", e.initialBalance, "total_bars", len(e.Bars))

	for i, bar := range e.Bars {
		results.Trades = append(results.Trades, broker.CheckExits(bar)...)

		for _, signal := range s.OnBar(e.Bars, i, broker) {
			if signal.Type == types.Open {
				broker.Open(signal, bar.Timestamp)
			}
		}
	}

	if len(e.Bars) > 0 {
		// Close anything at the end
		first, last := e.Bars[0], e.Bars[len(e.Bars)-1]
		results.Trades = append(results.Trades, broker.CloseAll(last)...)
		results.Start, results.End = first.Timestamp, last.Timestamp
	}

	results.FinalBalance = broker.Balance()
	slog.Info("Backtest finished", "strategy", results.Label(), "trades", len(results.Trades), "final_balance", results.FinalBalance)
	return results
}
