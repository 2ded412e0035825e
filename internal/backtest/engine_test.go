package backtest

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwtly10/tradetables/internal/strategy"
	"github.com/jwtly10/tradetables/internal/types"
)

func testBars() []types.Bar {
	return []types.Bar{
		{Timestamp: TimeFromString("2024-01-01T00:00:00Z"), Open: 100.0, High: 100, Low: 100.0, Close: 100.0, Volume: 1000},
		{Timestamp: TimeFromString("2024-01-01T00:15:00Z"), Open: 100.0, High: 105.0, Low: 100.0, Close: 105.0, Volume: 1200},
		{Timestamp: TimeFromString("2024-01-01T00:30:00Z"), Open: 105.0, High: 110.0, Low: 105.0, Close: 110.0, Volume: 1100},
		{Timestamp: TimeFromString("2024-01-01T00:45:00Z"), Open: 110.0, High: 120.0, Low: 110.0, Close: 120.0, Volume: 1300},
	}
}

func TestEngine_RunAndCanOpenAndCloseTrades(t *testing.T) {
	engine := NewEngine(testBars(), 10000.0).AddStrategy(&TestStrategy{})

	all := engine.Run()
	require.Len(t, all, 1)
	results := all[0]

	// Trade 1:
	// Open BUY at 100 with quantity 1. Closed at 105 = +5 profit
	// Trade 2:
	// Open SELL at 105 with quantity 1. Closed at 120 due to backtest end
	expectedFinalBalance := 10000.0 + 5.0 - 15.0

	require.Len(t, results.Trades, 2)
	assert.Equal(t, float64(100), results.Trades[0].EntryPrice, "First trade entry price should be 100.0")
	assert.Equal(t, float64(105), results.Trades[0].ExitPrice, "First trade exit price should be 105.0")
	assert.Equal(t, float64(5.0), results.Trades[0].PnL, "First trade PnL should be 5.0")
	assert.Equal(t, TakeProfit, results.Trades[0].ExitReason)

	assert.Equal(t, float64(105), results.Trades[1].EntryPrice, "Second trade entry price should be 105.0")
	assert.Equal(t, float64(120), results.Trades[1].ExitPrice, "Second trade exit price should be 120.0")
	assert.Equal(t, float64(-15.0), results.Trades[1].PnL, "Second trade PnL should be -15.0")
	assert.Equal(t, EndOfBacktest, results.Trades[1].ExitReason)

	assert.Equal(t, expectedFinalBalance, results.FinalBalance, "Final balance should match expected value")
	assert.Equal(t, 10000.0, results.InitialBalance)
	assert.Equal(t, TimeFromString("2024-01-01T00:00:00Z"), results.Start)
	assert.Equal(t, TimeFromString("2024-01-01T00:45:00Z"), results.End)
	assert.Equal(t, "Test [size: 1]", results.Label())
}

func TestEngine_RunsEachStrategyOnItsOwnAccount(t *testing.T) {
	engine := NewEngine(testBars(), 5000).
		AddStrategy(&TestStrategy{}).
		AddStrategy(&TestStrategy{})

	all := engine.Run()
	require.Len(t, all, 2)
	assert.Len(t, engine.Strategies(), 2)
	for _, r := range all {
		assert.Equal(t, 5000.0-10.0, r.FinalBalance)
	}
}

func TestEngine_NoBars(t *testing.T) {
	all := NewEngine(nil, 1000).AddStrategy(&TestStrategy{}).Run()
	require.Len(t, all, 1)
	assert.Empty(t, all[0].Trades)
	assert.Equal(t, 1000.0, all[0].FinalBalance)
}

func TestBroker_StopLossWinsWhenBothHit(t *testing.T) {
	b := NewBroker(1000)
	b.Open(types.Signal{Type: types.Open, Action: types.Buy, Price: 100, SL: 95, TP: 105, Size: 2}, TimeFromString("2024-01-01T00:00:00Z"))

	trades := b.CheckExits(types.Bar{Timestamp: TimeFromString("2024-01-01T00:15:00Z"), Open: 100, High: 106, Low: 94, Close: 100})

	require.Len(t, trades, 1)
	assert.Equal(t, StopLoss, trades[0].ExitReason)
	assert.Equal(t, -10.0, trades[0].PnL)
	assert.InDelta(t, -5.0, trades[0].PnLPercent, 1e-9)
	assert.Equal(t, 990.0, b.Balance())
	assert.Equal(t, 0, b.PositionCount())
}

func TestBroker_ShortTakeProfit(t *testing.T) {
	b := NewBroker(1000)
	b.Open(types.Signal{Type: types.Open, Action: types.Sell, Price: 100, SL: 110, TP: 90, Size: 1}, TimeFromString("2024-01-01T00:00:00Z"))

	assert.Empty(t, b.CheckExits(types.Bar{Timestamp: TimeFromString("2024-01-01T00:15:00Z"), Open: 100, High: 101, Low: 95, Close: 96}))
	trades := b.CheckExits(types.Bar{Timestamp: TimeFromString("2024-01-01T00:30:00Z"), Open: 96, High: 97, Low: 89, Close: 90})

	require.Len(t, trades, 1)
	assert.Equal(t, Short, trades[0].Direction)
	assert.Equal(t, TakeProfit, trades[0].ExitReason)
	assert.Equal(t, 10.0, trades[0].PnL)
}

type TestStrategy struct{}

func (s *TestStrategy) Name() string { return "Test" }

func (s *TestStrategy) Params() strategy.Params {
	return strategy.Params{{Name: "size", Value: 1}}
}

func (s *TestStrategy) OnBar(bars []types.Bar, currentIndex int, _ strategy.Account) []types.Signal {
	bar := bars[currentIndex]

	// Opens BUY trade on the first bar, with a very small TP.
	// The next candle should always close it, and be profitable
	if currentIndex == 0 {
		return []types.Signal{{
			Type:   types.Open,
			Action: types.Buy,
			Price:  bar.Close,
			TP:     bar.Close + 5,
			SL:     bar.Close - 50, // Too large to be hit
			Size:   1.0,
		}}
	}

	// Opens SELL trade on the second bar, with a very large stop loss
	// this will be closed at backtest end, and should be negative.
	if currentIndex == 1 {
		return []types.Signal{{
			Type:   types.Open,
			Action: types.Sell,
			Price:  bar.Close,
			TP:     bar.Close - 50, // Too large to be hit
			SL:     bar.Close + 100,
			Size:   1.0,
		}}
	}

	return nil
}

func TimeFromString(timeStr string) (t time.Time) {
	t, _ = time.Parse(time.RFC3339, timeStr)
	return
}
