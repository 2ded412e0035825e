package backtest

import (
	"log/slog"
	"time"

	"github.com/jwtly10/tradetables/internal/types"
)

const (
	Long  Direction = "LONG"
	Short Direction = "SHORT"

	StopLoss      ExitReason = "STOP_LOSS"
	TakeProfit    ExitReason = "TAKE_PROFIT"
	EndOfBacktest ExitReason = "END_OF_BACKTEST"
)

type Direction string
type ExitReason string

type Position struct {
	ID         int
	OpenTime   time.Time
	Direction  Direction
	EntryPrice float64
	Size       float64
	StopLoss   float64
	TakeProfit float64
}

// Trade is a closed position.
type Trade struct {
	ID         int
	EntryTime  time.Time
	ExitTime   time.Time
	Direction  Direction
	EntryPrice float64
	ExitPrice  float64
	Size       float64
	StopLoss   float64
	TakeProfit float64
	PnL        float64
	PnLPercent float64
	ExitReason ExitReason
}

// Broker tracks the balance and open positions of one strategy run.
type Broker struct {
	balance float64
	open    []*Position
	nextID  int
}

func NewBroker(initialBalance float64) *Broker {
	return &Broker{
		balance: initialBalance,
		nextID:  1,
	}
}

func (b *Broker) Balance() float64 {
	return b.balance
}

func (b *Broker) PositionCount() int {
	return len(b.open)
}

func (b *Broker) Open(signal types.Signal, timestamp time.Time) *Position {
	dir := Long
	if signal.Action == types.Sell {
		dir = Short
	}

	pos := &Position{
		ID:         b.nextID,
		OpenTime:   timestamp,
		Direction:  dir,
		EntryPrice: signal.Price,
		Size:       signal.Size,
		StopLoss:   signal.SL,
		TakeProfit: signal.TP,
	}
	b.nextID++
	b.open = append(b.open, pos)

	slog.Debug("Opened position", "id", pos.ID, "direction", dir, "price", pos.EntryPrice, "size", pos.Size, "tp", pos.TakeProfit, "sl", pos.StopLoss, "timestamp", timestamp)
	return pos
}

// CheckExits closes positions whose stop loss or take profit was touched by
// bar. When both are inside the bar the stop loss wins.
func (b *Broker) CheckExits(bar types.Bar) []Trade {
	var closed []Trade
	remaining := b.open[:0]

	for _, pos := range b.open {
		var (
			hitSL, hitTP bool
		)
		if pos.Direction == Long {
			hitSL = bar.Low <= pos.StopLoss
			hitTP = bar.High >= pos.TakeProfit
		} else {
			hitSL = bar.High >= pos.StopLoss
			hitTP = bar.Low <= pos.TakeProfit
		}

		switch {
		case hitSL:
			closed = append(closed, b.close(pos, pos.StopLoss, bar.Timestamp, StopLoss))
		case hitTP:
			closed = append(closed, b.close(pos, pos.TakeProfit, bar.Timestamp, TakeProfit))
		default:
			remaining = append(remaining, pos)
		}
	}

	b.open = remaining
	return closed
}

// CloseAll closes every open position at the bar close.
func (b *Broker) CloseAll(lastBar types.Bar) []Trade {
	var trades []Trade
	for _, pos := range b.open {
		trades = append(trades, b.close(pos, lastBar.Close, lastBar.Timestamp, EndOfBacktest))
	}
	b.open = nil
	return trades
}

func (b *Broker) close(pos *Position, exitPrice float64, exitTime time.Time, reason ExitReason) Trade {
	pnl := (exitPrice - pos.EntryPrice) * pos.Size
	if pos.Direction == Short {
		pnl = -pnl
	}
	b.balance += pnl

	slog.Debug("Closed position", "id", pos.ID, "exit_price", exitPrice, "pnl", pnl, "reason", reason, "timestamp", exitTime)

	var pct float64
	if notional := pos.EntryPrice * pos.Size; notional != 0 {
		pct = pnl / notional * 100
	}

	return Trade{
		ID:         pos.ID,
		EntryTime:  pos.OpenTime,
		ExitTime:   exitTime,
		Direction:  pos.Direction,
		EntryPrice: pos.EntryPrice,
		ExitPrice:  exitPrice,
		Size:       pos.Size,
		StopLoss:   pos.StopLoss,
		TakeProfit: pos.TakeProfit,
		PnL:        pnl,
		PnLPercent: pct,
		ExitReason: reason,
	}
}
