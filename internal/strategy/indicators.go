package strategy

import (
	"math"

	"github.com/jwtly10/tradetables/internal/logging"
	"github.com/jwtly10/tradetables/internal/types"
)

var (
	atrLog      = logging.New("atr")
	emaLog      = logging.New("ema")
	smaLog      = logging.New("sma")
	strategyLog = logging.New("strategy")
)

type Indicator interface {
	Ready() bool
}

// EMA - Exponential Moving Average
type EMA struct {
	period int
	value  float64
	alpha  float64
	init   bool
}

func NewEMA(period int) *EMA {
	return &EMA{
		period: period,
		alpha:  2.0 / float64(period+1),
	}
}

func (e *EMA) Update(price float64) {
	if !e.init {
		e.value = price
		e.init = true
	} else {
		e.value = price*e.alpha + e.value*(1-e.alpha)
	}
	emaLog.Debug("EMA updated", "period", e.period, "price", price, "value", e.value)
}

func (e *EMA) Value() float64 {
	return e.value
}

func (e *EMA) Ready() bool {
	return e.init
}

// SMA - Simple Moving Average over a fixed window
type SMA struct {
	period int
	values []float64
	sum    float64
}

func NewSMA(period int) *SMA {
	return &SMA{
		period: period,
		values: make([]float64, 0, period+1),
	}
}

func (s *SMA) Update(price float64) {
	s.values = append(s.values, price)
	s.sum += price
	if len(s.values) > s.period {
		s.sum -= s.values[0]
		s.values = s.values[1:]
	}
	smaLog.Debug("SMA updated", "period", s.period, "price", price, "value", s.Value(), "ready", s.Ready())
}

func (s *SMA) Value() float64 {
	if len(s.values) == 0 {
		return 0
	}
	return s.sum / float64(len(s.values))
}

func (s *SMA) Ready() bool {
	return len(s.values) >= s.period
}

// ATR - Average True Range, smoothed with an EMA
type ATR struct {
	period    int
	ema       *EMA
	prevClose float64
	seen      int
}

func NewATR(period int) *ATR {
	return &ATR{
		period: period,
		ema:    NewEMA(period),
	}
}

func (a *ATR) Update(bar types.Bar) {
	a.seen++
	if a.seen == 1 {
		a.prevClose = bar.Close
		return
	}

	// True Range = max(high-low, |high-prevClose|, |low-prevClose|)
	tr := math.Max(bar.High-bar.Low, math.Max(math.Abs(bar.High-a.prevClose), math.Abs(bar.Low-a.prevClose)))
	a.ema.Update(tr)
	a.prevClose = bar.Close

	atrLog.Debug("ATR updated", "timestamp", bar.Timestamp, "trueRange", tr, "value", a.Value(), "ready", a.Ready())
}

func (a *ATR) Value() float64 {
	return a.ema.Value()
}

// Ready once period true ranges have been seen
func (a *ATR) Ready() bool {
	return a.seen > a.period
}
