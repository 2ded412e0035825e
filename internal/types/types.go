package types

import (
	"fmt"
	"time"
)

const (
	Buy  Action = "BUY"
	Sell Action = "SELL"

	Open SignalType = "OPEN_TRADE"
)

type Bar struct {
	Timestamp time.Time
	Open      float64
	High      float64
	Low       float64
	Close     float64
	Volume    float64
}

// Validate checks the bar's prices are internally consistent.
func (b Bar) Validate() error {
	if b.Timestamp.IsZero() {
		return fmt.Errorf("bar has no timestamp")
	}
	if b.High < b.Low {
		return fmt.Errorf("bar %s: high %.5f below low %.5f", b.Timestamp.Format(time.RFC3339), b.High, b.Low)
	}
	if b.Open > b.High || b.Open < b.Low || b.Close > b.High || b.Close < b.Low {
		return fmt.Errorf("bar %s: open/close outside high-low range", b.Timestamp.Format(time.RFC3339))
	}
	return nil
}

type Action string
type SignalType string

type Signal struct {
	Type   SignalType
	Action Action // Buy or Sell
	Price  float64
	TP     float64
	SL     float64
	Size   float64 // Units
}
