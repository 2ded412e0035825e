package strategy

import (
	"github.com/jwtly10/tradetables/internal/types"
)

// SMACross opens a long when the fast SMA crosses above the slow SMA and a
// short on the opposite cross. Stops sit ATRMultiple ATRs away from entry.
// Only one position is held at a time.
type SMACross struct {
	Fast        int
	Slow        int
	ATRPeriod   int
	ATRMultiple float64
	Risk        Risk

	fast, slow         *SMA
	atr                *ATR
	prevFast, prevSlow float64
	primed             bool
}

func NewSMACross(fast, slow int) *SMACross {
	return &SMACross{
		Fast:        fast,
		Slow:        slow,
		ATRPeriod:   14,
		ATRMultiple: 2,
		Risk: Risk{
			RiskPercentage: 1,
			RiskRatio:      2,
		},
	}
}

func (s *SMACross) Name() string {
	return "SMACross"
}

func (s *SMACross) Params() Params {
	return Params{
		{Name: "fast", Value: s.Fast},
		{Name: "slow", Value: s.Slow},
		{Name: "atr", Value: s.ATRPeriod},
		{Name: "atr_mult", Value: s.ATRMultiple},
	}
}

func (s *SMACross) OnBar(bars []types.Bar, currentIndex int, acct Account) []types.Signal {
	if s.fast == nil || currentIndex == 0 {
		s.reset()
	}

	bar := bars[currentIndex]
	s.fast.Update(bar.Close)
	s.slow.Update(bar.Close)
	s.atr.Update(bar)

	if !IndicatorsReady(s.fast, s.slow, s.atr) {
		return nil
	}

	fast, slow := s.fast.Value(), s.slow.Value()
	defer func() {
		s.prevFast, s.prevSlow, s.primed = fast, slow, true
	}()

	if !s.primed || acct.PositionCount() > 0 {
		return nil
	}

	stop := s.atr.Value() * s.ATRMultiple
	switch {
	case s.prevFast <= s.prevSlow && fast > slow:
		strategyLog.Info("Fast SMA crossed above slow", "timestamp", bar.Timestamp, "fast", fast, "slow", slow)
		return []types.Signal{OpenLong(s.Risk, bar, stop, acct)}
	case s.prevFast >= s.prevSlow && fast < slow:
		strategyLog.Info("Fast SMA crossed below slow", "timestamp", bar.Timestamp, "fast", fast, "slow", slow)
		return []types.Signal{OpenShort(s.Risk, bar, stop, acct)}
	}
	return nil
}

func (s *SMACross) reset() {
	s.fast = NewSMA(s.Fast)
	s.slow = NewSMA(s.Slow)
	s.atr = NewATR(s.ATRPeriod)
	s.prevFast, s.prevSlow, s.primed = 0, 0, false
}
