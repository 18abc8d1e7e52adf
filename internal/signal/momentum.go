package signal

import (
	"context"
	"fmt"

	"github.com/tradeops/mt5-engine/internal/gateway"
	"github.com/tradeops/mt5-engine/internal/indicators"
)

// MomentumConfig holds the indicator windows of the momentum provider.
type MomentumConfig struct {
	ShortWindow      int
	LongWindow       int
	RSIPeriod        int
	MACDFastPeriod   int
	MACDSlowPeriod   int
	MACDSignalPeriod int
}

// DefaultMomentumConfig returns the standard windows.
func DefaultMomentumConfig() MomentumConfig {
	return MomentumConfig{
		ShortWindow:      5,
		LongWindow:       20,
		RSIPeriod:        14,
		MACDFastPeriod:   12,
		MACDSlowPeriod:   26,
		MACDSignalPeriod: 9,
	}
}

// MomentumProvider derives signals from a short/long SMA cross gated by RSI,
// with a MACD-versus-signal-line fallback.
type MomentumProvider struct {
	cfg      MomentumConfig
	smaShort *indicators.SMA
	smaLong  *indicators.SMA
	rsi      *indicators.RSI
	macd     *indicators.MACD
	trained  bool
}

// NewMomentumProvider creates an untrained momentum provider.
func NewMomentumProvider(cfg MomentumConfig) *MomentumProvider {
	return &MomentumProvider{
		cfg:      cfg,
		smaShort: indicators.NewSMA(cfg.ShortWindow),
		smaLong:  indicators.NewSMA(cfg.LongWindow),
		rsi:      indicators.NewRSI(cfg.RSIPeriod),
		macd:     indicators.NewMACD(cfg.MACDFastPeriod, cfg.MACDSlowPeriod, cfg.MACDSignalPeriod),
	}
}

// Ready reports whether Train has completed.
func (p *MomentumProvider) Ready() bool {
	return p.trained
}

// requiredPeriods is the longest indicator warm-up plus one bar for the
// previous-cross comparison.
func (p *MomentumProvider) requiredPeriods() int {
	required := p.cfg.LongWindow + 1
	if n := p.rsi.RequiredPeriods(); n > required {
		required = n
	}
	if n := p.macd.RequiredPeriods(); n > required {
		required = n
	}
	return required
}

// Train verifies the history covers every indicator warm-up window.
func (p *MomentumProvider) Train(ctx context.Context, history []gateway.Candle) error {
	if len(history) < p.requiredPeriods() {
		return fmt.Errorf("signal: need at least %d candles to train, got %d",
			p.requiredPeriods(), len(history))
	}
	p.trained = true
	return nil
}

// Predict evaluates the rule set on the latest candles:
// short SMA crossing above long with RSI oversold is a buy, crossing below
// with RSI overbought is a sell; otherwise the MACD line against its signal
// line decides, and ties hold.
func (p *MomentumProvider) Predict(ctx context.Context, history []gateway.Candle) (Signal, error) {
	if !p.trained {
		return SignalHold, ErrNotTrained
	}
	if len(history) < p.requiredPeriods() {
		return SignalHold, indicators.ErrInsufficientData
	}

	closes := make([]float64, len(history))
	for i, c := range history {
		closes[i] = c.Close
	}
	prevCloses := closes[:len(closes)-1]

	shortNow, err := p.smaShort.Calculate(closes)
	if err != nil {
		return SignalHold, err
	}
	longNow, err := p.smaLong.Calculate(closes)
	if err != nil {
		return SignalHold, err
	}
	shortPrev, err := p.smaShort.Calculate(prevCloses)
	if err != nil {
		return SignalHold, err
	}
	longPrev, err := p.smaLong.Calculate(prevCloses)
	if err != nil {
		return SignalHold, err
	}
	rsi, err := p.rsi.Calculate(closes)
	if err != nil {
		return SignalHold, err
	}
	macdLine, signalLine, _, err := p.macd.Calculate(closes)
	if err != nil {
		return SignalHold, err
	}

	crossedUp := shortNow > longNow && shortPrev <= longPrev
	crossedDown := shortNow < longNow && shortPrev >= longPrev

	switch {
	case crossedUp && rsi < 30:
		return SignalBuy, nil
	case crossedDown && rsi > 70:
		return SignalSell, nil
	case macdLine > signalLine:
		return SignalBuy, nil
	case macdLine < signalLine:
		return SignalSell, nil
	default:
		return SignalHold, nil
	}
}
