// Package signal defines the directional signal provider consumed by the
// autotrader and a momentum implementation built on moving-average cross,
// RSI and MACD.
package signal

import (
	"context"
	"errors"

	"github.com/tradeops/mt5-engine/internal/gateway"
)

// Signal is a directional trading signal.
type Signal int

const (
	SignalHold Signal = iota
	SignalBuy
	SignalSell
)

func (s Signal) String() string {
	switch s {
	case SignalBuy:
		return "BUY"
	case SignalSell:
		return "SELL"
	default:
		return "HOLD"
	}
}

// Side converts a directional signal to an order side. Calling Side on
// SignalHold is a programming error; callers filter holds first.
func (s Signal) Side() gateway.Side {
	if s == SignalSell {
		return gateway.SideSell
	}
	return gateway.SideBuy
}

// ErrNotTrained is returned by Predict when the provider has not been
// trained yet. Callers check Ready first and fall into a train-then-retry
// path instead of reacting to this error.
var ErrNotTrained = errors.New("signal: model not trained")

// Provider produces directional signals from historical candles.
type Provider interface {
	// Ready reports whether the provider can predict without training.
	Ready() bool
	// Train fits the provider on historical candles.
	Train(ctx context.Context, history []gateway.Candle) error
	// Predict returns a signal for the most recent state of the series.
	Predict(ctx context.Context, history []gateway.Candle) (Signal, error)
}

// Resolve obtains a signal with the explicit availability check: an
// untrained provider is trained once and prediction is retried exactly once.
func Resolve(ctx context.Context, p Provider, history []gateway.Candle) (Signal, error) {
	if !p.Ready() {
		if err := p.Train(ctx, history); err != nil {
			return SignalHold, err
		}
	}
	return p.Predict(ctx, history)
}
