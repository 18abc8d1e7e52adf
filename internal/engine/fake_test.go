package engine

import (
	"context"

	"github.com/tradeops/mt5-engine/internal/gateway"
)

// fakeSession is an in-memory gateway.Session for engine tests. Fixed fields
// serve the simple cases; the Fn hooks take over when a test needs per-call
// behavior.
type fakeSession struct {
	positions    []gateway.Position
	positionsErr error
	positionsFn  func(call int) ([]gateway.Position, error)
	positionCall int

	info    *gateway.SymbolInfo
	infoErr error

	tick    *gateway.Tick
	tickErr error

	candles  []gateway.Candle
	ratesErr error

	account    *gateway.AccountInfo
	accountErr error

	sent   []*gateway.OrderRequest
	sendFn func(req *gateway.OrderRequest) (*gateway.OrderResult, error)

	closed bool
}

// newFakeSession returns a session primed with EURUSD-like metadata and a
// quote, with every order succeeding.
func newFakeSession() *fakeSession {
	return &fakeSession{
		info: &gateway.SymbolInfo{
			Symbol:          "EURUSD",
			Point:           0.00010,
			Digits:          5,
			VolumeMin:       0.01,
			VolumeStep:      0.01,
			MinStopDistance: 0.00100,
			TickValue:       1.0,
			Visible:         true,
		},
		tick: &gateway.Tick{Bid: 1.10000, Ask: 1.10010},
	}
}

func doneResult() *gateway.OrderResult {
	return &gateway.OrderResult{RetCode: gateway.RetCodeDone, Message: "Request executed"}
}

func (f *fakeSession) OpenPositions(ctx context.Context, symbol string) ([]gateway.Position, error) {
	call := f.positionCall
	f.positionCall++
	if f.positionsFn != nil {
		return f.positionsFn(call)
	}
	if f.positionsErr != nil {
		return nil, f.positionsErr
	}
	return f.positions, nil
}

func (f *fakeSession) SymbolInfo(ctx context.Context, symbol string) (*gateway.SymbolInfo, error) {
	if f.infoErr != nil {
		return nil, f.infoErr
	}
	return f.info, nil
}

func (f *fakeSession) Tick(ctx context.Context, symbol string) (*gateway.Tick, error) {
	if f.tickErr != nil {
		return nil, f.tickErr
	}
	return f.tick, nil
}

func (f *fakeSession) Rates(ctx context.Context, symbol string, tf gateway.Timeframe, count int) ([]gateway.Candle, error) {
	if f.ratesErr != nil {
		return nil, f.ratesErr
	}
	return f.candles, nil
}

func (f *fakeSession) SendOrder(ctx context.Context, req *gateway.OrderRequest) (*gateway.OrderResult, error) {
	f.sent = append(f.sent, req)
	if f.sendFn != nil {
		return f.sendFn(req)
	}
	return doneResult(), nil
}

func (f *fakeSession) AccountInfo(ctx context.Context) (*gateway.AccountInfo, error) {
	if f.accountErr != nil {
		return nil, f.accountErr
	}
	return f.account, nil
}

func (f *fakeSession) Close() error {
	f.closed = true
	return nil
}
