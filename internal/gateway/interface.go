package gateway

import "context"

// Gateway is a connectable brokerage endpoint. Connect returns an explicit
// Session value; no connection state is held in package globals.
type Gateway interface {
	Connect(ctx context.Context) (Session, error)
}

// Session is one logical connection to the broker. The underlying trading
// session is a single-writer resource: callers must not share a Session
// across concurrently running control loops without external serialization.
type Session interface {
	// OpenPositions returns a snapshot of open positions. An empty symbol
	// selects positions across all instruments.
	OpenPositions(ctx context.Context, symbol string) ([]Position, error)

	// SymbolInfo returns broker metadata for one instrument.
	SymbolInfo(ctx context.Context, symbol string) (*SymbolInfo, error)

	// Tick returns the current quote for one instrument.
	Tick(ctx context.Context, symbol string) (*Tick, error)

	// Rates returns up to count most recent candles for the instrument.
	Rates(ctx context.Context, symbol string, tf Timeframe, count int) ([]Candle, error)

	// SendOrder submits exactly one order request. A nil result with a nil
	// error means the broker returned no response object at all; callers
	// classify that as a transient failure.
	SendOrder(ctx context.Context, req *OrderRequest) (*OrderResult, error)

	// AccountInfo returns account-level state such as the autotrade flag.
	AccountInfo(ctx context.Context) (*AccountInfo, error)

	// Close terminates the session.
	Close() error
}
