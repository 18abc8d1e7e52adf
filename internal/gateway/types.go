package gateway

import "time"

// Side represents the direction of a position or order.
type Side int

const (
	SideBuy Side = iota
	SideSell
)

// Inverse returns the opposite side, used when building closing orders.
func (s Side) Inverse() Side {
	if s == SideBuy {
		return SideSell
	}
	return SideBuy
}

func (s Side) String() string {
	switch s {
	case SideBuy:
		return "buy"
	case SideSell:
		return "sell"
	default:
		return "unknown"
	}
}

// Valid reports whether the side is one of the two known directions.
func (s Side) Valid() bool {
	return s == SideBuy || s == SideSell
}

// TradeAction selects the kind of request sent to the broker.
type TradeAction int

const (
	// ActionDeal opens or closes a position at market.
	ActionDeal TradeAction = iota
	// ActionModifyStops changes the stop-loss/take-profit of an open position.
	ActionModifyStops
)

// TimePolicy restricts how long an order stays active.
type TimePolicy int

const (
	// TimeGTC keeps the order active until cancelled.
	TimeGTC TimePolicy = iota
)

// FillPolicy restricts how an order may be filled.
type FillPolicy int

const (
	// FillIOC fills what it can immediately and cancels the rest.
	FillIOC FillPolicy = iota
)

// Position is a read-only snapshot of an open position owned by the broker.
// Profit is the floating profit in account currency at snapshot time.
type Position struct {
	Ticket     int64
	Symbol     string
	Volume     float64
	Side       Side
	OpenPrice  float64
	StopLoss   float64
	TakeProfit float64
	Profit     float64
}

// SymbolInfo holds broker metadata for one instrument. It is refreshed per
// engine operation and never cached across calls.
type SymbolInfo struct {
	Symbol          string
	Point           float64
	Digits          int
	VolumeMin       float64
	VolumeStep      float64
	MinStopDistance float64
	TickValue       float64
	Visible         bool
}

// Tick is the latest quote for an instrument. Fetched fresh before every
// price-dependent decision.
type Tick struct {
	Bid  float64
	Ask  float64
	Time time.Time
}

// Timeframe identifies a candle period for historical rates.
type Timeframe string

const (
	TimeframeM1  Timeframe = "M1"
	TimeframeM5  Timeframe = "M5"
	TimeframeM15 Timeframe = "M15"
	TimeframeH1  Timeframe = "H1"
	TimeframeD1  Timeframe = "D1"
)

// Candle is one OHLCV bar of historical rates.
type Candle struct {
	Time   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume float64
}

// OrderRequest is a fully typed order submission. Constructed fresh per
// submission and never reused.
type OrderRequest struct {
	Action     TradeAction
	Side       Side
	Symbol     string
	Volume     float64
	Price      float64
	StopLoss   float64
	TakeProfit float64
	Deviation  int
	Magic      int
	Comment    string
	TimePolicy TimePolicy
	FillPolicy FillPolicy
	// Position is the ticket of the position being closed or modified.
	// Zero for opening orders.
	Position int64
}

// RetCodeDone is the broker return code for a fully executed request.
// Adapters for brokers with different code spaces translate success to it.
const RetCodeDone = 10009

// OrderResult is the broker's classification of one order submission.
type OrderResult struct {
	RetCode int
	Message string
}

// Done reports whether the submission executed successfully.
func (r *OrderResult) Done() bool {
	return r != nil && r.RetCode == RetCodeDone
}

// AccountInfo is the subset of broker account state the engine consumes.
type AccountInfo struct {
	Login        int64
	Balance      float64
	Equity       float64
	Currency     string
	TradeAllowed bool
}
