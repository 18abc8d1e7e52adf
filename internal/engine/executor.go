package engine

import (
	"context"

	"github.com/sirupsen/logrus"

	traderr "github.com/tradeops/mt5-engine/internal/errors"
	"github.com/tradeops/mt5-engine/internal/gateway"
	"github.com/tradeops/mt5-engine/internal/logger"
	"github.com/tradeops/mt5-engine/internal/monitoring"
)

// Executor builds and submits order requests and classifies broker
// responses. Exactly one order is submitted per call; retry decisions belong
// to the caller.
type Executor struct {
	session gateway.Session
	log     *logrus.Entry
}

// NewExecutor creates an order executor bound to one gateway session.
func NewExecutor(session gateway.Session) *Executor {
	return &Executor{
		session: session,
		log:     logger.WithComponent("executor"),
	}
}

// Open submits a market order for the given direction with stop-loss and
// take-profit derived from the pip distances. The entry price is the ask for
// longs and the bid for shorts, read fresh from the gateway.
func (e *Executor) Open(ctx context.Context, symbol string, side gateway.Side, volume, stopLossPips, takeProfitPips float64) (*gateway.OrderResult, error) {
	tick, err := e.session.Tick(ctx, symbol)
	if err != nil || tick == nil {
		return nil, traderr.NewDataUnavailable("executor", "tick", err)
	}
	info, err := e.session.SymbolInfo(ctx, symbol)
	if err != nil || info == nil {
		return nil, traderr.NewDataUnavailable("executor", "symbol_info", err)
	}

	price := tick.Ask
	if side == gateway.SideSell {
		price = tick.Bid
	}

	stopLoss, takeProfit, err := StopLevels(side, price, stopLossPips, takeProfitPips, info)
	if err != nil {
		return nil, err
	}
	if err := ValidateOrder(info, volume, price, stopLoss, takeProfit); err != nil {
		return nil, err
	}

	req := &gateway.OrderRequest{
		Action:     gateway.ActionDeal,
		Side:       side,
		Symbol:     symbol,
		Volume:     volume,
		Price:      price,
		StopLoss:   stopLoss,
		TakeProfit: takeProfit,
		Deviation:  DefaultDeviation,
		Magic:      MagicNumber,
		Comment:    "open trade",
		TimePolicy: gateway.TimeGTC,
		FillPolicy: gateway.FillIOC,
	}

	res, err := e.submit(ctx, req, 0)
	if err != nil {
		return nil, err
	}
	e.log.WithFields(logrus.Fields{
		"symbol": symbol,
		"side":   side.String(),
		"volume": volume,
		"price":  price,
		"sl":     stopLoss,
		"tp":     takeProfit,
	}).Info("order placed")
	monitoring.RecordTrade(symbol, side.String(), volume)
	return res, nil
}

// Close submits the inverse-side market order for one open position. Long
// positions close at the bid, shorts at the ask.
func (e *Executor) Close(ctx context.Context, pos gateway.Position) error {
	tick, err := e.session.Tick(ctx, pos.Symbol)
	if err != nil || tick == nil {
		return traderr.NewDataUnavailable("executor", "tick", err)
	}

	price := tick.Bid
	if pos.Side == gateway.SideSell {
		price = tick.Ask
	}

	req := &gateway.OrderRequest{
		Action:     gateway.ActionDeal,
		Side:       pos.Side.Inverse(),
		Symbol:     pos.Symbol,
		Volume:     pos.Volume,
		Price:      price,
		Deviation:  DefaultDeviation,
		Magic:      MagicNumber,
		Comment:    "close trade",
		TimePolicy: gateway.TimeGTC,
		FillPolicy: gateway.FillIOC,
		Position:   pos.Ticket,
	}

	if _, err := e.submit(ctx, req, pos.Ticket); err != nil {
		return err
	}
	e.log.WithFields(logrus.Fields{
		"ticket": pos.Ticket,
		"symbol": pos.Symbol,
		"price":  price,
	}).Info("position closed")
	monitoring.RecordTrade(pos.Symbol, pos.Side.Inverse().String(), pos.Volume)
	return nil
}

// ModifyStops submits a stop-loss-only modification for one open position.
// The take-profit is carried over unchanged.
func (e *Executor) ModifyStops(ctx context.Context, pos gateway.Position, newStopLoss float64) error {
	req := &gateway.OrderRequest{
		Action:     gateway.ActionModifyStops,
		Symbol:     pos.Symbol,
		StopLoss:   newStopLoss,
		TakeProfit: pos.TakeProfit,
		Deviation:  DefaultDeviation,
		Magic:      MagicNumber,
		Comment:    "trailing stop adjustment",
		TimePolicy: gateway.TimeGTC,
		FillPolicy: gateway.FillIOC,
		Position:   pos.Ticket,
	}

	if _, err := e.submit(ctx, req, pos.Ticket); err != nil {
		return err
	}
	e.log.WithFields(logrus.Fields{
		"ticket": pos.Ticket,
		"sl":     newStopLoss,
	}).Info("stop loss updated")
	return nil
}

// submit sends one request and classifies the outcome. Rejections are never
// swallowed: every non-success result is surfaced with the originating
// ticket and the broker's message.
func (e *Executor) submit(ctx context.Context, req *gateway.OrderRequest, ticket int64) (*gateway.OrderResult, error) {
	res, err := e.session.SendOrder(ctx, req)
	if err != nil {
		res = nil
	}

	switch Classify(res) {
	case ExecNoResponse:
		e.log.WithField("ticket", ticket).Error("no response from order send")
		monitoring.RecordError(string(traderr.CategoryNoResponse))
		return nil, traderr.NewNoResponse("executor", ticket)
	case ExecRejected:
		e.log.WithFields(logrus.Fields{
			"ticket":  ticket,
			"retcode": res.RetCode,
			"message": res.Message,
		}).Error("order rejected")
		monitoring.RecordRejection(req.Symbol)
		return nil, traderr.NewOrderRejected("executor", ticket, res.RetCode, res.Message)
	default:
		return res, nil
	}
}
