package engine

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	traderr "github.com/tradeops/mt5-engine/internal/errors"
	"github.com/tradeops/mt5-engine/internal/gateway"
)

func TestClassify(t *testing.T) {
	assert.Equal(t, ExecNoResponse, Classify(nil))
	assert.Equal(t, ExecRejected, Classify(&gateway.OrderResult{RetCode: 10004, Message: "Requote"}))
	assert.Equal(t, ExecDone, Classify(&gateway.OrderResult{RetCode: gateway.RetCodeDone}))
}

func TestOpenBuyUsesAskAndComputedStops(t *testing.T) {
	session := newFakeSession()
	exec := NewExecutor(session)

	res, err := exec.Open(context.Background(), "EURUSD", gateway.SideBuy, 0.05, 20, 40)
	require.NoError(t, err)
	assert.True(t, res.Done())

	require.Len(t, session.sent, 1)
	req := session.sent[0]
	assert.Equal(t, gateway.ActionDeal, req.Action)
	assert.Equal(t, gateway.SideBuy, req.Side)
	assert.Equal(t, session.tick.Ask, req.Price)
	assert.InDelta(t, session.tick.Ask-0.00200, req.StopLoss, 1e-9)
	assert.InDelta(t, session.tick.Ask+0.00400, req.TakeProfit, 1e-9)
	assert.Equal(t, DefaultDeviation, req.Deviation)
	assert.Equal(t, MagicNumber, req.Magic)
	assert.Equal(t, gateway.TimeGTC, req.TimePolicy)
	assert.Equal(t, gateway.FillIOC, req.FillPolicy)
	assert.Zero(t, req.Position)
}

func TestOpenSellUsesBid(t *testing.T) {
	session := newFakeSession()
	exec := NewExecutor(session)

	_, err := exec.Open(context.Background(), "EURUSD", gateway.SideSell, 0.05, 20, 40)
	require.NoError(t, err)

	require.Len(t, session.sent, 1)
	req := session.sent[0]
	assert.Equal(t, gateway.SideSell, req.Side)
	assert.Equal(t, session.tick.Bid, req.Price)
	assert.Greater(t, req.StopLoss, req.Price)
	assert.Less(t, req.TakeProfit, req.Price)
}

func TestOpenValidationFailureSubmitsNothing(t *testing.T) {
	session := newFakeSession()
	exec := NewExecutor(session)

	_, err := exec.Open(context.Background(), "EURUSD", gateway.SideBuy, 0.001, 20, 40)
	require.Error(t, err)
	assert.True(t, traderr.IsValidation(err))
	assert.Empty(t, session.sent)
}

func TestOpenTickUnavailable(t *testing.T) {
	session := newFakeSession()
	session.tickErr = errors.New("terminal gone")
	exec := NewExecutor(session)

	_, err := exec.Open(context.Background(), "EURUSD", gateway.SideBuy, 0.05, 20, 40)
	require.Error(t, err)
	assert.True(t, traderr.IsDataUnavailable(err))
	assert.Empty(t, session.sent)
}

func TestOpenNoResponseSubmitsExactlyOnce(t *testing.T) {
	session := newFakeSession()
	session.sendFn = func(*gateway.OrderRequest) (*gateway.OrderResult, error) {
		return nil, nil
	}
	exec := NewExecutor(session)

	_, err := exec.Open(context.Background(), "EURUSD", gateway.SideBuy, 0.05, 20, 40)
	require.Error(t, err)
	assert.True(t, traderr.IsNoResponse(err))
	assert.Len(t, session.sent, 1)
}

func TestOpenTransportErrorIsNoResponse(t *testing.T) {
	session := newFakeSession()
	session.sendFn = func(*gateway.OrderRequest) (*gateway.OrderResult, error) {
		return nil, errors.New("connection reset")
	}
	exec := NewExecutor(session)

	_, err := exec.Open(context.Background(), "EURUSD", gateway.SideBuy, 0.05, 20, 40)
	require.Error(t, err)
	assert.True(t, traderr.IsNoResponse(err))
	assert.Len(t, session.sent, 1)
}

func TestOpenRejectedCarriesRetcodeAndMessage(t *testing.T) {
	session := newFakeSession()
	session.sendFn = func(*gateway.OrderRequest) (*gateway.OrderResult, error) {
		return &gateway.OrderResult{RetCode: 10019, Message: "No money"}, nil
	}
	exec := NewExecutor(session)

	_, err := exec.Open(context.Background(), "EURUSD", gateway.SideBuy, 0.05, 20, 40)
	require.Error(t, err)
	assert.True(t, traderr.IsRejected(err))

	var te *traderr.TradeError
	require.ErrorAs(t, err, &te)
	assert.Equal(t, 10019, te.RetCode)
	assert.Contains(t, te.Message, "No money")
}

func TestCloseLongUsesBidAndInverseSide(t *testing.T) {
	session := newFakeSession()
	exec := NewExecutor(session)
	pos := gateway.Position{
		Ticket: 4711, Symbol: "EURUSD", Volume: 0.05,
		Side: gateway.SideBuy, OpenPrice: 1.09500,
	}

	require.NoError(t, exec.Close(context.Background(), pos))

	require.Len(t, session.sent, 1)
	req := session.sent[0]
	assert.Equal(t, gateway.ActionDeal, req.Action)
	assert.Equal(t, gateway.SideSell, req.Side)
	assert.Equal(t, session.tick.Bid, req.Price)
	assert.Equal(t, pos.Volume, req.Volume)
	assert.Equal(t, pos.Ticket, req.Position)
}

func TestCloseShortUsesAsk(t *testing.T) {
	session := newFakeSession()
	exec := NewExecutor(session)
	pos := gateway.Position{Ticket: 42, Symbol: "EURUSD", Volume: 0.10, Side: gateway.SideSell}

	require.NoError(t, exec.Close(context.Background(), pos))

	require.Len(t, session.sent, 1)
	assert.Equal(t, gateway.SideBuy, session.sent[0].Side)
	assert.Equal(t, session.tick.Ask, session.sent[0].Price)
}

func TestModifyStopsCarriesTakeProfit(t *testing.T) {
	session := newFakeSession()
	exec := NewExecutor(session)
	pos := gateway.Position{
		Ticket: 99, Symbol: "EURUSD", Volume: 0.05,
		Side: gateway.SideBuy, StopLoss: 1.09800, TakeProfit: 1.10400,
	}

	require.NoError(t, exec.ModifyStops(context.Background(), pos, 1.10000))

	require.Len(t, session.sent, 1)
	req := session.sent[0]
	assert.Equal(t, gateway.ActionModifyStops, req.Action)
	assert.Equal(t, 1.10000, req.StopLoss)
	assert.Equal(t, pos.TakeProfit, req.TakeProfit)
	assert.Equal(t, pos.Ticket, req.Position)
}
