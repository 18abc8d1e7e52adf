package mt5

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/tradeops/mt5-engine/internal/gateway"
)

// session is one initialized terminal connection.
type session struct {
	client *Client
	id     string
}

type positionDTO struct {
	Ticket    int64   `json:"ticket"`
	Symbol    string  `json:"symbol"`
	Volume    float64 `json:"volume"`
	Type      int     `json:"type"`
	PriceOpen float64 `json:"price_open"`
	SL        float64 `json:"sl"`
	TP        float64 `json:"tp"`
	Profit    float64 `json:"profit"`
}

func (s *session) OpenPositions(ctx context.Context, symbol string) ([]gateway.Position, error) {
	query := s.query()
	if symbol != "" {
		query.Set("symbol", symbol)
	}
	var dtos []positionDTO
	if err := s.client.get(ctx, "/positions", query, &dtos); err != nil {
		return nil, err
	}

	positions := make([]gateway.Position, 0, len(dtos))
	for _, dto := range dtos {
		side := gateway.SideBuy
		if dto.Type == positionTypeSell {
			side = gateway.SideSell
		}
		positions = append(positions, gateway.Position{
			Ticket:     dto.Ticket,
			Symbol:     dto.Symbol,
			Volume:     dto.Volume,
			Side:       side,
			OpenPrice:  dto.PriceOpen,
			StopLoss:   dto.SL,
			TakeProfit: dto.TP,
			Profit:     dto.Profit,
		})
	}
	return positions, nil
}

func (s *session) SymbolInfo(ctx context.Context, symbol string) (*gateway.SymbolInfo, error) {
	query := s.query()
	query.Set("symbol", symbol)
	var dto struct {
		Symbol     string  `json:"symbol"`
		Point      float64 `json:"point"`
		Digits     int     `json:"digits"`
		VolumeMin  float64 `json:"volume_min"`
		VolumeStep float64 `json:"volume_step"`
		StopLevel  int     `json:"trade_stops_level"`
		TickValue  float64 `json:"trade_tick_value"`
		Visible    bool    `json:"visible"`
	}
	if err := s.client.get(ctx, "/symbol_info", query, &dto); err != nil {
		return nil, err
	}
	return &gateway.SymbolInfo{
		Symbol:          dto.Symbol,
		Point:           dto.Point,
		Digits:          dto.Digits,
		VolumeMin:       dto.VolumeMin,
		VolumeStep:      dto.VolumeStep,
		MinStopDistance: float64(dto.StopLevel) * dto.Point,
		TickValue:       dto.TickValue,
		Visible:         dto.Visible,
	}, nil
}

func (s *session) Tick(ctx context.Context, symbol string) (*gateway.Tick, error) {
	query := s.query()
	query.Set("symbol", symbol)
	var dto struct {
		Bid  float64 `json:"bid"`
		Ask  float64 `json:"ask"`
		Time int64   `json:"time"`
	}
	if err := s.client.get(ctx, "/symbol_info_tick", query, &dto); err != nil {
		return nil, err
	}
	return &gateway.Tick{
		Bid:  dto.Bid,
		Ask:  dto.Ask,
		Time: time.Unix(dto.Time, 0),
	}, nil
}

func (s *session) Rates(ctx context.Context, symbol string, tf gateway.Timeframe, count int) ([]gateway.Candle, error) {
	query := s.query()
	query.Set("symbol", symbol)
	query.Set("timeframe", string(tf))
	query.Set("count", strconv.Itoa(count))
	var dtos []struct {
		Time   int64   `json:"time"`
		Open   float64 `json:"open"`
		High   float64 `json:"high"`
		Low    float64 `json:"low"`
		Close  float64 `json:"close"`
		Volume float64 `json:"tick_volume"`
	}
	if err := s.client.get(ctx, "/copy_rates", query, &dtos); err != nil {
		return nil, err
	}

	candles := make([]gateway.Candle, 0, len(dtos))
	for _, dto := range dtos {
		candles = append(candles, gateway.Candle{
			Time:   time.Unix(dto.Time, 0),
			Open:   dto.Open,
			High:   dto.High,
			Low:    dto.Low,
			Close:  dto.Close,
			Volume: dto.Volume,
		})
	}
	return candles, nil
}

// SendOrder translates the typed request to the terminal's trade request
// shape. A bridge response with no result object maps to (nil, nil) so the
// caller classifies it as the transient no-response case.
func (s *session) SendOrder(ctx context.Context, req *gateway.OrderRequest) (*gateway.OrderResult, error) {
	action := tradeActionDeal
	if req.Action == gateway.ActionModifyStops {
		action = tradeActionSLTP
	}
	orderType := orderTypeBuy
	if req.Side == gateway.SideSell {
		orderType = orderTypeSell
	}

	body := map[string]interface{}{
		"session":      s.id,
		"action":       action,
		"symbol":       req.Symbol,
		"volume":       req.Volume,
		"type":         orderType,
		"price":        req.Price,
		"sl":           req.StopLoss,
		"tp":           req.TakeProfit,
		"deviation":    req.Deviation,
		"magic":        req.Magic,
		"comment":      req.Comment,
		"type_time":    orderTimeGTC,
		"type_filling": orderFillingIOC,
	}
	if req.Position != 0 {
		body["position"] = req.Position
	}

	var dto struct {
		RetCode int    `json:"retcode"`
		Comment string `json:"comment"`
	}
	if err := s.client.post(ctx, "/order_send", body, &dto); err != nil {
		if errors.Is(err, errNoContent) {
			return nil, nil
		}
		return nil, err
	}
	return &gateway.OrderResult{
		RetCode: dto.RetCode,
		Message: dto.Comment,
	}, nil
}

func (s *session) AccountInfo(ctx context.Context) (*gateway.AccountInfo, error) {
	var dto struct {
		Login        int64   `json:"login"`
		Balance      float64 `json:"balance"`
		Equity       float64 `json:"equity"`
		Currency     string  `json:"currency"`
		TradeAllowed bool    `json:"trade_allowed"`
	}
	if err := s.client.get(ctx, "/account_info", s.query(), &dto); err != nil {
		return nil, err
	}
	return &gateway.AccountInfo{
		Login:        dto.Login,
		Balance:      dto.Balance,
		Equity:       dto.Equity,
		Currency:     dto.Currency,
		TradeAllowed: dto.TradeAllowed,
	}, nil
}

func (s *session) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), s.client.cfg.Timeout)
	defer cancel()
	if err := s.client.post(ctx, "/shutdown", map[string]interface{}{"session": s.id}, nil); err != nil {
		return fmt.Errorf("mt5 shutdown failed: %w", err)
	}
	return nil
}

func (s *session) query() url.Values {
	query := url.Values{}
	if s.id != "" {
		query.Set("session", s.id)
	}
	return query
}
