package bybit

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	bybit_api "github.com/bybit-exchange/bybit.go.api"

	"github.com/tradeops/mt5-engine/internal/gateway"
)

// session is a credential-scoped view of the Bybit v5 API.
type session struct {
	client *Client
}

func (s *session) OpenPositions(ctx context.Context, symbol string) ([]gateway.Position, error) {
	params := map[string]interface{}{
		"category": category,
	}
	if symbol != "" {
		params["symbol"] = symbol
	} else {
		params["settleCoin"] = "USDT"
	}

	resp, err := s.client.call(
		s.client.httpClient.NewUtaBybitServiceWithParams(params).GetPositionList(ctx))
	if err != nil {
		return nil, err
	}

	var result struct {
		List []struct {
			Symbol        string `json:"symbol"`
			Side          string `json:"side"`
			Size          string `json:"size"`
			AvgPrice      string `json:"avgPrice"`
			StopLoss      string `json:"stopLoss"`
			TakeProfit    string `json:"takeProfit"`
			UnrealisedPnl string `json:"unrealisedPnl"`
			Seq           int64  `json:"seq"`
		} `json:"list"`
	}
	if err := decodeResult(resp, &result); err != nil {
		return nil, err
	}

	positions := make([]gateway.Position, 0, len(result.List))
	for _, p := range result.List {
		size := parseFloat(p.Size)
		if size == 0 {
			continue
		}
		side := gateway.SideBuy
		if p.Side == "Sell" {
			side = gateway.SideSell
		}
		positions = append(positions, gateway.Position{
			Ticket:     p.Seq,
			Symbol:     p.Symbol,
			Volume:     size,
			Side:       side,
			OpenPrice:  parseFloat(p.AvgPrice),
			StopLoss:   parseFloat(p.StopLoss),
			TakeProfit: parseFloat(p.TakeProfit),
			Profit:     parseFloat(p.UnrealisedPnl),
		})
	}
	return positions, nil
}

func (s *session) SymbolInfo(ctx context.Context, symbol string) (*gateway.SymbolInfo, error) {
	params := map[string]interface{}{
		"category": category,
		"symbol":   symbol,
	}
	resp, err := s.client.call(
		s.client.httpClient.NewUtaBybitServiceWithParams(params).GetInstrumentInfo(ctx))
	if err != nil {
		return nil, err
	}

	var result struct {
		List []struct {
			Symbol      string `json:"symbol"`
			Status      string `json:"status"`
			PriceFilter struct {
				TickSize string `json:"tickSize"`
			} `json:"priceFilter"`
			LotSizeFilter struct {
				MinOrderQty string `json:"minOrderQty"`
				QtyStep     string `json:"qtyStep"`
			} `json:"lotSizeFilter"`
		} `json:"list"`
	}
	if err := decodeResult(resp, &result); err != nil {
		return nil, err
	}
	if len(result.List) == 0 {
		return nil, fmt.Errorf("bybit: instrument %s not found", symbol)
	}

	inst := result.List[0]
	tickSize := parseFloat(inst.PriceFilter.TickSize)
	return &gateway.SymbolInfo{
		Symbol:     inst.Symbol,
		Point:      tickSize,
		Digits:     decimalsOf(inst.PriceFilter.TickSize),
		VolumeMin:  parseFloat(inst.LotSizeFilter.MinOrderQty),
		VolumeStep: parseFloat(inst.LotSizeFilter.QtyStep),
		// Bybit imposes no broker-side stop level; the engine's own
		// 10-point floor is the only distance constraint.
		MinStopDistance: 0,
		TickValue:       tickSize,
		Visible:         inst.Status == "Trading",
	}, nil
}

func (s *session) Tick(ctx context.Context, symbol string) (*gateway.Tick, error) {
	params := map[string]interface{}{
		"category": category,
		"symbol":   symbol,
	}
	resp, err := s.client.call(
		s.client.httpClient.NewUtaBybitServiceWithParams(params).GetMarketTickers(ctx))
	if err != nil {
		return nil, err
	}

	var result struct {
		List []struct {
			Bid1Price string `json:"bid1Price"`
			Ask1Price string `json:"ask1Price"`
		} `json:"list"`
	}
	if err := decodeResult(resp, &result); err != nil {
		return nil, err
	}
	if len(result.List) == 0 {
		return nil, fmt.Errorf("bybit: no ticker for %s", symbol)
	}

	return &gateway.Tick{
		Bid:  parseFloat(result.List[0].Bid1Price),
		Ask:  parseFloat(result.List[0].Ask1Price),
		Time: time.Now(),
	}, nil
}

// klineIntervals maps engine timeframes to Bybit interval codes.
var klineIntervals = map[gateway.Timeframe]string{
	gateway.TimeframeM1:  "1",
	gateway.TimeframeM5:  "5",
	gateway.TimeframeM15: "15",
	gateway.TimeframeH1:  "60",
	gateway.TimeframeD1:  "D",
}

func (s *session) Rates(ctx context.Context, symbol string, tf gateway.Timeframe, count int) ([]gateway.Candle, error) {
	interval, ok := klineIntervals[tf]
	if !ok {
		return nil, fmt.Errorf("bybit: unsupported timeframe %s", tf)
	}
	if count <= 0 || count > 1000 {
		count = 200
	}

	params := map[string]interface{}{
		"category": category,
		"symbol":   symbol,
		"interval": interval,
		"limit":    count,
	}
	resp, err := s.client.call(
		s.client.httpClient.NewUtaBybitServiceWithParams(params).GetMarketKline(ctx))
	if err != nil {
		return nil, err
	}

	var result struct {
		List [][]string `json:"list"`
	}
	if err := decodeResult(resp, &result); err != nil {
		return nil, err
	}

	// Bybit returns newest first; the engine expects oldest first.
	candles := make([]gateway.Candle, 0, len(result.List))
	for i := len(result.List) - 1; i >= 0; i-- {
		row := result.List[i]
		if len(row) < 6 {
			continue
		}
		startMs, _ := strconv.ParseInt(row[0], 10, 64)
		candles = append(candles, gateway.Candle{
			Time:   time.UnixMilli(startMs),
			Open:   parseFloat(row[1]),
			High:   parseFloat(row[2]),
			Low:    parseFloat(row[3]),
			Close:  parseFloat(row[4]),
			Volume: parseFloat(row[5]),
		})
	}
	return candles, nil
}

// SendOrder maps deals onto market orders (reduce-only for closes) and stop
// modifications onto the position trading-stop endpoint. API-level success
// translates to the engine's done code; failures carry Bybit's code and
// message through untouched.
func (s *session) SendOrder(ctx context.Context, req *gateway.OrderRequest) (*gateway.OrderResult, error) {
	var result interface{}
	var err error

	switch req.Action {
	case gateway.ActionModifyStops:
		params := map[string]interface{}{
			"category":    category,
			"symbol":      req.Symbol,
			"positionIdx": 0,
			"stopLoss":    formatFloat(req.StopLoss),
		}
		if req.TakeProfit > 0 {
			params["takeProfit"] = formatFloat(req.TakeProfit)
		}
		result, err = s.client.httpClient.NewUtaBybitServiceWithParams(params).SetPositionTradingStop(ctx)

	default:
		side := "Buy"
		if req.Side == gateway.SideSell {
			side = "Sell"
		}
		params := map[string]interface{}{
			"category":    category,
			"symbol":      req.Symbol,
			"side":        side,
			"orderType":   "Market",
			"qty":         formatFloat(req.Volume),
			"timeInForce": "IOC",
			"orderLinkId": fmt.Sprintf("eng-%d-%d", req.Magic, time.Now().UnixNano()),
		}
		if req.Position != 0 {
			params["reduceOnly"] = true
		} else {
			if req.StopLoss > 0 {
				params["stopLoss"] = formatFloat(req.StopLoss)
			}
			if req.TakeProfit > 0 {
				params["takeProfit"] = formatFloat(req.TakeProfit)
			}
		}
		result, err = s.client.httpClient.NewUtaBybitServiceWithParams(params).PlaceOrder(ctx)
	}

	if err != nil {
		return nil, err
	}
	resp, ok := result.(*bybit_api.ServerResponse)
	if !ok || resp == nil {
		// No response object at all: the transient case the executor
		// classifies as NoResponse.
		return nil, nil
	}
	if resp.RetCode != 0 {
		return &gateway.OrderResult{RetCode: resp.RetCode, Message: resp.RetMsg}, nil
	}
	return &gateway.OrderResult{RetCode: gateway.RetCodeDone, Message: resp.RetMsg}, nil
}

func (s *session) AccountInfo(ctx context.Context) (*gateway.AccountInfo, error) {
	params := map[string]interface{}{
		"accountType": "UNIFIED",
	}
	resp, err := s.client.call(
		s.client.httpClient.NewUtaBybitServiceWithParams(params).GetAccountWallet(ctx))
	if err != nil {
		return nil, err
	}

	var result struct {
		List []struct {
			TotalEquity        string `json:"totalEquity"`
			TotalWalletBalance string `json:"totalWalletBalance"`
		} `json:"list"`
	}
	if err := decodeResult(resp, &result); err != nil {
		return nil, err
	}

	info := &gateway.AccountInfo{
		Currency: "USDT",
		// Bybit has no per-account autotrade switch; a successful
		// authenticated wallet query means trading is allowed.
		TradeAllowed: true,
	}
	if len(result.List) > 0 {
		info.Equity = parseFloat(result.List[0].TotalEquity)
		info.Balance = parseFloat(result.List[0].TotalWalletBalance)
	}
	return info, nil
}

func (s *session) Close() error {
	return nil
}

func decodeResult(resp *bybit_api.ServerResponse, out interface{}) error {
	raw, err := json.Marshal(resp.Result)
	if err != nil {
		return fmt.Errorf("bybit: failed to marshal result: %w", err)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("bybit: failed to parse result: %w", err)
	}
	return nil
}

func parseFloat(s string) float64 {
	v, _ := strconv.ParseFloat(s, 64)
	return v
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func decimalsOf(s string) int {
	for i := 0; i < len(s); i++ {
		if s[i] == '.' {
			return len(s) - i - 1
		}
	}
	return 0
}
