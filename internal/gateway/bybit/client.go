// Package bybit implements the broker gateway against Bybit v5 linear
// perpetuals, so the same engine can run against a crypto venue. Stop levels
// map onto Bybit's position trading-stop; the venue imposes no broker-side
// minimum stop distance.
package bybit

import (
	"context"
	"fmt"

	bybit_api "github.com/bybit-exchange/bybit.go.api"

	traderr "github.com/tradeops/mt5-engine/internal/errors"
	"github.com/tradeops/mt5-engine/internal/gateway"
)

// category is fixed: the engine trades linear USDT perpetuals.
const category = "linear"

// Config holds the API credentials and environment selection.
type Config struct {
	APIKey    string
	APISecret string
	Testnet   bool
	// Demo selects Bybit's paper-trading environment.
	Demo bool
}

// Client wraps the Bybit API client. It implements gateway.Gateway.
type Client struct {
	httpClient *bybit_api.Client
	cfg        Config
}

// NewClient creates a Bybit client for the configured environment.
func NewClient(cfg Config) *Client {
	var baseURL string
	switch {
	case cfg.Demo:
		baseURL = "https://api-demo.bybit.com"
	case cfg.Testnet:
		baseURL = bybit_api.TESTNET
	default:
		baseURL = bybit_api.MAINNET
	}

	httpClient := bybit_api.NewBybitHttpClient(
		cfg.APIKey,
		cfg.APISecret,
		bybit_api.WithBaseURL(baseURL),
	)

	return &Client{
		httpClient: httpClient,
		cfg:        cfg,
	}
}

// Connect verifies the credentials with an account query and returns a
// session. Bybit is sessionless; the session value just scopes the client.
func (c *Client) Connect(ctx context.Context) (gateway.Session, error) {
	s := &session{client: c}
	if _, err := s.AccountInfo(ctx); err != nil {
		return nil, traderr.NewConnectionError("bybit", err)
	}
	return s, nil
}

// call unwraps a ServerResponse, surfacing API-level failures as errors.
func (c *Client) call(result interface{}, err error) (*bybit_api.ServerResponse, error) {
	if err != nil {
		return nil, err
	}
	resp, ok := result.(*bybit_api.ServerResponse)
	if !ok {
		return nil, fmt.Errorf("bybit: unexpected response type %T", result)
	}
	if resp.RetCode != 0 {
		return nil, fmt.Errorf("bybit: API error %d: %s", resp.RetCode, resp.RetMsg)
	}
	return resp, nil
}
