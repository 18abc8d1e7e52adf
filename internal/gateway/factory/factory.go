// Package factory builds the configured gateway adapter.
package factory

import (
	"fmt"

	"github.com/tradeops/mt5-engine/internal/config"
	"github.com/tradeops/mt5-engine/internal/gateway"
	"github.com/tradeops/mt5-engine/internal/gateway/bybit"
	"github.com/tradeops/mt5-engine/internal/gateway/mt5"
)

// New returns the gateway selected by cfg.Gateway.Kind.
func New(cfg *config.Config) (gateway.Gateway, error) {
	switch cfg.Gateway.Kind {
	case "mt5":
		return mt5.NewClient(mt5.Config{
			BaseURL:  cfg.Gateway.BridgeURL,
			Login:    cfg.Gateway.Login,
			Password: cfg.Gateway.Password,
			Server:   cfg.Gateway.Server,
			Timeout:  cfg.Gateway.Timeout,
		}), nil
	case "bybit":
		return bybit.NewClient(bybit.Config{
			APIKey:    cfg.Gateway.BybitAPIKey,
			APISecret: cfg.Gateway.BybitAPISecret,
			Testnet:   cfg.Gateway.BybitTestnet,
			Demo:      cfg.Gateway.BybitDemo,
		}), nil
	default:
		return nil, fmt.Errorf("unknown gateway kind %q", cfg.Gateway.Kind)
	}
}
