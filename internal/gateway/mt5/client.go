// Package mt5 implements the broker gateway against an MT5 terminal bridge:
// a small HTTP sidecar exposing the terminal's trading API as JSON
// endpoints mirroring the MetaTrader 5 call surface.
package mt5

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	traderr "github.com/tradeops/mt5-engine/internal/errors"
	"github.com/tradeops/mt5-engine/internal/gateway"
)

// Config holds the bridge endpoint and terminal credentials.
type Config struct {
	BaseURL  string
	Login    int64
	Password string
	Server   string
	Timeout  time.Duration
}

// Client connects to the MT5 bridge. It implements gateway.Gateway.
type Client struct {
	cfg  Config
	http *http.Client
}

// NewClient creates a bridge client.
func NewClient(cfg Config) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}
	return &Client{
		cfg:  cfg,
		http: &http.Client{Timeout: cfg.Timeout},
	}
}

// Connect initializes the terminal connection and returns a live session.
func (c *Client) Connect(ctx context.Context) (gateway.Session, error) {
	body := map[string]interface{}{
		"login":    c.cfg.Login,
		"password": c.cfg.Password,
		"server":   c.cfg.Server,
	}
	var resp struct {
		OK        bool   `json:"ok"`
		SessionID string `json:"session_id"`
		Error     string `json:"error"`
	}
	if err := c.post(ctx, "/initialize", body, &resp); err != nil {
		return nil, traderr.NewConnectionError("mt5", err)
	}
	if !resp.OK {
		return nil, traderr.NewConnectionError("mt5", fmt.Errorf("initialize failed: %s", resp.Error))
	}
	return &session{client: c, id: resp.SessionID}, nil
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out interface{}) error {
	u := c.cfg.BaseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}
	return c.do(req, out)
}

func (c *Client) post(ctx context.Context, path string, body, out interface{}) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+path, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, out)
}

// errNoContent marks a 204 response: the terminal produced no result object.
var errNoContent = fmt.Errorf("mt5 bridge returned no content")

func (c *Client) do(req *http.Request, out interface{}) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNoContent {
		return errNoContent
	}
	if resp.StatusCode != http.StatusOK {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("mt5 bridge returned status %d: %s", resp.StatusCode, string(data))
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
