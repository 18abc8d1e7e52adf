package config

import (
	"os"
	"strconv"
	"time"
)

// Config collects all engine settings, loaded from the environment. The
// cmds load a .env file first so local runs need no exported variables.
type Config struct {
	LogLevel string

	Gateway struct {
		// Kind selects the gateway adapter: "mt5" or "bybit".
		Kind string

		// MT5 bridge settings.
		BridgeURL string
		Login     int64
		Password  string
		Server    string
		Timeout   time.Duration

		// Bybit settings.
		BybitAPIKey    string
		BybitAPISecret string
		BybitTestnet   bool
		BybitDemo      bool
	}

	Trading struct {
		Symbol         string
		Volume         float64
		StopLossPips   float64
		TakeProfitPips float64
		TrailingStep   float64
		TargetProfit   float64
		// ThresholdUnit is "price_offset" (historical behavior) or "currency".
		ThresholdUnit string
		PollInterval  time.Duration
		Timeframe     string
		CandleCount   int
	}

	Monitoring struct {
		MetricsPort int
		HealthPort  int
	}

	Notifications struct {
		TelegramToken  string
		TelegramChatID string
	}
}

// Load builds a Config from environment variables with sane defaults.
func Load() *Config {
	cfg := &Config{}
	cfg.LogLevel = getEnv("LOG_LEVEL", "info")

	cfg.Gateway.Kind = getEnv("GATEWAY_KIND", "mt5")
	cfg.Gateway.BridgeURL = getEnv("MT5_BRIDGE_URL", "http://127.0.0.1:6542")
	cfg.Gateway.Login = getEnvInt64("MT5_LOGIN", 0)
	cfg.Gateway.Password = getEnv("MT5_PASSWORD", "")
	cfg.Gateway.Server = getEnv("MT5_SERVER", "")
	cfg.Gateway.Timeout = getEnvDuration("GATEWAY_TIMEOUT", 15*time.Second)
	cfg.Gateway.BybitAPIKey = getEnv("BYBIT_API_KEY", "")
	cfg.Gateway.BybitAPISecret = getEnv("BYBIT_API_SECRET", "")
	cfg.Gateway.BybitTestnet = getEnvBool("BYBIT_TESTNET", true)
	cfg.Gateway.BybitDemo = getEnvBool("BYBIT_DEMO", false)

	cfg.Trading.Symbol = getEnv("TRADING_SYMBOL", "EURUSD")
	cfg.Trading.Volume = getEnvFloat("TRADING_VOLUME", 0.01)
	cfg.Trading.StopLossPips = getEnvFloat("STOP_LOSS_PIPS", 20)
	cfg.Trading.TakeProfitPips = getEnvFloat("TAKE_PROFIT_PIPS", 40)
	cfg.Trading.TrailingStep = getEnvFloat("TRAILING_STEP", 0.50)
	cfg.Trading.TargetProfit = getEnvFloat("TARGET_PROFIT", 1.0)
	cfg.Trading.ThresholdUnit = getEnv("TRAILING_THRESHOLD_UNIT", "price_offset")
	cfg.Trading.PollInterval = getEnvDuration("TRAILING_POLL_INTERVAL", 10*time.Second)
	cfg.Trading.Timeframe = getEnv("SIGNAL_TIMEFRAME", "M1")
	cfg.Trading.CandleCount = getEnvInt("SIGNAL_CANDLE_COUNT", 100)

	cfg.Monitoring.MetricsPort = getEnvInt("METRICS_PORT", 8080)
	cfg.Monitoring.HealthPort = getEnvInt("HEALTH_PORT", 8081)

	cfg.Notifications.TelegramToken = getEnv("TELEGRAM_TOKEN", "")
	cfg.Notifications.TelegramChatID = getEnv("TELEGRAM_CHAT_ID", "")

	return cfg
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvBool(key string, defaultVal bool) bool {
	if val := os.Getenv(key); val != "" {
		if parsed, err := strconv.ParseBool(val); err == nil {
			return parsed
		}
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if parsed, err := strconv.Atoi(val); err == nil {
			return parsed
		}
	}
	return defaultVal
}

func getEnvInt64(key string, defaultVal int64) int64 {
	if val := os.Getenv(key); val != "" {
		if parsed, err := strconv.ParseInt(val, 10, 64); err == nil {
			return parsed
		}
	}
	return defaultVal
}

func getEnvFloat(key string, defaultVal float64) float64 {
	if val := os.Getenv(key); val != "" {
		if parsed, err := strconv.ParseFloat(val, 64); err == nil {
			return parsed
		}
	}
	return defaultVal
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if parsed, err := time.ParseDuration(val); err == nil {
			return parsed
		}
	}
	return defaultVal
}
