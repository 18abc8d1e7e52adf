// The autotrader runs one full trade lifecycle: it reads recent candles,
// derives a momentum signal, replaces any open exposure on the symbol with a
// fresh position carrying computed stop levels, then hands the position to
// the trailing-stop controller until the profit target or stop is hit.
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/tradeops/mt5-engine/internal/config"
	"github.com/tradeops/mt5-engine/internal/engine"
	"github.com/tradeops/mt5-engine/internal/gateway"
	"github.com/tradeops/mt5-engine/internal/gateway/factory"
	"github.com/tradeops/mt5-engine/internal/logger"
	"github.com/tradeops/mt5-engine/internal/monitoring"
	"github.com/tradeops/mt5-engine/internal/notifications"
	sig "github.com/tradeops/mt5-engine/internal/signal"
)

func main() {
	envFile := flag.String("env", ".env", "environment file path")
	flag.Parse()

	if err := run(*envFile); err != nil {
		fmt.Fprintf(os.Stderr, "autotrader: %v\n", err)
		os.Exit(1)
	}
}

func run(envFile string) error {
	_ = godotenv.Load(envFile)
	cfg := config.Load()

	if err := logger.Init(logger.Config{
		Level:      cfg.LogLevel,
		Symbol:     cfg.Trading.Symbol,
		FileOutput: true,
	}); err != nil {
		return err
	}
	log := logger.WithComponent("autotrader")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	health := monitoring.NewHealthChecker()
	startMonitoringServers(cfg, health, log)

	var notifier notifications.Notifier = notifications.NopNotifier{}
	if cfg.Notifications.TelegramToken != "" {
		notifier = notifications.NewTelegramNotifier(cfg.Notifications.TelegramToken, cfg.Notifications.TelegramChatID)
	}

	gw, err := factory.New(cfg)
	if err != nil {
		return err
	}
	session, err := gw.Connect(ctx)
	if err != nil {
		health.AddError(err.Error())
		return err
	}
	defer session.Close()
	health.SetConnected(true)

	account, err := session.AccountInfo(ctx)
	if err != nil {
		return err
	}
	if !account.TradeAllowed {
		return fmt.Errorf("autotrade is disabled on account %d", account.Login)
	}
	log.WithFields(map[string]interface{}{
		"login":   account.Login,
		"balance": account.Balance,
		"symbol":  cfg.Trading.Symbol,
	}).Info("Connected, autotrade enabled")

	decided, err := decideSignal(ctx, session, cfg)
	if err != nil {
		return err
	}
	log.WithField("signal", decided.String()).Info("Market analysis complete")
	if decided == sig.SignalHold {
		log.Info("No actionable signal, exiting without trading")
		return nil
	}

	exec := engine.NewExecutor(session)
	positions := engine.NewPositionManager(session, exec)

	// Flatten any existing exposure on the symbol before opening anew.
	batch, err := positions.CloseAll(ctx, cfg.Trading.Symbol)
	if err != nil {
		return fmt.Errorf("closing existing positions: %w", err)
	}
	if batch.Closed > 0 {
		log.WithField("closed", batch.Closed).Info("Flattened existing positions")
	}

	result, err := exec.Open(ctx, cfg.Trading.Symbol, decided.Side(), cfg.Trading.Volume,
		cfg.Trading.StopLossPips, cfg.Trading.TakeProfitPips)
	if err != nil {
		health.AddError(err.Error())
		_ = notifier.SendAlert("error", fmt.Sprintf("Order failed for %s: %v", cfg.Trading.Symbol, err))
		return err
	}
	health.RecordOrder()
	_ = notifier.SendAlert("info", fmt.Sprintf("Opened %s %s %.2f lots (%s)",
		decided.String(), cfg.Trading.Symbol, cfg.Trading.Volume, result.Message))

	controller, err := engine.NewTrailingStopController(engine.TrailingConfig{
		Symbol:       cfg.Trading.Symbol,
		TrailingStep: cfg.Trading.TrailingStep,
		TargetProfit: cfg.Trading.TargetProfit,
		Interval:     cfg.Trading.PollInterval,
		Unit:         thresholdUnit(cfg.Trading.ThresholdUnit),
	}, session, exec, positions)
	if err != nil {
		return err
	}

	log.Info("Starting trailing-stop monitoring")
	if err := controller.Run(ctx); err != nil {
		health.AddError(err.Error())
		_ = notifier.SendAlert("error", fmt.Sprintf("Trailing stopped for %s: %v", cfg.Trading.Symbol, err))
		return err
	}
	_ = notifier.SendAlert("info", fmt.Sprintf("Monitoring finished for %s", cfg.Trading.Symbol))
	log.Info("Trade lifecycle complete")
	return nil
}

// decideSignal fetches recent candles and resolves a trading signal,
// training the provider on first use.
func decideSignal(ctx context.Context, session gateway.Session, cfg *config.Config) (sig.Signal, error) {
	history, err := session.Rates(ctx, cfg.Trading.Symbol, gateway.Timeframe(cfg.Trading.Timeframe), cfg.Trading.CandleCount)
	if err != nil {
		return sig.SignalHold, fmt.Errorf("fetching candles for %s: %w", cfg.Trading.Symbol, err)
	}
	if len(history) == 0 {
		return sig.SignalHold, fmt.Errorf("no candle data returned for %s", cfg.Trading.Symbol)
	}
	provider := sig.NewMomentumProvider(sig.DefaultMomentumConfig())
	return sig.Resolve(ctx, provider, history)
}

func thresholdUnit(s string) engine.ThresholdUnit {
	if s == "currency" {
		return engine.UnitCurrency
	}
	return engine.UnitPriceOffset
}

// startMonitoringServers exposes Prometheus metrics and the health endpoint
// on their configured ports. Failures are logged, not fatal.
func startMonitoringServers(cfg *config.Config, health *monitoring.HealthChecker, log *logrus.Entry) {
	go func() {
		mux := http.NewServeMux()
		mux.Handle("/metrics", monitoring.Handler())
		srv := &http.Server{
			Addr:              fmt.Sprintf(":%d", cfg.Monitoring.MetricsPort),
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		}
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Errorf("metrics server: %v", err)
		}
	}()
	go func() {
		mux := http.NewServeMux()
		mux.Handle("/health", health)
		srv := &http.Server{
			Addr:              fmt.Sprintf(":%d", cfg.Monitoring.HealthPort),
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		}
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Errorf("health server: %v", err)
		}
	}()
}
