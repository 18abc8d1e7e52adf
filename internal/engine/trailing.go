package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	traderr "github.com/tradeops/mt5-engine/internal/errors"
	"github.com/tradeops/mt5-engine/internal/gateway"
	"github.com/tradeops/mt5-engine/internal/logger"
	"github.com/tradeops/mt5-engine/internal/monitoring"
)

// ThresholdUnit declares how the trailing step amount is interpreted when it
// becomes a stop-loss offset.
type ThresholdUnit int

const (
	// UnitPriceOffset applies the configured amount directly as a price
	// offset from the current quote. This mirrors the historical behavior
	// where a currency profit threshold was used as a raw price distance.
	UnitPriceOffset ThresholdUnit = iota
	// UnitCurrency converts the amount from account currency to price units
	// via the instrument tick value and position volume.
	UnitCurrency
)

// ControllerState is the trailing loop's lifecycle state.
type ControllerState int

const (
	StatePolling ControllerState = iota
	StateAdjusting
	StateClosing
	StateDone
)

func (s ControllerState) String() string {
	switch s {
	case StatePolling:
		return "polling"
	case StateAdjusting:
		return "adjusting"
	case StateClosing:
		return "closing"
	case StateDone:
		return "done"
	default:
		return "unknown"
	}
}

// DefaultPollInterval is the suspension between trailing cycles.
const DefaultPollInterval = 10 * time.Second

// TrailingConfig parameterizes one trailing-stop controller.
type TrailingConfig struct {
	Symbol string
	// TrailingStep is the activation threshold: positions whose floating
	// profit (account currency) reaches it get their stop tightened. The
	// same amount becomes the stop offset, interpreted per Unit.
	TrailingStep float64
	// TargetProfit force-closes a position once its floating profit reaches
	// it, and ends monitoring for the whole symbol.
	TargetProfit float64
	Interval     time.Duration
	Unit         ThresholdUnit
}

// TrailingStopController periodically tightens stop-losses as profit grows
// and exits at a target profit. One instance monitors one symbol.
type TrailingStopController struct {
	cfg       TrailingConfig
	session   gateway.Session
	exec      *Executor
	positions *PositionManager
	log       *logrus.Entry
	state     ControllerState
}

// NewTrailingStopController validates the config and builds a controller in
// the polling state. Callers must not start the loop with zero open
// positions.
func NewTrailingStopController(cfg TrailingConfig, session gateway.Session, exec *Executor, positions *PositionManager) (*TrailingStopController, error) {
	if cfg.Symbol == "" {
		return nil, fmt.Errorf("trailing: symbol is required")
	}
	if cfg.TrailingStep <= 0 {
		return nil, fmt.Errorf("trailing: trailing step must be positive, got %v", cfg.TrailingStep)
	}
	if cfg.TargetProfit <= 0 {
		return nil, fmt.Errorf("trailing: target profit must be positive, got %v", cfg.TargetProfit)
	}
	if cfg.Interval <= 0 {
		cfg.Interval = DefaultPollInterval
	}
	return &TrailingStopController{
		cfg:       cfg,
		session:   session,
		exec:      exec,
		positions: positions,
		log:       logger.WithComponent("trailing").WithField("symbol", cfg.Symbol),
		state:     StatePolling,
	}, nil
}

// State returns the controller's current lifecycle state.
func (c *TrailingStopController) State() ControllerState {
	return c.state
}

// Run drives the control loop until no positions remain, a position reaches
// the target profit, the position query fails, or ctx is cancelled.
func (c *TrailingStopController) Run(ctx context.Context) error {
	timer := time.NewTimer(c.cfg.Interval)
	defer timer.Stop()

	for {
		done, err := c.cycle(ctx)
		if err != nil {
			return err
		}
		if done {
			return nil
		}

		if !timer.Stop() {
			select {
			case <-timer.C:
			default:
			}
		}
		timer.Reset(c.cfg.Interval)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
		}
	}
}

// cycle runs one polling pass. The target-profit check runs before any stop
// adjustment for the same position, so a position that reaches the target is
// closed without a trailing update that cycle.
func (c *TrailingStopController) cycle(ctx context.Context) (bool, error) {
	open, err := c.session.OpenPositions(ctx, c.cfg.Symbol)
	if err != nil {
		c.state = StateDone
		return false, traderr.NewDataUnavailable("trailing", "positions_get", err)
	}
	if len(open) == 0 {
		c.log.Info("no open positions left, monitoring finished")
		c.state = StateDone
		return true, nil
	}

	for _, pos := range open {
		c.log.WithFields(logrus.Fields{
			"ticket": pos.Ticket,
			"profit": pos.Profit,
		}).Debug("position profit")
		monitoring.UpdatePositionProfit(pos.Symbol, pos.Profit)

		if pos.Profit >= c.cfg.TargetProfit {
			c.state = StateClosing
			c.log.WithField("ticket", pos.Ticket).Info("target profit reached, closing position")
			if err := c.positions.ClosePosition(ctx, pos); err != nil {
				c.state = StateDone
				return false, err
			}
			c.state = StateDone
			return true, nil
		}

		if pos.Profit >= c.cfg.TrailingStep {
			c.state = StateAdjusting
			if err := c.adjust(ctx, pos); err != nil {
				c.state = StateDone
				return false, err
			}
		}
	}

	c.state = StatePolling
	return false, nil
}

// adjust computes a candidate stop-loss from a fresh tick and applies it only
// when it strictly improves protection. Modification rejections are logged
// and never end the loop.
func (c *TrailingStopController) adjust(ctx context.Context, pos gateway.Position) error {
	tick, err := c.session.Tick(ctx, pos.Symbol)
	if err != nil || tick == nil {
		return traderr.NewDataUnavailable("trailing", "tick", err)
	}
	info, err := c.session.SymbolInfo(ctx, pos.Symbol)
	if err != nil || info == nil {
		return traderr.NewDataUnavailable("trailing", "symbol_info", err)
	}

	price := tick.Bid
	if pos.Side == gateway.SideSell {
		price = tick.Ask
	}

	offset := c.stopOffset(pos, info)
	var candidate float64
	if pos.Side == gateway.SideBuy {
		candidate = price - offset
		if min := info.MinStopDistance; min > 0 && candidate > price-min {
			candidate = price - min
		}
		if candidate <= pos.StopLoss {
			return nil
		}
	} else {
		candidate = price + offset
		if min := info.MinStopDistance; min > 0 && candidate < price+min {
			candidate = price + min
		}
		if candidate >= pos.StopLoss {
			return nil
		}
	}

	if err := c.exec.ModifyStops(ctx, pos, candidate); err != nil {
		// Rejections and dropped responses are non-fatal for trailing
		// updates; the next cycle retries from fresh data.
		c.log.WithFields(logrus.Fields{
			"ticket": pos.Ticket,
			"error":  err.Error(),
		}).Warn("failed to update stop loss")
		return nil
	}
	monitoring.RecordTrailingAdjustment(pos.Symbol)
	return nil
}

// stopOffset converts the trailing step into price units.
func (c *TrailingStopController) stopOffset(pos gateway.Position, info *gateway.SymbolInfo) float64 {
	if c.cfg.Unit == UnitCurrency && info.TickValue > 0 && pos.Volume > 0 {
		return c.cfg.TrailingStep * info.Point / (info.TickValue * pos.Volume)
	}
	return c.cfg.TrailingStep
}
