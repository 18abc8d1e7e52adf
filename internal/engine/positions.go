package engine

import (
	"context"

	"github.com/sirupsen/logrus"

	traderr "github.com/tradeops/mt5-engine/internal/errors"
	"github.com/tradeops/mt5-engine/internal/gateway"
	"github.com/tradeops/mt5-engine/internal/logger"
	"github.com/tradeops/mt5-engine/internal/monitoring"
)

// ClosePolicy names how a batch close reacts to a failed submission.
type ClosePolicy int

const (
	// FailFast aborts the batch on the first failure; later positions are
	// left untouched and the single error is reported.
	FailFast ClosePolicy = iota
	// BestEffort logs the failure, skips that position, and keeps going; the
	// batch reports success once iteration completes.
	BestEffort
)

func (p ClosePolicy) String() string {
	if p == BestEffort {
		return "best_effort"
	}
	return "fail_fast"
}

// PositionFilter selects which open positions a batch operation acts on.
type PositionFilter func(gateway.Position) bool

// Predefined filters for the three batch operations.
var (
	FilterAll      PositionFilter = func(gateway.Position) bool { return true }
	FilterInProfit PositionFilter = func(p gateway.Position) bool { return p.Profit > 0 }
	FilterInLoss   PositionFilter = func(p gateway.Position) bool { return p.Profit < 0 }
)

// BatchResult summarizes one batch close operation.
type BatchResult struct {
	Matched int     `json:"matched"`
	Closed  int     `json:"closed"`
	Skipped []int64 `json:"skipped,omitempty"`
}

// PositionManager queries open positions and closes them in batches filtered
// by profitability.
type PositionManager struct {
	session gateway.Session
	exec    *Executor
	log     *logrus.Entry
}

// NewPositionManager creates a position manager bound to one session.
func NewPositionManager(session gateway.Session, exec *Executor) *PositionManager {
	return &PositionManager{
		session: session,
		exec:    exec,
		log:     logger.WithComponent("positions"),
	}
}

// OpenPositions returns a snapshot of open positions for the symbol, or for
// all symbols when empty.
func (m *PositionManager) OpenPositions(ctx context.Context, symbol string) ([]gateway.Position, error) {
	positions, err := m.session.OpenPositions(ctx, symbol)
	if err != nil {
		return nil, traderr.NewDataUnavailable("positions", "positions_get", err)
	}
	monitoring.UpdateOpenPositions(symbol, len(positions))
	return positions, nil
}

// ClosePosition closes a single open position via the inverse-side order
// path. Used by the trailing-stop controller's target-profit exit.
func (m *PositionManager) ClosePosition(ctx context.Context, pos gateway.Position) error {
	return m.exec.Close(ctx, pos)
}

// CloseAll closes every open position for the symbol, failing fast on the
// first submission failure.
func (m *PositionManager) CloseAll(ctx context.Context, symbol string) (*BatchResult, error) {
	return m.CloseBatch(ctx, symbol, FilterAll, FailFast)
}

// CloseProfitable closes positions with positive profit. Failures are logged
// and skipped; the batch always completes.
func (m *PositionManager) CloseProfitable(ctx context.Context, symbol string) (*BatchResult, error) {
	return m.CloseBatch(ctx, symbol, FilterInProfit, BestEffort)
}

// CloseLosing closes positions with negative profit, failing fast on the
// first submission failure.
func (m *PositionManager) CloseLosing(ctx context.Context, symbol string) (*BatchResult, error) {
	return m.CloseBatch(ctx, symbol, FilterInLoss, FailFast)
}

// CloseBatch snapshots open positions, filters them, and submits an
// inverse-side closing order per match. A position query failure aborts the
// whole operation; submission failures are handled per the policy.
func (m *PositionManager) CloseBatch(ctx context.Context, symbol string, filter PositionFilter, policy ClosePolicy) (*BatchResult, error) {
	positions, err := m.session.OpenPositions(ctx, symbol)
	if err != nil {
		return nil, traderr.NewDataUnavailable("positions", "positions_get", err)
	}

	result := &BatchResult{}
	for _, pos := range positions {
		if !filter(pos) {
			continue
		}
		result.Matched++

		if err := m.exec.Close(ctx, pos); err != nil {
			if policy == FailFast {
				return result, err
			}
			m.log.WithFields(logrus.Fields{
				"ticket": pos.Ticket,
				"error":  err.Error(),
			}).Warn("failed to close position, skipping")
			result.Skipped = append(result.Skipped, pos.Ticket)
			continue
		}
		result.Closed++
	}

	m.log.WithFields(logrus.Fields{
		"symbol":  symbol,
		"policy":  policy.String(),
		"matched": result.Matched,
		"closed":  result.Closed,
	}).Info("batch close finished")
	return result, nil
}
