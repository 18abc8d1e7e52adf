// Package engine implements the trade lifecycle core: stop-level derivation,
// pre-submission validation, order execution and outcome classification,
// batch position management, and the trailing-stop control loop.
package engine

import "github.com/tradeops/mt5-engine/internal/gateway"

// Fixed request fields attached to every submission.
const (
	// DefaultDeviation is the allowed slippage in points.
	DefaultDeviation = 10
	// MagicNumber tags orders so the engine's trades can be told apart from
	// others on the same account.
	MagicNumber = 234000
)

// minStopPoints is the engine's own floor on stop distances, in points. It is
// enforced independently of the broker's live minimum stop distance; the two
// clamps are layered because they can differ.
const minStopPoints = 10

// ExecStatus classifies one order submission outcome.
type ExecStatus int

const (
	// ExecDone means the request executed and the position state changed.
	ExecDone ExecStatus = iota
	// ExecRejected means the broker answered with a non-success return code.
	ExecRejected
	// ExecNoResponse means no response object came back at all.
	ExecNoResponse
)

func (s ExecStatus) String() string {
	switch s {
	case ExecDone:
		return "done"
	case ExecRejected:
		return "rejected"
	case ExecNoResponse:
		return "no_response"
	default:
		return "unknown"
	}
}

// Classify maps a broker order result to an execution status. A nil result
// is the transient no-response case.
func Classify(res *gateway.OrderResult) ExecStatus {
	if res == nil {
		return ExecNoResponse
	}
	if res.RetCode != gateway.RetCodeDone {
		return ExecRejected
	}
	return ExecDone
}
