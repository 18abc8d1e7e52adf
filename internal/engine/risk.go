package engine

import (
	"fmt"
	"math"

	traderr "github.com/tradeops/mt5-engine/internal/errors"
	"github.com/tradeops/mt5-engine/internal/gateway"
)

// StopLevels derives stop-loss and take-profit prices from an entry price,
// direction and pip distances.
//
// Pip distances are converted to price units via the instrument point size
// and floored at minStopPoints points before the direction is applied. The
// result is then re-checked against the broker's own minimum stop distance
// and the offending bound is pushed outward to just satisfy it. Both clamps
// must hold simultaneously.
func StopLevels(side gateway.Side, entry, stopLossPips, takeProfitPips float64, info *gateway.SymbolInfo) (stopLoss, takeProfit float64, err error) {
	if !side.Valid() {
		return 0, 0, traderr.NewValidationError("risk", fmt.Sprintf("invalid side %d", side))
	}

	point := info.Point
	slDistance := math.Max(stopLossPips*point, minStopPoints*point)
	tpDistance := math.Max(takeProfitPips*point, minStopPoints*point)

	if side == gateway.SideBuy {
		stopLoss = entry - slDistance
		takeProfit = entry + tpDistance
	} else {
		stopLoss = entry + slDistance
		takeProfit = entry - tpDistance
	}

	// Broker-imposed minimum stop distance: widen whichever bound falls short.
	if min := info.MinStopDistance; min > 0 {
		if math.Abs(entry-stopLoss) < min {
			if side == gateway.SideBuy {
				stopLoss = entry - min
			} else {
				stopLoss = entry + min
			}
		}
		if math.Abs(takeProfit-entry) < min {
			if side == gateway.SideBuy {
				takeProfit = entry + min
			} else {
				takeProfit = entry - min
			}
		}
	}

	return stopLoss, takeProfit, nil
}
