package engine

import (
	"fmt"
	"math"

	traderr "github.com/tradeops/mt5-engine/internal/errors"
	"github.com/tradeops/mt5-engine/internal/gateway"
)

// volumeStepTolerance absorbs float noise when checking lot-step multiples.
const volumeStepTolerance = 1e-6

// ValidateOrder rejects malformed orders before submission. It is a pure
// function; a failure here means nothing reaches the gateway.
func ValidateOrder(info *gateway.SymbolInfo, volume, price, stopLoss, takeProfit float64) error {
	if info == nil {
		return traderr.NewValidationError("validator", "missing symbol metadata")
	}
	if !info.Visible {
		return traderr.NewValidationError("validator",
			fmt.Sprintf("symbol %s is not available or not visible", info.Symbol))
	}
	if volume < info.VolumeMin {
		return traderr.NewValidationError("validator",
			fmt.Sprintf("invalid volume %v: below minimum %v", volume, info.VolumeMin))
	}
	if info.VolumeStep > 0 {
		steps := volume / info.VolumeStep
		if math.Abs(steps-math.Round(steps)) > volumeStepTolerance {
			return traderr.NewValidationError("validator",
				fmt.Sprintf("invalid volume %v: must be a multiple of %v", volume, info.VolumeStep))
		}
	}
	if price <= 0 {
		return traderr.NewValidationError("validator", fmt.Sprintf("invalid price %v", price))
	}
	if stopLoss <= 0 || takeProfit <= 0 {
		return traderr.NewValidationError("validator",
			"invalid stop-loss or take-profit after adjustment")
	}
	return nil
}
