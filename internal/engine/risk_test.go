package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	traderr "github.com/tradeops/mt5-engine/internal/errors"
	"github.com/tradeops/mt5-engine/internal/gateway"
)

func eurusdInfo() *gateway.SymbolInfo {
	return &gateway.SymbolInfo{
		Symbol:          "EURUSD",
		Point:           0.00010,
		Digits:          5,
		VolumeMin:       0.01,
		VolumeStep:      0.01,
		MinStopDistance: 0.00100,
		TickValue:       1.0,
		Visible:         true,
	}
}

func TestStopLevelsBuy(t *testing.T) {
	sl, tp, err := StopLevels(gateway.SideBuy, 1.10000, 20, 40, eurusdInfo())
	require.NoError(t, err)
	assert.InDelta(t, 1.09800, sl, 1e-9)
	assert.InDelta(t, 1.10400, tp, 1e-9)
}

func TestStopLevelsSell(t *testing.T) {
	sl, tp, err := StopLevels(gateway.SideSell, 1.10000, 20, 40, eurusdInfo())
	require.NoError(t, err)
	assert.InDelta(t, 1.10200, sl, 1e-9)
	assert.InDelta(t, 1.09600, tp, 1e-9)
}

func TestStopLevelsFloorsTinyDistances(t *testing.T) {
	// 3 pips is below the 10-point floor; both distances widen to 10 points.
	sl, tp, err := StopLevels(gateway.SideBuy, 1.10000, 3, 3, eurusdInfo())
	require.NoError(t, err)
	assert.InDelta(t, 1.09900, sl, 1e-9)
	assert.InDelta(t, 1.10100, tp, 1e-9)
}

func TestStopLevelsBrokerMinimumWidensOnlyOffendingBound(t *testing.T) {
	info := eurusdInfo()
	info.MinStopDistance = 0.00300 // 30 points

	sl, tp, err := StopLevels(gateway.SideBuy, 1.10000, 20, 40, info)
	require.NoError(t, err)
	// The 20-pip stop falls short of the broker minimum and is pushed out.
	assert.InDelta(t, 1.09700, sl, 1e-9)
	// The 40-pip take-profit already satisfies it and is left alone.
	assert.InDelta(t, 1.10400, tp, 1e-9)
}

func TestStopLevelsBrokerMinimumSell(t *testing.T) {
	info := eurusdInfo()
	info.MinStopDistance = 0.00300

	sl, tp, err := StopLevels(gateway.SideSell, 1.10000, 20, 20, info)
	require.NoError(t, err)
	assert.InDelta(t, 1.10300, sl, 1e-9)
	assert.InDelta(t, 1.09700, tp, 1e-9)
}

func TestStopLevelsInvalidSide(t *testing.T) {
	_, _, err := StopLevels(gateway.Side(7), 1.10000, 20, 40, eurusdInfo())
	require.Error(t, err)
	assert.True(t, traderr.IsValidation(err))
}
