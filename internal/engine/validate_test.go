package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	traderr "github.com/tradeops/mt5-engine/internal/errors"
)

func TestValidateOrder(t *testing.T) {
	tests := []struct {
		name       string
		mutate     func(*testCase)
		wantErrMsg string
	}{
		{name: "valid order"},
		{
			name:       "nil symbol info",
			mutate:     func(tc *testCase) { tc.nilInfo = true },
			wantErrMsg: "missing symbol metadata",
		},
		{
			name:       "symbol not visible",
			mutate:     func(tc *testCase) { tc.visible = false },
			wantErrMsg: "not available or not visible",
		},
		{
			name:       "volume below minimum",
			mutate:     func(tc *testCase) { tc.volume = 0.001 },
			wantErrMsg: "below minimum",
		},
		{
			name:       "volume off the lot step",
			mutate:     func(tc *testCase) { tc.volume = 0.015 },
			wantErrMsg: "must be a multiple",
		},
		{
			name:       "zero price",
			mutate:     func(tc *testCase) { tc.price = 0 },
			wantErrMsg: "invalid price",
		},
		{
			name:       "zero stop loss",
			mutate:     func(tc *testCase) { tc.stopLoss = 0 },
			wantErrMsg: "invalid stop-loss or take-profit",
		},
		{
			name:       "zero take profit",
			mutate:     func(tc *testCase) { tc.takeProfit = 0 },
			wantErrMsg: "invalid stop-loss or take-profit",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tc := &testCase{
				visible:    true,
				volume:     0.05,
				price:      1.10000,
				stopLoss:   1.09800,
				takeProfit: 1.10400,
			}
			if tt.mutate != nil {
				tt.mutate(tc)
			}

			info := eurusdInfo()
			info.Visible = tc.visible
			if tc.nilInfo {
				info = nil
			}

			err := ValidateOrder(info, tc.volume, tc.price, tc.stopLoss, tc.takeProfit)
			if tt.wantErrMsg == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, traderr.IsValidation(err))
			assert.Contains(t, err.Error(), tt.wantErrMsg)
		})
	}
}

type testCase struct {
	nilInfo    bool
	visible    bool
	volume     float64
	price      float64
	stopLoss   float64
	takeProfit float64
}

func TestValidateOrderToleratesFloatNoiseOnStep(t *testing.T) {
	// 0.07/0.01 computed in floats is not exactly 7; the tolerance must
	// still accept it as a valid multiple.
	err := ValidateOrder(eurusdInfo(), 0.07, 1.10000, 1.09800, 1.10400)
	assert.NoError(t, err)
}
