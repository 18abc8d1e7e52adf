package indicators

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSMACalculate(t *testing.T) {
	sma := NewSMA(3)

	value, err := sma.Calculate([]float64{1, 2, 3, 4, 5})
	require.NoError(t, err)
	assert.InDelta(t, 4.0, value, 1e-9)

	_, err = sma.Calculate([]float64{1, 2})
	assert.ErrorIs(t, err, ErrInsufficientData)

	assert.Equal(t, 3, sma.RequiredPeriods())
}

func TestRSICalculate(t *testing.T) {
	rsi := NewRSI(3)

	// Only gains in the window.
	value, err := rsi.Calculate([]float64{1, 2, 3, 4})
	require.NoError(t, err)
	assert.InDelta(t, 100.0, value, 1e-9)

	// Only losses in the window.
	value, err = rsi.Calculate([]float64{10, 9, 8, 7})
	require.NoError(t, err)
	assert.InDelta(t, 0.0, value, 1e-9)

	// Mixed window: avg gain 1, avg loss 1/3, RS 3, RSI 75.
	value, err = rsi.Calculate([]float64{10, 11, 10, 12})
	require.NoError(t, err)
	assert.InDelta(t, 75.0, value, 1e-9)

	_, err = rsi.Calculate([]float64{1, 2, 3})
	assert.ErrorIs(t, err, ErrInsufficientData)

	assert.Equal(t, 4, rsi.RequiredPeriods())
}

func TestMACDCalculate(t *testing.T) {
	macd := NewMACD(3, 5, 2)
	assert.Equal(t, 7, macd.RequiredPeriods())

	_, _, _, err := macd.Calculate([]float64{1, 2, 3, 4, 5, 6})
	assert.ErrorIs(t, err, ErrInsufficientData)

	// A flat series has identical fast and slow EMAs everywhere.
	line, signal, hist, err := macd.Calculate([]float64{5, 5, 5, 5, 5, 5, 5, 5})
	require.NoError(t, err)
	assert.InDelta(t, 0.0, line, 1e-9)
	assert.InDelta(t, 0.0, signal, 1e-9)
	assert.InDelta(t, 0.0, hist, 1e-9)
}

func TestMACDTrendDirection(t *testing.T) {
	macd := NewMACD(3, 5, 2)

	rising := make([]float64, 20)
	for i := range rising {
		rising[i] = 100 + float64(i)
	}
	line, signal, _, err := macd.Calculate(rising)
	require.NoError(t, err)
	assert.Positive(t, line)
	assert.Greater(t, line, signal)

	falling := make([]float64, 20)
	for i := range falling {
		falling[i] = 100 - float64(i)
	}
	line, signal, _, err = macd.Calculate(falling)
	require.NoError(t, err)
	assert.Negative(t, line)
	assert.Less(t, line, signal)
}
