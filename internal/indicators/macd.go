package indicators

// MACD is the Moving Average Convergence Divergence indicator.
type MACD struct {
	fastPeriod   int
	slowPeriod   int
	signalPeriod int
}

// NewMACD creates a MACD indicator with the given fast, slow and signal
// periods.
func NewMACD(fast, slow, signal int) *MACD {
	return &MACD{
		fastPeriod:   fast,
		slowPeriod:   slow,
		signalPeriod: signal,
	}
}

// Calculate returns the current MACD line, signal line and histogram. The
// signal line is an EMA over the MACD series.
func (m *MACD) Calculate(prices []float64) (macdLine, signalLine, histogram float64, err error) {
	if len(prices) < m.slowPeriod+m.signalPeriod {
		return 0, 0, 0, ErrInsufficientData
	}

	fast := emaSeries(prices, m.fastPeriod)
	slow := emaSeries(prices, m.slowPeriod)

	macdSeries := make([]float64, len(prices))
	for i := range prices {
		macdSeries[i] = fast[i] - slow[i]
	}

	signalSeries := emaSeries(macdSeries[m.slowPeriod-1:], m.signalPeriod)

	macdLine = macdSeries[len(macdSeries)-1]
	signalLine = signalSeries[len(signalSeries)-1]
	histogram = macdLine - signalLine
	return macdLine, signalLine, histogram, nil
}

// RequiredPeriods returns the minimum number of values needed.
func (m *MACD) RequiredPeriods() int {
	return m.slowPeriod + m.signalPeriod
}

// emaSeries computes the exponential moving average at every index, seeding
// with the first value.
func emaSeries(prices []float64, period int) []float64 {
	out := make([]float64, len(prices))
	if len(prices) == 0 {
		return out
	}
	multiplier := 2.0 / (float64(period) + 1.0)
	out[0] = prices[0]
	for i := 1; i < len(prices); i++ {
		out[i] = (prices[i]-out[i-1])*multiplier + out[i-1]
	}
	return out
}
