package indicators

import "math"

// RSI is the Relative Strength Index over close prices.
type RSI struct {
	period int
}

// NewRSI creates an RSI indicator with the given period.
func NewRSI(period int) *RSI {
	return &RSI{period: period}
}

// Calculate returns the RSI of the most recent window. A series with no
// losses in the window yields 100.
func (r *RSI) Calculate(prices []float64) (float64, error) {
	if len(prices) < r.period+1 {
		return 0, ErrInsufficientData
	}

	changes := make([]float64, len(prices)-1)
	for i := 1; i < len(prices); i++ {
		changes[i-1] = prices[i] - prices[i-1]
	}

	gains := make([]float64, len(changes))
	losses := make([]float64, len(changes))
	for i, change := range changes {
		if change > 0 {
			gains[i] = change
		} else {
			losses[i] = math.Abs(change)
		}
	}

	avgGain := mean(gains[len(gains)-r.period:])
	avgLoss := mean(losses[len(losses)-r.period:])

	if avgLoss == 0 {
		return 100, nil
	}

	rs := avgGain / avgLoss
	return 100 - (100 / (1 + rs)), nil
}

// RequiredPeriods returns the minimum number of values needed.
func (r *RSI) RequiredPeriods() int {
	return r.period + 1
}

func mean(values []float64) float64 {
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}
