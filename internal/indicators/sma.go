// Package indicators provides the small set of technical indicators the
// momentum signal provider is built on.
package indicators

import "errors"

// ErrInsufficientData is returned when a series is shorter than the
// indicator's required period.
var ErrInsufficientData = errors.New("insufficient data for indicator calculation")

// SMA is the Simple Moving Average over close prices.
type SMA struct {
	period int
}

// NewSMA creates an SMA indicator with the given period.
func NewSMA(period int) *SMA {
	return &SMA{period: period}
}

// Calculate returns the SMA of the last period values.
func (s *SMA) Calculate(prices []float64) (float64, error) {
	if len(prices) < s.period {
		return 0, ErrInsufficientData
	}

	sum := 0.0
	for i := len(prices) - s.period; i < len(prices); i++ {
		sum += prices[i]
	}
	return sum / float64(s.period), nil
}

// RequiredPeriods returns the minimum number of values needed.
func (s *SMA) RequiredPeriods() int {
	return s.period
}
