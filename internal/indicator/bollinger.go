package indicator

import "math"

// Band positions returned by the Bollinger classifier
const (
	PositionAboveUpper = "above_upper"
	PositionUpperHalf  = "upper_half"
	PositionLowerHalf  = "lower_half"
	PositionBelowLower = "below_lower"
)

// BollingerResult holds the upper, middle and lower band series
type BollingerResult struct {
	Upper  []float64
	Middle []float64
	Lower  []float64
}

// Bollinger computes Bollinger bands: middle is the window SMA, upper and
// lower sit stdDev population standard deviations away. Defaults are
// window=20, stdDev=2.0.
func (e *Engine) Bollinger(window int, stdDev float64) BollingerResult {
	closes := e.series.Closes()
	middle := sma(closes, window)

	upper := make([]float64, len(closes))
	lower := make([]float64, len(closes))

	for i := range closes {
		start := i - window + 1
		if start < 0 {
			start = 0
		}

		var sqSum float64
		for j := start; j <= i; j++ {
			d := closes[j] - middle[i]
			sqSum += d * d
		}
		sd := math.Sqrt(sqSum / float64(i-start+1))

		upper[i] = middle[i] + stdDev*sd
		lower[i] = middle[i] - stdDev*sd
	}

	return BollingerResult{Upper: upper, Middle: middle, Lower: lower}
}

// BollingerDefault computes Bollinger(20, 2.0)
func (e *Engine) BollingerDefault() BollingerResult {
	return e.Bollinger(20, 2.0)
}

// Position classifies a price against the latest three bands
func (r BollingerResult) Position(price float64) string {
	if len(r.Upper) == 0 {
		return PositionLowerHalf
	}

	upper := last(r.Upper)
	middle := last(r.Middle)
	lower := last(r.Lower)

	switch {
	case price > upper:
		return PositionAboveUpper
	case price > middle:
		return PositionUpperHalf
	case price > lower:
		return PositionLowerHalf
	default:
		return PositionBelowLower
	}
}
