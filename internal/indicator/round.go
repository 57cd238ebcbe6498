package indicator

import "math"

// Round2 rounds to 2 decimal places (price-scale presentation contract)
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Round4 rounds to 4 decimal places (oscillator presentation contract)
func Round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}
