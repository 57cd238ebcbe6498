package indicator

// MACDResult holds the full MACD output series.
// DIF is the fast-minus-slow EMA line, DEA its signal EMA, Histogram the
// difference between the two.
type MACDResult struct {
	DIF       []float64
	DEA       []float64
	Histogram []float64
}

// MACD computes moving average convergence/divergence with the given
// window lengths. Standard defaults are fast=12, slow=26, signal=9.
func (e *Engine) MACD(fast, slow, signal int) MACDResult {
	closes := e.series.Closes()

	fastEMA := ema(closes, fast)
	slowEMA := ema(closes, slow)

	dif := make([]float64, len(closes))
	for i := range closes {
		dif[i] = fastEMA[i] - slowEMA[i]
	}

	dea := ema(dif, signal)

	hist := make([]float64, len(closes))
	for i := range closes {
		hist[i] = dif[i] - dea[i]
	}

	return MACDResult{DIF: dif, DEA: dea, Histogram: hist}
}

// MACDDefault computes MACD(12, 26, 9)
func (e *Engine) MACDDefault() MACDResult {
	return e.MACD(12, 26, 9)
}

// IsGoldenCross reports whether DIF crossed above DEA strictly between the
// last two points
func (r MACDResult) IsGoldenCross() bool {
	return crossedAbove(r.DIF, r.DEA)
}

// IsDeathCross reports whether DIF crossed below DEA strictly between the
// last two points
func (r MACDResult) IsDeathCross() bool {
	return crossedAbove(r.DEA, r.DIF)
}

// IsAboveZero reports whether the latest DIF sits above the zero axis
func (r MACDResult) IsAboveZero() bool {
	if len(r.DIF) == 0 {
		return false
	}
	return last(r.DIF) > 0
}

// IsHistogramExpanding reports whether the histogram is positive and grew
// against the previous point
func (r MACDResult) IsHistogramExpanding() bool {
	n := len(r.Histogram)
	if n < 2 {
		return false
	}
	return r.Histogram[n-1] > 0 && r.Histogram[n-1] > r.Histogram[n-2]
}
