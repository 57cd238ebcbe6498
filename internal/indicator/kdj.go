package indicator

// KDJResult holds the stochastic %K/%D series and the derived J line
type KDJResult struct {
	K []float64
	D []float64
	J []float64
}

// KDJ computes the KDJ oscillator: raw stochastic over an n-bar window,
// %K and %D smoothed with simple moving averages, J = 3K - 2D.
// Defaults are n=9, smoothK=3, smoothD=3.
func (e *Engine) KDJ(n, smoothK, smoothD int) KDJResult {
	length := e.series.Len()
	highs := e.series.Highs()
	lows := e.series.Lows()
	closes := e.series.Closes()

	raw := make([]float64, length)
	for i := 0; i < length; i++ {
		start := i - n + 1
		if start < 0 {
			start = 0
		}

		hh, ll := highs[start], lows[start]
		for j := start + 1; j <= i; j++ {
			if highs[j] > hh {
				hh = highs[j]
			}
			if lows[j] < ll {
				ll = lows[j]
			}
		}

		if hh == ll {
			raw[i] = 50 // flat window carries no directional information
		} else {
			raw[i] = (closes[i] - ll) / (hh - ll) * 100
		}
	}

	k := sma(raw, smoothK)
	d := sma(k, smoothD)

	j := make([]float64, length)
	for i := 0; i < length; i++ {
		j[i] = 3*k[i] - 2*d[i]
	}

	return KDJResult{K: k, D: d, J: j}
}

// KDJDefault computes KDJ(9, 3, 3)
func (e *Engine) KDJDefault() KDJResult {
	return e.KDJ(9, 3, 3)
}

// IsGoldenCross reports whether %K crossed above %D strictly between the
// last two points
func (r KDJResult) IsGoldenCross() bool {
	return crossedAbove(r.K, r.D)
}

// IsDeathCross reports whether %K crossed below %D strictly between the
// last two points
func (r KDJResult) IsDeathCross() bool {
	return crossedAbove(r.D, r.K)
}

// IsOversold reports J < 20
func (r KDJResult) IsOversold() bool {
	if len(r.J) == 0 {
		return false
	}
	return last(r.J) < 20
}

// IsOverbought reports J > 80
func (r KDJResult) IsOverbought() bool {
	if len(r.J) == 0 {
		return false
	}
	return last(r.J) > 80
}

// IsLowGoldenCross reports a golden cross occurring with J below 50,
// a stronger buy signal than a cross in the upper zone
func (r KDJResult) IsLowGoldenCross() bool {
	return r.IsGoldenCross() && last(r.J) < 50
}
