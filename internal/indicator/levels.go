package indicator

import (
	"math"
	"sort"
)

var (
	supportPercentiles    = []float64{10, 25, 50}
	resistancePercentiles = []float64{50, 75, 90}
)

// SupportResistance identifies candidate support and resistance prices
// from the trailing lookback window: low percentiles below the current
// close become supports, high percentiles above it become resistances.
// Up to levels of each are returned, nearest the current price first.
func (e *Engine) SupportResistance(lookback, levels int) (supports, resistances []float64) {
	n := e.series.Len()
	if n == 0 {
		return nil, nil
	}

	start := n - lookback
	if start < 0 {
		start = 0
	}

	var lows, highs []float64
	for i := start; i < n; i++ {
		b := e.series.Bar(i)
		lows = append(lows, b.Low)
		highs = append(highs, b.High)
	}
	current := e.series.Last().Close

	for _, p := range supportPercentiles {
		level := Round2(percentile(lows, p))
		if level < current {
			supports = append(supports, level)
		}
	}
	for _, p := range resistancePercentiles {
		level := Round2(percentile(highs, p))
		if level > current {
			resistances = append(resistances, level)
		}
	}

	// Nearest-first: supports descend from the 50th percentile, so reverse
	sort.Sort(sort.Reverse(sort.Float64Slice(supports)))
	sort.Float64s(resistances)

	if len(supports) > levels {
		supports = supports[:levels]
	}
	if len(resistances) > levels {
		resistances = resistances[:levels]
	}
	return supports, resistances
}

// percentile computes the p-th percentile with linear interpolation
// between closest ranks
func percentile(values []float64, p float64) float64 {
	if len(values) == 0 {
		return 0
	}

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	rank := p / 100 * float64(len(sorted)-1)
	lo := int(math.Floor(rank))
	hi := int(math.Ceil(rank))
	if lo == hi {
		return sorted[lo]
	}
	frac := rank - float64(lo)
	return sorted[lo] + frac*(sorted[hi]-sorted[lo])
}
