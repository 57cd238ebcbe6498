package indicator

import "sort"

// SMA computes simple moving averages for each period, returned as a
// period-to-series mapping
func (e *Engine) SMA(periods []int) map[int][]float64 {
	closes := e.series.Closes()
	out := make(map[int][]float64, len(periods))
	for _, p := range periods {
		out[p] = sma(closes, p)
	}
	return out
}

// EMA computes exponential moving averages for each period
func (e *Engine) EMA(periods []int) map[int][]float64 {
	closes := e.series.Closes()
	out := make(map[int][]float64, len(periods))
	for _, p := range periods {
		out[p] = ema(closes, p)
	}
	return out
}

// IsBullishAlignment reports a bullish moving average alignment: with
// periods sorted ascending, every shorter-period MA's latest value strictly
// exceeds the next longer one. A single violation anywhere breaks it.
func (e *Engine) IsBullishAlignment(periods []int) bool {
	return e.aligned(periods, func(shorter, longer float64) bool {
		return shorter > longer
	})
}

// IsBearishAlignment is the exact mirror: every shorter-period MA's latest
// value strictly below the next longer one
func (e *Engine) IsBearishAlignment(periods []int) bool {
	return e.aligned(periods, func(shorter, longer float64) bool {
		return shorter < longer
	})
}

func (e *Engine) aligned(periods []int, cmp func(shorter, longer float64) bool) bool {
	if len(periods) < 2 || e.series.Len() < 2 {
		return false
	}

	sorted := make([]int, len(periods))
	copy(sorted, periods)
	sort.Ints(sorted)

	mas := e.SMA(sorted)
	for i := 0; i < len(sorted)-1; i++ {
		if !cmp(last(mas[sorted[i]]), last(mas[sorted[i+1]])) {
			return false
		}
	}
	return true
}
