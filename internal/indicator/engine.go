// Package indicator computes trend, oscillator and volatility indicators
// plus derived boolean states from a daily OHLCV series.
//
// Every operation degrades to safe defaults on short history: boolean
// derivations consult at least two trailing points or report false, and no
// operation panics or errors on a series that is merely too short.
package indicator

import "github.com/lp452254117/alpha-predator/internal/contracts"

// Default moving average periods used across the engine
var DefaultMAPeriods = []int{5, 10, 20, 60}

// Engine computes technical indicators over a single immutable series.
// The series is owned by the analysis pass that constructed the engine.
type Engine struct {
	series *contracts.Series
}

// New creates an indicator engine for a series
func New(series *contracts.Series) *Engine {
	return &Engine{series: series}
}

// Len returns the number of bars available to the engine
func (e *Engine) Len() int {
	return e.series.Len()
}

// sma computes a simple moving average series. Positions with fewer than
// period points average over what is available, so the output always has
// the same length as the input.
func sma(values []float64, period int) []float64 {
	out := make([]float64, len(values))
	var sum float64
	for i, v := range values {
		sum += v
		if i >= period {
			sum -= values[i-period]
			out[i] = sum / float64(period)
		} else {
			out[i] = sum / float64(i+1)
		}
	}
	return out
}

// ema computes an exponential moving average series seeded with the first
// value, alpha = 2/(period+1)
func ema(values []float64, period int) []float64 {
	out := make([]float64, len(values))
	if len(values) == 0 {
		return out
	}
	alpha := 2.0 / (float64(period) + 1.0)
	out[0] = values[0]
	for i := 1; i < len(values); i++ {
		out[i] = alpha*values[i] + (1-alpha)*out[i-1]
	}
	return out
}

// last returns the final value of a series, or 0 for an empty one
func last(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	return values[len(values)-1]
}

// crossedAbove reports whether a crossed above b strictly between the last
// two points. False whenever fewer than two points exist: a cross cannot be
// asserted from a single observation.
func crossedAbove(a, b []float64) bool {
	n := len(a)
	if n < 2 || len(b) < 2 {
		return false
	}
	return a[n-2] < b[len(b)-2] && a[n-1] > b[len(b)-1]
}
