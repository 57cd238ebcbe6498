// Package signal aggregates indicator states into one composite
// directional judgment. Detection is fully deterministic: the same input
// series always produces the same signal, with no external calls.
package signal

import (
	"math"
	"sort"

	"github.com/lp452254117/alpha-predator/internal/contracts"
	"github.com/lp452254117/alpha-predator/internal/indicator"
)

// Contribution weights. Primary factors (crosses, alignment) dominate;
// volume and band position only tilt the score.
const (
	weightMACDGolden     = 2.0
	weightMACDDeath      = -2.0
	weightMACDZero       = 0.5
	weightMACDExpanding  = 0.5
	weightKDJLowGolden   = 2.0
	weightKDJGolden      = 1.0
	weightKDJDeath       = -1.5
	weightKDJOversold    = 0.5
	weightKDJOverbought  = -0.5
	weightAlignBullish   = 1.5
	weightAlignBearish   = -1.5
	weightHeavyVolume    = 0.5
	weightBandStretched  = -0.5
	weightBandWashedOut  = 0.5

	heavyVolumeRatio = 1.5

	bullishThreshold = 1.5
	bearishThreshold = -1.5
	strongThreshold  = 4.0
	mediumThreshold  = 2.5
)

type factor struct {
	reason string
	weight float64
}

// Detector derives a CompositeSignal from an indicator summary.
// ⭐ SSOT: composite direction classification happens only here
type Detector struct{}

// NewDetector creates a new signal detector
func NewDetector() *Detector {
	return &Detector{}
}

// Detect computes the composite signal for a bar series. Short series
// degrade to a neutral signal rather than failing.
func (d *Detector) Detect(series *contracts.Series) contracts.CompositeSignal {
	return d.DetectFromSummary(indicator.New(series).Summarize())
}

// DetectFromSummary classifies an already-computed indicator summary.
// Split out so the orchestrator can reuse one summary for both the
// signal and the report body.
func (d *Detector) DetectFromSummary(s indicator.Summary) contracts.CompositeSignal {
	var factors []factor

	add := func(cond bool, reason string, weight float64) {
		if cond {
			factors = append(factors, factor{reason: reason, weight: weight})
		}
	}

	add(s.MACD.GoldenCross, "macd_golden_cross", weightMACDGolden)
	add(s.MACD.DeathCross, "macd_death_cross", weightMACDDeath)
	add(s.MACD.AboveZero, "macd_above_zero", weightMACDZero)
	add(s.MACD.Expanding, "macd_histogram_expanding", weightMACDExpanding)

	// A low-zone golden cross supersedes the plain one
	if s.KDJ.LowGoldenCross {
		add(true, "kdj_low_golden_cross", weightKDJLowGolden)
	} else {
		add(s.KDJ.GoldenCross, "kdj_golden_cross", weightKDJGolden)
	}
	add(s.KDJ.DeathCross, "kdj_death_cross", weightKDJDeath)
	add(s.KDJ.Oversold, "kdj_oversold", weightKDJOversold)
	add(s.KDJ.Overbought, "kdj_overbought", weightKDJOverbought)

	add(s.MAAlignment.Bullish, "ma_bullish_alignment", weightAlignBullish)
	add(s.MAAlignment.Bearish, "ma_bearish_alignment", weightAlignBearish)

	if s.Volume.Ratio >= heavyVolumeRatio {
		if s.Price.ChangePct > 0 {
			add(true, "heavy_volume_advance", weightHeavyVolume)
		} else if s.Price.ChangePct < 0 {
			add(true, "heavy_volume_decline", -weightHeavyVolume)
		}
	}

	switch s.Bollinger.Position {
	case indicator.PositionAboveUpper:
		add(true, "boll_above_upper", weightBandStretched)
	case indicator.PositionBelowLower:
		add(true, "boll_below_lower", weightBandWashedOut)
	}

	var score float64
	for _, f := range factors {
		score += f.weight
	}

	// Rank reasons by absolute contribution, insertion order on ties
	sort.SliceStable(factors, func(i, j int) bool {
		return math.Abs(factors[i].weight) > math.Abs(factors[j].weight)
	})

	reasons := make([]string, len(factors))
	for i, f := range factors {
		reasons[i] = f.reason
	}

	return contracts.CompositeSignal{
		Direction: classifyDirection(score),
		Strength:  classifyStrength(score),
		Score:     indicator.Round2(score),
		Reasons:   reasons,
	}
}

func classifyDirection(score float64) string {
	switch {
	case score >= bullishThreshold:
		return contracts.DirectionBullish
	case score <= bearishThreshold:
		return contracts.DirectionBearish
	default:
		return contracts.DirectionNeutral
	}
}

func classifyStrength(score float64) string {
	abs := math.Abs(score)
	switch {
	case abs >= strongThreshold:
		return contracts.StrengthStrong
	case abs >= mediumThreshold:
		return contracts.StrengthMedium
	default:
		return contracts.StrengthWeak
	}
}
