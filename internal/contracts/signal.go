package contracts

// Signal directions
const (
	DirectionBullish = "bullish"
	DirectionNeutral = "neutral"
	DirectionBearish = "bearish"
)

// Signal strengths
const (
	StrengthWeak   = "weak"
	StrengthMedium = "medium"
	StrengthStrong = "strong"
)

// CompositeSignal is the single aggregated directional judgment derived
// purely from indicator states. It is deterministic for a given input
// series, read-only after creation and never persisted on its own.
type CompositeSignal struct {
	Direction string   `json:"direction"`
	Strength  string   `json:"strength"`
	Score     float64  `json:"score"`
	Reasons   []string `json:"reasons"` // ranked by contribution
}

// IsBullish reports whether the composite direction is bullish
func (s CompositeSignal) IsBullish() bool {
	return s.Direction == DirectionBullish
}

// IsBearish reports whether the composite direction is bearish
func (s CompositeSignal) IsBearish() bool {
	return s.Direction == DirectionBearish
}
