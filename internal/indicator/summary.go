package indicator

// Summary is the per-indicator snapshot consumed by the signal detector
// and by report formatting. Numeric fields follow the presentation
// rounding contract: price-scale values to 2 decimal places, oscillator
// raw values to 4.
type Summary struct {
	Price struct {
		Close     float64 `json:"close"`
		ChangePct float64 `json:"change_pct"`
	} `json:"price"`

	MACD struct {
		DIF         float64 `json:"dif"`
		DEA         float64 `json:"dea"`
		Histogram   float64 `json:"histogram"`
		GoldenCross bool    `json:"golden_cross"`
		DeathCross  bool    `json:"death_cross"`
		AboveZero   bool    `json:"above_zero"`
		Expanding   bool    `json:"hist_expanding"`
	} `json:"macd"`

	KDJ struct {
		K              float64 `json:"k"`
		D              float64 `json:"d"`
		J              float64 `json:"j"`
		GoldenCross    bool    `json:"golden_cross"`
		DeathCross     bool    `json:"death_cross"`
		Oversold       bool    `json:"oversold"`
		Overbought     bool    `json:"overbought"`
		LowGoldenCross bool    `json:"low_golden_cross"`
	} `json:"kdj"`

	Bollinger struct {
		Upper    float64 `json:"upper"`
		Middle   float64 `json:"middle"`
		Lower    float64 `json:"lower"`
		Position string  `json:"position"`
	} `json:"bollinger"`

	MAAlignment struct {
		Bullish bool `json:"bullish"`
		Bearish bool `json:"bearish"`
	} `json:"ma_alignment"`

	Volume struct {
		Ratio float64 `json:"ratio"`
	} `json:"volume"`

	Levels struct {
		Supports    []float64 `json:"supports"`
		Resistances []float64 `json:"resistances"`
	} `json:"levels"`
}

// Summarize computes the full indicator snapshot with default parameters
func (e *Engine) Summarize() Summary {
	var s Summary

	closes := e.series.Closes()
	s.Price.Close = Round2(last(closes))
	if len(closes) >= 2 {
		prev := closes[len(closes)-2]
		if prev != 0 {
			s.Price.ChangePct = Round2((last(closes)/prev - 1) * 100)
		}
	}

	macd := e.MACDDefault()
	s.MACD.DIF = Round4(last(macd.DIF))
	s.MACD.DEA = Round4(last(macd.DEA))
	s.MACD.Histogram = Round4(last(macd.Histogram))
	s.MACD.GoldenCross = macd.IsGoldenCross()
	s.MACD.DeathCross = macd.IsDeathCross()
	s.MACD.AboveZero = macd.IsAboveZero()
	s.MACD.Expanding = macd.IsHistogramExpanding()

	kdj := e.KDJDefault()
	s.KDJ.K = Round2(last(kdj.K))
	s.KDJ.D = Round2(last(kdj.D))
	s.KDJ.J = Round2(last(kdj.J))
	s.KDJ.GoldenCross = kdj.IsGoldenCross()
	s.KDJ.DeathCross = kdj.IsDeathCross()
	s.KDJ.Oversold = kdj.IsOversold()
	s.KDJ.Overbought = kdj.IsOverbought()
	s.KDJ.LowGoldenCross = kdj.IsLowGoldenCross()

	boll := e.BollingerDefault()
	s.Bollinger.Upper = Round2(last(boll.Upper))
	s.Bollinger.Middle = Round2(last(boll.Middle))
	s.Bollinger.Lower = Round2(last(boll.Lower))
	s.Bollinger.Position = boll.Position(last(closes))

	s.MAAlignment.Bullish = e.IsBullishAlignment(DefaultMAPeriods)
	s.MAAlignment.Bearish = e.IsBearishAlignment(DefaultMAPeriods)

	s.Volume.Ratio = Round2(e.VolumeRatio(5))

	s.Levels.Supports, s.Levels.Resistances = e.SupportResistance(60, 3)

	return s
}
