package contracts

import (
	"fmt"
	"time"
)

// NoData is the sentinel used for market snapshot blocks whose collection
// failed. It is a first-class value: downstream consumers render it as-is
// instead of treating the block as absent.
const NoData = "no data"

// Bar represents a single daily OHLCV bar
type Bar struct {
	Date   time.Time `json:"date"`
	Open   float64   `json:"open"`
	High   float64   `json:"high"`
	Low    float64   `json:"low"`
	Close  float64   `json:"close"`
	Volume float64   `json:"volume"`
}

// Series is an ordered sequence of daily bars, ascending by date.
// Construct through NewSeries so the ordering invariants hold; a Series is
// never mutated after construction.
type Series struct {
	bars []Bar
}

// NewSeries validates and wraps a bar slice. Bars must be ascending by
// date with no duplicate dates, high >= low and volume >= 0.
func NewSeries(bars []Bar) (*Series, error) {
	for i, b := range bars {
		if b.High < b.Low {
			return nil, fmt.Errorf("bar %d (%s): high %.2f < low %.2f",
				i, b.Date.Format("2006-01-02"), b.High, b.Low)
		}
		if b.Volume < 0 {
			return nil, fmt.Errorf("bar %d (%s): negative volume %.0f",
				i, b.Date.Format("2006-01-02"), b.Volume)
		}
		if i > 0 && !bars[i-1].Date.Before(b.Date) {
			return nil, fmt.Errorf("bar %d (%s): dates must be strictly ascending",
				i, b.Date.Format("2006-01-02"))
		}
	}

	copied := make([]Bar, len(bars))
	copy(copied, bars)
	return &Series{bars: copied}, nil
}

// Len returns the number of bars
func (s *Series) Len() int {
	return len(s.bars)
}

// Bar returns the bar at index i
func (s *Series) Bar(i int) Bar {
	return s.bars[i]
}

// Last returns the most recent bar; the zero Bar when the series is empty
func (s *Series) Last() Bar {
	if len(s.bars) == 0 {
		return Bar{}
	}
	return s.bars[len(s.bars)-1]
}

// Bars returns a copy of the underlying bars, for serialization
func (s *Series) Bars() []Bar {
	out := make([]Bar, len(s.bars))
	copy(out, s.bars)
	return out
}

// Closes returns the close prices in date order
func (s *Series) Closes() []float64 {
	out := make([]float64, len(s.bars))
	for i, b := range s.bars {
		out[i] = b.Close
	}
	return out
}

// Highs returns the high prices in date order
func (s *Series) Highs() []float64 {
	out := make([]float64, len(s.bars))
	for i, b := range s.bars {
		out[i] = b.High
	}
	return out
}

// Lows returns the low prices in date order
func (s *Series) Lows() []float64 {
	out := make([]float64, len(s.bars))
	for i, b := range s.bars {
		out[i] = b.Low
	}
	return out
}

// Volumes returns the volumes in date order
func (s *Series) Volumes() []float64 {
	out := make([]float64, len(s.bars))
	for i, b := range s.bars {
		out[i] = b.Volume
	}
	return out
}

// Quote represents a realtime quote for a single instrument
type Quote struct {
	Code     string  `json:"code"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Open     float64 `json:"open"`
	High     float64 `json:"high"`
	Low      float64 `json:"low"`
	PreClose float64 `json:"pre_close"`
	Volume   float64 `json:"volume"`
	Amount   float64 `json:"amount"`
}

// IsEmpty reports whether the quote carries no data.
// Empty means "unavailable", not failure.
func (q Quote) IsEmpty() bool {
	return q.Code == "" && q.Price == 0
}

// ChangePct returns the percentage change against the previous close
func (q Quote) ChangePct() float64 {
	if q.PreClose == 0 {
		return 0
	}
	return (q.Price - q.PreClose) / q.PreClose * 100
}

// InstrumentInfo represents instrument metadata
type InstrumentInfo struct {
	Code     string `json:"code"`
	Name     string `json:"name"`
	Industry string `json:"industry"`
	Market   string `json:"market"`
	ListDate string `json:"list_date"`
}

// IsEmpty reports whether no metadata was found
func (i InstrumentInfo) IsEmpty() bool {
	return i.Name == ""
}

// IndexQuote represents one row of the index snapshot table
type IndexQuote struct {
	Code      string  `json:"code"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	ChangePct float64 `json:"change_pct"`
	Volume    float64 `json:"volume"`
	Amount    float64 `json:"amount"`
}

// CapitalFlow represents the day's northbound capital flow, in units of
// 100 million CNY
type CapitalFlow struct {
	Inflow  float64 `json:"inflow"`
	Outflow float64 `json:"outflow"`
}

// IsEmpty reports whether no flow data was returned
func (c CapitalFlow) IsEmpty() bool {
	return c.Inflow == 0 && c.Outflow == 0
}

// NewsItem represents a single market news headline
type NewsItem struct {
	Title string    `json:"title"`
	Time  time.Time `json:"time"`
}

// MarketSnapshot bundles the day's macro, index, capital-flow, auction and
// news text blocks. It is built fresh per pipeline invocation and never
// mutated after construction; failed sub-fetches leave NoData in the block.
type MarketSnapshot struct {
	TradeDate        string `json:"trade_date"` // YYYYMMDD
	IndexBlock       string `json:"index_block"`
	MacroBlock       string `json:"macro_block"`
	CapitalFlowBlock string `json:"capital_flow_block"`
	AuctionBlock     string `json:"auction_block"`
	NewsBlock        string `json:"news_block"`
}
