package contracts

import "context"

// MarketProvider is the retrieval surface every data provider adapter
// implements. Failures on read paths surface as empty results; only
// construction may fail.
type MarketProvider interface {
	// Name identifies the provider ("tushare", "eastmoney")
	Name() string

	// FetchDailyBars returns daily OHLCV bars for [start, end], dates in
	// YYYYMMDD form, ascending by date
	FetchDailyBars(ctx context.Context, code, start, end string) (*Series, error)

	// FetchRealtimeQuote returns the current quote; empty when unavailable
	FetchRealtimeQuote(ctx context.Context, code string) (Quote, error)

	// FetchInstrumentInfo returns instrument metadata; empty when unavailable
	FetchInstrumentInfo(ctx context.Context, code string) (InstrumentInfo, error)

	// FetchIndexSnapshot returns quotes for the major market indexes
	FetchIndexSnapshot(ctx context.Context) ([]IndexQuote, error)

	// FetchCapitalFlow returns the northbound flow for a trade date
	// (YYYYMMDD, empty string for today); empty when unavailable
	FetchCapitalFlow(ctx context.Context, tradeDate string) (CapitalFlow, error)
}

// MacroProvider is the optional capability of exposing an interbank
// reference rate. Callers discover it with a type assertion.
type MacroProvider interface {
	// FetchMacroRate returns the overnight Shibor rate for a date
	// (YYYYMMDD, empty string for the latest available)
	FetchMacroRate(ctx context.Context, date string) (float64, error)
}

// NewsProvider is the optional capability of listing recent market news.
type NewsProvider interface {
	FetchNews(ctx context.Context, limit int) ([]NewsItem, error)
}

// Message is a single chat message passed to the narrative generator
type Message struct {
	Role    string `json:"role"` // "system", "user", "assistant"
	Content string `json:"content"`
}

// ChatClient is the narrative-generation capability. It is treated as
// unreliable: calls may hang, so callers bound them with a context
// deadline and abandon the result on timeout.
type ChatClient interface {
	Chat(ctx context.Context, system string, messages []Message) (string, error)
}
