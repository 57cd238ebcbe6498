package datasource

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/lp452254117/alpha-predator/internal/contracts"
	"github.com/lp452254117/alpha-predator/pkg/config"
	"github.com/lp452254117/alpha-predator/pkg/httputil"
	"github.com/lp452254117/alpha-predator/pkg/logger"
)

func TestNormalizeCode(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"000001", "000001.SZ"},
		{"300750", "300750.SZ"},
		{"601688", "601688.SH"},
		{"688981", "688981.SH"},
		{"830799", "830799.BJ"},
		{"430047", "430047.BJ"},
		{"000001.SZ", "000001.SZ"}, // already suffixed
		{"600000.SH", "600000.SH"},
		{"12345", "12345"},   // not 6 digits
		{"1234567", "1234567"},
		{" 000001 ", "000001.SZ"}, // whitespace trimmed
		{"", ""},
	}

	for _, tt := range tests {
		if got := NormalizeCode(tt.in); got != tt.want {
			t.Errorf("NormalizeCode(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNormalizeCode_Idempotent(t *testing.T) {
	inputs := []string{"000001", "601688", "830799", "000001.SZ", "12345", "abc"}
	for _, in := range inputs {
		once := NormalizeCode(in)
		twice := NormalizeCode(once)
		if once != twice {
			t.Errorf("NormalizeCode not idempotent for %q: %q != %q", in, once, twice)
		}
	}
}

// fakeProvider implements contracts.MarketProvider for source tests
type fakeProvider struct {
	name     string
	bars     *contracts.Series
	barsErr  error
	quote    contracts.Quote
	quoteErr error
	flowErr  error
}

func (f *fakeProvider) Name() string { return f.name }

func (f *fakeProvider) FetchDailyBars(ctx context.Context, code, start, end string) (*contracts.Series, error) {
	return f.bars, f.barsErr
}

func (f *fakeProvider) FetchRealtimeQuote(ctx context.Context, code string) (contracts.Quote, error) {
	return f.quote, f.quoteErr
}

func (f *fakeProvider) FetchInstrumentInfo(ctx context.Context, code string) (contracts.InstrumentInfo, error) {
	return contracts.InstrumentInfo{}, nil
}

func (f *fakeProvider) FetchIndexSnapshot(ctx context.Context) ([]contracts.IndexQuote, error) {
	return nil, nil
}

func (f *fakeProvider) FetchCapitalFlow(ctx context.Context, tradeDate string) (contracts.CapitalFlow, error) {
	if f.flowErr != nil {
		return contracts.CapitalFlow{}, f.flowErr
	}
	return contracts.CapitalFlow{Inflow: 52.3}, nil
}

func TestNew_FallsBackToEastMoneyWithoutToken(t *testing.T) {
	cfg := &config.Config{}
	cfg.Tushare.BaseURL = "http://api.tushare.pro"
	// No token configured

	log := logger.Nop()
	src, err := New(cfg, httputil.New(log), nil, log)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if src.ProviderName() != "eastmoney" {
		t.Errorf("ProviderName() = %s, want eastmoney", src.ProviderName())
	}
}

func TestNew_PrefersTushareWithToken(t *testing.T) {
	cfg := &config.Config{}
	cfg.Tushare.BaseURL = "http://api.tushare.pro"
	cfg.Tushare.Token = "some-token"

	log := logger.Nop()
	src, err := New(cfg, httputil.New(log), nil, log)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if src.ProviderName() != "tushare" {
		t.Errorf("ProviderName() = %s, want tushare", src.ProviderName())
	}
}

func TestRealtimeQuote_EmptyOnFailure(t *testing.T) {
	src := NewWithProvider(&fakeProvider{
		name:     "fake",
		quoteErr: errors.New("connection refused"),
	}, nil, logger.Nop())

	q := src.RealtimeQuote(context.Background(), "000001")
	if !q.IsEmpty() {
		t.Errorf("quote = %+v, want empty on provider failure", q)
	}
}

func TestNorthFlow_EmptyOnFailure(t *testing.T) {
	src := NewWithProvider(&fakeProvider{
		name:    "fake",
		flowErr: errors.New("timeout"),
	}, nil, logger.Nop())

	flow := src.NorthFlow(context.Background(), "")
	if !flow.IsEmpty() {
		t.Errorf("flow = %+v, want empty on provider failure", flow)
	}
}

func TestMacroRate_UnsupportedProvider(t *testing.T) {
	src := NewWithProvider(&fakeProvider{name: "fake"}, nil, logger.Nop())

	if _, ok := src.MacroRate(context.Background(), ""); ok {
		t.Error("MacroRate() ok = true for a provider without the capability")
	}
}

func TestDailyBars_NormalizesCode(t *testing.T) {
	bars := []contracts.Bar{
		{Date: time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), Open: 10, High: 10.5, Low: 9.8, Close: 10.2, Volume: 1000},
	}
	series, err := contracts.NewSeries(bars)
	if err != nil {
		t.Fatal(err)
	}

	fp := &fakeProvider{name: "fake", bars: series}
	src := NewWithProvider(fp, nil, logger.Nop())

	got, err := src.DailyBars(context.Background(), "000001", "20240101", "20240103")
	if err != nil {
		t.Fatalf("DailyBars() error = %v", err)
	}
	if got.Len() != 1 {
		t.Errorf("Len() = %d, want 1", got.Len())
	}
}

func TestToday_Format(t *testing.T) {
	src := NewWithProvider(&fakeProvider{name: "fake"}, nil, logger.Nop())
	today := src.Today()
	if _, err := time.Parse("20060102", today); err != nil {
		t.Errorf("Today() = %q, not YYYYMMDD: %v", today, err)
	}
}
