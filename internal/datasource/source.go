// Package datasource provides the unified market-data surface. One
// provider is selected at construction time, by ordered preference with
// permanent fallback, and serves every read for the instance lifetime.
package datasource

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/lp452254117/alpha-predator/internal/contracts"
	"github.com/lp452254117/alpha-predator/internal/provider/eastmoney"
	"github.com/lp452254117/alpha-predator/internal/provider/tushare"
	"github.com/lp452254117/alpha-predator/pkg/config"
	"github.com/lp452254117/alpha-predator/pkg/httputil"
	"github.com/lp452254117/alpha-predator/pkg/logger"
	"github.com/lp452254117/alpha-predator/pkg/redis"
)

// Source is the unified data source
// ⭐ SSOT: provider selection happens exactly once, here
type Source struct {
	provider contracts.MarketProvider
	cache    *redis.Cache // nil disables caching
	logger   *logger.Logger
}

// New selects a provider and builds the unified source. Tushare is
// preferred but needs a token; EastMoney is the credential-free fallback.
// The selection is permanent: no per-call re-selection, no recovery to
// the primary if it becomes available later.
func New(cfg *config.Config, httpClient *httputil.Client, cache *redis.Cache, log *logger.Logger) (*Source, error) {
	ts, err := tushare.NewClient(httpClient, log, cfg.Tushare.BaseURL, cfg.Tushare.Token)
	if err == nil {
		log.WithField("provider", ts.Name()).Info("Data source initialized")
		return NewWithProvider(ts, cache, log), nil
	}
	log.WithError(err).Warn("Tushare unavailable, falling back to EastMoney")

	em := eastmoney.NewClient(httpClient, log,
		cfg.EastMoney.QuoteBaseURL, cfg.EastMoney.HistBaseURL, cfg.EastMoney.NewsBaseURL)
	log.WithField("provider", em.Name()).Info("Data source initialized")
	return NewWithProvider(em, cache, log), nil
}

// NewWithProvider wraps an already-constructed provider. Used by New and
// by tests that inject fakes.
func NewWithProvider(provider contracts.MarketProvider, cache *redis.Cache, log *logger.Logger) *Source {
	return &Source{
		provider: provider,
		cache:    cache,
		logger:   log,
	}
}

// ProviderName reports which provider was selected at construction
func (s *Source) ProviderName() string {
	return s.provider.Name()
}

// Today returns today's date in YYYYMMDD form
func (s *Source) Today() string {
	return time.Now().Format("20060102")
}

// NormalizeCode maps a bare 6-digit instrument code to its
// exchange-suffixed form. Already-suffixed or non-6-digit input passes
// through unchanged, which makes the function idempotent.
func NormalizeCode(code string) string {
	code = strings.TrimSpace(code)
	if strings.Contains(code, ".") {
		return code
	}
	if len(code) != 6 {
		return code
	}

	switch {
	case strings.HasPrefix(code, "60"), strings.HasPrefix(code, "68"):
		return code + ".SH"
	case strings.HasPrefix(code, "00"), strings.HasPrefix(code, "30"):
		return code + ".SZ"
	case strings.HasPrefix(code, "8"), strings.HasPrefix(code, "4"):
		return code + ".BJ"
	}
	return code
}

// DailyBars fetches daily OHLCV bars for [start, end], consulting the
// cache first when one is configured
func (s *Source) DailyBars(ctx context.Context, code, start, end string) (*contracts.Series, error) {
	code = NormalizeCode(code)

	if s.cache != nil {
		var bars []contracts.Bar
		hit, err := s.cache.Get(ctx, redis.DailyBarsKey(code, start, end), &bars)
		if err != nil {
			s.logger.WithError(err).Warn("Daily bars cache read failed")
		}
		if hit {
			if series, err := contracts.NewSeries(bars); err == nil {
				return series, nil
			}
			// Corrupt entry: fall through to the provider
			_ = s.cache.Delete(ctx, redis.DailyBarsKey(code, start, end))
		}
	}

	series, err := s.provider.FetchDailyBars(ctx, code, start, end)
	if err != nil {
		return nil, fmt.Errorf("daily bars %s: %w", code, err)
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, redis.DailyBarsKey(code, start, end), series.Bars(), redis.TTLDaily); err != nil {
			s.logger.WithError(err).Warn("Daily bars cache write failed")
		}
	}
	return series, nil
}

// RealtimeQuote fetches the live quote. Failures log and return an empty
// quote; collection never aborts on a read failure.
func (s *Source) RealtimeQuote(ctx context.Context, code string) contracts.Quote {
	code = NormalizeCode(code)

	if s.cache != nil {
		var q contracts.Quote
		if hit, _ := s.cache.Get(ctx, redis.QuoteKey(code), &q); hit {
			return q
		}
	}

	q, err := s.provider.FetchRealtimeQuote(ctx, code)
	if err != nil {
		s.logger.WithError(err).WithField("code", code).Error("Realtime quote fetch failed")
		return contracts.Quote{}
	}

	if s.cache != nil && !q.IsEmpty() {
		_ = s.cache.Set(ctx, redis.QuoteKey(code), q, redis.TTLQuote)
	}
	return q
}

// InstrumentInfo fetches instrument metadata; empty on failure
func (s *Source) InstrumentInfo(ctx context.Context, code string) contracts.InstrumentInfo {
	code = NormalizeCode(code)

	if s.cache != nil {
		var info contracts.InstrumentInfo
		if hit, _ := s.cache.Get(ctx, redis.InstrumentKey(code), &info); hit {
			return info
		}
	}

	info, err := s.provider.FetchInstrumentInfo(ctx, code)
	if err != nil {
		s.logger.WithError(err).WithField("code", code).Error("Instrument info fetch failed")
		return contracts.InstrumentInfo{}
	}

	if s.cache != nil && !info.IsEmpty() {
		_ = s.cache.Set(ctx, redis.InstrumentKey(code), info, redis.TTLInfo)
	}
	return info
}

// IndexSnapshot fetches the major index quotes; nil on failure
func (s *Source) IndexSnapshot(ctx context.Context) []contracts.IndexQuote {
	quotes, err := s.provider.FetchIndexSnapshot(ctx)
	if err != nil {
		s.logger.WithError(err).Error("Index snapshot fetch failed")
		return nil
	}
	return quotes
}

// NorthFlow fetches the northbound capital flow; empty on failure
func (s *Source) NorthFlow(ctx context.Context, tradeDate string) contracts.CapitalFlow {
	flow, err := s.provider.FetchCapitalFlow(ctx, tradeDate)
	if err != nil {
		s.logger.WithError(err).Error("Capital flow fetch failed")
		return contracts.CapitalFlow{}
	}
	return flow
}

// MacroRate fetches the overnight Shibor rate when the selected provider
// supports it; ok is false otherwise
func (s *Source) MacroRate(ctx context.Context, date string) (float64, bool) {
	macro, supported := s.provider.(contracts.MacroProvider)
	if !supported {
		return 0, false
	}

	rate, err := macro.FetchMacroRate(ctx, date)
	if err != nil {
		s.logger.WithError(err).Error("Macro rate fetch failed")
		return 0, false
	}
	return rate, true
}

// News fetches recent market headlines when the selected provider
// supports it; nil otherwise
func (s *Source) News(ctx context.Context, limit int) []contracts.NewsItem {
	np, supported := s.provider.(contracts.NewsProvider)
	if !supported {
		return nil
	}

	items, err := np.FetchNews(ctx, limit)
	if err != nil {
		s.logger.WithError(err).Error("News fetch failed")
		return nil
	}
	return items
}
