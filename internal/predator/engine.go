// Package predator implements the morning research-note pipeline: data
// collection, preliminary narrative generation, a late-window incremental
// correction gated by a wall-clock cutoff, and a deterministic fallback
// that never fails.
package predator

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/lp452254117/alpha-predator/internal/contracts"
	"github.com/lp452254117/alpha-predator/internal/datasource"
	"github.com/lp452254117/alpha-predator/pkg/config"
	"github.com/lp452254117/alpha-predator/pkg/logger"
)

// Auction-feed placeholder until a realtime source is wired in
const auctionPlaceholder = "（集合竞价数据需要实时数据源接入）"

const newsLimit = 5

// ReportStore persists finished reports. The engine treats persistence as
// best-effort: a write failure is logged, never fails the pipeline.
type ReportStore interface {
	Save(ctx context.Context, report contracts.AnalysisReport) error
}

// Engine drives the analysis pipeline
// ⭐ SSOT: pipeline stage transitions happen only here
type Engine struct {
	source *datasource.Source
	chat   contracts.ChatClient
	store  ReportStore // nil disables persistence
	logger *logger.Logger

	generationTimeout  time.Duration
	incrementalTimeout time.Duration
	cutoffSeconds      int

	// injected clock, for cutoff tests
	now func() time.Time
}

// New creates the pipeline engine. The cutoff string must parse as
// HH:MM:SS local wall-clock time.
func New(source *datasource.Source, chat contracts.ChatClient, store ReportStore,
	cfg config.PipelineConfig, log *logger.Logger) (*Engine, error) {

	cutoff, err := config.ParseCutoff(cfg.CutoffTime)
	if err != nil {
		return nil, fmt.Errorf("invalid cutoff time %q: %w", cfg.CutoffTime, err)
	}

	return &Engine{
		source:             source,
		chat:               chat,
		store:              store,
		logger:             log,
		generationTimeout:  cfg.GenerationTimeout,
		incrementalTimeout: cfg.IncrementalTimeout,
		cutoffSeconds:      cutoff,
		now:                time.Now,
	}, nil
}

// Run carries one pipeline invocation's state from the preliminary stage
// to the incremental stage. The engine itself keeps no cross-run state.
type Run struct {
	Snapshot contracts.MarketSnapshot
	Pre      *contracts.AnalysisReport
}

// CollectMarketData gathers the day's snapshot blocks concurrently. A
// failed sub-fetch logs locally and leaves the NoData sentinel; collection
// never aborts the pipeline for a partial failure.
func (e *Engine) CollectMarketData(ctx context.Context, tradeDate string) contracts.MarketSnapshot {
	if tradeDate == "" {
		tradeDate = e.source.Today()
	}
	e.logger.WithField("trade_date", tradeDate).Info("Collecting market data")

	snapshot := contracts.MarketSnapshot{
		TradeDate:        tradeDate,
		IndexBlock:       contracts.NoData,
		MacroBlock:       contracts.NoData,
		CapitalFlowBlock: contracts.NoData,
		AuctionBlock:     auctionPlaceholder,
		NewsBlock:        contracts.NoData,
	}

	var wg sync.WaitGroup
	wg.Add(4)

	go func() {
		defer wg.Done()
		if block := e.collectIndexBlock(ctx); block != "" {
			snapshot.IndexBlock = block
		}
	}()
	go func() {
		defer wg.Done()
		if rate, ok := e.source.MacroRate(ctx, tradeDate); ok {
			snapshot.MacroBlock = fmt.Sprintf("Shibor 利率:\n- 隔夜: %.3f%%", rate)
		}
	}()
	go func() {
		defer wg.Done()
		if flow := e.source.NorthFlow(ctx, tradeDate); !flow.IsEmpty() {
			snapshot.CapitalFlowBlock = fmt.Sprintf(
				"北向资金:\n- 净流入: %.2f 亿元\n- 净流出: %.2f 亿元",
				flow.Inflow, flow.Outflow)
		}
	}()
	go func() {
		defer wg.Done()
		if block := e.collectNewsBlock(ctx); block != "" {
			snapshot.NewsBlock = block
		}
	}()

	wg.Wait()
	return snapshot
}

func (e *Engine) collectIndexBlock(ctx context.Context) string {
	quotes := e.source.IndexSnapshot(ctx)
	if len(quotes) == 0 {
		return ""
	}

	var b strings.Builder
	for _, q := range quotes {
		fmt.Fprintf(&b, "%s (%s):\n- 最新价: %.2f\n- 涨跌幅: %.2f%%\n- 成交额: %.0f\n",
			q.Name, q.Code, q.Price, q.ChangePct, q.Amount)
	}
	return b.String()
}

func (e *Engine) collectNewsBlock(ctx context.Context) string {
	items := e.source.News(ctx, newsLimit)
	if len(items) == 0 {
		return ""
	}

	var b strings.Builder
	for _, item := range items {
		if item.Time.IsZero() {
			fmt.Fprintf(&b, "- %s\n", item.Title)
		} else {
			fmt.Fprintf(&b, "- [%s] %s\n", item.Time.Format("01-02 15:04"), item.Title)
		}
	}
	return b.String()
}

// generate runs one bounded narrative call
func (e *Engine) generate(ctx context.Context, timeout time.Duration, prompt string) (string, error) {
	bounded, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	return e.chat.Chat(bounded, quantAnalystRole, []contracts.Message{
		{Role: "user", Content: prompt},
	})
}

// persist writes a finished report when a store is configured
func (e *Engine) persist(ctx context.Context, report contracts.AnalysisReport) {
	if e.store == nil {
		return
	}
	if err := e.store.Save(ctx, report); err != nil {
		e.logger.WithError(err).Error("Report persistence failed")
	}
}

// secondsOfDay converts a wall-clock time to seconds since midnight
func secondsOfDay(t time.Time) int {
	return t.Hour()*3600 + t.Minute()*60 + t.Second()
}
