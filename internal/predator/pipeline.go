package predator

import (
	"context"
	"fmt"

	"github.com/lp452254117/alpha-predator/internal/contracts"
)

const preSummaryLimit = 500

// RunMorningPipeline executes the full morning flow: collect, preliminary
// report, cutoff gate, incremental correction, fallback. It always
// returns a report; narrative failures degrade instead of propagating.
func (e *Engine) RunMorningPipeline(ctx context.Context) contracts.AnalysisReport {
	now := e.now()
	e.logger.WithField("time", now.Format("15:04:05")).Info("Running morning pipeline")

	run := &Run{Snapshot: e.CollectMarketData(ctx, "")}

	if _, err := e.GeneratePreReport(ctx, run); err != nil {
		// No preliminary report means the incremental stage is
		// unreachable; go straight to the deterministic path
		e.logger.WithError(err).Warn("Preliminary generation failed, falling back")
		report := e.GenerateFallbackReport(run.Snapshot)
		e.persist(ctx, report)
		return report
	}

	var report contracts.AnalysisReport
	if secondsOfDay(e.now()) >= e.cutoffSeconds {
		e.logger.Warn("Past cutoff time, skipping incremental update")
		report = e.GenerateFallbackReport(run.Snapshot)
	} else {
		updated, err := e.GenerateIncrementalUpdate(ctx, run)
		if err != nil {
			e.logger.WithError(err).Warn("Incremental update failed, falling back")
			report = e.GenerateFallbackReport(run.Snapshot)
		} else {
			report = updated
		}
	}

	e.persist(ctx, report)
	return report
}

// GeneratePreReport generates the preliminary report and threads it into
// the run context for the incremental stage
func (e *Engine) GeneratePreReport(ctx context.Context, run *Run) (contracts.AnalysisReport, error) {
	e.logger.Info("Generating preliminary report")

	prompt := renderPrompt(morningTemplate, map[string]string{
		"trade_date":      run.Snapshot.TradeDate,
		"macro_data":      run.Snapshot.MacroBlock,
		"index_data":      run.Snapshot.IndexBlock,
		"northbound_data": run.Snapshot.CapitalFlowBlock,
		"auction_data":    "【预处理阶段】集合竞价数据将在增量更新阶段补充",
		"news_data":       run.Snapshot.NewsBlock,
	})

	content, err := e.generate(ctx, e.generationTimeout, prompt)
	if err != nil {
		return contracts.AnalysisReport{}, fmt.Errorf("preliminary generation: %w", err)
	}

	report := contracts.AnalysisReport{
		Title:       fmt.Sprintf("📊 %s A股量化策略预处理报告", run.Snapshot.TradeDate),
		Content:     content,
		TradeDate:   run.Snapshot.TradeDate,
		GeneratedAt: e.now(),
		Stage:       contracts.StagePre,
	}
	run.Pre = &report
	return report, nil
}

// GenerateIncrementalUpdate corrects the preliminary report with auction
// data under the incremental timeout. A timeout is an error; the caller
// transitions to fallback without retrying.
func (e *Engine) GenerateIncrementalUpdate(ctx context.Context, run *Run) (contracts.AnalysisReport, error) {
	if run.Pre == nil {
		return contracts.AnalysisReport{}, fmt.Errorf("no preliminary report in run context")
	}

	e.logger.Info("Generating incremental update")

	summary := run.Pre.Content
	if runes := []rune(summary); len(runes) > preSummaryLimit {
		summary = string(runes[:preSummaryLimit]) + "..."
	}

	prompt := renderPrompt(incrementalTemplate, map[string]string{
		"pre_report_summary": summary,
		"auction_data":       run.Snapshot.AuctionBlock,
	})

	content, err := e.generate(ctx, e.incrementalTimeout, prompt)
	if err != nil {
		return contracts.AnalysisReport{}, fmt.Errorf("incremental generation: %w", err)
	}

	full := fmt.Sprintf("%s\n\n---\n\n## 📌 集合竞价增量更新 (%s)\n\n%s",
		run.Pre.Content, e.now().Format("15:04:05"), content)

	return contracts.AnalysisReport{
		Title:       fmt.Sprintf("📊 %s A股量化策略报告（完整版）", run.Pre.TradeDate),
		Content:     full,
		TradeDate:   run.Pre.TradeDate,
		GeneratedAt: e.now(),
		Stage:       contracts.StageFull,
	}, nil
}

// GenerateFallbackReport builds the deterministic template report from
// already-collected structured fields. It makes no external calls and
// cannot fail.
func (e *Engine) GenerateFallbackReport(snapshot contracts.MarketSnapshot) contracts.AnalysisReport {
	e.logger.Warn("Generating rule-engine fallback report")

	now := e.now()
	content := renderPrompt(fallbackTemplate, map[string]string{
		"timestamp":       now.Format("2006-01-02 15:04:05"),
		"index_data":      snapshot.IndexBlock,
		"macro_data":      snapshot.MacroBlock,
		"northbound_data": snapshot.CapitalFlowBlock,
		"news_data":       snapshot.NewsBlock,
	})

	tradeDate := snapshot.TradeDate
	if tradeDate == "" {
		tradeDate = now.Format("20060102")
	}

	return contracts.AnalysisReport{
		Title:       "⚠️ 竞价异动快报（规则引擎模式）",
		Content:     content,
		TradeDate:   tradeDate,
		GeneratedAt: now,
		Stage:       contracts.StageFallback,
		IsFallback:  true,
	}
}

// GenerateOnDemand is the user-triggered one-shot path: collect then
// generate, with no cutoff gating and no fallback
func (e *Engine) GenerateOnDemand(ctx context.Context, tradeDate string) (contracts.AnalysisReport, error) {
	snapshot := e.CollectMarketData(ctx, tradeDate)

	prompt := renderPrompt(morningTemplate, map[string]string{
		"trade_date":      snapshot.TradeDate,
		"macro_data":      snapshot.MacroBlock,
		"index_data":      snapshot.IndexBlock,
		"northbound_data": snapshot.CapitalFlowBlock,
		"auction_data":    snapshot.AuctionBlock,
		"news_data":       snapshot.NewsBlock,
	})

	content, err := e.generate(ctx, e.generationTimeout, prompt)
	if err != nil {
		return contracts.AnalysisReport{}, fmt.Errorf("on-demand generation: %w", err)
	}

	report := contracts.AnalysisReport{
		Title:       fmt.Sprintf("📊 %s A股量化策略报告", snapshot.TradeDate),
		Content:     content,
		TradeDate:   snapshot.TradeDate,
		GeneratedAt: e.now(),
		Stage:       contracts.StageFull,
	}
	e.persist(ctx, report)
	return report, nil
}
