package predator

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/lp452254117/alpha-predator/internal/contracts"
)

// AnalyzeSectors asks the narrative generator for a structured sector
// ranking. A malformed payload produces a parse-failed placeholder result
// with the raw content preserved, never an error.
func (e *Engine) AnalyzeSectors(ctx context.Context) (contracts.SectorAnalysis, error) {
	tradeDate := e.source.Today()
	e.logger.WithField("trade_date", tradeDate).Info("Analyzing sectors")

	snapshot := e.CollectMarketData(ctx, tradeDate)

	prompt := renderPrompt(sectorAnalysisTemplate, map[string]string{
		"trade_date":      tradeDate,
		"index_data":      snapshot.IndexBlock,
		"north_flow_data": snapshot.CapitalFlowBlock,
	})

	content, err := e.generate(ctx, e.generationTimeout, prompt)
	if err != nil {
		return contracts.SectorAnalysis{}, fmt.Errorf("sector analysis: %w", err)
	}

	result := contracts.SectorAnalysis{
		TradeDate:   tradeDate,
		GeneratedAt: e.now(),
	}
	if err := json.Unmarshal([]byte(extractJSON(content)), &result); err != nil {
		e.logger.WithError(err).Error("Sector analysis output not parsable")
		return contracts.SectorAnalysis{
			TradeDate:     tradeDate,
			GeneratedAt:   e.now(),
			MarketSummary: "分析结果解析失败，请重试",
			ParseFailed:   true,
			RawContent:    content,
		}, nil
	}
	result.TradeDate = tradeDate
	return result, nil
}

// RecommendStocks asks for buy candidates within the selected sectors,
// biased by the user's risk preference
func (e *Engine) RecommendStocks(ctx context.Context, sectors []string, riskPreference string) (contracts.StockRecommendation, error) {
	tradeDate := e.source.Today()
	e.logger.WithFields(map[string]interface{}{
		"trade_date": tradeDate,
		"sectors":    strings.Join(sectors, ","),
		"risk":       riskPreference,
	}).Info("Recommending stocks")

	hint, ok := riskHints[riskPreference]
	if !ok {
		hint = riskHints["balanced"]
	}

	snapshot := e.CollectMarketData(ctx, tradeDate)

	prompt := renderPrompt(stockRecommendationTemplate, map[string]string{
		"trade_date":       tradeDate,
		"selected_sectors": strings.Join(sectors, ", "),
		"index_data":       snapshot.IndexBlock,
		"north_flow_data":  snapshot.CapitalFlowBlock,
		"risk_hint":        hint,
	})

	content, err := e.generate(ctx, e.generationTimeout, prompt)
	if err != nil {
		return contracts.StockRecommendation{}, fmt.Errorf("stock recommendation: %w", err)
	}

	result := contracts.StockRecommendation{
		TradeDate:       tradeDate,
		SelectedSectors: sectors,
		GeneratedAt:     e.now(),
	}
	if err := json.Unmarshal([]byte(extractJSON(content)), &result); err != nil {
		e.logger.WithError(err).Error("Stock recommendation output not parsable")
		return contracts.StockRecommendation{
			TradeDate:       tradeDate,
			SelectedSectors: sectors,
			GeneratedAt:     e.now(),
			Summary:         "分析结果解析失败，请重试",
			ParseFailed:     true,
			RawContent:      content,
		}, nil
	}
	result.TradeDate = tradeDate
	result.SelectedSectors = sectors
	return result, nil
}

// extractJSON strips a markdown code fence around a JSON payload. Content
// without a fence passes through unchanged.
func extractJSON(content string) string {
	if idx := strings.Index(content, "```json"); idx >= 0 {
		rest := content[idx+len("```json"):]
		if end := strings.Index(rest, "```"); end >= 0 {
			return strings.TrimSpace(rest[:end])
		}
		return strings.TrimSpace(rest)
	}
	if idx := strings.Index(content, "```"); idx >= 0 {
		rest := content[idx+3:]
		if end := strings.Index(rest, "```"); end >= 0 {
			return strings.TrimSpace(rest[:end])
		}
		return strings.TrimSpace(rest)
	}
	return strings.TrimSpace(content)
}
