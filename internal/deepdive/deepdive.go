// Package deepdive implements single-instrument diagnostics: a full
// narrative "check-up" report and a fast technicals-only scan.
package deepdive

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/lp452254117/alpha-predator/internal/contracts"
	"github.com/lp452254117/alpha-predator/internal/datasource"
	"github.com/lp452254117/alpha-predator/internal/indicator"
	"github.com/lp452254117/alpha-predator/internal/signal"
	"github.com/lp452254117/alpha-predator/pkg/config"
	"github.com/lp452254117/alpha-predator/pkg/logger"
)

const (
	diagnoseLookbackDays = 120
	scanLookbackDays     = 60

	unknownName = "未知"
)

// DiagnosticReport is the result of a full instrument check-up
type DiagnosticReport struct {
	Code        string                    `json:"code"`
	Name        string                    `json:"name"`
	Industry    string                    `json:"industry"`
	Content     string                    `json:"content"`
	Technical   indicator.Summary         `json:"technical"`
	Signal      contracts.CompositeSignal `json:"signal"`
	GeneratedAt time.Time                 `json:"generated_at"`
}

// ScanResult is the technicals-only output of QuickScan
type ScanResult struct {
	Code      string                    `json:"code"`
	Name      string                    `json:"name"`
	Industry  string                    `json:"industry"`
	Technical indicator.Summary         `json:"technical"`
	Signal    contracts.CompositeSignal `json:"signal"`
}

// Engine runs instrument diagnostics
type Engine struct {
	source   *datasource.Source
	chat     contracts.ChatClient
	detector *signal.Detector
	logger   *logger.Logger

	generationTimeout time.Duration
	now               func() time.Time
}

// New creates a deep-dive engine
func New(source *datasource.Source, chat contracts.ChatClient, cfg config.PipelineConfig, log *logger.Logger) *Engine {
	return &Engine{
		source:            source,
		chat:              chat,
		detector:          signal.NewDetector(),
		logger:            log,
		generationTimeout: cfg.GenerationTimeout,
		now:               time.Now,
	}
}

// Diagnose runs the full check-up: metadata, technicals, composite signal
// and a narrative report. Missing metadata or bars degrade the inputs;
// only narrative failure errors out.
func (e *Engine) Diagnose(ctx context.Context, code string) (DiagnosticReport, error) {
	code = datasource.NormalizeCode(code)
	e.logger.WithField("code", code).Info("Running deep dive")

	info := e.source.InstrumentInfo(ctx, code)
	if info.IsEmpty() {
		info = contracts.InstrumentInfo{Code: code, Name: unknownName, Industry: unknownName}
	}

	summary, sig, ok := e.technicals(ctx, code, diagnoseLookbackDays)

	technicalBlock := "暂无技术面数据"
	signalBlock := "暂无信号数据"
	if ok {
		technicalBlock = formatTechnical(summary)
		signalBlock = formatSignal(sig)
	}

	prompt := renderDeepDivePrompt(map[string]string{
		"code":           code,
		"name":           info.Name,
		"industry":       info.Industry,
		"technical_data": technicalBlock,
		"capital_data":   signalBlock,
		"events_data":    "（事件数据需要接入公告 API）",
	})

	bounded, cancel := context.WithTimeout(ctx, e.generationTimeout)
	defer cancel()

	content, err := e.chat.Chat(bounded, quantAnalystRole, []contracts.Message{
		{Role: "user", Content: prompt},
	})
	if err != nil {
		return DiagnosticReport{}, fmt.Errorf("deep dive %s: %w", code, err)
	}

	return DiagnosticReport{
		Code:        code,
		Name:        info.Name,
		Industry:    info.Industry,
		Content:     content,
		Technical:   summary,
		Signal:      sig,
		GeneratedAt: e.now(),
	}, nil
}

// QuickScan computes technicals and the composite signal without any
// narrative call
func (e *Engine) QuickScan(ctx context.Context, code string) (ScanResult, error) {
	code = datasource.NormalizeCode(code)

	info := e.source.InstrumentInfo(ctx, code)
	name, industry := info.Name, info.Industry
	if info.IsEmpty() {
		name, industry = unknownName, unknownName
	}

	summary, sig, ok := e.technicals(ctx, code, scanLookbackDays)
	if !ok {
		return ScanResult{}, fmt.Errorf("quick scan %s: no daily bars available", code)
	}

	return ScanResult{
		Code:      code,
		Name:      name,
		Industry:  industry,
		Technical: summary,
		Signal:    sig,
	}, nil
}

func (e *Engine) technicals(ctx context.Context, code string, lookbackDays int) (indicator.Summary, contracts.CompositeSignal, bool) {
	end := e.now()
	start := end.AddDate(0, 0, -lookbackDays)

	series, err := e.source.DailyBars(ctx, code,
		start.Format("20060102"), end.Format("20060102"))
	if err != nil {
		e.logger.WithError(err).WithField("code", code).Warn("Daily bars unavailable")
		return indicator.Summary{}, contracts.CompositeSignal{}, false
	}

	summary := indicator.New(series).Summarize()
	return summary, e.detector.DetectFromSummary(summary), true
}

func formatTechnical(s indicator.Summary) string {
	var b strings.Builder

	fmt.Fprintf(&b, "### MACD 状态\n- DIF: %.4f\n- DEA: %.4f\n- 柱状图: %.4f\n- 金叉: %s\n- 零轴上方: %s\n\n",
		s.MACD.DIF, s.MACD.DEA, s.MACD.Histogram,
		yesNo(s.MACD.GoldenCross), yesNo(s.MACD.AboveZero))

	fmt.Fprintf(&b, "### KDJ 状态\n- K: %.2f\n- D: %.2f\n- J: %.2f\n- 金叉: %s\n- 超买: %s\n- 超卖: %s\n\n",
		s.KDJ.K, s.KDJ.D, s.KDJ.J,
		yesNo(s.KDJ.GoldenCross), yesNo(s.KDJ.Overbought), yesNo(s.KDJ.Oversold))

	fmt.Fprintf(&b, "### 均线状态\n- 多头排列: %s\n- 空头排列: %s\n\n",
		yesNo(s.MAAlignment.Bullish), yesNo(s.MAAlignment.Bearish))

	fmt.Fprintf(&b, "### 关键价位\n- 支撑位: %v\n- 阻力位: %v\n",
		s.Levels.Supports, s.Levels.Resistances)

	return b.String()
}

func formatSignal(sig contracts.CompositeSignal) string {
	var b strings.Builder

	fmt.Fprintf(&b, "### 综合信号\n- 方向: %s\n- 强度: %s\n- 评分: %.2f\n\n### 信号理由\n",
		strings.ToUpper(sig.Direction), sig.Strength, sig.Score)
	for _, r := range sig.Reasons {
		fmt.Fprintf(&b, "- %s\n", r)
	}
	return b.String()
}

func yesNo(v bool) string {
	if v {
		return "是"
	}
	return "否"
}
