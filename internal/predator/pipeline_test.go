package predator

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/lp452254117/alpha-predator/internal/contracts"
	"github.com/lp452254117/alpha-predator/internal/datasource"
	"github.com/lp452254117/alpha-predator/pkg/config"
	"github.com/lp452254117/alpha-predator/pkg/logger"
)

// stubChat scripts one reply per call. A positive delay simulates a
// hanging generator that only stops when the context expires.
type stubChat struct {
	mu      sync.Mutex
	replies []string
	delays  []time.Duration
	err     error
	calls   int
}

func (s *stubChat) Chat(ctx context.Context, system string, messages []contracts.Message) (string, error) {
	s.mu.Lock()
	call := s.calls
	s.calls++
	s.mu.Unlock()

	if s.err != nil {
		return "", s.err
	}

	if call < len(s.delays) && s.delays[call] > 0 {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(s.delays[call]):
		}
	}

	if call < len(s.replies) {
		return s.replies[call], nil
	}
	return "generated analysis", nil
}

func (s *stubChat) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

type fakeProvider struct{}

func (fakeProvider) Name() string { return "fake" }

func (fakeProvider) FetchDailyBars(ctx context.Context, code, start, end string) (*contracts.Series, error) {
	return nil, errors.New("not implemented")
}

func (fakeProvider) FetchRealtimeQuote(ctx context.Context, code string) (contracts.Quote, error) {
	return contracts.Quote{}, nil
}

func (fakeProvider) FetchInstrumentInfo(ctx context.Context, code string) (contracts.InstrumentInfo, error) {
	return contracts.InstrumentInfo{}, nil
}

func (fakeProvider) FetchIndexSnapshot(ctx context.Context) ([]contracts.IndexQuote, error) {
	return []contracts.IndexQuote{
		{Code: "000001.SH", Name: "上证指数", Price: 3250.12, ChangePct: 0.45, Amount: 350000},
	}, nil
}

func (fakeProvider) FetchCapitalFlow(ctx context.Context, tradeDate string) (contracts.CapitalFlow, error) {
	return contracts.CapitalFlow{}, errors.New("flow endpoint down")
}

func newTestEngine(t *testing.T, chat contracts.ChatClient, cfg config.PipelineConfig) *Engine {
	t.Helper()

	if cfg.CutoffTime == "" {
		cfg.CutoffTime = "09:29:30"
	}
	if cfg.IncrementalTimeout == 0 {
		cfg.IncrementalTimeout = time.Second
	}
	if cfg.GenerationTimeout == 0 {
		cfg.GenerationTimeout = time.Second
	}

	source := datasource.NewWithProvider(fakeProvider{}, nil, logger.Nop())
	engine, err := New(source, chat, nil, cfg, logger.Nop())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return engine
}

func fixedClock(hour, min, sec int) func() time.Time {
	return func() time.Time {
		return time.Date(2024, 1, 3, hour, min, sec, 0, time.Local)
	}
}

func TestCollectMarketData_PartialFailureLeavesSentinel(t *testing.T) {
	engine := newTestEngine(t, &stubChat{}, config.PipelineConfig{})

	snapshot := engine.CollectMarketData(context.Background(), "20240103")

	if snapshot.CapitalFlowBlock != contracts.NoData {
		t.Errorf("CapitalFlowBlock = %q, want the no-data sentinel", snapshot.CapitalFlowBlock)
	}
	if snapshot.IndexBlock == contracts.NoData {
		t.Error("IndexBlock should be populated from the provider")
	}
	if !strings.Contains(snapshot.IndexBlock, "上证指数") {
		t.Errorf("IndexBlock = %q", snapshot.IndexBlock)
	}
	if snapshot.TradeDate != "20240103" {
		t.Errorf("TradeDate = %s", snapshot.TradeDate)
	}
}

func TestRunMorningPipeline_FullPath(t *testing.T) {
	chat := &stubChat{replies: []string{"初步分析内容", "竞价修正内容"}}
	engine := newTestEngine(t, chat, config.PipelineConfig{})
	engine.now = fixedClock(9, 20, 0) // before cutoff

	report := engine.RunMorningPipeline(context.Background())

	if report.Stage != contracts.StageFull {
		t.Errorf("Stage = %s, want full", report.Stage)
	}
	if report.IsFallback {
		t.Error("IsFallback = true on the full path")
	}
	if !strings.Contains(report.Content, "初步分析内容") {
		t.Error("full report should embed the preliminary content")
	}
	if !strings.Contains(report.Content, "竞价修正内容") {
		t.Error("full report should embed the incremental content")
	}
	if chat.callCount() != 2 {
		t.Errorf("chat calls = %d, want 2", chat.callCount())
	}
}

func TestRunMorningPipeline_CutoffSkipsIncremental(t *testing.T) {
	chat := &stubChat{}
	engine := newTestEngine(t, chat, config.PipelineConfig{})
	engine.now = fixedClock(9, 29, 30) // exactly at cutoff counts as past

	report := engine.RunMorningPipeline(context.Background())

	if report.Stage != contracts.StageFallback {
		t.Errorf("Stage = %s, want fallback", report.Stage)
	}
	if !report.IsFallback {
		t.Error("IsFallback = false past cutoff")
	}
	// Preliminary ran, incremental never attempted
	if chat.callCount() != 1 {
		t.Errorf("chat calls = %d, want 1", chat.callCount())
	}
}

func TestRunMorningPipeline_IncrementalTimeoutFallsBack(t *testing.T) {
	chat := &stubChat{delays: []time.Duration{0, time.Second}}
	engine := newTestEngine(t, chat, config.PipelineConfig{
		IncrementalTimeout: 30 * time.Millisecond,
	})
	engine.now = fixedClock(9, 20, 0)

	start := time.Now()
	report := engine.RunMorningPipeline(context.Background())

	if report.Stage != contracts.StageFallback {
		t.Errorf("Stage = %s, want fallback after timeout", report.Stage)
	}
	if !report.IsFallback {
		t.Error("IsFallback = false after timeout")
	}
	if chat.callCount() != 2 {
		t.Errorf("chat calls = %d, want 2 (no retry)", chat.callCount())
	}
	if elapsed := time.Since(start); elapsed > 500*time.Millisecond {
		t.Errorf("pipeline took %v, timeout not bounding the wait", elapsed)
	}
}

func TestRunMorningPipeline_PreFailureFallsBack(t *testing.T) {
	chat := &stubChat{err: errors.New("api down")}
	engine := newTestEngine(t, chat, config.PipelineConfig{})
	engine.now = fixedClock(9, 10, 0)

	report := engine.RunMorningPipeline(context.Background())

	if report.Stage != contracts.StageFallback {
		t.Errorf("Stage = %s, want fallback", report.Stage)
	}
}

func TestGenerateFallbackReport_AlwaysSucceeds(t *testing.T) {
	engine := newTestEngine(t, &stubChat{err: errors.New("everything is down")}, config.PipelineConfig{})
	engine.now = fixedClock(9, 35, 0)

	// Even a zero-value snapshot produces a complete report
	report := engine.GenerateFallbackReport(contracts.MarketSnapshot{})

	if !report.IsFallback || report.Stage != contracts.StageFallback {
		t.Errorf("stage/flag = %s/%v", report.Stage, report.IsFallback)
	}
	if report.Content == "" || report.Title == "" {
		t.Error("fallback report must carry content and title")
	}
	if report.TradeDate == "" {
		t.Error("fallback report must default the trade date")
	}
	if strings.Contains(report.Content, "{") {
		t.Error("template placeholders left unfilled")
	}
}

func TestGenerateIncrementalUpdate_RequiresPreReport(t *testing.T) {
	engine := newTestEngine(t, &stubChat{}, config.PipelineConfig{})

	_, err := engine.GenerateIncrementalUpdate(context.Background(), &Run{})
	if err == nil {
		t.Fatal("incremental without a preliminary report should fail")
	}
}

func TestGenerateOnDemand_NoFallback(t *testing.T) {
	chat := &stubChat{err: errors.New("api down")}
	engine := newTestEngine(t, chat, config.PipelineConfig{})

	if _, err := engine.GenerateOnDemand(context.Background(), "20240103"); err == nil {
		t.Fatal("on-demand path should surface generation errors, not fall back")
	}
}
