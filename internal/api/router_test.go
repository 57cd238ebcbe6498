package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/lp452254117/alpha-predator/internal/api/handlers"
	"github.com/lp452254117/alpha-predator/internal/contracts"
	"github.com/lp452254117/alpha-predator/internal/datasource"
	"github.com/lp452254117/alpha-predator/internal/deepdive"
	"github.com/lp452254117/alpha-predator/internal/predator"
	"github.com/lp452254117/alpha-predator/pkg/config"
	"github.com/lp452254117/alpha-predator/pkg/logger"
)

type nilProvider struct{}

func (nilProvider) Name() string { return "nil" }

func (nilProvider) FetchDailyBars(ctx context.Context, code, start, end string) (*contracts.Series, error) {
	return contracts.NewSeries(nil)
}

func (nilProvider) FetchRealtimeQuote(ctx context.Context, code string) (contracts.Quote, error) {
	return contracts.Quote{}, nil
}

func (nilProvider) FetchInstrumentInfo(ctx context.Context, code string) (contracts.InstrumentInfo, error) {
	return contracts.InstrumentInfo{}, nil
}

func (nilProvider) FetchIndexSnapshot(ctx context.Context) ([]contracts.IndexQuote, error) {
	return nil, nil
}

func (nilProvider) FetchCapitalFlow(ctx context.Context, tradeDate string) (contracts.CapitalFlow, error) {
	return contracts.CapitalFlow{}, nil
}

type nopChat struct{}

func (nopChat) Chat(ctx context.Context, system string, messages []contracts.Message) (string, error) {
	return "ok", nil
}

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	source := datasource.NewWithProvider(nilProvider{}, nil, logger.Nop())
	pipelineCfg := config.PipelineConfig{
		CutoffTime:         "09:29:30",
		IncrementalTimeout: time.Second,
		GenerationTimeout:  time.Second,
	}

	engine, err := predator.New(source, nopChat{}, nil, pipelineCfg, logger.Nop())
	if err != nil {
		t.Fatal(err)
	}
	dd := deepdive.New(source, nopChat{}, pipelineCfg, logger.Nop())

	return NewRouter(
		handlers.NewReportHandler(engine, nil, logger.Nop()),
		handlers.NewAnalysisHandler(engine, logger.Nop()),
		handlers.NewStockHandler(dd, source, logger.Nop()),
		logger.Nop(),
	)
}

func TestHealthCheck(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest("GET", "/health", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var body map[string]interface{}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if body["status"] != "ok" {
		t.Errorf("status field = %v", body["status"])
	}
}

func TestRouter_MethodConstraints(t *testing.T) {
	router := newTestRouter(t)

	tests := []struct {
		method string
		path   string
		want   int
	}{
		{"GET", "/api/pipeline/run", http.StatusMethodNotAllowed},
		{"POST", "/api/stock/quickscan", http.StatusMethodNotAllowed},
		{"GET", "/api/unknown", http.StatusNotFound},
	}

	for _, tt := range tests {
		req := httptest.NewRequest(tt.method, tt.path, nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Code != tt.want {
			t.Errorf("%s %s: status = %d, want %d", tt.method, tt.path, rec.Code, tt.want)
		}
	}
}
