package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/lp452254117/alpha-predator/internal/contracts"
	"github.com/lp452254117/alpha-predator/internal/predator"
	"github.com/lp452254117/alpha-predator/internal/report"
	"github.com/lp452254117/alpha-predator/pkg/logger"
)

// ReportStore is the subset of the report repository the API reads from.
type ReportStore interface {
	GetLatest(ctx context.Context) (contracts.AnalysisReport, error)
	ListByDate(ctx context.Context, tradeDate string) ([]contracts.AnalysisReport, error)
}

// ReportHandler handles report generation and retrieval endpoints.
// The store is nil when no database is configured; retrieval endpoints
// then return 503 while generation still works.
type ReportHandler struct {
	engine *predator.Engine
	store  ReportStore
	logger *logger.Logger
}

// NewReportHandler creates a new report handler
func NewReportHandler(engine *predator.Engine, store ReportStore, log *logger.Logger) *ReportHandler {
	return &ReportHandler{
		engine: engine,
		store:  store,
		logger: log,
	}
}

// RunPipeline triggers the full morning pipeline and returns the report.
// POST /api/pipeline/run
func (h *ReportHandler) RunPipeline(w http.ResponseWriter, r *http.Request) {
	result := h.engine.RunMorningPipeline(r.Context())

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    result,
	})
}

// generateRequest is the body of an on-demand generation request
type generateRequest struct {
	TradeDate string `json:"trade_date"` // YYYYMMDD, optional
}

// Generate produces a single on-demand report without fallback masking.
// POST /api/reports/generate
func (h *ReportHandler) Generate(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if r.Body != nil {
		// An empty body is fine; only malformed JSON is rejected.
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
			respondError(w, http.StatusBadRequest, "Invalid request body")
			return
		}
	}

	result, err := h.engine.GenerateOnDemand(r.Context(), req.TradeDate)
	if err != nil {
		h.logger.WithError(err).Error("On-demand report generation failed")
		respondError(w, http.StatusBadGateway, "Report generation failed")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    result,
	})
}

// GetLatest returns the most recently persisted report.
// GET /api/reports/latest
func (h *ReportHandler) GetLatest(w http.ResponseWriter, r *http.Request) {
	if h.store == nil {
		respondError(w, http.StatusServiceUnavailable, "Report persistence is not configured")
		return
	}

	result, err := h.store.GetLatest(r.Context())
	if errors.Is(err, report.ErrNotFound) {
		respondError(w, http.StatusNotFound, "No reports generated yet")
		return
	}
	if err != nil {
		h.logger.WithError(err).Error("Failed to get latest report")
		respondError(w, http.StatusInternalServerError, "Failed to get latest report")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    result,
	})
}

// ListByDate returns all reports for a trade date.
// GET /api/reports?date=YYYYMMDD
func (h *ReportHandler) ListByDate(w http.ResponseWriter, r *http.Request) {
	if h.store == nil {
		respondError(w, http.StatusServiceUnavailable, "Report persistence is not configured")
		return
	}

	tradeDate := r.URL.Query().Get("date")
	if tradeDate == "" {
		respondError(w, http.StatusBadRequest, "Query parameter 'date' is required")
		return
	}

	results, err := h.store.ListByDate(r.Context(), tradeDate)
	if err != nil {
		h.logger.WithError(err).Error("Failed to list reports")
		respondError(w, http.StatusInternalServerError, "Failed to list reports")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data": map[string]interface{}{
			"date":  tradeDate,
			"count": len(results),
			"items": results,
		},
	})
}
