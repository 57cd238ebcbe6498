package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/lp452254117/alpha-predator/internal/datasource"
	"github.com/lp452254117/alpha-predator/internal/deepdive"
	"github.com/lp452254117/alpha-predator/pkg/logger"
)

// StockHandler handles per-stock diagnosis and market data endpoints
type StockHandler struct {
	deepdive *deepdive.Engine
	source   *datasource.Source
	logger   *logger.Logger
}

// NewStockHandler creates a new stock handler
func NewStockHandler(dd *deepdive.Engine, source *datasource.Source, log *logger.Logger) *StockHandler {
	return &StockHandler{
		deepdive: dd,
		source:   source,
		logger:   log,
	}
}

// diagnoseRequest is the body of a deep-dive diagnosis request
type diagnoseRequest struct {
	Code string `json:"code"`
}

// Diagnose produces a narrative deep-dive report for one stock.
// POST /api/stock/diagnose
func (h *StockHandler) Diagnose(w http.ResponseWriter, r *http.Request) {
	var req diagnoseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Code == "" {
		respondError(w, http.StatusBadRequest, "Stock code is required")
		return
	}

	result, err := h.deepdive.Diagnose(r.Context(), req.Code)
	if err != nil {
		h.logger.WithError(err).WithField("code", req.Code).Error("Diagnosis failed")
		respondError(w, http.StatusBadGateway, "Diagnosis failed")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    result,
	})
}

// QuickScan returns indicator and signal data for one stock without narrative.
// GET /api/stock/quickscan?code=000001
func (h *StockHandler) QuickScan(w http.ResponseWriter, r *http.Request) {
	code := r.URL.Query().Get("code")
	if code == "" {
		respondError(w, http.StatusBadRequest, "Query parameter 'code' is required")
		return
	}

	result, err := h.deepdive.QuickScan(r.Context(), code)
	if err != nil {
		h.logger.WithError(err).WithField("code", code).Error("Quick scan failed")
		respondError(w, http.StatusBadGateway, "Quick scan failed")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    result,
	})
}

// Realtime returns the current quote for one stock.
// GET /api/market/realtime?code=000001
func (h *StockHandler) Realtime(w http.ResponseWriter, r *http.Request) {
	code := r.URL.Query().Get("code")
	if code == "" {
		respondError(w, http.StatusBadRequest, "Query parameter 'code' is required")
		return
	}

	quote := h.source.RealtimeQuote(r.Context(), code)
	if quote.IsEmpty() {
		respondError(w, http.StatusNotFound, "No quote available")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    quote,
	})
}

// Overview returns the market index snapshot and northbound flow.
// GET /api/market/overview
func (h *StockHandler) Overview(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data": map[string]interface{}{
			"provider":   h.source.ProviderName(),
			"trade_date": h.source.Today(),
			"indices":    h.source.IndexSnapshot(ctx),
			"north_flow": h.source.NorthFlow(ctx, h.source.Today()),
		},
	})
}
