package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/lp452254117/alpha-predator/internal/predator"
	"github.com/lp452254117/alpha-predator/pkg/logger"
)

// AnalysisHandler handles the sector analysis and stock recommendation flow
type AnalysisHandler struct {
	engine *predator.Engine
	logger *logger.Logger
}

// NewAnalysisHandler creates a new analysis handler
func NewAnalysisHandler(engine *predator.Engine, log *logger.Logger) *AnalysisHandler {
	return &AnalysisHandler{
		engine: engine,
		logger: log,
	}
}

// AnalyzeSectors returns a structured sector-level market analysis.
// POST /api/analysis/sectors
func (h *AnalysisHandler) AnalyzeSectors(w http.ResponseWriter, r *http.Request) {
	result, err := h.engine.AnalyzeSectors(r.Context())
	if err != nil {
		h.logger.WithError(err).Error("Sector analysis failed")
		respondError(w, http.StatusBadGateway, "Sector analysis failed")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    result,
	})
}

// recommendRequest is the body of a stock recommendation request
type recommendRequest struct {
	Sectors        []string `json:"sectors"`
	RiskPreference string   `json:"risk_preference"` // aggressive, balanced, conservative
}

// RecommendStocks returns stock picks for the selected sectors.
// POST /api/analysis/recommend
func (h *AnalysisHandler) RecommendStocks(w http.ResponseWriter, r *http.Request) {
	var req recommendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if len(req.Sectors) == 0 {
		respondError(w, http.StatusBadRequest, "At least one sector is required")
		return
	}

	result, err := h.engine.RecommendStocks(r.Context(), req.Sectors, req.RiskPreference)
	if err != nil {
		h.logger.WithError(err).Error("Stock recommendation failed")
		respondError(w, http.StatusBadGateway, "Stock recommendation failed")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    result,
	})
}
