package contracts

import "time"

// Report stages. Exactly one stage creates each report.
const (
	StagePre         = "pre"
	StageIncremental = "incremental"
	StageFull        = "full"
	StageFallback    = "fallback"
)

// AnalysisReport is the final report object produced by the pipeline.
// It is immutable once created; consumers read fields but never mutate them.
type AnalysisReport struct {
	Title       string    `json:"title"`
	Content     string    `json:"content"`
	TradeDate   string    `json:"trade_date"` // YYYYMMDD
	GeneratedAt time.Time `json:"generated_at"`
	Stage       string    `json:"stage"`
	IsFallback  bool      `json:"is_fallback"`
}

// SectorPick is one sector in a structured sector analysis result
type SectorPick struct {
	Name      string `json:"name"`
	Reason    string `json:"reason"`
	Strength  string `json:"strength"`
	RiskLevel string `json:"risk_level"`
}

// SectorAnalysis is the structured result of the sector analysis flow.
// ParseFailed marks results where the narrative generator did not return
// a usable payload; the raw content is preserved for inspection.
type SectorAnalysis struct {
	TradeDate     string       `json:"trade_date"`
	MarketSummary string       `json:"market_summary"`
	Sectors       []SectorPick `json:"sectors"`
	GeneratedAt   time.Time    `json:"generated_at"`
	ParseFailed   bool         `json:"parse_failed,omitempty"`
	RawContent    string       `json:"raw_content,omitempty"`
}

// StockPick is one recommendation in a structured stock recommendation result
type StockPick struct {
	Code      string `json:"code"`
	Name      string `json:"name"`
	Reason    string `json:"reason"`
	EntryHint string `json:"entry_hint"`
	RiskHint  string `json:"risk_hint"`
}

// StockRecommendation is the structured result of the recommendation flow
type StockRecommendation struct {
	TradeDate       string      `json:"trade_date"`
	SelectedSectors []string    `json:"selected_sectors"`
	Summary         string      `json:"summary"`
	Recommendations []StockPick `json:"recommendations"`
	GeneratedAt     time.Time   `json:"generated_at"`
	ParseFailed     bool        `json:"parse_failed,omitempty"`
	RawContent      string      `json:"raw_content,omitempty"`
}
