package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/lp452254117/alpha-predator/internal/api/handlers"
	"github.com/lp452254117/alpha-predator/pkg/logger"
)

// NewRouter creates and configures the HTTP router.
// All routes are registered in this function and nowhere else.
func NewRouter(
	reportHandler *handlers.ReportHandler,
	analysisHandler *handlers.AnalysisHandler,
	stockHandler *handlers.StockHandler,
	log *logger.Logger,
) http.Handler {
	r := mux.NewRouter()

	// Health check
	r.HandleFunc("/health", healthCheckHandler).Methods("GET")

	api := r.PathPrefix("/api").Subrouter()

	// Morning pipeline and reports
	api.HandleFunc("/pipeline/run", reportHandler.RunPipeline).Methods("POST")
	api.HandleFunc("/reports/generate", reportHandler.Generate).Methods("POST")
	api.HandleFunc("/reports/latest", reportHandler.GetLatest).Methods("GET")
	api.HandleFunc("/reports", reportHandler.ListByDate).Methods("GET")

	// Sector analysis flow
	api.HandleFunc("/analysis/sectors", analysisHandler.AnalyzeSectors).Methods("POST")
	api.HandleFunc("/analysis/recommend", analysisHandler.RecommendStocks).Methods("POST")

	// Per-stock endpoints
	api.HandleFunc("/stock/diagnose", stockHandler.Diagnose).Methods("POST")
	api.HandleFunc("/stock/quickscan", stockHandler.QuickScan).Methods("GET")

	// Market data
	api.HandleFunc("/market/realtime", stockHandler.Realtime).Methods("GET")
	api.HandleFunc("/market/overview", stockHandler.Overview).Methods("GET")

	// Apply middleware
	r.Use(loggingMiddleware(log))
	r.Use(recoveryMiddleware(log))

	return r
}

// healthCheckHandler returns server health status
func healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"status":  "ok",
		"service": "alpha-predator-api",
	})
}

// loggingMiddleware logs HTTP requests
func loggingMiddleware(log *logger.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			next.ServeHTTP(w, r)

			log.WithFields(map[string]interface{}{
				"method":   r.Method,
				"path":     r.URL.Path,
				"duration": time.Since(start),
			}).Debug("HTTP request")
		})
	}
}

// recoveryMiddleware recovers from panics
func recoveryMiddleware(log *logger.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					log.WithFields(map[string]interface{}{
						"error": err,
						"path":  r.URL.Path,
					}).Error("Panic recovered")

					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					json.NewEncoder(w).Encode(map[string]string{
						"error": "Internal server error",
					})
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}
