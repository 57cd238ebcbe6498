// Package report persists analysis reports produced by the pipeline.
package report

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lp452254117/alpha-predator/internal/contracts"
)

// ErrNotFound is returned when no report matches the query.
var ErrNotFound = errors.New("report not found")

// Repository handles analysis report persistence.
// One row per (trade_date, stage); reruns overwrite the previous report.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a new report repository
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Save upserts an analysis report keyed by (trade_date, stage)
func (r *Repository) Save(ctx context.Context, report contracts.AnalysisReport) error {
	query := `
		INSERT INTO reports.analysis_reports (
			trade_date, stage, title, content, is_fallback, generated_at
		) VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (trade_date, stage) DO UPDATE SET
			title = EXCLUDED.title,
			content = EXCLUDED.content,
			is_fallback = EXCLUDED.is_fallback,
			generated_at = EXCLUDED.generated_at,
			updated_at = NOW()
	`

	_, err := r.pool.Exec(ctx, query,
		report.TradeDate,
		report.Stage,
		report.Title,
		report.Content,
		report.IsFallback,
		report.GeneratedAt,
	)

	if err != nil {
		return fmt.Errorf("save analysis report: %w", err)
	}

	return nil
}

// GetByDate retrieves a report for a trade date and stage
func (r *Repository) GetByDate(ctx context.Context, tradeDate, stage string) (contracts.AnalysisReport, error) {
	query := `
		SELECT trade_date, stage, title, content, is_fallback, generated_at
		FROM reports.analysis_reports
		WHERE trade_date = $1 AND stage = $2
	`

	var report contracts.AnalysisReport

	err := r.pool.QueryRow(ctx, query, tradeDate, stage).Scan(
		&report.TradeDate,
		&report.Stage,
		&report.Title,
		&report.Content,
		&report.IsFallback,
		&report.GeneratedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return contracts.AnalysisReport{}, ErrNotFound
	}
	if err != nil {
		return contracts.AnalysisReport{}, fmt.Errorf("get analysis report: %w", err)
	}

	return report, nil
}

// GetLatest retrieves the most recently generated report
func (r *Repository) GetLatest(ctx context.Context) (contracts.AnalysisReport, error) {
	query := `
		SELECT trade_date, stage, title, content, is_fallback, generated_at
		FROM reports.analysis_reports
		ORDER BY generated_at DESC
		LIMIT 1
	`

	var report contracts.AnalysisReport

	err := r.pool.QueryRow(ctx, query).Scan(
		&report.TradeDate,
		&report.Stage,
		&report.Title,
		&report.Content,
		&report.IsFallback,
		&report.GeneratedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return contracts.AnalysisReport{}, ErrNotFound
	}
	if err != nil {
		return contracts.AnalysisReport{}, fmt.Errorf("get latest analysis report: %w", err)
	}

	return report, nil
}

// ListByDate retrieves all reports for a trade date, newest stage first
func (r *Repository) ListByDate(ctx context.Context, tradeDate string) ([]contracts.AnalysisReport, error) {
	query := `
		SELECT trade_date, stage, title, content, is_fallback, generated_at
		FROM reports.analysis_reports
		WHERE trade_date = $1
		ORDER BY generated_at DESC
	`

	rows, err := r.pool.Query(ctx, query, tradeDate)
	if err != nil {
		return nil, fmt.Errorf("list analysis reports: %w", err)
	}
	defer rows.Close()

	var reports []contracts.AnalysisReport
	for rows.Next() {
		var report contracts.AnalysisReport
		if err := rows.Scan(
			&report.TradeDate,
			&report.Stage,
			&report.Title,
			&report.Content,
			&report.IsFallback,
			&report.GeneratedAt,
		); err != nil {
			return nil, fmt.Errorf("scan analysis report: %w", err)
		}
		reports = append(reports, report)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list analysis reports: %w", err)
	}

	return reports, nil
}
