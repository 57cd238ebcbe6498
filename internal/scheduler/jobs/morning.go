// Package jobs defines the scheduled jobs.
package jobs

import (
	"context"

	"github.com/lp452254117/alpha-predator/internal/predator"
	"github.com/lp452254117/alpha-predator/pkg/logger"
)

// MorningPipelineJob runs the staged morning report pipeline on trading
// days, before the continuous session opens.
type MorningPipelineJob struct {
	engine *predator.Engine
	logger *logger.Logger
}

// NewMorningPipelineJob creates the morning pipeline job
func NewMorningPipelineJob(engine *predator.Engine, log *logger.Logger) *MorningPipelineJob {
	return &MorningPipelineJob{
		engine: engine,
		logger: log,
	}
}

// Name returns the job name
func (j *MorningPipelineJob) Name() string {
	return "morning_pipeline"
}

// Schedule runs weekdays at 09:15:00 exchange time, when the auction
// data the incremental stage wants starts to be meaningful.
func (j *MorningPipelineJob) Schedule() string {
	return "0 15 9 * * 1-5"
}

// Run executes the pipeline. The pipeline itself never fails: narrative
// errors degrade to the rule-based fallback report, so the job only
// reports which stage the run ended in.
func (j *MorningPipelineJob) Run(ctx context.Context) error {
	result := j.engine.RunMorningPipeline(ctx)

	j.logger.WithFields(map[string]interface{}{
		"trade_date":  result.TradeDate,
		"stage":       result.Stage,
		"is_fallback": result.IsFallback,
	}).Info("Morning pipeline finished")

	return nil
}
