package jobs

import (
	"context"
	"time"

	"github.com/lp452254117/alpha-predator/internal/datasource"
	"github.com/lp452254117/alpha-predator/pkg/logger"
)

const warmupLookbackDays = 120

// CacheWarmupJob prefetches daily bars for a watchlist before the open,
// so the first diagnosis requests of the day hit the cache.
type CacheWarmupJob struct {
	source *datasource.Source
	codes  []string
	logger *logger.Logger
}

// NewCacheWarmupJob creates the cache warmup job
func NewCacheWarmupJob(source *datasource.Source, codes []string, log *logger.Logger) *CacheWarmupJob {
	return &CacheWarmupJob{
		source: source,
		codes:  codes,
		logger: log,
	}
}

// Name returns the job name
func (j *CacheWarmupJob) Name() string {
	return "cache_warmup"
}

// Schedule runs weekdays at 09:00:00 exchange time
func (j *CacheWarmupJob) Schedule() string {
	return "0 0 9 * * 1-5"
}

// Run prefetches bars for every watchlist code. Individual failures are
// logged and skipped; the cache is an optimization, not a requirement.
func (j *CacheWarmupJob) Run(ctx context.Context) error {
	end := time.Now()
	start := end.AddDate(0, 0, -warmupLookbackDays)

	warmed := 0
	for _, code := range j.codes {
		_, err := j.source.DailyBars(ctx, code, start.Format("20060102"), end.Format("20060102"))
		if err != nil {
			j.logger.WithError(err).WithField("code", code).Warn("Cache warmup fetch failed")
			continue
		}
		warmed++
	}

	j.logger.WithFields(map[string]interface{}{
		"total":  len(j.codes),
		"warmed": warmed,
	}).Info("Cache warmup finished")

	return nil
}
