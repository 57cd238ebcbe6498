package commands

import (
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/lp452254117/alpha-predator/internal/scheduler"
	"github.com/lp452254117/alpha-predator/internal/scheduler/jobs"
)

// scheduleCmd represents the schedule command
var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "以守护进程方式运行定时任务",
	Long: `启动定时调度器:

  cache_warmup      工作日 09:00 预热自选股日线缓存
  morning_pipeline  工作日 09:15 执行晨间研报流水线

Example:
  go run ./cmd/predator schedule
  go run ./cmd/predator schedule --watchlist 000001,600519`,
	RunE: runSchedule,
}

var scheduleWatchlist string

func init() {
	rootCmd.AddCommand(scheduleCmd)

	scheduleCmd.Flags().StringVar(&scheduleWatchlist, "watchlist", "", "逗号分隔的自选股代码, 用于缓存预热")
}

func runSchedule(cmd *cobra.Command, args []string) error {
	application, err := newApp()
	if err != nil {
		return err
	}
	defer application.close()

	log := application.log

	// Market jobs run on exchange local time
	loc, err := time.LoadLocation("Asia/Shanghai")
	if err != nil {
		log.WithError(err).Warn("Asia/Shanghai tzdata unavailable, using fixed UTC+8")
		loc = time.FixedZone("CST", 8*3600)
	}

	sched := scheduler.New(log, loc)

	if err := sched.AddJob(jobs.NewMorningPipelineJob(application.engine, log)); err != nil {
		return fmt.Errorf("add morning pipeline job: %w", err)
	}

	if scheduleWatchlist != "" {
		codes := strings.Split(scheduleWatchlist, ",")
		for i := range codes {
			codes[i] = strings.TrimSpace(codes[i])
		}
		if err := sched.AddJob(jobs.NewCacheWarmupJob(application.source, codes, log)); err != nil {
			return fmt.Errorf("add cache warmup job: %w", err)
		}
	}

	sched.Start()

	fmt.Println("✅ Scheduler running, jobs:", strings.Join(sched.GetAllJobs(), ", "))
	fmt.Println("Press Ctrl+C to stop")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	sched.Stop()
	return nil
}
