package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/lp452254117/alpha-predator/internal/api"
	"github.com/lp452254117/alpha-predator/internal/api/handlers"
)

// apiCmd represents the api command
var apiCmd = &cobra.Command{
	Use:   "api",
	Short: "启动 REST API 服务",
	Long: `启动 REST API 服务.

Endpoints:
  GET  /health                  - Health check
  POST /api/pipeline/run        - 执行晨间流水线
  POST /api/reports/generate    - 按需生成研报
  GET  /api/reports/latest      - 最新研报
  GET  /api/reports?date=       - 按日期查询研报
  POST /api/analysis/sectors    - 板块分析
  POST /api/analysis/recommend  - 个股推荐
  POST /api/stock/diagnose      - 个股深度诊断
  GET  /api/stock/quickscan     - 个股快速扫描
  GET  /api/market/realtime     - 实时行情
  GET  /api/market/overview     - 市场概览

Example:
  go run ./cmd/predator api
  go run ./cmd/predator api --port 8080`,
	RunE: runAPIServer,
}

var apiPort string

func init() {
	rootCmd.AddCommand(apiCmd)

	apiCmd.Flags().StringVar(&apiPort, "port", "", "API 服务端口 (默认取 PORT 环境变量)")
}

func runAPIServer(cmd *cobra.Command, args []string) error {
	application, err := newApp()
	if err != nil {
		return err
	}
	defer application.close()

	if apiPort != "" {
		application.cfg.Port = apiPort
	}

	log := application.log

	var store handlers.ReportStore
	if application.store != nil {
		store = application.store
	}

	router := api.NewRouter(
		handlers.NewReportHandler(application.engine, store, log),
		handlers.NewAnalysisHandler(application.engine, log),
		handlers.NewStockHandler(application.deepdive, application.source, log),
		log,
	)

	server := api.New(application.cfg, log, router)

	go func() {
		if err := server.Start(); err != nil {
			log.WithError(err).Fatal("Failed to start server")
		}
	}()

	fmt.Printf("\n✅ Server running on http://localhost:%s\n", application.cfg.Port)
	fmt.Println("Press Ctrl+C to stop")

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	log.Info("Server stopped")
	return nil
}
