package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

// pipelineCmd represents the pipeline command
var pipelineCmd = &cobra.Command{
	Use:   "pipeline",
	Short: "执行晨间研报流水线",
	Long: `执行三段式晨间研报流水线: 数据采集 → 预处理报告 → 集合竞价增量更新.

09:29:30 截止时间之后触发时跳过增量阶段, LLM 失败时自动降级为规则引擎快报.

Example:
  go run ./cmd/predator pipeline
  go run ./cmd/predator pipeline --date 20240102`,
	RunE: runPipeline,
}

var pipelineDate string

func init() {
	rootCmd.AddCommand(pipelineCmd)

	pipelineCmd.Flags().StringVar(&pipelineDate, "date", "", "交易日 YYYYMMDD, 按需生成单段研报 (默认执行全流水线)")
}

func runPipeline(cmd *cobra.Command, args []string) error {
	application, err := newApp()
	if err != nil {
		return err
	}
	defer application.close()

	ctx := context.Background()

	// --date runs the single-shot on-demand path: no cutoff, no fallback
	if pipelineDate != "" {
		result, err := application.engine.GenerateOnDemand(ctx, pipelineDate)
		if err != nil {
			return fmt.Errorf("generate report: %w", err)
		}
		printReport(result.Title, result.Content)
		return nil
	}

	result := application.engine.RunMorningPipeline(ctx)
	printReport(result.Title, result.Content)

	if result.IsFallback {
		fmt.Println("\n⚠️ 本次运行降级为规则引擎快报")
	}
	return nil
}

func printReport(title, content string) {
	fmt.Println("=" + title)
	fmt.Println()
	fmt.Println(content)
}
