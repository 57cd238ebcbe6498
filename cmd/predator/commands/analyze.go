package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// analyzeCmd represents the analyze command
var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "板块分析与个股推荐",
	Long: `两步分析流程: 先输出板块级市场分析, 再对选定板块给出个股推荐.

Example:
  go run ./cmd/predator analyze
  go run ./cmd/predator analyze --sectors 银行,半导体 --risk conservative`,
	RunE: runAnalyze,
}

var (
	analyzeSectors string
	analyzeRisk    string
)

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().StringVar(&analyzeSectors, "sectors", "", "逗号分隔的板块列表; 为空时只做板块分析")
	analyzeCmd.Flags().StringVar(&analyzeRisk, "risk", "balanced", "风险偏好 (aggressive|balanced|conservative)")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	application, err := newApp()
	if err != nil {
		return err
	}
	defer application.close()

	ctx := context.Background()

	analysis, err := application.engine.AnalyzeSectors(ctx)
	if err != nil {
		return fmt.Errorf("analyze sectors: %w", err)
	}

	if analysis.ParseFailed {
		fmt.Println("⚠️ 分析结果解析失败, 原始输出:")
		fmt.Println(analysis.RawContent)
		return nil
	}

	fmt.Printf("=== 市场综述 (%s) ===\n%s\n\n", analysis.TradeDate, analysis.MarketSummary)
	for i, sector := range analysis.Sectors {
		fmt.Printf("%d. %s [%s/风险:%s]\n   %s\n", i+1, sector.Name, sector.Strength, sector.RiskLevel, sector.Reason)
	}

	if analyzeSectors == "" {
		return nil
	}

	sectors := strings.Split(analyzeSectors, ",")
	for i := range sectors {
		sectors[i] = strings.TrimSpace(sectors[i])
	}

	picks, err := application.engine.RecommendStocks(ctx, sectors, analyzeRisk)
	if err != nil {
		return fmt.Errorf("recommend stocks: %w", err)
	}

	if picks.ParseFailed {
		fmt.Println("⚠️ 推荐结果解析失败, 原始输出:")
		fmt.Println(picks.RawContent)
		return nil
	}

	fmt.Printf("\n=== 个股推荐 (%s) ===\n%s\n\n", strings.Join(picks.SelectedSectors, "/"), picks.Summary)
	for i, pick := range picks.Recommendations {
		fmt.Printf("%d. %s %s\n   理由: %s\n   买点: %s\n   风险: %s\n",
			i+1, pick.Code, pick.Name, pick.Reason, pick.EntryHint, pick.RiskHint)
	}

	return nil
}
