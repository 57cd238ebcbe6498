package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// diagnoseCmd represents the diagnose command
var diagnoseCmd = &cobra.Command{
	Use:   "diagnose <code>",
	Short: "个股深度诊断",
	Long: `对单只股票生成深度诊断研报: 技术指标、复合信号加 LLM 叙述.

Example:
  go run ./cmd/predator diagnose 000001
  go run ./cmd/predator diagnose 600519.SH`,
	Args: cobra.ExactArgs(1),
	RunE: runDiagnose,
}

// quickscanCmd represents the quickscan command
var quickscanCmd = &cobra.Command{
	Use:   "quickscan <code>",
	Short: "个股快速扫描 (不调用 LLM)",
	Long: `对单只股票做纯指标扫描, 输出技术状态和复合信号, 不生成叙述.

Example:
  go run ./cmd/predator quickscan 000001`,
	Args: cobra.ExactArgs(1),
	RunE: runQuickScan,
}

func init() {
	rootCmd.AddCommand(diagnoseCmd)
	rootCmd.AddCommand(quickscanCmd)
}

func runDiagnose(cmd *cobra.Command, args []string) error {
	application, err := newApp()
	if err != nil {
		return err
	}
	defer application.close()

	result, err := application.deepdive.Diagnose(context.Background(), args[0])
	if err != nil {
		return fmt.Errorf("diagnose %s: %w", args[0], err)
	}

	fmt.Printf("=== %s %s (%s) ===\n\n", result.Code, result.Name, result.Industry)
	fmt.Println(result.Content)
	return nil
}

func runQuickScan(cmd *cobra.Command, args []string) error {
	application, err := newApp()
	if err != nil {
		return err
	}
	defer application.close()

	result, err := application.deepdive.QuickScan(context.Background(), args[0])
	if err != nil {
		return fmt.Errorf("quickscan %s: %w", args[0], err)
	}

	fmt.Printf("=== %s %s (%s) ===\n", result.Code, result.Name, result.Industry)
	fmt.Printf("收盘: %.2f (%.2f%%)\n", result.Technical.Price.Close, result.Technical.Price.ChangePct)
	fmt.Printf("信号: %s / %s (评分 %.2f)\n", result.Signal.Direction, result.Signal.Strength, result.Signal.Score)
	if len(result.Signal.Reasons) > 0 {
		fmt.Printf("依据: %s\n", strings.Join(result.Signal.Reasons, ", "))
	}
	return nil
}
