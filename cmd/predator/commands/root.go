package commands

import (
	"github.com/spf13/cobra"
)

var (
	// Global flags
	verbose bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "predator",
	Short: "Alpha Predator - A股量化晨报系统",
	Long: `Alpha Predator Unified CLI

A股自动化研报系统: 行情采集、技术指标、信号检测、LLM 研报生成。

Usage:
  go run ./cmd/predator [command]

Examples:
  go run ./cmd/predator api
  go run ./cmd/predator pipeline
  go run ./cmd/predator diagnose 000001
  go run ./cmd/predator schedule`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
