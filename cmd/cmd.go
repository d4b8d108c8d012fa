// Package cmd defines the command-line interface for insights.
package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/huangsam/codeinsights/internal/contract"
	"github.com/huangsam/codeinsights/schema"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add the tools to the root command
	rootCmd.AddCommand(jsComplexCmd)
	rootCmd.AddCommand(locCmd)
	rootCmd.AddCommand(dupNamesCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(mcpCmd)
	rootCmd.AddCommand(versionCmd)

	// Add the history subcommands to the parent history command
	historyCmd.AddCommand(historyStatusCmd)
	historyCmd.AddCommand(historyClearCmd)
	historyCmd.AddCommand(historyMigrateCmd)

	// Persistent flags are shared by every tool; each tool binds them to Viper on run
	rootCmd.PersistentFlags().String("root", ".", "Base directory to scan")
	rootCmd.PersistentFlags().String("exclude", contract.DefaultExclude, "Regular expression of relative paths to skip (empty disables)")
	rootCmd.PersistentFlags().String("output", string(schema.TextOut), "Output format: text or csv or json or parquet")
	rootCmd.PersistentFlags().String("output-file", "", "Optional path to write output to")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored labels in output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().Int("workers", contract.DefaultWorkers, "Number of concurrent workers")
	rootCmd.PersistentFlags().Int("width", 0, "Terminal width override (0 = auto-detect)")
	rootCmd.PersistentFlags().Int("precision", contract.DefaultPrecision, "Decimal precision for numeric columns")
	rootCmd.PersistentFlags().Bool("js-only", false, "Only consider .js, .jsx, .mjs and .cjs files")
	rootCmd.PersistentFlags().Bool("debug", false, "Print internal decisions to stderr")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	rootCmd.PersistentFlags().String("analysis-backend", string(schema.NoneBackend), "Run history backend: sqlite or mysql or postgresql or none")
	rootCmd.PersistentFlags().String("analysis-db-connect", "", "Database connection string for run history (e.g., user:pass@tcp(host:port)/dbname)")
	rootCmd.PersistentFlags().String("metrics-file", "", "Write Prometheus textfile metrics for the run to this path")
	rootCmd.PersistentFlags().String("trace-endpoint", "", "OTLP gRPC endpoint for run traces (empty disables tracing)")
	if err := viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config")); err != nil {
		contract.LogFatal("Error binding config flag", err)
	}

	// js-complex flags
	jsComplexCmd.Flags().String("glob", contract.DefaultJSGlob, "Inclusion glob relative to --root")
	jsComplexCmd.Flags().StringP("grep", "g", "", "Only analyze relative paths matching this regular expression")
	jsComplexCmd.Flags().BoolP("invert", "v", false, "Analyze relative paths NOT matching --grep")
	jsComplexCmd.Flags().Bool("verbose", false, "Print per-function detail for every file")
	jsComplexCmd.Flags().IntP("limit", "l", contract.DefaultResultLimit, "Number of low maintainability files to list")
	jsComplexCmd.Flags().Bool("matrix", false, "Compute the dependency matrices and their derived project metrics")

	// loc and dup-names flags
	locCmd.Flags().String("glob", contract.DefaultScanGlob, "Inclusion glob relative to --root")
	dupNamesCmd.Flags().String("glob", contract.DefaultScanGlob, "Inclusion glob relative to --root")

	// MCP tools pick their own glob per call
	mcpCmd.Flags().String("glob", contract.DefaultJSGlob, "")
	if err := mcpCmd.Flags().MarkHidden("glob"); err != nil {
		contract.LogFatal("Error hiding mcp glob flag", err)
	}

	// history migrate flags
	historyMigrateCmd.Flags().Int("target-version", -1, "Target migration version (-1 means latest, 0 means rollback to initial state)")
}
