package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/huangsam/codeinsights/internal/history"
)

// historyCmd focused on run history management.
//
// Note: history subcommands use minimal initialization (historySetup) instead of
// the full sharedSetup used by the tools. This avoids file selection and
// complexity settings for simple database operations.
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Manage the js-complex run history",
	Long: `Manage the run history that js-complex writes when a backend is configured.

Each recorded run stores:
- Run metadata (tool, root, timestamps, configuration)
- Per-file maintainability, cyclomatic complexity, effort and size

Supported backends: SQLite, MySQL, PostgreSQL, or None (disabled, the default)

Subcommands:
  status  - Show run history statistics
  clear   - Remove all recorded runs
  migrate - Run database schema migrations

Examples:
  # Check what has been recorded in the default SQLite file
  insights history status --analysis-backend sqlite`,
}

// historyStatusCmd shows run history status.
var historyStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Display run history statistics and connection details",
	Long: `Show the backend, connection state, number of recorded runs and table sizes.

Examples:
  insights history status --analysis-backend sqlite
  INSIGHTS_ANALYSIS_DB_CONNECT='host=db dbname=insights' insights history status --analysis-backend postgresql`,
	PreRunE: historySetup,
	RunE: func(cmd *cobra.Command, _ []string) error {
		store, err := history.NewStore(cfg.HistoryBackend, cfg.HistoryDBConnect)
		if err != nil {
			return err
		}
		defer func() { _ = store.Close() }()

		status, err := store.GetStatus()
		if err != nil {
			return fmt.Errorf("failed to get history status: %w", err)
		}
		history.PrintStatus(cmd.OutOrStdout(), status)
		return nil
	},
}

// historyClearCmd clears the run history.
var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all recorded runs",
	Long: `Delete all stored runs and per-file metrics.

WARNING: This action cannot be undone.

Examples:
  insights history clear --analysis-backend sqlite`,
	PreRunE: historySetup,
	RunE: func(cmd *cobra.Command, _ []string) error {
		store, err := history.NewStore(cfg.HistoryBackend, cfg.HistoryDBConnect)
		if err != nil {
			return err
		}
		defer func() { _ = store.Close() }()

		if err := store.Clear(); err != nil {
			return fmt.Errorf("failed to clear history: %w", err)
		}
		cmd.Println("Run history cleared successfully.")
		return nil
	},
}

// historyMigrateCmd runs database migrations for the history store.
var historyMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database schema migrations (upgrades/downgrades)",
	Long: `Manage database schema versions for the run history store.

By default, migrates to the latest version. Use --target-version for specific versions.

Examples:
  # Migrate to latest version (default)
  insights history migrate --analysis-backend sqlite

  # Rollback everything
  insights history migrate --analysis-backend sqlite --target-version 0`,
	PreRunE: historySetup,
	RunE: func(cmd *cobra.Command, _ []string) error {
		result, err := history.Migrate(cfg.HistoryBackend, cfg.HistoryDBConnect, cfg.TargetVersion)
		if err != nil {
			return fmt.Errorf("failed to run migrations: %w", err)
		}
		cmd.Println(result.String())
		return nil
	},
}
