package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"slices"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/huangsam/codeinsights/core"
	"github.com/huangsam/codeinsights/core/escomplex"
	"github.com/huangsam/codeinsights/internal/contract"
	"github.com/huangsam/codeinsights/internal/history"
	"github.com/huangsam/codeinsights/internal/telemetry"
	"github.com/huangsam/codeinsights/schema"
)

// All linker flags will be set by goreleaser infra at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// Process exit codes.
const (
	exitOK       = 0
	exitFailure  = 1 // usage error or failed run
	exitNotFound = 2 // unknown tool
)

// toolNamePattern is the set of names the dispatcher will look up.
var toolNamePattern = regexp.MustCompile(`^[a-zA-Z0-9._-]+$`)

// rootCtx is the root context for all operations.
var rootCtx = context.Background()

// cfg will hold the validated, final configuration.
var cfg = &contract.Config{}

// input holds the raw, unvalidated configuration from all sources (file, env, flags).
// Viper will unmarshal into this struct.
var input = &contract.ConfigRawInput{}

// rootCmd holds the tools. It is never run without a tool name.
var rootCmd = &cobra.Command{
	Use:                "insights <tool>",
	Short:              "Measure the complexity and shape of a JavaScript code base.",
	Long:               `Insights is a toolbox of source analyzers: escomplex-style maintainability, line counts and duplicate file names.`,
	Version:            version,
	SilenceErrors:      true,
	SilenceUsage:       true,
	DisableSuggestions: true,
	CompletionOptions:  cobra.CompletionOptions{DisableDefaultCmd: true},
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	// Set environment variable prefix
	viper.SetEnvPrefix("INSIGHTS")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv() // Read in environment variables that match

	// The single-file override is environment only
	if err := viper.BindEnv("debug-file-path", "DEBUG_FILE_PATH", "INSIGHTS_DEBUG_FILE_PATH"); err != nil {
		contract.LogFatal("Error binding debug file path", err)
	}

	// Set defaults in Viper for keys that not every tool has a flag for
	viper.SetDefault("limit", contract.DefaultResultLimit)
	viper.SetDefault("workers", contract.DefaultWorkers)
	viper.SetDefault("precision", contract.DefaultPrecision)
	viper.SetDefault("output", schema.TextOut)
	viper.SetDefault("color", "yes")
	viper.SetDefault("exclude", contract.DefaultExclude)
	viper.SetDefault("analysis-backend", schema.NoneBackend)
	viper.SetDefault("analysis-db-connect", "")
	viper.SetDefault("target-version", -1)

	defaults := escomplex.DefaultSettings()
	viper.SetDefault("complexity.logicalor", defaults.LogicalOr)
	viper.SetDefault("complexity.switchcase", defaults.SwitchCase)
	viper.SetDefault("complexity.forin", defaults.ForIn)
	viper.SetDefault("complexity.trycatch", defaults.TryCatch)
}

// loadConfigFile handles config file loading logic common to all setup functions.
func loadConfigFile() error {
	if configFile := viper.GetString("config"); configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		viper.SetConfigName(".insights") // Name of config file (without extension)
		viper.SetConfigType("yaml")      // We'll use YAML format
		viper.AddConfigPath(".")         // Look in the current directory
		viper.AddConfigPath("$HOME")     // Look in the home directory
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			// Config file was found but another error was produced
			return fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found, which is fine; we'll use defaults/env/flags.
	}
	return nil
}

// sharedSetup unmarshals config and runs validation for the analysis tools.
func sharedSetup(cmd *cobra.Command, args []string) error {
	// 1. Bind the flags of the running tool only, since tools share flag names.
	if err := viper.BindPFlags(cmd.Flags()); err != nil {
		return fmt.Errorf("unable to bind flags: %w", err)
	}

	// 2. Read config file. This merges defaults, file, env, and flags.
	if err := loadConfigFile(); err != nil {
		return err
	}

	// 3. Unmarshal all resolved values from Viper into our raw input struct.
	*input = contract.ConfigRawInput{}
	if err := viper.Unmarshal(input); err != nil {
		return fmt.Errorf("unable to unmarshal config: %w", err)
	}

	// 4. Handle positional arguments (which Viper doesn't do).
	if len(args) == 1 {
		input.Root = args[0]
	}

	// 5. Run all validation and complex parsing.
	if err := contract.ProcessAndValidate(cfg, input); err != nil {
		return contract.UsageError(err)
	}
	if cfg.Debug {
		contract.EnableDebug(os.Stderr)
	}
	return nil
}

// historySetup loads the minimal configuration needed for run history commands.
func historySetup(cmd *cobra.Command, _ []string) error {
	if err := viper.BindPFlags(cmd.Flags()); err != nil {
		return fmt.Errorf("unable to bind flags: %w", err)
	}
	if err := loadConfigFile(); err != nil {
		return err
	}

	backend := schema.DatabaseBackend(strings.ToLower(viper.GetString("analysis-backend")))
	if backend == "" {
		backend = schema.NoneBackend
	}
	if _, ok := schema.ValidDatabaseBackends[backend]; !ok {
		return contract.UsageError(fmt.Errorf("invalid analysis-backend '%s'. must be sqlite, mysql, postgresql, none", backend))
	}
	connStr := viper.GetString("analysis-db-connect")
	if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
		return contract.UsageError(err)
	}

	cfg.HistoryBackend = backend
	cfg.HistoryDBConnect = connStr
	cfg.TargetVersion = viper.GetInt("target-version")
	return nil
}

// runTool adapts an executor to cobra. Tracing is installed around the run, and
// the run history store is opened only for tools that record runs.
func runTool(executor core.ExecutorFunc, recordsHistory bool) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()
		shutdown, err := telemetry.SetupTracing(ctx, cfg.TraceEndpoint, version)
		if err != nil {
			return err
		}
		defer func() {
			if err := shutdown(ctx); err != nil {
				contract.LogWarn("flushing traces", err)
			}
		}()

		var store contract.HistoryStore
		if recordsHistory {
			store, err = history.NewStore(cfg.HistoryBackend, cfg.HistoryDBConnect)
			if err != nil {
				contract.LogWarn("opening run history", err)
				store, _ = history.NewStore(schema.NoneBackend, "")
			}
			defer func() { _ = store.Close() }()
		}
		return executor(ctx, cfg, store)
	}
}

// printUsage lists every tool.
func printUsage(w io.Writer) {
	_, _ = fmt.Fprintf(w, "Usage: insights <tool> [flags]\n\nTools:\n")
	for _, c := range rootCmd.Commands() {
		if !c.IsAvailableCommand() {
			continue
		}
		_, _ = fmt.Fprintf(w, "  %-12s %s\n", c.Name(), c.Short)
	}
	_, _ = fmt.Fprintf(w, "\nRun 'insights <tool> --help' for the flags of a tool.\n")
}

func wantsHelp(args []string) bool {
	return slices.ContainsFunc(args, func(a string) bool { return a == "--help" || a == "-h" })
}

// Dispatch runs the tool named by args[0] and returns the process exit code.
func Dispatch(args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 || wantsHelp(args[:1]) || !toolNamePattern.MatchString(args[0]) {
		printUsage(stderr)
		return exitFailure
	}

	tool, _, err := rootCmd.Find(args)
	if err != nil || tool == rootCmd {
		_, _ = fmt.Fprintf(stderr, "Tool not found: %s\n", args[0])
		return exitNotFound
	}
	if wantsHelp(args[1:]) {
		_, _ = fmt.Fprint(stderr, tool.UsageString())
		return exitFailure
	}

	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)
	if err := rootCmd.ExecuteContext(rootCtx); err != nil {
		_, _ = fmt.Fprintf(stderr, "❌ %s: %v\n", args[0], err)
		return exitFailure
	}
	return exitOK
}

// Execute dispatches the process arguments and returns the exit code.
func Execute() int {
	return Dispatch(os.Args[1:], os.Stdout, os.Stderr)
}
