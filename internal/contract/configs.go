package contract

import (
	"fmt"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/huangsam/codeinsights/core/escomplex"
	"github.com/huangsam/codeinsights/schema"
)

// Default values for configuration.
const (
	DefaultJSGlob       = "**/*.js"
	DefaultScanGlob     = "**/*"
	DefaultExclude      = `node_modules|bower_components|vendor|(^build/)|(^static/)|(\bpackage\.json$)|(^\.eslintrc\.js$)|(\bnpm-shrinkwrap\.json$)`
	DefaultResultLimit  = schema.DefaultLowMaintainabilityLimit
	MaxResultLimit      = 1000
	DefaultPrecision    = 1
	DefaultScanListSize = 15
)

// DefaultWorkers is the default number of concurrent workers to use.
var DefaultWorkers = runtime.GOMAXPROCS(0)

// JSExtensions lists the file extensions treated as JavaScript by --js-only.
var JSExtensions = []string{".js", ".jsx", ".mjs", ".cjs"}

// Config holds the runtime configuration for one tool invocation.
// This struct is the "final, validated" config.
type Config struct {
	Root        string         // Absolute base directory
	Glob        string         // Inclusion glob, doublestar syntax
	Exclude     *regexp.Regexp // Matched against slash-separated relative paths; nil excludes nothing
	Grep        *regexp.Regexp // Optional relative path filter
	Invert      bool           // Keep paths that do NOT match Grep
	DebugFile   string         // Single-file override relative to Root
	JSOnly      bool
	Verbose     bool
	ResultLimit int
	Matrix      bool // Build the dependency matrices
	Complexity  escomplex.Settings
	Workers     int
	Precision   int
	Output      schema.OutputMode
	OutputFile  string
	Width       int // Terminal width override (0 = auto-detect)
	UseColors   bool
	Debug       bool

	HistoryBackend   schema.DatabaseBackend
	HistoryDBConnect string // Please use env var as this is plaintext
	TargetVersion    int    // Migration target, -1 means latest

	MetricsFile   string
	TraceEndpoint string
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	// --- Fields from the shared flags ---
	Root              string `mapstructure:"root"`
	Glob              string `mapstructure:"glob"`
	Exclude           string `mapstructure:"exclude"`
	Workers           int    `mapstructure:"workers"`
	Precision         int    `mapstructure:"precision"`
	Output            string `mapstructure:"output"`
	OutputFile        string `mapstructure:"output-file"`
	Width             int    `mapstructure:"width"`
	Color             string `mapstructure:"color"`
	Debug             bool   `mapstructure:"debug"`
	AnalysisBackend   string `mapstructure:"analysis-backend"`
	AnalysisDBConnect string `mapstructure:"analysis-db-connect"`
	MetricsFile       string `mapstructure:"metrics-file"`
	TraceEndpoint     string `mapstructure:"trace-endpoint"`

	// --- Environment only ---
	DebugFilePath string `mapstructure:"debug-file-path"`

	// --- Fields from jsComplexCmd.Flags() ---
	Grep       string `mapstructure:"grep"`
	Invert     bool   `mapstructure:"invert"`
	Verbose    bool   `mapstructure:"verbose"`
	Limit      int    `mapstructure:"limit"`
	Matrix     bool   `mapstructure:"matrix"`

	// --- Fields from locCmd.Flags() and dupNamesCmd.Flags() ---
	JSOnly bool `mapstructure:"js-only"`

	// --- Fields from historyMigrateCmd.Flags() ---
	TargetVersion int `mapstructure:"target-version"`

	// --- Complexity settings from config file ---
	Complexity escomplex.Settings `mapstructure:"complexity"`
}

// DefaultConfig returns a validated configuration for a js-complex run over root
// that uses every default.
func DefaultConfig(root string) (*Config, error) {
	cfg := &Config{}
	err := ProcessAndValidate(cfg, &ConfigRawInput{
		Root:       root,
		Glob:       DefaultJSGlob,
		Exclude:    DefaultExclude,
		Workers:    DefaultWorkers,
		Precision:  DefaultPrecision,
		Output:     string(schema.TextOut),
		Color:      "no",
		Limit:      DefaultResultLimit,
		Complexity: escomplex.DefaultSettings(),
	})
	return cfg, err
}

// Clone returns a copy of the Config. Compiled patterns are shared, which is
// safe because regexp.Regexp is safe for concurrent use.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}

// Params returns the configuration recorded with a run in the history store.
func (c *Config) Params() map[string]any {
	params := map[string]any{
		"root":        c.Root,
		"glob":        c.Glob,
		"invert":      c.Invert,
		"limit":       c.ResultLimit,
		"matrix":      c.Matrix,
		"logicalor":   c.Complexity.LogicalOr,
		"switchcase":  c.Complexity.SwitchCase,
		"forin":       c.Complexity.ForIn,
		"trycatch":    c.Complexity.TryCatch,
	}
	if c.Exclude != nil {
		params["exclude"] = c.Exclude.String()
	}
	if c.Grep != nil {
		params["grep"] = c.Grep.String()
	}
	return params
}

// ProcessAndValidate performs all parsing and validation on the raw inputs
// and updates the final Config struct.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	if err := validateSimpleInputs(cfg, input); err != nil {
		return err
	}
	if err := processSelection(cfg, input); err != nil {
		return err
	}
	return validateBackendConfigs(cfg, input)
}

// ValidateDatabaseConnectionString validates the format of database connection strings
// for MySQL and PostgreSQL backends.
func ValidateDatabaseConnectionString(backend schema.DatabaseBackend, connStr string) error {
	switch backend {
	case schema.SQLiteBackend, schema.NoneBackend:
		return nil
	case schema.MySQLBackend:
		if connStr == "" {
			return fmt.Errorf("analysis-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "@tcp(") {
			return fmt.Errorf("MySQL connection string must contain '@tcp(' for host:port specification")
		}
		if !strings.Contains(connStr, "/") {
			return fmt.Errorf("MySQL connection string must contain '/' followed by database name")
		}
	case schema.PostgreSQLBackend:
		if connStr == "" {
			return fmt.Errorf("analysis-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "host=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'host=' parameter")
		}
		if !strings.Contains(connStr, "dbname=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'dbname=' parameter")
		}
	}
	return nil
}

// validateBackendConfigs validates the run history backend configuration.
func validateBackendConfigs(cfg *Config, input *ConfigRawInput) error {
	cfg.HistoryBackend = schema.DatabaseBackend(strings.ToLower(input.AnalysisBackend))
	if cfg.HistoryBackend == "" {
		cfg.HistoryBackend = schema.NoneBackend
	}
	if _, ok := schema.ValidDatabaseBackends[cfg.HistoryBackend]; !ok {
		return fmt.Errorf("invalid analysis-backend '%s'. must be sqlite, mysql, postgresql, none", input.AnalysisBackend)
	}
	cfg.HistoryDBConnect = input.AnalysisDBConnect
	if err := ValidateDatabaseConnectionString(cfg.HistoryBackend, cfg.HistoryDBConnect); err != nil {
		return err
	}
	cfg.TargetVersion = input.TargetVersion
	return nil
}

// validateSimpleInputs processes and validates all non-path related fields.
func validateSimpleInputs(cfg *Config, input *ConfigRawInput) error {
	// --- 0. Transfer simple non-validated fields from input -> cfg ---
	cfg.Invert = input.Invert
	cfg.Verbose = input.Verbose
	cfg.Matrix = input.Matrix
	cfg.JSOnly = input.JSOnly
	cfg.OutputFile = input.OutputFile
	cfg.Width = input.Width
	cfg.Debug = input.Debug || DebugEnabledByEnv()
	cfg.MetricsFile = input.MetricsFile
	cfg.TraceEndpoint = input.TraceEndpoint
	cfg.Complexity = input.Complexity

	// Parse color flag
	colors, err := ParseBoolString(input.Color)
	if err != nil {
		return fmt.Errorf("invalid --color value: %w", err)
	}
	cfg.UseColors = colors

	// --- 1. ResultLimit Validation ---
	if input.Limit <= 0 || input.Limit > MaxResultLimit {
		return fmt.Errorf("limit must be greater than 0 and cannot exceed %d (received %d)", MaxResultLimit, input.Limit)
	}
	cfg.ResultLimit = input.Limit

	// --- 2. Workers Validation ---
	if input.Workers <= 0 {
		return fmt.Errorf("workers must be greater than 0 (received %d)", input.Workers)
	}
	cfg.Workers = input.Workers

	// --- 3. Precision and Output Validation ---
	if input.Precision < 1 || input.Precision > 2 {
		return fmt.Errorf("precision must be 1 or 2 (received %d)", input.Precision)
	}
	cfg.Precision = input.Precision

	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output format '%s'. must be text, csv, json, parquet", input.Output)
	}
	if cfg.Output == schema.ParquetOut && cfg.OutputFile == "" {
		return fmt.Errorf("parquet output requires --output-file")
	}

	return nil
}

// processSelection resolves the base directory and compiles the file filters.
func processSelection(cfg *Config, input *ConfigRawInput) error {
	root := input.Root
	if root == "" {
		root = "."
	}
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return fmt.Errorf("invalid root '%s': %w", root, err)
	}
	cfg.Root = filepath.Clean(absRoot)

	cfg.Glob = strings.TrimSpace(input.Glob)
	if cfg.Glob == "" {
		return fmt.Errorf("glob must not be empty")
	}
	if !doublestar.ValidatePattern(cfg.Glob) {
		return fmt.Errorf("invalid glob pattern '%s'", cfg.Glob)
	}

	cfg.Exclude = nil
	if input.Exclude != "" {
		if cfg.Exclude, err = regexp.Compile(input.Exclude); err != nil {
			return fmt.Errorf("invalid exclude pattern: %w", err)
		}
	}

	cfg.Grep = nil
	if input.Grep != "" {
		if cfg.Grep, err = regexp.Compile(input.Grep); err != nil {
			return fmt.Errorf("invalid --grep pattern: %w", err)
		}
	}

	cfg.DebugFile = strings.TrimSpace(input.DebugFilePath)
	return nil
}
