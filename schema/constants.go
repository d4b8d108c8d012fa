package schema

// Custom string types for type safety.
type (
	// OutputMode represents the format of the output.
	OutputMode string

	// DatabaseBackend represents the database backend for run history.
	DatabaseBackend string

	// StageState represents where a pipeline run currently is.
	StageState string

	// Severity represents the maintainability band a file falls into.
	Severity string
)

// All output modes supported.
const (
	CSVOut     OutputMode = "csv"
	TextOut    OutputMode = "text" // default
	JSONOut    OutputMode = "json"
	ParquetOut OutputMode = "parquet"
)

// All history backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite"
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	NoneBackend       DatabaseBackend = "none" // default
)

// Pipeline stages in execution order, plus the two terminal states.
const (
	StageSelecting StageState = "selecting"
	StageParsing   StageState = "parsing"
	StageAnalyzing StageState = "analyzing"
	StageReporting StageState = "reporting"
	StageDone      StageState = "done"
	StageFailed    StageState = "failed"
)

// Maintainability bands.
const (
	SeverityHealthy   Severity = "healthy"
	SeverityCautioned Severity = "cautioned"
	SeverityFlagged   Severity = "flagged"
)

// Maintainability index thresholds. Scores never exceed MaxMaintainability.
const (
	MaxMaintainability    = 171.0
	LowMaintainability    = 100.0
	MediumMaintainability = 140.0
)

// DefaultLowMaintainabilityLimit caps the worst-offenders list.
const DefaultLowMaintainabilityLimit = 20

// DynamicDependency is the path recorded for a require call whose argument is not a string literal.
const DynamicDependency = "* dynamic dependency *"

// MetricsReference points readers at the definitions behind the reported metrics.
const MetricsReference = "https://github.com/escomplex/escomplex/blob/master/METRICS.md#metrics"

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	CSVOut:     {},
	TextOut:    {},
	JSONOut:    {},
	ParquetOut: {},
}

// ValidDatabaseBackends lists all valid history backends.
var ValidDatabaseBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	NoneBackend:       {},
}

// SeverityOf buckets a maintainability index.
func SeverityOf(maintainability float64) Severity {
	switch {
	case maintainability <= LowMaintainability:
		return SeverityFlagged
	case maintainability <= MediumMaintainability:
		return SeverityCautioned
	default:
		return SeverityHealthy
	}
}
