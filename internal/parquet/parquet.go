// Package parquet provides data structures and functions for exporting insights
// results to Parquet files using github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"os"

	"github.com/parquet-go/parquet-go"
)

// FileMetrics is one js-complex file result.
type FileMetrics struct {
	// FilePath is the path relative to the scan root
	FilePath string `parquet:"file_path,snappy"`

	// Maintainability is the maintainability index, at most 171
	Maintainability float64 `parquet:"maintainability,snappy"`

	// Severity is the maintainability band: healthy, cautioned or flagged
	Severity string `parquet:"severity,snappy,dict"`

	// Cyclomatic is the average cyclomatic complexity per function
	Cyclomatic float64 `parquet:"cyclomatic,snappy"`

	// Effort is the average Halstead effort per function
	Effort float64 `parquet:"effort,snappy"`

	// LOC is the average logical lines of code per function
	LOC float64 `parquet:"loc,snappy"`

	// Params is the average parameter count per function
	Params float64 `parquet:"params,snappy"`

	Functions    int32 `parquet:"functions,snappy"`
	Dependencies int32 `parquet:"dependencies,snappy"`
}

// LOCFile is one loc result.
type LOCFile struct {
	FilePath string `parquet:"file_path,snappy"`
	Lines    int32  `parquet:"lines,snappy"`
}

// DuplicateFile is one member of a dup-names group. Every member of a group
// repeats the group's name, size and identical flag.
type DuplicateFile struct {
	Name      string `parquet:"name,snappy,dict"`
	FilePath  string `parquet:"file_path,snappy"`
	Copies    int32  `parquet:"copies,snappy"`
	Identical bool   `parquet:"identical"`
}

// Write writes rows to a Parquet file at outputPath, deriving the schema from
// the struct tags of T.
func Write[T any](rows []T, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	writer := parquet.NewGenericWriter[T](file)
	if _, err := writer.Write(rows); err != nil {
		_ = writer.Close()
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to close parquet writer: %w", err)
	}
	return nil
}
