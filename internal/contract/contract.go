// Package contract provides interfaces and shared utilities for internal architecture.
package contract

import (
	"time"

	"github.com/huangsam/codeinsights/schema"
)

// ProgressReporter receives a human-readable label every time a pipeline
// changes stage or makes progress within one.
type ProgressReporter interface {
	Report(state schema.StageState, label string)
}

// ProgressFunc adapts a plain function to ProgressReporter.
type ProgressFunc func(state schema.StageState, label string)

// Report calls f.
func (f ProgressFunc) Report(state schema.StageState, label string) {
	f(state, label)
}

// HistoryStore records completed runs and their per-file metrics.
// It is write-only from the point of view of an analysis run.
type HistoryStore interface {
	// BeginRun creates a new run and returns its unique ID
	BeginRun(tool, root string, startTime time.Time, configParams map[string]any) (string, error)

	// EndRun updates the run with completion data
	EndRun(runID string, endTime time.Time, totalFiles int, lowest float64) error

	// RecordFileMetrics stores the metrics of one analyzed file
	RecordFileMetrics(runID string, record schema.FileMetricsRecord) error

	// GetStatus returns status information about the store
	GetStatus() (schema.HistoryStatus, error)

	// Clear removes every recorded run
	Clear() error

	// Close closes the underlying connection
	Close() error
}
