package schema

import "time"

// HistoryStatus represents the status of the run history store.
type HistoryStatus struct {
	Backend          string           `json:"backend"`
	Connected        bool             `json:"connected"`
	TotalRuns        int              `json:"total_runs"`
	LastRunID        string           `json:"last_run_id"`
	LastRunTime      time.Time        `json:"last_run_time"`
	OldestRunTime    time.Time        `json:"oldest_run_time"`
	TotalFileRecords int              `json:"total_file_records"`
	TableSizes       map[string]int64 `json:"table_sizes"`
}

// RunRecord represents a row from the insights_runs table.
type RunRecord struct {
	RunID                 string
	Tool                  string
	Root                  string
	StartTime             time.Time
	EndTime               *time.Time
	TotalFiles            int
	LowestMaintainability float64
	ConfigParams          string
}

// FileMetricsRecord represents a row from the insights_file_metrics table.
type FileMetricsRecord struct {
	RunID           string
	FilePath        string
	Maintainability float64
	Cyclomatic      float64
	Effort          float64
	LOC             float64
	Functions       int
	Dependencies    int
	Severity        string
}
