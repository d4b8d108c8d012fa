package history

import (
	"fmt"
	"io"
	"time"

	"github.com/huangsam/codeinsights/internal/contract"
	"github.com/huangsam/codeinsights/schema"
)

// FileMetrics flattens a file result into a history row.
func FileMetrics(runID string, f schema.FileResult) schema.FileMetricsRecord {
	mi, _ := f.Maintainability()
	rec := schema.FileMetricsRecord{
		RunID:           runID,
		FilePath:        f.RelativePath,
		Maintainability: mi,
		Severity:        string(schema.SeverityOf(mi)),
	}
	if f.Report != nil {
		rec.Cyclomatic = f.Report.Cyclomatic
		rec.Effort = f.Report.Effort
		rec.LOC = f.Report.LOC
		rec.Functions = len(f.Report.Functions)
		rec.Dependencies = len(f.Report.Dependencies)
	}
	return rec
}

// RecordRun stores a completed js-complex run. Stores that hand out no run ID
// record nothing.
func RecordRun(store contract.HistoryStore, tool string, cfg *contract.Config, result *schema.ComplexityResult, start, end time.Time) error {
	if err := result.CheckMeasured(); err != nil {
		return err
	}
	runID, err := store.BeginRun(tool, cfg.Root, start, cfg.Params())
	if err != nil {
		return err
	}
	if runID == "" {
		return nil
	}
	for _, f := range result.Files {
		if err := store.RecordFileMetrics(runID, FileMetrics(runID, f)); err != nil {
			return err
		}
	}
	return store.EndRun(runID, end, result.Totals.Total, result.Totals.LowestMaintainability)
}

// PrintStatus prints history status information.
func PrintStatus(w io.Writer, status schema.HistoryStatus) {
	_, _ = fmt.Fprintf(w, "History Backend: %s\n", status.Backend)
	_, _ = fmt.Fprintf(w, "Connected: %t\n", status.Connected)
	if !status.Connected {
		return
	}
	_, _ = fmt.Fprintf(w, "Total Runs: %d\n", status.TotalRuns)
	if status.TotalRuns > 0 {
		_, _ = fmt.Fprintf(w, "Last Run ID: %s\n", status.LastRunID)
		_, _ = fmt.Fprintf(w, "Last Run: %s\n", status.LastRunTime.Format("2006-01-02 15:04:05"))
		_, _ = fmt.Fprintf(w, "Oldest Run: %s\n", status.OldestRunTime.Format("2006-01-02 15:04:05"))
		_, _ = fmt.Fprintf(w, "Total File Records: %d\n", status.TotalFileRecords)
	}
	_, _ = fmt.Fprintln(w, "Table Sizes:")
	for _, table := range []string{runsTable, fileMetricsTable} {
		if size, ok := status.TableSizes[table]; ok {
			_, _ = fmt.Fprintf(w, "  %s: %d rows\n", table, size)
		}
	}
}
