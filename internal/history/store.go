package history

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/huangsam/codeinsights/internal/contract"
	"github.com/huangsam/codeinsights/schema"
)

// Store implements contract.HistoryStore on top of database/sql.
type Store struct {
	db      *sql.DB
	backend schema.DatabaseBackend
}

var _ contract.HistoryStore = &Store{} // Compile-time check

// NewStore opens the history store for backend and migrates it to the latest
// schema. The none backend returns a store on which every write is a no-op.
func NewStore(backend schema.DatabaseBackend, connStr string) (contract.HistoryStore, error) {
	if backend == schema.NoneBackend || backend == "" {
		return &Store{backend: schema.NoneBackend}, nil
	}

	db, err := openDB(backend, connStr)
	if err != nil {
		return nil, err
	}
	// The migrator is not closed here since closing it would close db.
	m, err := newMigrator(db, backend)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	if _, err := migrateTo(m, -1); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create history tables: %w", err)
	}

	return &Store{db: db, backend: backend}, nil
}

func (s *Store) disabled() bool {
	return s.backend == schema.NoneBackend || s.db == nil
}

// BeginRun creates a new run and returns its unique ID.
// The none backend returns an empty ID.
func (s *Store) BeginRun(tool, root string, startTime time.Time, configParams map[string]any) (string, error) {
	if s.disabled() {
		return "", nil
	}

	configJSON, err := json.Marshal(configParams)
	if err != nil {
		return "", fmt.Errorf("failed to marshal config params: %w", err)
	}

	runID := uuid.NewString()
	query := fmt.Sprintf(`INSERT INTO %s (run_id, tool, root, start_time, config_params) VALUES (%s)`,
		quoteTableName(runsTable, s.backend), placeholders(s.backend, 1, 5))
	if _, err := s.db.Exec(query, runID, tool, root, formatTime(startTime, s.backend), string(configJSON)); err != nil {
		return "", fmt.Errorf("failed to insert run: %w", err)
	}
	return runID, nil
}

// EndRun updates the run with completion data.
func (s *Store) EndRun(runID string, endTime time.Time, totalFiles int, lowest float64) error {
	if s.disabled() || runID == "" {
		return nil
	}

	table := quoteTableName(runsTable, s.backend)
	row := s.db.QueryRow(fmt.Sprintf(`SELECT start_time FROM %s WHERE run_id = %s`, table, placeholders(s.backend, 1, 1)), runID)
	startTime, err := scanTime(row, s.backend)
	if err != nil {
		return fmt.Errorf("failed to get start_time for run %s: %w", runID, err)
	}

	var query string
	if s.backend == schema.PostgreSQLBackend {
		query = fmt.Sprintf(`UPDATE %s SET end_time = $1, run_duration_ms = $2, total_files = $3, lowest_maintainability = $4 WHERE run_id = $5`, table)
	} else {
		query = fmt.Sprintf(`UPDATE %s SET end_time = ?, run_duration_ms = ?, total_files = ?, lowest_maintainability = ? WHERE run_id = ?`, table)
	}
	durationMs := endTime.Sub(startTime).Milliseconds()
	if _, err := s.db.Exec(query, formatTime(endTime, s.backend), durationMs, totalFiles, lowest, runID); err != nil {
		return fmt.Errorf("failed to update run: %w", err)
	}
	return nil
}

// RecordFileMetrics stores the metrics of one analyzed file.
func (s *Store) RecordFileMetrics(runID string, record schema.FileMetricsRecord) error {
	if s.disabled() || runID == "" {
		return nil
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (run_id, file_path, maintainability, cyclomatic, effort, loc, functions, dependencies, severity)
		VALUES (%s)
	`, quoteTableName(fileMetricsTable, s.backend), placeholders(s.backend, 1, 9))
	_, err := s.db.Exec(query,
		runID, record.FilePath, record.Maintainability, record.Cyclomatic, record.Effort,
		record.LOC, record.Functions, record.Dependencies, record.Severity,
	)
	if err != nil {
		return fmt.Errorf("failed to insert file metrics for %s: %w", record.FilePath, err)
	}
	return nil
}

// GetStatus returns status information about the history store.
func (s *Store) GetStatus() (schema.HistoryStatus, error) {
	status := schema.HistoryStatus{
		Backend:    string(s.backend),
		Connected:  s.db != nil,
		TableSizes: make(map[string]int64),
	}
	if s.disabled() {
		return status, nil
	}

	runs := quoteTableName(runsTable, s.backend)
	if err := s.db.QueryRow(fmt.Sprintf("SELECT COUNT(*) FROM %s", runs)).Scan(&status.TotalRuns); err != nil {
		return status, fmt.Errorf("failed to get total runs: %w", err)
	}

	if status.TotalRuns > 0 {
		row := s.db.QueryRow(fmt.Sprintf("SELECT run_id FROM %s ORDER BY start_time DESC LIMIT 1", runs))
		if err := row.Scan(&status.LastRunID); err != nil {
			return status, fmt.Errorf("failed to get last run id: %w", err)
		}

		var err error
		status.LastRunTime, err = scanTime(s.db.QueryRow(fmt.Sprintf("SELECT MAX(start_time) FROM %s", runs)), s.backend)
		if err != nil {
			return status, fmt.Errorf("failed to get last run time: %w", err)
		}
		status.OldestRunTime, err = scanTime(s.db.QueryRow(fmt.Sprintf("SELECT MIN(start_time) FROM %s", runs)), s.backend)
		if err != nil {
			return status, fmt.Errorf("failed to get oldest run time: %w", err)
		}
	}

	for _, table := range []string{runsTable, fileMetricsTable} {
		var count int64
		if err := s.db.QueryRow(fmt.Sprintf("SELECT COUNT(*) FROM %s", quoteTableName(table, s.backend))).Scan(&count); err != nil {
			return status, fmt.Errorf("failed to get count for table %s: %w", table, err)
		}
		status.TableSizes[table] = count
	}
	status.TotalFileRecords = int(status.TableSizes[fileMetricsTable])

	return status, nil
}

// Clear removes every recorded run.
func (s *Store) Clear() error {
	if s.disabled() {
		return nil
	}
	for _, table := range []string{fileMetricsTable, runsTable} {
		if _, err := s.db.Exec(fmt.Sprintf("DELETE FROM %s", quoteTableName(table, s.backend))); err != nil {
			return fmt.Errorf("failed to clear table %s: %w", table, err)
		}
	}
	return nil
}

// Close closes the underlying connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}
