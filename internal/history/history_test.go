package history

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/huangsam/codeinsights/internal/contract"
	"github.com/huangsam/codeinsights/schema"
)

func sampleResult() *schema.ComplexityResult {
	files := []schema.FileResult{
		{
			FileRecord: schema.FileRecord{Path: "/p/lib/a.js", RelativePath: "lib/a.js"},
			Report: &schema.ComplexityReport{
				Maintainability: 50,
				Cyclomatic:      4,
				Effort:          1200,
				LOC:             30,
				Functions:       []schema.FunctionReport{{Name: "a"}, {Name: "b"}},
				Dependencies:    []schema.Dependency{{Line: 1, Path: "./b", Type: "CommonJS"}},
			},
		},
		{
			FileRecord: schema.FileRecord{Path: "/p/b.js", RelativePath: "b.js"},
			Report:     &schema.ComplexityReport{Maintainability: 160, Cyclomatic: 1},
		},
	}
	return &schema.ComplexityResult{
		Files:  files,
		Totals: schema.RunTotals{Total: 2, LowestMaintainability: 50},
	}
}

func TestNoneBackend(t *testing.T) {
	store, err := NewStore(schema.NoneBackend, "")
	require.NoError(t, err)

	runID, err := store.BeginRun("js-complex", "/p", time.Now(), map[string]any{"glob": "**/*.js"})
	assert.NoError(t, err)
	assert.Empty(t, runID)
	assert.NoError(t, store.RecordFileMetrics("x", schema.FileMetricsRecord{}))
	assert.NoError(t, store.EndRun("x", time.Now(), 1, 50))
	assert.NoError(t, store.Clear())

	status, err := store.GetStatus()
	require.NoError(t, err)
	assert.Equal(t, "none", status.Backend)
	assert.False(t, status.Connected)
	assert.NoError(t, store.Close())
}

func TestSQLiteStore(t *testing.T) {
	store, err := NewStore(schema.SQLiteBackend, ":memory:")
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	cfg := &contract.Config{Root: "/p", Glob: "**/*.js"}
	start := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	require.NoError(t, RecordRun(store, "js-complex", cfg, sampleResult(), start, start.Add(1500*time.Millisecond)))

	status, err := store.GetStatus()
	require.NoError(t, err)
	assert.True(t, status.Connected)
	assert.Equal(t, 1, status.TotalRuns)
	assert.Len(t, status.LastRunID, 36)
	assert.True(t, status.LastRunTime.Equal(start))
	assert.True(t, status.OldestRunTime.Equal(start))
	assert.Equal(t, 2, status.TotalFileRecords)
	assert.Equal(t, int64(1), status.TableSizes[runsTable])

	var sb strings.Builder
	PrintStatus(&sb, status)
	assert.Contains(t, sb.String(), "Total Runs: 1")
	assert.Contains(t, sb.String(), "insights_file_metrics: 2 rows")

	require.NoError(t, store.Clear())
	status, err = store.GetStatus()
	require.NoError(t, err)
	assert.Zero(t, status.TotalRuns)
	assert.Zero(t, status.TotalFileRecords)
}

func TestSQLiteDuplicateFileRejected(t *testing.T) {
	store, err := NewStore(schema.SQLiteBackend, ":memory:")
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	runID, err := store.BeginRun("js-complex", "/p", time.Now(), nil)
	require.NoError(t, err)
	rec := schema.FileMetricsRecord{FilePath: "a.js", Maintainability: 100, Severity: "flagged"}
	require.NoError(t, store.RecordFileMetrics(runID, rec))
	assert.Error(t, store.RecordFileMetrics(runID, rec))
}

func TestFileMetrics(t *testing.T) {
	rec := FileMetrics("run", sampleResult().Files[0])
	assert.Equal(t, schema.FileMetricsRecord{
		RunID:           "run",
		FilePath:        "lib/a.js",
		Maintainability: 50,
		Cyclomatic:      4,
		Effort:          1200,
		LOC:             30,
		Functions:       2,
		Dependencies:    1,
		Severity:        "flagged",
	}, rec)

}

func TestRecordRunWithMock(t *testing.T) {
	cfg := &contract.Config{Root: "/p"}
	result := sampleResult()
	start := time.Now()
	end := start.Add(time.Second)

	t.Run("records every file", func(t *testing.T) {
		m := &MockHistoryStore{}
		m.On("BeginRun", "js-complex", "/p", start, mock.Anything).Return("run-1", nil)
		m.On("RecordFileMetrics", "run-1", mock.AnythingOfType("schema.FileMetricsRecord")).Return(nil).Twice()
		m.On("EndRun", "run-1", end, 2, 50.0).Return(nil)

		require.NoError(t, RecordRun(m, "js-complex", cfg, result, start, end))
		m.AssertExpectations(t)
	})

	t.Run("stops on first failure", func(t *testing.T) {
		m := &MockHistoryStore{}
		m.On("BeginRun", "js-complex", "/p", start, mock.Anything).Return("run-1", nil)
		m.On("RecordFileMetrics", "run-1", mock.Anything).Return(errors.New("disk full")).Once()

		assert.EqualError(t, RecordRun(m, "js-complex", cfg, result, start, end), "disk full")
		m.AssertNotCalled(t, "EndRun", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("unmeasured file is rejected", func(t *testing.T) {
		m := &MockHistoryStore{}
		partial := sampleResult()
		partial.Files[1].Report = nil

		assert.ErrorContains(t, RecordRun(m, "js-complex", cfg, partial, start, end), "has no complexity report")
		m.AssertNotCalled(t, "BeginRun", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("no run id records nothing", func(t *testing.T) {
		m := &MockHistoryStore{}
		m.On("BeginRun", "js-complex", "/p", start, mock.Anything).Return("", nil)

		require.NoError(t, RecordRun(m, "js-complex", cfg, result, start, end))
		m.AssertNotCalled(t, "RecordFileMetrics", mock.Anything, mock.Anything)
	})
}

func TestMigrate(t *testing.T) {
	_, err := Migrate(schema.NoneBackend, "", -1)
	assert.ErrorContains(t, err, "migrations are not supported")

	dbPath := filepath.Join(t.TempDir(), "history.db")

	result, err := Migrate(schema.SQLiteBackend, dbPath, -1)
	require.NoError(t, err)
	assert.Equal(t, MigrationResult{From: 0, To: 2, Changed: true}, result)

	result, err = Migrate(schema.SQLiteBackend, dbPath, -1)
	require.NoError(t, err)
	assert.False(t, result.Changed)
	assert.Equal(t, "No migration needed. Database is already at version 2.", result.String())

	result, err = Migrate(schema.SQLiteBackend, dbPath, 1)
	require.NoError(t, err)
	assert.Equal(t, "Successfully rolled back from version 2 to version 1", result.String())

	result, err = Migrate(schema.SQLiteBackend, dbPath, 0)
	require.NoError(t, err)
	assert.Equal(t, uint(0), result.To)

	result, err = Migrate(schema.SQLiteBackend, dbPath, 2)
	require.NoError(t, err)
	assert.Equal(t, "Successfully migrated from version 0 to version 2", result.String())

	store, err := NewStore(schema.SQLiteBackend, dbPath)
	require.NoError(t, err)
	assert.NoError(t, store.Close())
}

func TestPlaceholders(t *testing.T) {
	assert.Equal(t, "?, ?, ?", placeholders(schema.SQLiteBackend, 1, 3))
	assert.Equal(t, "?", placeholders(schema.MySQLBackend, 1, 1))
	assert.Equal(t, "$2, $3", placeholders(schema.PostgreSQLBackend, 2, 2))
	assert.Equal(t, "`insights_runs`", quoteTableName(runsTable, schema.MySQLBackend))
	assert.Equal(t, `"insights_runs"`, quoteTableName(runsTable, schema.PostgreSQLBackend))
}
