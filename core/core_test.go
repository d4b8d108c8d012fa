package core

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/huangsam/codeinsights/internal/history"
	"github.com/huangsam/codeinsights/schema"
)

func TestExecuteJSComplexRecordsHistory(t *testing.T) {
	out := t.TempDir()
	cfg := testConfig(t, t.TempDir())
	cfg.OutputFile = filepath.Join(out, "report.txt")
	cfg.MetricsFile = filepath.Join(out, "insights.prom")

	store := &history.MockHistoryStore{}
	store.On("BeginRun", "js-complex", cfg.Root, mock.Anything, mock.Anything).Return("run-1", nil)
	store.On("EndRun", "run-1", mock.Anything, 0, schema.MaxMaintainability).Return(nil)

	require.NoError(t, ExecuteJSComplex(context.Background(), cfg, store))
	store.AssertExpectations(t)

	report, err := os.ReadFile(cfg.OutputFile)
	require.NoError(t, err)
	assert.Contains(t, string(report), "Total files:  0")

	metrics, err := os.ReadFile(cfg.MetricsFile)
	require.NoError(t, err)
	assert.Contains(t, string(metrics), `insights_files_analyzed{tool="js-complex"} 0`)
}

func TestExecuteJSComplexHistoryFailureIsAWarning(t *testing.T) {
	cfg := testConfig(t, t.TempDir())
	cfg.OutputFile = filepath.Join(t.TempDir(), "report.txt")

	store := &history.MockHistoryStore{}
	store.On("BeginRun", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return("", errors.New("db down"))

	require.NoError(t, ExecuteJSComplex(context.Background(), cfg, store))
	store.AssertExpectations(t)
}

func TestExecuteJSComplexSelectionFailure(t *testing.T) {
	cfg := testConfig(t, t.TempDir())
	cfg.Root = filepath.Join(cfg.Root, "missing")
	store := &history.MockHistoryStore{}

	require.Error(t, ExecuteJSComplex(context.Background(), cfg, store))
	store.AssertNotCalled(t, "BeginRun", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestExecuteScanners(t *testing.T) {
	root := writeTree(t, map[string]string{"a/util.js": "u();\n", "b/util.js": "u();\n"})

	tests := []struct {
		name     string
		exec     ExecutorFunc
		expected string
	}{
		{"loc", ExecuteLOC, "Total LOC:"},
		{"dup-names", ExecuteDuplicateNames, "- util.js (2 files) [identical]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig(t, root)
			cfg.OutputFile = filepath.Join(t.TempDir(), "report.txt")
			require.NoError(t, tt.exec(context.Background(), cfg, nil))

			report, err := os.ReadFile(cfg.OutputFile)
			require.NoError(t, err)
			assert.Contains(t, string(report), tt.expected)
		})
	}
}
