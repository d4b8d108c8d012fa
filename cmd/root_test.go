package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/huangsam/codeinsights/schema"
)

// resetState restores flag values and Viper between dispatches in one process.
func resetState(t *testing.T) {
	t.Helper()
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	var walk func(c *cobra.Command)
	walk = func(c *cobra.Command) {
		c.Flags().VisitAll(reset)
		c.PersistentFlags().VisitAll(reset)
		for _, sub := range c.Commands() {
			walk(sub)
		}
	}
	walk(rootCmd)
	viper.Reset()
}

func dispatch(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	resetState(t)
	t.Cleanup(func() { resetState(t) })

	var stdout, stderr bytes.Buffer
	code := Dispatch(args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func writeFiles(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for rel, content := range files {
		p := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	}
	return root
}

func TestDispatchUsage(t *testing.T) {
	tests := []struct {
		name string
		args []string
		code int
		want string
	}{
		{"no arguments", nil, exitFailure, "Usage: insights <tool>"},
		{"root help", []string{"--help"}, exitFailure, "Usage: insights <tool>"},
		{"short help", []string{"-h"}, exitFailure, "js-complex"},
		{"invalid name", []string{"../etc"}, exitFailure, "Usage: insights <tool>"},
		{"unknown tool", []string{"frobnicate"}, exitNotFound, "Tool not found: frobnicate"},
		{"tool help", []string{"loc", "--help"}, exitFailure, "loc [root]"},
		{"subcommand help", []string{"history", "migrate", "-h"}, exitFailure, "--target-version"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, stdout, stderr := dispatch(t, tt.args...)
			assert.Equal(t, tt.code, code)
			assert.Empty(t, stdout)
			assert.Contains(t, stderr, tt.want)
		})
	}
}

func TestUsageListsTools(t *testing.T) {
	var buf bytes.Buffer
	printUsage(&buf)
	for _, name := range []string{"js-complex", "loc", "dup-names", "history", "mcp", "version"} {
		assert.Contains(t, buf.String(), "  "+name)
	}
	assert.NotContains(t, buf.String(), "completion")
}

func TestToolNamePattern(t *testing.T) {
	assert.True(t, toolNamePattern.MatchString("js-complex"))
	assert.True(t, toolNamePattern.MatchString("dup_names.v2"))
	assert.False(t, toolNamePattern.MatchString("a/b"))
	assert.False(t, toolNamePattern.MatchString("a b"))
	assert.False(t, toolNamePattern.MatchString(""))
}

func TestVersion(t *testing.T) {
	code, stdout, _ := dispatch(t, "version")
	assert.Equal(t, exitOK, code)
	assert.Contains(t, stdout, "insights CLI")
	assert.Contains(t, stdout, "Version: dev")
}

func TestLOCToOutputFile(t *testing.T) {
	root := writeFiles(t, map[string]string{
		"a.js":                  "a();\n\n// comment\nb();\n",
		"notes.txt":             "x\n",
		"node_modules/dep/i.js": "skipped();\n",
	})
	out := filepath.Join(t.TempDir(), "loc.json")

	code, _, stderr := dispatch(t, "loc", "--root", root, "--color", "no", "--output", "json", "--output-file", out)
	require.Equal(t, exitOK, code, stderr)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	var result schema.LOCResult
	require.NoError(t, json.Unmarshal(data, &result))
	assert.Equal(t, 2, result.Totals.Files)
	assert.Equal(t, 3, result.Totals.Lines)
	assert.Equal(t, "a.js", result.Totals.MaxPath)
}

func TestPositionalRoot(t *testing.T) {
	root := writeFiles(t, map[string]string{"x/util.js": "1;\n", "y/util.js": "1;\n"})
	out := filepath.Join(t.TempDir(), "dups.json")

	code, _, stderr := dispatch(t, "dup-names", root, "--output", "json", "--output-file", out)
	require.Equal(t, exitOK, code, stderr)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	var result schema.DuplicateResult
	require.NoError(t, json.Unmarshal(data, &result))
	require.Len(t, result.Groups, 1)
	assert.True(t, result.Groups[0].Identical)
}

func TestDispatchFailures(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing")

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"bad precision", []string{"loc", "--precision", "5"}, "precision must be 1 or 2"},
		{"bad output", []string{"dup-names", "--output", "xml"}, "invalid output format"},
		{"parquet without file", []string{"loc", "--output", "parquet"}, "parquet output requires --output-file"},
		{"bad grep", []string{"js-complex", "--grep", "("}, "invalid --grep pattern"},
		{"unknown flag", []string{"loc", "--nope"}, "unknown flag"},
		{"missing root", []string{"js-complex", "--root", missing}, "selection error"},
		{"mysql without dsn", []string{"history", "status", "--analysis-backend", "mysql"}, "analysis-db-connect is required"},
		{"migrate none", []string{"history", "migrate"}, "migrations are not supported"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, _, stderr := dispatch(t, tt.args...)
			assert.Equal(t, exitFailure, code)
			assert.Contains(t, stderr, "❌ "+tt.args[0]+":")
			assert.Contains(t, stderr, tt.want)
		})
	}
}

func TestConfigFile(t *testing.T) {
	dir := t.TempDir()
	config := filepath.Join(dir, "insights.yaml")
	require.NoError(t, os.WriteFile(config, []byte("precision: 3\n"), 0o644))

	code, _, stderr := dispatch(t, "loc", "--root", dir, "--config", config)
	assert.Equal(t, exitFailure, code)
	assert.Contains(t, stderr, "received 3")
}

func TestHistorySQLite(t *testing.T) {
	db := filepath.Join(t.TempDir(), "history.db")
	flags := []string{"--analysis-backend", "sqlite", "--analysis-db-connect", db}

	code, stdout, stderr := dispatch(t, append([]string{"history", "status"}, flags...)...)
	require.Equal(t, exitOK, code, stderr)
	assert.Contains(t, stdout, "History Backend: sqlite")
	assert.Contains(t, stdout, "Total Runs: 0")

	code, stdout, stderr = dispatch(t, append([]string{"history", "migrate"}, flags...)...)
	require.Equal(t, exitOK, code, stderr)
	assert.Contains(t, stdout, "No migration needed")

	code, stdout, stderr = dispatch(t, append([]string{"history", "clear"}, flags...)...)
	require.Equal(t, exitOK, code, stderr)
	assert.Contains(t, stdout, "Run history cleared successfully.")
}

func TestHistoryStatusDisabled(t *testing.T) {
	code, stdout, stderr := dispatch(t, "history", "status")
	require.Equal(t, exitOK, code, stderr)
	assert.Contains(t, stdout, "History Backend: none")
	assert.Contains(t, stdout, "Connected: false")
}
