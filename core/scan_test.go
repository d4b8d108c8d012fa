package core

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/huangsam/codeinsights/internal/contract"
	"github.com/huangsam/codeinsights/schema"
)

func recordsUnder(root string, rels ...string) []schema.FileRecord {
	records := make([]schema.FileRecord, 0, len(rels))
	for _, rel := range rels {
		records = append(records, schema.FileRecord{Path: filepath.Join(root, filepath.FromSlash(rel)), RelativePath: rel})
	}
	return records
}

func TestScanFilesKeepsOrder(t *testing.T) {
	root := writeTree(t, map[string]string{"a.js": "a", "b.js": "bb", "c.js": "ccc"})
	records := recordsUnder(root, "c.js", "a.js", "b.js")

	sizes, err := ScanFiles(context.Background(), records, 2, func(_ schema.FileRecord, content []byte) (int, error) {
		return len(content), nil
	})
	require.NoError(t, err)
	assert.Equal(t, []int{3, 1, 2}, sizes)
}

func TestScanFilesErrors(t *testing.T) {
	root := writeTree(t, map[string]string{"a.js": "a"})

	t.Run("missing file", func(t *testing.T) {
		_, err := ScanFiles(context.Background(), recordsUnder(root, "a.js", "missing.js"), 1, func(schema.FileRecord, []byte) (int, error) {
			return 0, nil
		})
		require.Error(t, err)
		assert.True(t, contract.IsKind(err, contract.ParseKind))
		assert.ErrorContains(t, err, "missing.js")
	})

	t.Run("callback error", func(t *testing.T) {
		boom := errors.New("boom")
		_, err := ScanFiles(context.Background(), recordsUnder(root, "a.js"), 1, func(schema.FileRecord, []byte) (int, error) {
			return 0, boom
		})
		require.ErrorIs(t, err, boom)
		assert.True(t, contract.IsKind(err, contract.ParseKind))
	})
}

func TestCountLines(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		expected int
	}{
		{"empty", "", 0},
		{"blank lines", "a();\n\n   \nb();\n", 2},
		{"line comments", "// header\nx = 1; // trailing\n", 1},
		{"block comment", "/* block\n comment */\ny();\n", 1},
		{"url is not a comment", "url = 'http://example.com';\n", 1},
		{"no trailing newline", "a();\nb();", 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CountLines([]byte(tt.content)))
		})
	}
}

func locStats(rel string, lines int) schema.LOCStats {
	return schema.LOCStats{FileRecord: schema.FileRecord{RelativePath: rel}, Lines: lines}
}

func TestComputeLOCTotals(t *testing.T) {
	stats := []schema.LOCStats{locStats("lib/a.js", 12), locStats("b.js", 3), locStats("c.js", 12)}
	totals := ComputeLOCTotals(stats, 2)

	assert.Equal(t, 3, totals.Files)
	assert.Equal(t, 27, totals.Lines)
	assert.Equal(t, 9.0, totals.Average)
	assert.Equal(t, 12, totals.Max)
	assert.Equal(t, "c.js", totals.MaxPath)
	assert.Equal(t, map[string]int{"20": 2, "10": 1}, totals.Histogram)
	assert.Equal(t, []schema.LOCStats{stats[0], stats[2]}, totals.Top)
	assert.Equal(t, []schema.LOCStats{stats[1], stats[0]}, totals.Bottom)
}

func TestComputeLOCTotalsEmpty(t *testing.T) {
	totals := ComputeLOCTotals(nil, 15)
	assert.Zero(t, totals.Files)
	assert.Zero(t, totals.Average)
	assert.Empty(t, totals.MaxPath)
	assert.Empty(t, totals.Top)
	assert.NotNil(t, totals.Histogram)
}

func TestBucketOf(t *testing.T) {
	for lines, expected := range map[int]string{0: "0", 1: "10", 10: "10", 11: "20", 95: "100"} {
		assert.Equal(t, expected, bucketOf(lines), "lines=%d", lines)
	}
}

func TestRunLOC(t *testing.T) {
	cfg := testConfig(t, writeTree(t, map[string]string{
		"lib/a.js":  "a();\n// note\nb();\n",
		"c.js":      "c();\n",
		"notes.txt": "one\ntwo\n",
	}))
	rec := &recorder{}

	result, err := RunLOC(WithReporter(context.Background(), rec), cfg, nil)
	require.NoError(t, err)

	require.Len(t, result.Files, 2)
	assert.Equal(t, "lib/a.js", result.Files[0].RelativePath)
	assert.Equal(t, 2, result.Files[0].Lines)
	assert.Equal(t, 3, result.Totals.Lines)
	assert.Equal(t, []string{"Finding files...", "Files found: 2", "Counting lines...", "Summarizing...", "Done."}, rec.labels)
}

func TestGroupByName(t *testing.T) {
	records := []schema.FileRecord{
		{RelativePath: "a/util.js"},
		{RelativePath: "b/util.js"},
		{RelativePath: "a/index.js"},
		{RelativePath: "b/index.js"},
		{RelativePath: "a/config.js"},
		{RelativePath: "config.js"},
		{RelativePath: "c.js"},
	}
	groups := GroupByName(records)

	require.Len(t, groups, 2)
	assert.Equal(t, "config.js", groups[0].Name)
	assert.Equal(t, []schema.FileRecord{{RelativePath: "a/config.js"}, {RelativePath: "config.js"}}, groups[0].Files)
	assert.Equal(t, "util.js", groups[1].Name)
	assert.Len(t, groups[1].Files, 2)
}

func TestRunDuplicateNames(t *testing.T) {
	cfg := testConfig(t, writeTree(t, map[string]string{
		"a/util.js":   "same",
		"b/util.js":   "same",
		"a/config.js": "one",
		"b/config.js": "two",
		"c/config.js": "three",
		"a/index.js":  "x",
		"b/index.js":  "y",
	}))

	result, err := RunDuplicateNames(context.Background(), cfg, nil)
	require.NoError(t, err)

	require.Len(t, result.Groups, 2)
	assert.Equal(t, "config.js", result.Groups[0].Name)
	assert.False(t, result.Groups[0].Identical)
	assert.Equal(t, "util.js", result.Groups[1].Name)
	assert.True(t, result.Groups[1].Identical)
	assert.Equal(t, schema.DuplicateTotals{Files: 7, DuplicateName: 2, MaxCopies: 3}, result.Totals)
}

func TestRunDuplicateNamesNone(t *testing.T) {
	cfg := testConfig(t, writeTree(t, map[string]string{"a.js": "a", "b.js": "b"}))

	result, err := RunDuplicateNames(context.Background(), cfg, nil)
	require.NoError(t, err)
	assert.NotNil(t, result.Groups)
	assert.Empty(t, result.Groups)
	assert.Equal(t, 2, result.Totals.Files)
}
