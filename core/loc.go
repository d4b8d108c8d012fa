package core

import (
	"bytes"
	"cmp"
	"context"
	"regexp"
	"slices"
	"strconv"

	"github.com/huangsam/codeinsights/internal/contract"
	"github.com/huangsam/codeinsights/schema"
)

// commentPattern matches block comments and line comments. A `//` preceded by a
// backslash or a colon (as in URLs) is not treated as a comment.
var commentPattern = regexp.MustCompile(`(?m)/\*[\s\S]*?\*/|([^\\:]|^)//.*$`)

// histogramBucket is the width of one loc histogram bucket.
const histogramBucket = 10

// CountLines returns the number of non-blank lines left once comments are stripped.
func CountLines(content []byte) int {
	stripped := commentPattern.ReplaceAll(content, []byte("$1"))
	n := 0
	for line := range bytes.Lines(stripped) {
		if len(bytes.TrimSpace(line)) > 0 {
			n++
		}
	}
	return n
}

// RunLOC runs the loc pipeline and, when render is not nil, reports the result.
func RunLOC(ctx context.Context, cfg *contract.Config, render func(*schema.LOCResult) error) (*schema.LOCResult, error) {
	reporter := reporterFromContext(ctx)
	var (
		records []schema.FileRecord
		stats   []schema.LOCStats
		result  *schema.LOCResult
	)

	stages := []Stage{
		{State: schema.StageSelecting, Label: "Finding files...", Run: func(context.Context) (err error) {
			records, err = selectRecords(cfg, reporter)
			return err
		}},
		{State: schema.StageParsing, Label: "Counting lines...", Run: func(ctx context.Context) (err error) {
			stats, err = ScanFiles(ctx, records, cfg.Workers, func(rec schema.FileRecord, content []byte) (schema.LOCStats, error) {
				return schema.LOCStats{FileRecord: rec, Lines: CountLines(content)}, nil
			})
			return err
		}},
		{State: schema.StageAnalyzing, Label: "Summarizing...", Run: func(context.Context) error {
			result = &schema.LOCResult{Files: stats, Totals: ComputeLOCTotals(stats, contract.DefaultScanListSize)}
			return nil
		}},
	}
	if render != nil {
		stages = append(stages, Stage{State: schema.StageReporting, Label: "Generating report...", Run: func(context.Context) error {
			return render(result)
		}})
	}

	if err := NewPipeline(ctx, "loc", stages...).Run(ctx); err != nil {
		return nil, err
	}
	metricsFromContext(ctx).ObserveFiles(len(stats))
	return result, nil
}

// ComputeLOCTotals summarizes stats given in display order. Top holds the
// listSize largest files and Bottom the listSize smallest; ties keep display
// order. MaxPath is the last file in display order with the most lines.
func ComputeLOCTotals(stats []schema.LOCStats, listSize int) schema.LOCTotals {
	totals := schema.LOCTotals{
		Files:     len(stats),
		Histogram: make(map[string]int),
	}

	for _, s := range stats {
		totals.Lines += s.Lines
		if s.Lines >= totals.Max {
			totals.Max = s.Lines
			totals.MaxPath = s.RelativePath
		}
		totals.Histogram[bucketOf(s.Lines)]++
	}
	if totals.Files > 0 {
		totals.Average = float64(totals.Lines) / float64(totals.Files)
	}

	byLines := slices.Clone(stats)
	slices.SortStableFunc(byLines, func(a, b schema.LOCStats) int {
		return cmp.Compare(b.Lines, a.Lines)
	})
	totals.Top = slices.Clone(byLines[:min(listSize, len(byLines))])

	slices.SortStableFunc(byLines, func(a, b schema.LOCStats) int {
		return cmp.Compare(a.Lines, b.Lines)
	})
	totals.Bottom = slices.Clone(byLines[:min(listSize, len(byLines))])
	return totals
}

// bucketOf returns the histogram key of a line count: the count rounded up to
// the next multiple of histogramBucket.
func bucketOf(lines int) string {
	return strconv.Itoa((lines + histogramBucket - 1) / histogramBucket * histogramBucket)
}
