package core

import (
	"context"
	"path"
	"regexp"
	"slices"
	"strings"

	"github.com/cespare/xxhash/v2"

	"github.com/huangsam/codeinsights/internal/contract"
	"github.com/huangsam/codeinsights/schema"
)

// indexPattern matches index modules, which share a name by convention.
var indexPattern = regexp.MustCompile(`/index\.[^/]+$`)

// GroupByName groups records that share a base name across directories.
// Index modules are ignored. Groups are sorted by name, their files in display order.
func GroupByName(records []schema.FileRecord) []schema.DuplicateGroup {
	byName := make(map[string][]schema.FileRecord)
	for _, rec := range records {
		if indexPattern.MatchString("/" + rec.RelativePath) {
			continue
		}
		name := path.Base(rec.RelativePath)
		byName[name] = append(byName[name], rec)
	}

	var groups []schema.DuplicateGroup
	for name, files := range byName {
		if len(files) < 2 {
			continue
		}
		schema.SortFileRecords(files)
		groups = append(groups, schema.DuplicateGroup{Name: name, Files: files})
	}
	slices.SortFunc(groups, func(a, b schema.DuplicateGroup) int {
		return strings.Compare(a.Name, b.Name)
	})
	return groups
}

// markIdentical hashes every file of every group and flags groups whose copies
// all share the same content.
func markIdentical(ctx context.Context, groups []schema.DuplicateGroup, workers int) error {
	var records []schema.FileRecord
	for _, g := range groups {
		records = append(records, g.Files...)
	}
	sums, err := ScanFiles(ctx, records, workers, func(_ schema.FileRecord, content []byte) (uint64, error) {
		return xxhash.Sum64(content), nil
	})
	if err != nil {
		return err
	}

	offset := 0
	for i := range groups {
		n := len(groups[i].Files)
		groupSums := sums[offset : offset+n]
		groups[i].Identical = !slices.ContainsFunc(groupSums, func(s uint64) bool { return s != groupSums[0] })
		offset += n
	}
	return nil
}

// RunDuplicateNames runs the dup-names pipeline and, when render is not nil, reports the result.
func RunDuplicateNames(ctx context.Context, cfg *contract.Config, render func(*schema.DuplicateResult) error) (*schema.DuplicateResult, error) {
	reporter := reporterFromContext(ctx)
	var (
		records []schema.FileRecord
		groups  []schema.DuplicateGroup
		result  *schema.DuplicateResult
	)

	stages := []Stage{
		{State: schema.StageSelecting, Label: "Finding files...", Run: func(context.Context) (err error) {
			records, err = selectRecords(cfg, reporter)
			return err
		}},
		{State: schema.StageParsing, Label: "Comparing duplicates...", Run: func(ctx context.Context) error {
			groups = GroupByName(records)
			return markIdentical(ctx, groups, cfg.Workers)
		}},
		{State: schema.StageAnalyzing, Label: "Summarizing...", Run: func(context.Context) error {
			result = &schema.DuplicateResult{Groups: groups, Totals: schema.DuplicateTotals{
				Files:         len(records),
				DuplicateName: len(groups),
			}}
			for _, g := range groups {
				result.Totals.MaxCopies = max(result.Totals.MaxCopies, len(g.Files))
			}
			if result.Groups == nil {
				result.Groups = []schema.DuplicateGroup{}
			}
			return nil
		}},
	}
	if render != nil {
		stages = append(stages, Stage{State: schema.StageReporting, Label: "Generating report...", Run: func(context.Context) error {
			return render(result)
		}})
	}

	if err := NewPipeline(ctx, "dup-names", stages...).Run(ctx); err != nil {
		return nil, err
	}
	metricsFromContext(ctx).ObserveFiles(len(records))
	return result, nil
}
