package core

import (
	"cmp"
	"slices"

	"github.com/huangsam/codeinsights/core/escomplex"
	"github.com/huangsam/codeinsights/internal/contract"
	"github.com/huangsam/codeinsights/internal/jsast"
	"github.com/huangsam/codeinsights/schema"
)

// ParsedModule is a normalized syntax tree waiting for aggregation.
type ParsedModule struct {
	schema.FileRecord
	Tree *jsast.Node
}

// Aggregate measures every module in a single synchronous pass, then computes
// the project metrics and the run totals. The first failing module aborts the
// whole aggregation.
func Aggregate(modules []ParsedModule, cfg *contract.Config) (*schema.ComplexityResult, error) {
	files := make([]schema.FileResult, 0, len(modules))
	projectModules := make([]escomplex.Module, 0, len(modules))
	relative := make(map[string]string, len(modules))

	for _, m := range modules {
		report, err := escomplex.AnalyzeModule(m.Tree, cfg.Complexity)
		if err != nil {
			return nil, contract.AggregationError(m.RelativePath, err)
		}
		files = append(files, schema.FileResult{FileRecord: m.FileRecord, Report: report})
		projectModules = append(projectModules, escomplex.Module{Path: m.Path, Report: report})
		relative[m.Path] = m.RelativePath
	}

	project := escomplex.AnalyzeProject(projectModules, !cfg.Matrix)
	for i, p := range project.MatrixPaths {
		if rel, ok := relative[p]; ok {
			project.MatrixPaths[i] = rel
		}
	}

	schema.SortFileResults(files)
	return &schema.ComplexityResult{
		Files:   files,
		Project: project,
		Totals:  ComputeTotals(files, cfg.ResultLimit),
	}, nil
}

// ComputeTotals walks results in display order and tracks the lowest index and
// the files at or below the low threshold. The low list is sorted ascending by
// index and capped at limit; a non-positive limit leaves it uncapped. Files
// without a report count toward Total only.
func ComputeTotals(files []schema.FileResult, limit int) schema.RunTotals {
	totals := schema.RunTotals{
		Total:                 len(files),
		LowestMaintainability: schema.MaxMaintainability,
		LowMaintainability:    []schema.FileResult{},
	}

	for i := range files {
		mi, ok := files[i].Maintainability()
		if !ok {
			continue
		}
		if mi < totals.LowestMaintainability {
			totals.LowestMaintainability = mi
			totals.LowestFile = &files[i]
		}
		if mi <= schema.LowMaintainability {
			totals.LowMaintainability = append(totals.LowMaintainability, files[i])
		}
	}

	slices.SortStableFunc(totals.LowMaintainability, func(a, b schema.FileResult) int {
		return cmp.Compare(a.Report.Maintainability, b.Report.Maintainability)
	})
	if limit > 0 && len(totals.LowMaintainability) > limit {
		totals.LowMaintainability = totals.LowMaintainability[:limit]
	}
	return totals
}
