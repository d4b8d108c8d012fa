package core

import (
	"context"
	"fmt"
	"os"

	"github.com/huangsam/codeinsights/core/normalize"
	"github.com/huangsam/codeinsights/internal/contract"
	"github.com/huangsam/codeinsights/internal/jsast"
	"github.com/huangsam/codeinsights/internal/jsparse"
	"github.com/huangsam/codeinsights/schema"
)

// complexityRun carries the state handed from one js-complex stage to the next.
type complexityRun struct {
	cfg      *contract.Config
	reporter contract.ProgressReporter
	records  []schema.FileRecord
	modules  []ParsedModule
	result   *schema.ComplexityResult
}

// RunComplexity runs the js-complex pipeline: select, parse, analyze and, when
// render is not nil, report. No partial result is returned on failure.
func RunComplexity(ctx context.Context, cfg *contract.Config, render func(*schema.ComplexityResult) error) (*schema.ComplexityResult, error) {
	run := &complexityRun{cfg: cfg, reporter: reporterFromContext(ctx)}

	stages := []Stage{
		{State: schema.StageSelecting, Label: "Finding files...", Run: run.selectFiles},
		{State: schema.StageParsing, Run: run.parseFiles},
		{State: schema.StageAnalyzing, Label: "Analyzing code complexity...", Run: run.analyze},
	}
	if render != nil {
		stages = append(stages, Stage{
			State: schema.StageReporting,
			Label: "Generating report...",
			Run:   func(context.Context) error { return render(run.result) },
		})
	}

	if err := NewPipeline(ctx, "js-complex", stages...).Run(ctx); err != nil {
		return nil, err
	}
	metricsFromContext(ctx).ObserveComplexity(run.result)
	return run.result, nil
}

func (r *complexityRun) selectFiles(context.Context) error {
	records, err := selectRecords(r.cfg, r.reporter)
	r.records = records
	return err
}

// parseFiles reads, parses and normalizes one file at a time in display order.
func (r *complexityRun) parseFiles(ctx context.Context) error {
	parser := jsparse.NewParser()
	r.modules = make([]ParsedModule, 0, len(r.records))

	for i, rec := range r.records {
		if err := ctx.Err(); err != nil {
			return err
		}
		r.reporter.Report(schema.StageParsing, fmt.Sprintf("Files remaining to parse: %d", len(r.records)-i))

		tree, err := parseFile(ctx, parser, rec.Path)
		if err != nil {
			return contract.ParseError(rec.RelativePath, err)
		}
		if r.cfg.Debug {
			contract.Debug().Debug("normalized", "file", rec.RelativePath, "tree", jsast.Dump(tree))
		}
		r.modules = append(r.modules, ParsedModule{FileRecord: rec, Tree: tree})
	}

	r.reporter.Report(schema.StageParsing, fmt.Sprintf("Files parsed: %d", len(r.modules)))
	return nil
}

func (r *complexityRun) analyze(context.Context) error {
	result, err := Aggregate(r.modules, r.cfg)
	if err != nil {
		return err
	}
	r.modules = nil
	r.result = result
	return nil
}

// parseFile reads path and returns its normalized syntax tree.
func parseFile(ctx context.Context, parser *jsparse.Parser, path string) (*jsast.Node, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	tree, err := parser.Parse(ctx, src)
	if err != nil {
		return nil, err
	}
	return normalize.Normalize(tree), nil
}
