// Package core has core logic for file selection, the analysis pipeline and aggregation.
package core

import (
	"context"
	"os"
	"time"

	"github.com/huangsam/codeinsights/internal/contract"
	"github.com/huangsam/codeinsights/internal/history"
	"github.com/huangsam/codeinsights/internal/outwriter"
	"github.com/huangsam/codeinsights/internal/telemetry"
)

// ExecutorFunc defines the function signature for executing one insights tool.
type ExecutorFunc func(ctx context.Context, cfg *contract.Config, store contract.HistoryStore) error

// ExecuteJSComplex runs the complexity pipeline and prints results.
// It serves as the main entry point for the 'js-complex' tool.
func ExecuteJSComplex(ctx context.Context, cfg *contract.Config, store contract.HistoryStore) error {
	start := time.Now()
	ctx, metrics := prepareRun(ctx, cfg, "js-complex")
	writer := outwriter.NewOutWriter(cfg)

	result, err := RunComplexity(ctx, cfg, writer.WriteComplexity)
	if err != nil {
		return err
	}
	if err := history.RecordRun(store, "js-complex", cfg, result, start, time.Now()); err != nil {
		contract.LogWarn("recording run history", err)
	}
	finishRun(cfg, metrics)
	return nil
}

// ExecuteLOC counts lines of code and prints results.
// It serves as the main entry point for the 'loc' tool.
func ExecuteLOC(ctx context.Context, cfg *contract.Config, _ contract.HistoryStore) error {
	ctx, metrics := prepareRun(ctx, cfg, "loc")
	writer := outwriter.NewOutWriter(cfg)
	if _, err := RunLOC(ctx, cfg, writer.WriteLOC); err != nil {
		return err
	}
	finishRun(cfg, metrics)
	return nil
}

// ExecuteDuplicateNames finds duplicate file names and prints results.
// It serves as the main entry point for the 'dup-names' tool.
func ExecuteDuplicateNames(ctx context.Context, cfg *contract.Config, _ contract.HistoryStore) error {
	ctx, metrics := prepareRun(ctx, cfg, "dup-names")
	writer := outwriter.NewOutWriter(cfg)
	if _, err := RunDuplicateNames(ctx, cfg, writer.WriteDuplicateNames); err != nil {
		return err
	}
	finishRun(cfg, metrics)
	return nil
}

// prepareRun attaches a stderr progress printer and, when a metrics file is
// configured, a fresh metrics registry.
func prepareRun(ctx context.Context, cfg *contract.Config, tool string) (context.Context, *telemetry.RunMetrics) {
	ctx = WithReporter(ctx, outwriter.NewProgressPrinter(os.Stderr))
	if cfg.MetricsFile == "" {
		return ctx, nil
	}
	metrics := telemetry.NewRunMetrics(tool)
	return WithMetrics(ctx, metrics), metrics
}

func finishRun(cfg *contract.Config, metrics *telemetry.RunMetrics) {
	if metrics == nil {
		return
	}
	if err := metrics.WriteTextfile(cfg.MetricsFile); err != nil {
		contract.LogWarn("writing metrics file", err)
	}
}
