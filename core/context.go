package core

import (
	"context"

	"github.com/huangsam/codeinsights/internal/contract"
	"github.com/huangsam/codeinsights/internal/telemetry"
	"github.com/huangsam/codeinsights/schema"
)

// Context keys for run collaborators
type contextKey string

const (
	reporterKey contextKey = "reporter"
	metricsKey  contextKey = "metrics"
)

var discardProgress = contract.ProgressFunc(func(schema.StageState, string) {})

// WithReporter attaches a progress reporter to the context.
func WithReporter(ctx context.Context, r contract.ProgressReporter) context.Context {
	return context.WithValue(ctx, reporterKey, r)
}

// reporterFromContext returns the attached reporter, or one that discards every label.
func reporterFromContext(ctx context.Context) contract.ProgressReporter {
	if r, ok := ctx.Value(reporterKey).(contract.ProgressReporter); ok && r != nil {
		return r
	}
	return discardProgress
}

// WithMetrics attaches run metrics to the context.
func WithMetrics(ctx context.Context, m *telemetry.RunMetrics) context.Context {
	return context.WithValue(ctx, metricsKey, m)
}

// metricsFromContext returns the attached metrics, or nil when none were set
func metricsFromContext(ctx context.Context) *telemetry.RunMetrics {
	m, _ := ctx.Value(metricsKey).(*telemetry.RunMetrics)
	return m
}
