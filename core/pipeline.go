package core

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/huangsam/codeinsights/internal/contract"
	"github.com/huangsam/codeinsights/internal/telemetry"
	"github.com/huangsam/codeinsights/schema"
)

// Stage is one step of a Pipeline. Label is reported when the stage starts.
type Stage struct {
	State schema.StageState
	Label string
	Run   func(ctx context.Context) error
}

// Pipeline runs its stages strictly one after another. The first failing stage
// stops the run and moves the pipeline to StageFailed; there are no retries.
type Pipeline struct {
	name     string
	stages   []Stage
	reporter contract.ProgressReporter
	metrics  *telemetry.RunMetrics
	state    schema.StageState
}

// NewPipeline creates a pipeline whose progress goes to the reporter attached to ctx.
func NewPipeline(ctx context.Context, name string, stages ...Stage) *Pipeline {
	return &Pipeline{
		name:     name,
		stages:   stages,
		reporter: reporterFromContext(ctx),
		metrics:  metricsFromContext(ctx),
	}
}

// State returns the stage the pipeline is in, or the terminal state it ended in.
func (p *Pipeline) State() schema.StageState {
	return p.state
}

// Run executes every stage in order.
func (p *Pipeline) Run(ctx context.Context) error {
	ctx, span := telemetry.Tracer.Start(ctx, p.name, trace.WithAttributes(attribute.Int("stages", len(p.stages))))
	defer span.End()

	for _, stage := range p.stages {
		if err := ctx.Err(); err != nil {
			return p.fail(span, err)
		}
		p.state = stage.State
		if stage.Label != "" {
			p.reporter.Report(stage.State, stage.Label)
		}
		if err := p.runStage(ctx, stage); err != nil {
			return p.fail(span, err)
		}
	}

	p.state = schema.StageDone
	p.reporter.Report(schema.StageDone, "Done.")
	return nil
}

func (p *Pipeline) runStage(ctx context.Context, stage Stage) error {
	ctx, span := telemetry.Tracer.Start(ctx, string(stage.State))
	defer span.End()

	start := time.Now()
	err := stage.Run(ctx)
	elapsed := time.Since(start)

	p.metrics.ObserveStage(stage.State, elapsed)
	contract.Debug().Debug("stage finished", "pipeline", p.name, "stage", stage.State, "elapsed", elapsed, "error", err)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return err
}

func (p *Pipeline) fail(span trace.Span, err error) error {
	p.state = schema.StageFailed
	span.SetStatus(codes.Error, err.Error())
	p.reporter.Report(schema.StageFailed, "Failed.")
	return err
}
