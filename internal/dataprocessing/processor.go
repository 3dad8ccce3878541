package dataprocessing

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	apperrors "housingprep/internal/errors"
	"housingprep/internal/infrastructure"
	"housingprep/pkg/contracts/domain"
)

// Stage is one transformation step of a pipeline
type Stage interface {
	// ID returns the unique identifier for this stage
	ID() string

	// Name returns the human-readable name for this stage
	Name() string

	// Schema returns the columns this stage requires or may use
	Schema() StageSchema

	// Apply transforms t into a new table. t is never modified.
	Apply(ctx context.Context, t *domain.Table) (*domain.Table, StageReport, error)
}

// BaseStage provides the identity part of a Stage
type BaseStage struct {
	id     string
	name   string
	schema StageSchema
}

// NewBaseStage creates a new base stage
func NewBaseStage(id, name string, schema StageSchema) BaseStage {
	return BaseStage{id: id, name: name, schema: schema}
}

// ID returns the stage ID
func (b *BaseStage) ID() string {
	return b.id
}

// Name returns the stage name
func (b *BaseStage) Name() string {
	return b.name
}

// Schema returns the stage schema
func (b *BaseStage) Schema() StageSchema {
	return b.schema
}

// Pipeline runs stages in order over a table
type Pipeline struct {
	name   string
	stages []Stage
	logger *slog.Logger
	tracer *PipelineTracer
}

// NewPipeline creates a pipeline. A nil providers value disables telemetry.
func NewPipeline(name string, stages []Stage, logger *slog.Logger, providers *infrastructure.OTelProviders) (*Pipeline, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if providers == nil {
		providers = infrastructure.NoopProviders(logger)
	}

	tracer, err := NewPipelineTracer(providers)
	if err != nil {
		return nil, err
	}

	return &Pipeline{
		name:   name,
		stages: stages,
		logger: infrastructure.WithComponent(logger, "pipeline").With("pipeline", name),
		tracer: tracer,
	}, nil
}

// NewQualityPipeline creates Pipeline A: filter, impute, encode, derive
func NewQualityPipeline(opts QualityOptions, logger *slog.Logger, providers *infrastructure.OTelProviders) (*Pipeline, error) {
	return NewPipeline(PipelineQuality, QualityStages(opts), logger, providers)
}

// NewGeometryPipeline creates Pipeline B: coordinate extraction
func NewGeometryPipeline(opts GeometryOptions, logger *slog.Logger, providers *infrastructure.OTelProviders) (*Pipeline, error) {
	return NewPipeline(PipelineGeometry, GeometryStages(opts), logger, providers)
}

// Name returns the pipeline name
func (p *Pipeline) Name() string {
	return p.name
}

// Stages returns the pipeline stages in run order
func (p *Pipeline) Stages() []Stage {
	out := make([]Stage, len(p.stages))
	copy(out, p.stages)
	return out
}

// Run threads t through every stage. The context is checked between stages.
// On error the returned report holds the stages that completed.
func (p *Pipeline) Run(ctx context.Context, t *domain.Table) (*domain.Table, *RunReport, error) {
	ctx = infrastructure.EnsureRunID(ctx)
	report := &RunReport{
		RunID:    infrastructure.GetRunID(ctx),
		Pipeline: p.name,
		RowsIn:   t.NumRows(),
	}
	start := time.Now()

	ctx, span := p.tracer.TraceRun(ctx, p.name, report.RunID, t.NumRows())
	defer span.End()

	p.logger.InfoContext(ctx, "Pipeline started",
		slog.Int("rows", t.NumRows()),
		slog.Int("columns", t.NumCols()),
		slog.Int("stages", len(p.stages)))

	out, err := p.runStages(ctx, t, report)
	report.Duration = time.Since(start)
	p.tracer.RecordRunCompletion(ctx, span, p.name, report.Duration, err)
	if err != nil {
		p.logger.ErrorContext(ctx, "Pipeline failed",
			slog.String("error", err.Error()),
			slog.Duration("duration", report.Duration))
		return nil, report, err
	}

	report.RowsOut = out.NumRows()
	p.logger.InfoContext(ctx, "Pipeline completed",
		slog.Int("rows_in", report.RowsIn),
		slog.Int("rows_out", report.RowsOut),
		slog.Int("columns", out.NumCols()),
		slog.Duration("duration", report.Duration))
	return out, report, nil
}

func (p *Pipeline) runStages(ctx context.Context, t *domain.Table, report *RunReport) (*domain.Table, error) {
	for _, stage := range p.stages {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("pipeline %s cancelled before %s: %w", p.name, stage.ID(), err)
		}
		for _, col := range stage.Schema().Required {
			if !t.HasColumn(col) {
				return nil, apperrors.NewMissingColumnError(col).WithContext("stage", stage.ID())
			}
		}

		stageCtx, span := p.tracer.TraceStage(ctx, p.name, stage)
		start := time.Now()
		out, sr, err := stage.Apply(stageCtx, t)
		sr.Stage = stage.ID()
		sr.Duration = time.Since(start)
		p.tracer.RecordStageCompletion(stageCtx, span, p.name, sr, err)
		span.End()

		if err != nil {
			return nil, fmt.Errorf("stage %s: %w", stage.ID(), err)
		}

		p.logStage(ctx, sr)
		report.Stages = append(report.Stages, sr)
		t = out
	}
	return t, nil
}

// logStage writes the diagnostics a stage returned
func (p *Pipeline) logStage(ctx context.Context, sr StageReport) {
	logger := p.logger.With("stage", sr.Stage)

	if len(sr.ColumnsSkipped) > 0 {
		logger.InfoContext(ctx, "Columns not present, skipped",
			slog.Any("columns", sr.ColumnsSkipped))
	}
	if len(sr.FeaturesSkipped) > 0 {
		logger.InfoContext(ctx, "Features not derived, source columns missing",
			slog.Any("features", sr.FeaturesSkipped))
	}
	for _, imp := range sr.Imputations {
		logger.InfoContext(ctx, "Imputed missing values",
			slog.String("column", imp.Column),
			slog.String("strategy", imp.Strategy),
			slog.String("value", imp.Value.String()),
			slog.Int("count", imp.Count))
	}
	if len(sr.Degenerate) > 0 {
		logger.WarnContext(ctx, "Columns left without values",
			slog.Any("columns", sr.Degenerate))
	}
	for _, f := range sr.FailureSamples {
		logger.WarnContext(ctx, "Geometry parse failure",
			slog.Int("row", f.Row),
			slog.String("reason", f.Reason))
	}
	if sr.ParseFailures > len(sr.FailureSamples) {
		logger.WarnContext(ctx, "Further geometry parse failures not logged",
			slog.Int("omitted", sr.ParseFailures-len(sr.FailureSamples)))
	}

	logger.InfoContext(ctx, "Stage completed",
		slog.Int("rows_in", sr.RowsIn),
		slog.Int("rows_out", sr.RowsOut),
		slog.Int("rows_dropped", sr.RowsDropped()),
		slog.Any("columns_used", sr.ColumnsUsed),
		slog.Any("columns_added", sr.ColumnsAdded),
		slog.Any("columns_dropped", sr.ColumnsDropped),
		slog.Int("parse_failures", sr.ParseFailures),
		slog.Duration("duration", sr.Duration))
}
