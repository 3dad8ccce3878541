package dataprocessing

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"housingprep/internal/infrastructure"
)

// PipelineTracer provides OpenTelemetry instrumentation for pipeline runs
type PipelineTracer struct {
	tracer  trace.Tracer
	metrics *infrastructure.PipelineMetrics
}

// NewPipelineTracer creates a tracer bound to providers
func NewPipelineTracer(providers *infrastructure.OTelProviders) (*PipelineTracer, error) {
	metrics, err := infrastructure.CreatePipelineMetrics(providers.Meter)
	if err != nil {
		return nil, fmt.Errorf("failed to create pipeline metrics: %w", err)
	}

	return &PipelineTracer{
		tracer:  providers.Tracer,
		metrics: metrics,
	}, nil
}

// TraceRun creates a span for a whole pipeline run
func (pt *PipelineTracer) TraceRun(ctx context.Context, pipeline, runID string, rowsIn int) (context.Context, trace.Span) {
	ctx, span := pt.tracer.Start(ctx, "pipeline.run."+pipeline,
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(
			attribute.String("pipeline.name", pipeline),
			attribute.String("pipeline.run_id", runID),
			attribute.Int("pipeline.rows_in", rowsIn),
		),
	)

	pt.metrics.RowsLoaded.Add(ctx, int64(rowsIn),
		metric.WithAttributes(attribute.String("pipeline", pipeline)),
	)

	return ctx, span
}

// TraceStage creates a span for one stage
func (pt *PipelineTracer) TraceStage(ctx context.Context, pipeline string, stage Stage) (context.Context, trace.Span) {
	return pt.tracer.Start(ctx, "pipeline.stage."+stage.ID(),
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(
			attribute.String("pipeline.name", pipeline),
			attribute.String("stage.id", stage.ID()),
			attribute.String("stage.name", stage.Name()),
		),
	)
}

// RecordStageCompletion records the stage report on the span and the metrics
func (pt *PipelineTracer) RecordStageCompletion(ctx context.Context, span trace.Span, pipeline string, report StageReport, err error) {
	status := "success"
	if err != nil {
		status = "failure"
	}

	span.SetAttributes(
		attribute.String("stage.status", status),
		attribute.Int("stage.rows_in", report.RowsIn),
		attribute.Int("stage.rows_out", report.RowsOut),
		attribute.Float64("stage.duration_seconds", report.Duration.Seconds()),
	)

	attrs := metric.WithAttributes(
		attribute.String("pipeline", pipeline),
		attribute.String("stage", report.Stage),
	)
	pt.metrics.StageDuration.Record(ctx, report.Duration.Seconds(),
		metric.WithAttributes(
			attribute.String("pipeline", pipeline),
			attribute.String("stage", report.Stage),
			attribute.String("status", status),
		),
	)

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return
	}

	if dropped := report.RowsDropped(); dropped > 0 {
		pt.metrics.RowsDropped.Add(ctx, int64(dropped), attrs)
	}
	if imputed := report.ValuesImputed(); imputed > 0 {
		pt.metrics.ValuesImputed.Add(ctx, int64(imputed), attrs)
	}
	if report.ParseFailures > 0 {
		span.SetAttributes(attribute.Int("stage.parse_failures", report.ParseFailures))
		pt.metrics.GeometryParseFailures.Add(ctx, int64(report.ParseFailures), attrs)
	}

	span.SetStatus(codes.Ok, "stage completed")
}

// RecordRunCompletion records the outcome of a pipeline run
func (pt *PipelineTracer) RecordRunCompletion(ctx context.Context, span trace.Span, pipeline string, duration time.Duration, err error) {
	status := "success"
	if err != nil {
		status = "failure"
	}

	span.SetAttributes(
		attribute.String("pipeline.status", status),
		attribute.Float64("pipeline.duration_seconds", duration.Seconds()),
	)

	attrs := metric.WithAttributes(
		attribute.String("pipeline", pipeline),
		attribute.String("status", status),
	)
	pt.metrics.RunsTotal.Add(ctx, 1, attrs)
	pt.metrics.RunDuration.Record(ctx, duration.Seconds(), attrs)

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return
	}
	span.SetStatus(codes.Ok, "pipeline completed")
}
