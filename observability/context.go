package observability

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// EvaluationContext holds observability context for one pipeline evaluation.
type EvaluationContext struct {
	ID        string
	Pipeline  string
	Mode      string
	Stages    int
	StartTime time.Time
	Metrics   *Metrics
}

// NewEvaluationContext creates a new evaluation context.
// If metrics is nil, metric recording is silently skipped.
func NewEvaluationContext(id, pipeline, mode string, stages int, metrics *Metrics) *EvaluationContext {
	return &EvaluationContext{
		ID:        id,
		Pipeline:  pipeline,
		Mode:      mode,
		Stages:    stages,
		StartTime: time.Now(),
		Metrics:   metrics,
	}
}

type evaluationContextKey struct{}

// WithEvaluationContext stores an EvaluationContext in the context.
func WithEvaluationContext(ctx context.Context, ec *EvaluationContext) context.Context {
	return context.WithValue(ctx, evaluationContextKey{}, ec)
}

// EvaluationContextFromContext retrieves the EvaluationContext from context, or nil.
func EvaluationContextFromContext(ctx context.Context) *EvaluationContext {
	if ec, ok := ctx.Value(evaluationContextKey{}).(*EvaluationContext); ok {
		return ec
	}
	return nil
}

// Start opens the evaluation span and stores ec in the returned context.
func (ec *EvaluationContext) Start(ctx context.Context) (context.Context, trace.Span) {
	ctx, span := StartSpan(ctx, SpanEvaluate)
	span.SetAttributes(
		attribute.String(AttrEvaluationID, ec.ID),
		attribute.String(AttrPipeline, ec.Pipeline),
		attribute.String(AttrMode, ec.Mode),
		attribute.Int(AttrStages, ec.Stages),
	)
	return WithEvaluationContext(ctx, ec), span
}

// RecordStage records the number of elements a stage emitted.
func (ec *EvaluationContext) RecordStage(ctx context.Context, stage string, n int64) {
	if ec.Metrics != nil {
		ec.Metrics.RecordStageElements(ctx, ec.Pipeline, stage, n)
	}
}

// End ends the span and records evaluation metrics. code is the error code
// reported for a failed evaluation.
func (ec *EvaluationContext) End(ctx context.Context, span trace.Span, resultKind, code string, err error) {
	duration := time.Since(ec.StartTime)

	status := "ok"
	if err != nil {
		status = "error"
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		span.SetAttributes(attribute.String(AttrErrorMessage, err.Error()))
	}
	if resultKind != "" {
		span.SetAttributes(attribute.String(AttrResultKind, resultKind))
	}

	span.SetAttributes(
		attribute.String(AttrStatus, status),
		attribute.Int64(AttrDurationMs, duration.Milliseconds()),
	)
	span.End()

	if ec.Metrics != nil {
		ec.Metrics.RecordEvaluation(ctx, ec.Pipeline, ec.Mode, status, duration)
		if err != nil {
			ec.Metrics.RecordError(ctx, code, ec.Pipeline)
		}
	}
}

// Duration returns the elapsed time since the evaluation started.
func (ec *EvaluationContext) Duration() time.Duration {
	return time.Since(ec.StartTime)
}
