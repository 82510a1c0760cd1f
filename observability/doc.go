// Package observability provides OpenTelemetry tracing and metrics for
// pipeline evaluations.
//
// Tracing:
//
//	cfg := observability.DefaultTracerConfig("seqdemo")
//	tp, err := observability.InitTracer(ctx, &cfg)
//	defer tp.Shutdown(ctx)
//
// Metrics:
//
//	metrics, err := observability.NewMetrics(observability.Meter("seqdemo"))
//	metrics.RecordEvaluation(ctx, "even-numbers", "sequential", "ok", duration)
//
// Evaluations:
//
//	ec := observability.NewEvaluationContext(id, "even-numbers", "sequential", 2, metrics)
//	ctx, span := ec.Start(ctx)
//	defer ec.End(ctx, span, "sequence", "", err)
//
// TracerComponent and MeterComponent wrap provider setup and shutdown as
// lifecycle components.
package observability
