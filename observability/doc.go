// Package observability provides OpenTelemetry tracing and metrics integration
// for pipeline and run observability.
//
// Tracing:
//
//	tp, err := observability.InitTracer(ctx, observability.DefaultTracerConfig("pipekit"))
//	defer tp.Shutdown(ctx)
//
//	ctx, span := observability.StartSpan(ctx, observability.SpanRunExecute)
//	defer span.End()
//
// Metrics:
//
//	mp, err := observability.InitMeter(ctx, observability.DefaultMeterConfig("pipekit"))
//	defer mp.Shutdown(ctx)
//
//	metrics, err := observability.NewMetrics(observability.Meter("pipekit"))
//	metrics.RecordRun(ctx, "cd-pipeline", "succeeded", duration)
//
// Health Checks:
//
//	health := observability.NewServiceHealth("pipekit", "1.0.0")
//	health.AddComponent(checker.CheckHealth(ctx))
package observability
