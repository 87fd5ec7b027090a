package run

import (
	"context"
	"time"

	"github.com/kdemir/pipekit/logger"
	"github.com/kdemir/pipekit/observability"
)

// WithTracing wraps an Executor with OpenTelemetry span creation.
// Each execution creates a span named "task.{taskName}".
func WithTracing(e Executor) Executor {
	return &tracingExecutor{inner: e}
}

type tracingExecutor struct {
	inner Executor
}

func (e *tracingExecutor) Name() string { return e.inner.Name() }

func (e *tracingExecutor) Execute(ctx context.Context, in TaskInput) error {
	ctx, span := observability.StartSpan(ctx, "task."+in.Task)
	defer span.End()

	observability.SetSpanAttribute(ctx, observability.AttrTask, in.Task)
	observability.SetSpanAttribute(ctx, observability.AttrTaskRef, in.Ref.Key())

	err := e.inner.Execute(ctx, in)
	if err != nil {
		observability.SetSpanError(ctx, err)
	}
	return err
}

// WithMetrics wraps an Executor with metric recording.
// Records task count, duration, and errors.
func WithMetrics(e Executor, metrics *observability.Metrics) Executor {
	return &metricsExecutor{inner: e, metrics: metrics}
}

type metricsExecutor struct {
	inner   Executor
	metrics *observability.Metrics
}

func (e *metricsExecutor) Name() string { return e.inner.Name() }

func (e *metricsExecutor) Execute(ctx context.Context, in TaskInput) error {
	start := time.Now()
	err := e.inner.Execute(ctx, in)
	duration := time.Since(start)

	status := "ok"
	if err != nil {
		status = "error"
		e.metrics.RecordError(ctx, "execute", in.Ref.Key())
	}
	e.metrics.RecordTask(ctx, in.Ref.Key(), status, duration)

	return err
}

// WithLogging wraps an Executor with execution logging.
// Logs: task name, reference, duration, and success/error status.
func WithLogging(e Executor, log *logger.Logger) Executor {
	if log == nil {
		log = logger.GetGlobalLogger()
	}
	return &loggingExecutor{inner: e, log: log}
}

type loggingExecutor struct {
	inner Executor
	log   *logger.Logger
}

func (e *loggingExecutor) Name() string { return e.inner.Name() }

func (e *loggingExecutor) Execute(ctx context.Context, in TaskInput) error {
	start := time.Now()
	err := e.inner.Execute(ctx, in)
	duration := time.Since(start)

	fields := map[string]interface{}{
		logger.FieldTask:     in.Task,
		"task_ref":           in.Ref.Key(),
		logger.FieldDuration: duration.Milliseconds(),
	}

	if err != nil {
		fields[logger.FieldError] = err.Error()
		e.log.Error("task failed", fields)
	} else {
		e.log.Debug("task completed", fields)
	}

	return err
}
