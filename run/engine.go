package run

import (
	"context"
	"sync"
	"time"

	"github.com/kdemir/pipekit/logger"
	"github.com/kdemir/pipekit/resilience"
)

// retryBackoff is the initial delay between task retry attempts.
const retryBackoff = 250 * time.Millisecond

// Engine executes plans batch by batch.
type Engine struct {
	// MaxParallel limits concurrent tasks per batch (0 = unlimited).
	MaxParallel int

	log *logger.Logger
}

// NewEngine creates an Engine logging through the given logger.
func NewEngine(maxParallel int, log *logger.Logger) *Engine {
	if log == nil {
		log = logger.GetGlobalLogger()
	}
	return &Engine{
		MaxParallel: maxParallel,
		log:         log.WithComponent("engine"),
	}
}

// Execute runs the plan's tasks in batch order through the registry's
// executors and returns the completed Run. Tasks within one batch run
// concurrently. A failed task marks every transitive dependent Skipped;
// the engine still executes the remaining unaffected tasks. The error
// return is reserved for engine-level failures such as a missing
// executor or a cancelled context, not for task failures, which are
// reported on the Run itself.
func (e *Engine) Execute(ctx context.Context, plan *Plan, reg *Registry) (*Run, error) {
	if err := plan.CheckExecutors(reg); err != nil {
		return nil, err
	}

	r := NewRun(plan)
	r.StartedAt = time.Now().UTC()
	log := e.log.WithPipeline(r.Pipeline).WithRun(r.ID)

	log.Info("run started", logger.Fields(
		"tasks", plan.Graph.Len(),
		"batches", len(plan.Batches),
	))

	for i, batch := range plan.Batches {
		if err := ctx.Err(); err != nil {
			r.Status = RunCancelled
			r.CompletedAt = time.Now().UTC()
			return r, err
		}

		var ready []string
		for _, name := range batch {
			if r.Tasks[name].Status == StatusSkipped {
				continue
			}
			ready = append(ready, name)
		}
		if len(ready) == 0 {
			continue
		}

		log.Debug("batch started", logger.Fields(logger.FieldBatch, i, "tasks", ready))
		e.executeBatch(ctx, plan, reg, r, ready)

		for _, name := range ready {
			if r.Tasks[name].Status == StatusFailed {
				for dep := range plan.Graph.TransitiveDependents(name) {
					r.Tasks[dep].Status = StatusSkipped
				}
			}
		}
	}

	r.CompletedAt = time.Now().UTC()
	r.Status = RunSucceeded
	for _, tr := range r.Tasks {
		if tr.Status == StatusFailed {
			r.Status = RunFailed
			break
		}
	}

	log.Info("run finished", logger.Fields(
		logger.FieldStatus, string(r.Status),
		logger.FieldDuration, r.Duration().Milliseconds(),
	))
	return r, nil
}

func (e *Engine) executeBatch(ctx context.Context, plan *Plan, reg *Registry, r *Run, names []string) {
	var mu sync.Mutex
	var wg sync.WaitGroup

	sem := make(chan struct{}, e.concurrency(len(names)))

	for _, name := range names {
		wg.Add(1)
		go func(taskName string) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			in := plan.Inputs[taskName]
			executor, _ := reg.Get(in.Ref.Key())

			mu.Lock()
			r.Tasks[taskName].Status = StatusRunning
			mu.Unlock()

			start := time.Now()
			attempts := 0
			attempt := func() error {
				attempts++
				return executor.Execute(ctx, in)
			}
			var err error
			if in.Retries > 0 {
				err = resilience.RetryFunc(ctx, resilience.RetryConfig{
					MaxAttempts:    in.Retries + 1,
					InitialBackoff: retryBackoff,
					OnRetry: func(n int, err error, backoff time.Duration) {
						e.log.Warn("task retrying", logger.Fields(
							logger.FieldTask, taskName,
							"attempt", n,
							logger.FieldError, err.Error(),
						))
					},
				}, attempt)
			} else {
				err = attempt()
			}
			duration := time.Since(start)

			mu.Lock()
			defer mu.Unlock()
			tr := r.Tasks[taskName]
			tr.Duration = duration
			tr.Attempts = attempts
			if err != nil {
				tr.Status = StatusFailed
				tr.Error = err.Error()
				return
			}
			tr.Status = StatusSucceeded
		}(name)
	}

	wg.Wait()
}

func (e *Engine) concurrency(batchSize int) int {
	if e.MaxParallel <= 0 || e.MaxParallel > batchSize {
		return batchSize
	}
	return e.MaxParallel
}
