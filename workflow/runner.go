package workflow

import (
	"context"
	"time"

	"github.com/kdemir/pipekit/errors"
	"github.com/kdemir/pipekit/logger"
	"github.com/kdemir/pipekit/pipeline"
	"github.com/kdemir/pipekit/run"
)

// ShellExecutor is the registry key for inline run steps.
const ShellExecutor = "shell"

// ScriptParam carries the inline command of a run step to the shell
// executor.
const ScriptParam = "script"

// ExecutorKey returns the registry key for the step's executor: the
// action reference for uses steps, ShellExecutor for run steps.
func (s Step) ExecutorKey() string {
	if s.Uses != "" {
		return s.Uses
	}
	return ShellExecutor
}

// JobRun records one sequential execution of a workflow job.
type JobRun struct {
	// Workflow is the workflow name.
	Workflow string `json:"workflow"`
	// Job is the job identifier.
	Job string `json:"job"`
	// Status is the aggregate job state.
	Status run.RunStatus `json:"status"`
	// Steps holds per-step outcomes in execution order.
	Steps []StepResult `json:"steps"`
	// StartedAt is when the first step started.
	StartedAt time.Time `json:"startedAt"`
	// CompletedAt is when the job reached a terminal state.
	CompletedAt time.Time `json:"completedAt"`
}

// StepResult records the outcome of one step.
type StepResult struct {
	// Name is the step display name.
	Name string `json:"name"`
	// Status is the step state.
	Status run.TaskStatus `json:"status"`
	// Duration is how long the executor ran.
	Duration time.Duration `json:"duration"`
	// Error is the executor's error message, if any.
	Error string `json:"error,omitempty"`
}

// Runner executes workflow jobs step by step. Unlike the pipeline
// engine there is no parallelism: a job is a straight line, and the
// first failure skips everything after it.
type Runner struct {
	log *logger.Logger
}

// NewRunner creates a Runner logging through the given logger.
func NewRunner(log *logger.Logger) *Runner {
	if log == nil {
		log = logger.GetGlobalLogger()
	}
	return &Runner{log: log.WithComponent("workflow")}
}

// RunJob executes one named job of the workflow through the registry's
// executors. Steps run strictly in order; a failed step marks every
// remaining step Skipped. As with the pipeline engine, the error
// return covers runner-level failures only.
func (r *Runner) RunJob(ctx context.Context, w *Workflow, jobName string, reg *run.Registry) (*JobRun, error) {
	job, ok := w.Jobs[jobName]
	if !ok {
		return nil, errors.NotFound("job", jobName)
	}

	for _, s := range job.Steps {
		if _, found := reg.Get(s.ExecutorKey()); !found {
			return nil, errors.UnknownExecutor(s.ExecutorKey()).WithDetail("step", s.DisplayName())
		}
	}

	jr := &JobRun{
		Workflow:  w.Name,
		Job:       jobName,
		Status:    run.RunRunning,
		Steps:     make([]StepResult, len(job.Steps)),
		StartedAt: time.Now().UTC(),
	}
	for i, s := range job.Steps {
		jr.Steps[i] = StepResult{Name: s.DisplayName(), Status: run.StatusPending}
	}

	log := r.log.WithFields(map[string]interface{}{
		logger.FieldWorkflow: w.Name,
		"job":                jobName,
	})
	log.Info("job started", logger.Fields("steps", len(job.Steps)))

	failed := false
	for i, s := range job.Steps {
		if failed {
			jr.Steps[i].Status = run.StatusSkipped
			continue
		}
		if err := ctx.Err(); err != nil {
			jr.Status = run.RunCancelled
			jr.CompletedAt = time.Now().UTC()
			return jr, err
		}

		executor, _ := reg.Get(s.ExecutorKey())
		jr.Steps[i].Status = run.StatusRunning

		start := time.Now()
		err := executor.Execute(ctx, stepInput(s))
		jr.Steps[i].Duration = time.Since(start)

		if err != nil {
			jr.Steps[i].Status = run.StatusFailed
			jr.Steps[i].Error = err.Error()
			failed = true
			log.Error("step failed", logger.Fields(
				logger.FieldStep, s.DisplayName(),
				logger.FieldError, err.Error(),
			))
			continue
		}
		jr.Steps[i].Status = run.StatusSucceeded
		log.Debug("step completed", logger.Fields(logger.FieldStep, s.DisplayName()))
	}

	jr.CompletedAt = time.Now().UTC()
	jr.Status = run.RunSucceeded
	if failed {
		jr.Status = run.RunFailed
	}

	log.Info("job finished", logger.Fields(logger.FieldStatus, string(jr.Status)))
	return jr, nil
}

// stepInput converts a step into the executor input shape shared with
// the pipeline engine. Action inputs arrive as params; inline commands
// arrive under ScriptParam.
func stepInput(s Step) run.TaskInput {
	params := make(map[string]pipeline.Value, len(s.With)+1)
	for k, v := range s.With {
		params[k] = pipeline.NewString(v)
	}
	if s.Run != "" {
		params[ScriptParam] = pipeline.NewString(s.Run)
	}
	return run.TaskInput{
		Task:   s.DisplayName(),
		Ref:    pipeline.TaskRef{Name: s.ExecutorKey()},
		Params: params,
	}
}
