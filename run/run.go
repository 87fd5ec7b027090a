package run

import (
	"time"

	"github.com/google/uuid"
)

// Run records one execution of a pipeline.
type Run struct {
	// ID is the unique run identifier.
	ID string `json:"id"`
	// Pipeline is the name of the executed pipeline.
	Pipeline string `json:"pipeline"`
	// Status is the aggregate run state.
	Status RunStatus `json:"status"`
	// Batches is the ordering the run followed.
	Batches [][]string `json:"batches"`
	// Tasks holds per-task outcomes, by task name.
	Tasks map[string]*TaskResult `json:"tasks"`
	// CreatedAt is when the run was created.
	CreatedAt time.Time `json:"createdAt"`
	// StartedAt is when the first batch started.
	StartedAt time.Time `json:"startedAt,omitempty"`
	// CompletedAt is when the run reached a terminal state.
	CompletedAt time.Time `json:"completedAt,omitempty"`
}

// TaskResult records the outcome of one task in a run.
type TaskResult struct {
	// Name is the task name.
	Name string `json:"name"`
	// Status is the task state.
	Status TaskStatus `json:"status"`
	// Duration is how long the executor ran, across all attempts.
	Duration time.Duration `json:"duration"`
	// Attempts counts executor invocations, at least 1 once the task ran.
	Attempts int `json:"attempts,omitempty"`
	// Error is the executor's error message, if any.
	Error string `json:"error,omitempty"`
}

// NewRun creates a Run for a plan with every task marked Pending or
// Blocked according to whether it has predecessors.
func NewRun(plan *Plan) *Run {
	r := &Run{
		ID:        uuid.NewString(),
		Pipeline:  plan.Pipeline.Metadata.Name,
		Status:    RunRunning,
		Batches:   plan.Batches,
		Tasks:     make(map[string]*TaskResult, plan.Graph.Len()),
		CreatedAt: time.Now().UTC(),
	}
	for _, name := range plan.Graph.Tasks() {
		status := StatusPending
		if len(plan.Graph.Predecessors(name)) > 0 {
			status = StatusBlocked
		}
		r.Tasks[name] = &TaskResult{Name: name, Status: status}
	}
	return r
}

// Duration returns the wall-clock duration of the run, zero while the
// run is in flight.
func (r *Run) Duration() time.Duration {
	if r.CompletedAt.IsZero() || r.StartedAt.IsZero() {
		return 0
	}
	return r.CompletedAt.Sub(r.StartedAt)
}
