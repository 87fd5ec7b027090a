package run

// TaskStatus is the execution state of one task in a run.
type TaskStatus string

const (
	// StatusPending means the task has not been considered yet.
	StatusPending TaskStatus = "Pending"
	// StatusBlocked means at least one predecessor has not yet succeeded.
	StatusBlocked TaskStatus = "Blocked"
	// StatusRunning means the task's executor is in flight.
	StatusRunning TaskStatus = "Running"
	// StatusSucceeded is terminal: the executor returned without error.
	StatusSucceeded TaskStatus = "Succeeded"
	// StatusFailed is terminal: the executor returned an error.
	StatusFailed TaskStatus = "Failed"
	// StatusSkipped is terminal: a transitive predecessor failed.
	StatusSkipped TaskStatus = "Skipped"
)

// Terminal reports whether the status is final.
func (s TaskStatus) Terminal() bool {
	switch s {
	case StatusSucceeded, StatusFailed, StatusSkipped:
		return true
	}
	return false
}

// RunStatus is the aggregate state of a run.
type RunStatus string

const (
	// RunRunning means the engine is still executing batches.
	RunRunning RunStatus = "Running"
	// RunSucceeded means every task succeeded.
	RunSucceeded RunStatus = "Succeeded"
	// RunFailed means at least one task failed.
	RunFailed RunStatus = "Failed"
	// RunCancelled means the context was cancelled mid-run.
	RunCancelled RunStatus = "Cancelled"
)

// Terminal reports whether the run status is final.
func (s RunStatus) Terminal() bool {
	return s == RunSucceeded || s == RunFailed || s == RunCancelled
}
