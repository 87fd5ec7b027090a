package run

import (
	"context"
	"sort"
	"sync"

	"github.com/kdemir/pipekit/pipeline"
)

// TaskInput is the fully resolved input handed to an executor.
type TaskInput struct {
	// Task is the pipeline task name.
	Task string
	// Ref is the external task definition being invoked.
	Ref pipeline.TaskRef
	// Params are the resolved parameter values, by name.
	Params map[string]pipeline.Value
	// Workspaces map the task's workspace roles to pipeline workspaces.
	Workspaces map[string]string
	// Retries is how many times a failed execution is retried.
	Retries int
}

// Executor runs one external task definition. Implementations are
// opaque to the engine: checkout, lint, build and deploy mechanics all
// live behind this interface.
type Executor interface {
	Name() string
	Execute(ctx context.Context, in TaskInput) error
}

// Registry provides executor lookup by task reference key
// ("Kind/Name", see pipeline.TaskRef.Key).
type Registry struct {
	mu        sync.RWMutex
	executors map[string]Executor
}

// NewRegistry creates a new empty Registry.
func NewRegistry() *Registry {
	return &Registry{executors: make(map[string]Executor)}
}

// Register adds an executor for a task reference key.
func (r *Registry) Register(key string, e Executor) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.executors[key] = e
}

// Get retrieves an executor by task reference key.
func (r *Registry) Get(key string) (Executor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.executors[key]
	return e, ok
}

// List returns sorted keys of all registered executors.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	keys := make([]string, 0, len(r.executors))
	for key := range r.executors {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// ExecutorFunc adapts a function to the Executor interface.
type ExecutorFunc struct {
	// ExecutorName identifies the executor in logs.
	ExecutorName string
	// Fn is invoked for each task.
	Fn func(ctx context.Context, in TaskInput) error
}

func (e ExecutorFunc) Name() string { return e.ExecutorName }

func (e ExecutorFunc) Execute(ctx context.Context, in TaskInput) error {
	return e.Fn(ctx, in)
}
