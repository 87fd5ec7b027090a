package testutil

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/kdemir/pipekit/run"
)

// DeployPipelineYAML is a small deploy pipeline covering parameters,
// workspaces and fan-out ordering.
const DeployPipelineYAML = `
apiVersion: pipekit.dev/v1
kind: Pipeline
metadata:
  name: cd-pipeline
spec:
  params:
    - name: repo-url
      type: string
    - name: branch
      type: string
      default: main
  workspaces:
    - name: shared-data
  tasks:
    - name: clone
      taskRef:
        name: git-clone
      params:
        - name: url
          value: $(params.repo-url)
        - name: revision
          value: $(params.branch)
      workspaces:
        - name: output
          workspace: shared-data
    - name: lint
      taskRef:
        name: flake8
      runAfter: [clone]
      workspaces:
        - name: source
          workspace: shared-data
    - name: tests
      taskRef:
        name: nose
      runAfter: [clone]
      workspaces:
        - name: source
          workspace: shared-data
    - name: build
      taskRef:
        name: buildah
      runAfter: [lint, tests]
      workspaces:
        - name: source
          workspace: shared-data
`

// CyclicPipelineYAML is rejected with a cycle error.
const CyclicPipelineYAML = `
apiVersion: pipekit.dev/v1
kind: Pipeline
metadata:
  name: cyclic
spec:
  tasks:
    - name: a
      taskRef:
        name: step
      runAfter: [b]
    - name: b
      taskRef:
        name: step
      runAfter: [a]
`

// WriteFixture writes a pipeline definition to {name}.yaml in a test
// temp directory and returns the file path.
func WriteFixture(t *testing.T, name, yaml string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name+".yaml")
	if err := os.WriteFile(path, []byte(yaml), 0o644); err != nil {
		t.Fatalf("writing fixture %s: %v", name, err)
	}
	return path
}

// RecordingExecutor hands out executors that record the order tasks ran
// in and can be told to fail selected tasks.
type RecordingExecutor struct {
	mu    sync.Mutex
	order []string
	fail  map[string]error
}

// NewRecordingExecutor creates an empty recorder.
func NewRecordingExecutor() *RecordingExecutor {
	return &RecordingExecutor{fail: make(map[string]error)}
}

// FailTask makes executions of the named task return err.
func (r *RecordingExecutor) FailTask(task string, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.fail[task] = err
}

// Executor returns an executor with the given name that records each
// task it runs.
func (r *RecordingExecutor) Executor(name string) run.Executor {
	return run.ExecutorFunc{
		ExecutorName: name,
		Fn: func(_ context.Context, in run.TaskInput) error {
			r.mu.Lock()
			defer r.mu.Unlock()
			r.order = append(r.order, in.Task)
			return r.fail[in.Task]
		},
	}
}

// Order returns the tasks in execution order.
func (r *RecordingExecutor) Order() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// Ran reports whether the named task executed.
func (r *RecordingExecutor) Ran(task string) bool {
	for _, name := range r.Order() {
		if name == task {
			return true
		}
	}
	return false
}
