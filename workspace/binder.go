package workspace

import (
	"github.com/kdemir/pipekit/errors"
	"github.com/kdemir/pipekit/pipeline"
)

// Binder resolves task workspace roles against a pipeline's declared
// workspaces.
type Binder struct {
	declared map[string]bool
}

// NewBinder creates a Binder over the pipeline's workspace declarations.
func NewBinder(decls []pipeline.WorkspaceDecl) *Binder {
	declared := make(map[string]bool, len(decls))
	for _, d := range decls {
		declared[d.Name] = true
	}
	return &Binder{declared: declared}
}

// Bind checks one binding of a task's workspace role to a pipeline
// workspace, failing with UNKNOWN_WORKSPACE if the target is undeclared.
func (b *Binder) Bind(task, role, workspaceName string) error {
	if !b.declared[workspaceName] {
		return errors.UnknownWorkspace(task, workspaceName).WithDetail("role", role)
	}
	return nil
}

// BindTask resolves all of a task's workspace bindings, returning a map
// from role name to pipeline workspace.
func (b *Binder) BindTask(t pipeline.Task) (map[string]string, error) {
	bound := make(map[string]string, len(t.Workspaces))
	for _, wb := range t.Workspaces {
		if err := b.Bind(t.Name, wb.Name, wb.Workspace); err != nil {
			return nil, err
		}
		bound[wb.Name] = wb.Workspace
	}
	return bound, nil
}

// Check verifies every workspace binding in the pipeline.
func Check(p *pipeline.Pipeline) error {
	b := NewBinder(p.Spec.Workspaces)
	for _, t := range p.Spec.Tasks {
		if _, err := b.BindTask(t); err != nil {
			return err
		}
	}
	return nil
}
