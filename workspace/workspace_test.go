package workspace

import (
	"testing"

	"github.com/kdemir/pipekit/errors"
	"github.com/kdemir/pipekit/pipeline"
)

func TestBind_Declared(t *testing.T) {
	b := NewBinder([]pipeline.WorkspaceDecl{{Name: "shared-data"}})
	if err := b.Bind("clone", "output", "shared-data"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestBind_Unknown(t *testing.T) {
	b := NewBinder([]pipeline.WorkspaceDecl{{Name: "shared-data"}})
	err := b.Bind("clone", "output", "cache")
	if !errors.HasCode(err, errors.ErrCodeUnknownWorkspace) {
		t.Fatalf("expected UNKNOWN_WORKSPACE, got %v", err)
	}
	appErr, _ := errors.AsAppError(err)
	if appErr.Details["task"] != "clone" || appErr.Details["workspace"] != "cache" {
		t.Errorf("expected task and workspace details, got %v", appErr.Details)
	}
	if appErr.Details["role"] != "output" {
		t.Errorf("expected role detail, got %v", appErr.Details)
	}
}

func TestBindTask(t *testing.T) {
	b := NewBinder([]pipeline.WorkspaceDecl{{Name: "shared-data"}, {Name: "cache"}})
	task := pipeline.Task{
		Name: "build",
		Workspaces: []pipeline.WorkspaceBinding{
			{Name: "source", Workspace: "shared-data"},
			{Name: "deps", Workspace: "cache"},
		},
	}
	bound, err := b.BindTask(task)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if bound["source"] != "shared-data" || bound["deps"] != "cache" {
		t.Fatalf("unexpected bindings: %v", bound)
	}
}

func TestCheck_NeverSilentlyIgnored(t *testing.T) {
	p := &pipeline.Pipeline{
		Metadata: pipeline.Metadata{Name: "p"},
		Spec: pipeline.Spec{
			Workspaces: []pipeline.WorkspaceDecl{{Name: "shared-data"}},
			Tasks: []pipeline.Task{
				{
					Name:    "clone",
					TaskRef: pipeline.TaskRef{Name: "git-clone"},
					Workspaces: []pipeline.WorkspaceBinding{
						{Name: "output", Workspace: "shared-data"},
					},
				},
				{
					Name:    "build",
					TaskRef: pipeline.TaskRef{Name: "buildah"},
					Workspaces: []pipeline.WorkspaceBinding{
						{Name: "source", Workspace: "scratch"},
					},
				},
			},
		},
	}
	err := Check(p)
	if !errors.HasCode(err, errors.ErrCodeUnknownWorkspace) {
		t.Fatalf("expected UNKNOWN_WORKSPACE, got %v", err)
	}
}

func TestCheck_NoWorkspaces(t *testing.T) {
	p := &pipeline.Pipeline{
		Spec: pipeline.Spec{
			Tasks: []pipeline.Task{{Name: "a", TaskRef: pipeline.TaskRef{Name: "t"}}},
		},
	}
	if err := Check(p); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
