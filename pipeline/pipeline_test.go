package pipeline

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const exampleYAML = `
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
    - name: build-args
      type: array
      default: []
  workspaces:
    - name: shared-data
  tasks:
    - name: init
      taskRef:
        name: env-setup
        kind: ClusterTask
    - name: clone
      taskRef:
        name: git-clone
        kind: ClusterTask
      runAfter: [init]
      workspaces:
        - name: output
          workspace: shared-data
      params:
        - name: url
          value: $(params.repo-url)
        - name: revision
          value: $(params.branch)
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
        kind: ClusterTask
      runAfter: [lint, tests]
      workspaces:
        - name: source
          workspace: shared-data
      params:
        - name: args
          value: $(params.build-args)
    - name: deploy
      taskRef:
        name: openshift-client
        kind: ClusterTask
      runAfter: [build]
      params:
        - name: branch
          value: $(params.branch)
`

func TestParse_Example(t *testing.T) {
	p, err := Parse([]byte(exampleYAML))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Metadata.Name != "cd-pipeline" {
		t.Fatalf("expected cd-pipeline, got %q", p.Metadata.Name)
	}
	if len(p.Spec.Tasks) != 6 {
		t.Fatalf("expected 6 tasks, got %d", len(p.Spec.Tasks))
	}
	if len(p.Spec.Params) != 3 {
		t.Fatalf("expected 3 params, got %d", len(p.Spec.Params))
	}

	clone := p.Spec.Tasks[1]
	if clone.Name != "clone" {
		t.Fatalf("expected clone, got %q", clone.Name)
	}
	if clone.TaskRef.Kind != KindClusterTask {
		t.Errorf("expected ClusterTask, got %q", clone.TaskRef.Kind)
	}
	if len(clone.RunAfter) != 1 || clone.RunAfter[0] != "init" {
		t.Errorf("unexpected runAfter: %v", clone.RunAfter)
	}
	if clone.Workspaces[0].Workspace != "shared-data" {
		t.Errorf("unexpected workspace binding: %+v", clone.Workspaces[0])
	}
	if clone.Params[0].Value.StringVal != "$(params.repo-url)" {
		t.Errorf("unexpected param value: %+v", clone.Params[0].Value)
	}
}

func TestParse_Invalid(t *testing.T) {
	if _, err := Parse([]byte("spec: [not: a: pipeline")); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestValue_UnmarshalStringAndArray(t *testing.T) {
	p, err := Parse([]byte(exampleYAML))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	branch, ok := p.Spec.FindParam("branch")
	if !ok {
		t.Fatal("expected branch param")
	}
	if branch.Default == nil || branch.Default.Type != ParamTypeString || branch.Default.StringVal != "main" {
		t.Fatalf("unexpected default: %+v", branch.Default)
	}

	args, ok := p.Spec.FindParam("build-args")
	if !ok {
		t.Fatal("expected build-args param")
	}
	if args.Default == nil || args.Default.Type != ParamTypeArray {
		t.Fatalf("unexpected default: %+v", args.Default)
	}
}

func TestValue_RejectsMapping(t *testing.T) {
	_, err := Parse([]byte(`
metadata:
  name: p
spec:
  tasks:
    - name: a
      taskRef: {name: t}
      params:
        - name: x
          value: {nested: true}
`))
	if err == nil {
		t.Fatal("expected error for mapping param value")
	}
	if !strings.Contains(err.Error(), "string or a list of strings") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestValue_JSONRoundTrip(t *testing.T) {
	v := NewArray("a", "b")
	data, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var back Value
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !back.Equal(v) {
		t.Fatalf("expected %v, got %v", v, back)
	}

	s := NewString("main")
	data, _ = json.Marshal(s)
	if string(data) != `"main"` {
		t.Fatalf("expected bare string, got %s", data)
	}
}

func TestValue_Equal(t *testing.T) {
	if !NewString("x").Equal(NewString("x")) {
		t.Error("expected equal strings")
	}
	if NewString("x").Equal(NewArray("x")) {
		t.Error("expected type mismatch to be unequal")
	}
	if NewArray("a", "b").Equal(NewArray("a")) {
		t.Error("expected length mismatch to be unequal")
	}
}

func TestTaskRef_Key(t *testing.T) {
	if got := (TaskRef{Name: "git-clone", Kind: KindClusterTask}).Key(); got != "ClusterTask/git-clone" {
		t.Errorf("unexpected key: %q", got)
	}
	// kind defaults to Task
	if got := (TaskRef{Name: "nose"}).Key(); got != "Task/nose" {
		t.Errorf("unexpected key: %q", got)
	}
}

func TestValidate_Example(t *testing.T) {
	p, err := Parse([]byte(exampleYAML))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := p.Validate(); err != nil {
		t.Fatalf("expected valid pipeline, got %v", err)
	}
}

func TestValidate_RejectsBadNames(t *testing.T) {
	p := &Pipeline{
		Metadata: Metadata{Name: "Bad Name"},
		Spec: Spec{
			Tasks: []Task{{Name: "ok", TaskRef: TaskRef{Name: "t"}}},
		},
	}
	if err := p.Validate(); err == nil {
		t.Fatal("expected error for invalid metadata.name")
	}
}

func TestValidate_DuplicateParams(t *testing.T) {
	p := &Pipeline{
		Metadata: Metadata{Name: "p"},
		Spec: Spec{
			Params: []ParamSpec{{Name: "branch"}, {Name: "branch"}},
			Tasks:  []Task{{Name: "a", TaskRef: TaskRef{Name: "t"}}},
		},
	}
	if err := p.Validate(); err == nil {
		t.Fatal("expected error for duplicate params")
	}
}

func TestValidate_DefaultTypeMismatch(t *testing.T) {
	def := NewArray("a")
	p := &Pipeline{
		Metadata: Metadata{Name: "p"},
		Spec: Spec{
			Params: []ParamSpec{{Name: "branch", Type: ParamTypeString, Default: &def}},
			Tasks:  []Task{{Name: "a", TaskRef: TaskRef{Name: "t"}}},
		},
	}
	if err := p.Validate(); err == nil {
		t.Fatal("expected error for default type mismatch")
	}
}

func TestValidate_SelfRunAfter(t *testing.T) {
	p := &Pipeline{
		Metadata: Metadata{Name: "p"},
		Spec: Spec{
			Tasks: []Task{{Name: "a", TaskRef: TaskRef{Name: "t"}, RunAfter: []string{"a"}}},
		},
	}
	if err := p.Validate(); err == nil {
		t.Fatal("expected error for self-referential runAfter")
	}
}

func TestValidate_NoTasks(t *testing.T) {
	p := &Pipeline{Metadata: Metadata{Name: "p"}}
	if err := p.Validate(); err == nil {
		t.Fatal("expected error for empty task list")
	}
}

func TestValidate_BadTaskRefKind(t *testing.T) {
	p := &Pipeline{
		Metadata: Metadata{Name: "p"},
		Spec: Spec{
			Tasks: []Task{{Name: "a", TaskRef: TaskRef{Name: "t", Kind: "NodeTask"}}},
		},
	}
	if err := p.Validate(); err == nil {
		t.Fatal("expected error for unknown taskRef kind")
	}
}

func TestFileLoader_Load(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "cd-pipeline.yaml"), []byte(exampleYAML), 0o644); err != nil {
		t.Fatal(err)
	}

	loader := NewFileLoader(dir)
	p, err := loader.Load("cd-pipeline")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Metadata.Name != "cd-pipeline" {
		t.Fatalf("expected cd-pipeline, got %q", p.Metadata.Name)
	}

	if _, err := loader.Load("missing"); err == nil {
		t.Fatal("expected error for missing pipeline")
	}
}

func TestFileLoader_List(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"one.yaml", "two.yml", "ignored.txt"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("metadata: {name: x}"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	names := NewFileLoader(dir).List()
	if len(names) != 2 {
		t.Fatalf("expected 2 pipelines, got %v", names)
	}
}

func TestLoadFile_NotFound(t *testing.T) {
	if _, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
