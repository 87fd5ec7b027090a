package pipeline

// APIVersion and Kind values accepted by the loader.
const (
	APIVersion   = "pipekit.dev/v1"
	KindPipeline = "Pipeline"
)

// Pipeline is the top-level declarative definition.
type Pipeline struct {
	// APIVersion identifies the schema revision.
	APIVersion string `yaml:"apiVersion" json:"apiVersion"`
	// Kind is the resource kind; always "Pipeline".
	Kind string `yaml:"kind" json:"kind"`
	// Metadata carries the pipeline identity.
	Metadata Metadata `yaml:"metadata" json:"metadata"`
	// Spec is the pipeline specification.
	Spec Spec `yaml:"spec" json:"spec"`
}

// Metadata identifies a pipeline.
type Metadata struct {
	// Name is the pipeline identifier.
	Name string `yaml:"name" json:"name"`
	// Labels are optional free-form key/value annotations.
	Labels map[string]string `yaml:"labels,omitempty" json:"labels,omitempty"`
}

// Spec declares the parameters, workspaces and tasks of a pipeline.
type Spec struct {
	// Params declares the pipeline-level parameters.
	Params []ParamSpec `yaml:"params,omitempty" json:"params,omitempty"`
	// Workspaces declares the shared storage slots tasks may bind.
	Workspaces []WorkspaceDecl `yaml:"workspaces,omitempty" json:"workspaces,omitempty"`
	// Tasks is the ordered sequence of task declarations.
	Tasks []Task `yaml:"tasks" json:"tasks"`
}

// ParamType is the accepted type of a declared parameter.
type ParamType string

const (
	// ParamTypeString is a single string value.
	ParamTypeString ParamType = "string"
	// ParamTypeArray is an ordered list of string values.
	ParamTypeArray ParamType = "array"
)

// ParamSpec declares a pipeline parameter.
type ParamSpec struct {
	// Name is the parameter identifier, unique within the pipeline.
	Name string `yaml:"name" json:"name"`
	// Type is the parameter type; defaults to string.
	Type ParamType `yaml:"type,omitempty" json:"type,omitempty"`
	// Description is optional documentation.
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
	// Default is the value used when a run supplies none.
	Default *Value `yaml:"default,omitempty" json:"default,omitempty"`
}

// WorkspaceDecl declares a shared workspace owned by the pipeline.
type WorkspaceDecl struct {
	// Name is the workspace identifier, unique within the pipeline.
	Name string `yaml:"name" json:"name"`
	// Description is optional documentation.
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
}

// TaskKind distinguishes namespace-scoped from cluster-scoped task definitions.
type TaskKind string

const (
	// KindTask references a namespace-scoped task definition.
	KindTask TaskKind = "Task"
	// KindClusterTask references a cluster-scoped task definition.
	KindClusterTask TaskKind = "ClusterTask"
)

// Task is one node in the pipeline graph. It references an external task
// definition and supplies parameter values and workspace bindings.
type Task struct {
	// Name is the task identifier, unique within the pipeline.
	Name string `yaml:"name" json:"name"`
	// TaskRef names the external task definition to execute.
	TaskRef TaskRef `yaml:"taskRef" json:"taskRef"`
	// Params are the parameter bindings passed to the referenced task.
	Params []Param `yaml:"params,omitempty" json:"params,omitempty"`
	// Workspaces map the referenced task's workspace roles to pipeline workspaces.
	Workspaces []WorkspaceBinding `yaml:"workspaces,omitempty" json:"workspaces,omitempty"`
	// RunAfter lists tasks that must succeed before this one runs.
	RunAfter []string `yaml:"runAfter,omitempty" json:"runAfter,omitempty"`
	// Retries is how many times a failed execution is retried before the
	// task is marked failed.
	Retries int `yaml:"retries,omitempty" json:"retries,omitempty"`
}

// TaskRef references an external, reusable task definition by name.
type TaskRef struct {
	// Name is the referenced task definition.
	Name string `yaml:"name" json:"name"`
	// Kind is Task or ClusterTask; defaults to Task.
	Kind TaskKind `yaml:"kind,omitempty" json:"kind,omitempty"`
}

// Key returns the registry lookup key for the reference: "Kind/Name".
func (r TaskRef) Key() string {
	kind := r.Kind
	if kind == "" {
		kind = KindTask
	}
	return string(kind) + "/" + r.Name
}

// Param binds a value to a parameter of the referenced task.
type Param struct {
	// Name is the parameter name inside the referenced task.
	Name string `yaml:"name" json:"name"`
	// Value is a literal or template string/array.
	Value Value `yaml:"value" json:"value"`
}

// WorkspaceBinding maps a workspace role used inside a task to a
// pipeline-level workspace.
type WorkspaceBinding struct {
	// Name is the workspace role as the referenced task knows it.
	Name string `yaml:"name" json:"name"`
	// Workspace is the pipeline workspace bound to that role.
	Workspace string `yaml:"workspace" json:"workspace"`
}

// TaskNames returns the declared task names in declaration order.
func (s *Spec) TaskNames() []string {
	names := make([]string, len(s.Tasks))
	for i, t := range s.Tasks {
		names[i] = t.Name
	}
	return names
}

// FindParam looks up a declared parameter by name.
func (s *Spec) FindParam(name string) (ParamSpec, bool) {
	for _, p := range s.Params {
		if p.Name == name {
			return p, true
		}
	}
	return ParamSpec{}, false
}

// HasWorkspace reports whether the pipeline declares the named workspace.
func (s *Spec) HasWorkspace(name string) bool {
	for _, w := range s.Workspaces {
		if w.Name == name {
			return true
		}
	}
	return false
}
