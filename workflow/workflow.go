package workflow

import (
	"fmt"
	"os"

	"go.yaml.in/yaml/v3"

	"github.com/kdemir/pipekit/errors"
	"github.com/kdemir/pipekit/validation"
)

// Events a workflow trigger can match.
const (
	EventPush        = "push"
	EventPullRequest = "pull_request"
)

// Workflow is a linear CI job definition: triggers plus named jobs,
// each a strictly sequential list of steps.
type Workflow struct {
	// Name is the workflow display name.
	Name string `yaml:"name" json:"name"`
	// On declares the events that trigger the workflow.
	On Triggers `yaml:"on" json:"on"`
	// Jobs holds the jobs by identifier.
	Jobs map[string]Job `yaml:"jobs" json:"jobs"`
}

// Triggers declares the events a workflow responds to.
type Triggers struct {
	Push        *Trigger `yaml:"push,omitempty" json:"push,omitempty"`
	PullRequest *Trigger `yaml:"pull_request,omitempty" json:"pull_request,omitempty"`
}

// Trigger filters one event kind by branch. An empty branch list
// matches every branch.
type Trigger struct {
	Branches []string `yaml:"branches,omitempty" json:"branches,omitempty"`
}

// Job is a sequential list of steps executed in one environment.
type Job struct {
	// RunsOn names the runner environment.
	RunsOn string `yaml:"runs-on,omitempty" json:"runsOn,omitempty"`
	// Container is the image the job runs in, if any.
	Container Container `yaml:"container,omitempty" json:"container,omitempty"`
	// Steps execute in declaration order.
	Steps []Step `yaml:"steps" json:"steps"`
}

// Container identifies the job's container image. In YAML it may be a
// bare image string or a mapping with an image key.
type Container struct {
	Image string `yaml:"image" json:"image"`
}

// UnmarshalYAML accepts both the scalar and the mapping form.
func (c *Container) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		return node.Decode(&c.Image)
	case yaml.MappingNode:
		type plain Container
		return node.Decode((*plain)(c))
	default:
		return fmt.Errorf("container must be an image string or a mapping")
	}
}

// Step is one unit of work in a job: either a reusable action
// reference (uses) or an inline command (run).
type Step struct {
	// Name is the optional display name.
	Name string `yaml:"name,omitempty" json:"name,omitempty"`
	// Uses references a reusable action.
	Uses string `yaml:"uses,omitempty" json:"uses,omitempty"`
	// Run is an inline shell command.
	Run string `yaml:"run,omitempty" json:"run,omitempty"`
	// With supplies inputs to the referenced action.
	With map[string]string `yaml:"with,omitempty" json:"with,omitempty"`
}

// DisplayName returns the step name, falling back to the action
// reference or the command.
func (s Step) DisplayName() string {
	if s.Name != "" {
		return s.Name
	}
	if s.Uses != "" {
		return s.Uses
	}
	return s.Run
}

// Matches reports whether the workflow triggers for the given event
// and branch.
func (w *Workflow) Matches(event, branch string) bool {
	var t *Trigger
	switch event {
	case EventPush:
		t = w.On.Push
	case EventPullRequest:
		t = w.On.PullRequest
	default:
		return false
	}
	if t == nil {
		return false
	}
	if len(t.Branches) == 0 {
		return true
	}
	for _, b := range t.Branches {
		if b == branch {
			return true
		}
	}
	return false
}

// Validate performs structural validation of the workflow definition.
func (w *Workflow) Validate() error {
	v := validation.New()

	v.Required("name", w.Name)

	if w.On.Push == nil && w.On.PullRequest == nil {
		v.AddError("on", "must declare at least one trigger")
	}

	if len(w.Jobs) == 0 {
		v.AddError("jobs", "must declare at least one job")
	}

	for id, job := range w.Jobs {
		field := fmt.Sprintf("jobs.%s", id)
		v.Name(field, id)

		if len(job.Steps) == 0 {
			v.AddError(field+".steps", "must declare at least one step")
		}
		for i, s := range job.Steps {
			sfield := fmt.Sprintf("%s.steps[%d]", field, i)
			if s.Uses == "" && s.Run == "" {
				v.AddError(sfield, "must set either uses or run")
			}
			if s.Uses != "" && s.Run != "" {
				v.AddError(sfield, "must not set both uses and run")
			}
			if len(s.With) > 0 && s.Uses == "" {
				v.AddError(sfield+".with", "is only valid with uses")
			}
		}
	}

	if err := v.Validate(); err != nil {
		return err
	}
	return nil
}

// Parse decodes and validates a workflow definition from YAML.
func Parse(data []byte) (*Workflow, error) {
	var w Workflow
	if err := yaml.Unmarshal(data, &w); err != nil {
		return nil, errors.InvalidFormat("workflow", "YAML").WithCause(err)
	}
	if err := w.Validate(); err != nil {
		return nil, err
	}
	return &w, nil
}

// LoadFile reads and parses a workflow definition from disk.
func LoadFile(path string) (*Workflow, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.NotFound("workflow", path).WithCause(err)
	}
	return Parse(data)
}
