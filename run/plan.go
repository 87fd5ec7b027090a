package run

import (
	"github.com/kdemir/pipekit/errors"
	"github.com/kdemir/pipekit/graph"
	"github.com/kdemir/pipekit/pipeline"
	"github.com/kdemir/pipekit/subst"
	"github.com/kdemir/pipekit/workspace"
)

// Lint runs every authoring-time check against a definition without
// instantiating it: structural validation, graph construction and
// ordering, template reference checks and workspace binding.
func Lint(p *pipeline.Pipeline) error {
	if err := p.Validate(); err != nil {
		return err
	}
	g, err := graph.FromPipeline(p)
	if err != nil {
		return err
	}
	if _, err := g.Levels(); err != nil {
		return err
	}
	if err := subst.Check(p); err != nil {
		return err
	}
	return workspace.Check(p)
}

// Plan is a validated, resolved instantiation of a pipeline, ready to
// execute.
type Plan struct {
	// Pipeline is the resolved definition (templates substituted).
	Pipeline *pipeline.Pipeline
	// Graph is the finalized task graph.
	Graph *graph.Graph
	// Batches is the topological ordering: tasks within one batch may
	// run in parallel.
	Batches [][]string
	// Inputs are the per-task executor inputs, by task name.
	Inputs map[string]TaskInput
}

// NewPlan validates the definition, resolves templates against the
// supplied parameter values, binds workspaces and computes the batch
// ordering.
func NewPlan(p *pipeline.Pipeline, supplied map[string]pipeline.Value) (*Plan, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	g, err := graph.FromPipeline(p)
	if err != nil {
		return nil, err
	}
	batches, err := g.Levels()
	if err != nil {
		return nil, err
	}

	resolved, err := subst.ResolvePipeline(p, supplied)
	if err != nil {
		return nil, err
	}

	binder := workspace.NewBinder(resolved.Spec.Workspaces)
	inputs := make(map[string]TaskInput, len(resolved.Spec.Tasks))
	for _, t := range resolved.Spec.Tasks {
		bound, err := binder.BindTask(t)
		if err != nil {
			return nil, err
		}
		params := make(map[string]pipeline.Value, len(t.Params))
		for _, tp := range t.Params {
			params[tp.Name] = tp.Value
		}
		inputs[t.Name] = TaskInput{
			Task:       t.Name,
			Ref:        t.TaskRef,
			Params:     params,
			Workspaces: bound,
			Retries:    t.Retries,
		}
	}

	return &Plan{
		Pipeline: resolved,
		Graph:    g,
		Batches:  batches,
		Inputs:   inputs,
	}, nil
}

// CheckExecutors verifies that every task reference in the plan has a
// registered executor.
func (p *Plan) CheckExecutors(reg *Registry) error {
	for _, t := range p.Pipeline.Spec.Tasks {
		if _, ok := reg.Get(t.TaskRef.Key()); !ok {
			return errors.UnknownExecutor(t.TaskRef.Key()).WithDetail("task", t.Name)
		}
	}
	return nil
}
