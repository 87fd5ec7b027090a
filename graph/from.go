package graph

import (
	"github.com/kdemir/pipekit/pipeline"
)

// FromPipeline builds and finalizes a Graph from a pipeline definition.
func FromPipeline(p *pipeline.Pipeline) (*Graph, error) {
	g := New()
	for _, t := range p.Spec.Tasks {
		if err := g.AddTask(t.Name, t.RunAfter...); err != nil {
			return nil, err
		}
	}
	if err := g.Finalize(); err != nil {
		return nil, err
	}
	return g, nil
}
