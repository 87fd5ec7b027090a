package graph

import (
	"sort"

	"github.com/kdemir/pipekit/errors"
)

// Graph declares tasks and their runAfter predecessor edges.
type Graph struct {
	order []string
	preds map[string][]string
}

// New creates an empty Graph.
func New() *Graph {
	return &Graph{preds: make(map[string][]string)}
}

// AddTask declares a task with its predecessors. Predecessors may name
// tasks not yet declared; they are checked at Finalize. Re-declaring a
// task name fails with DUPLICATE_TASK.
func (g *Graph) AddTask(name string, runAfter ...string) error {
	if _, exists := g.preds[name]; exists {
		return errors.DuplicateTask(name)
	}
	g.order = append(g.order, name)
	g.preds[name] = append([]string(nil), runAfter...)
	return nil
}

// Len returns the number of declared tasks.
func (g *Graph) Len() int { return len(g.order) }

// Tasks returns the declared task names in declaration order.
func (g *Graph) Tasks() []string {
	return append([]string(nil), g.order...)
}

// Has reports whether a task is declared.
func (g *Graph) Has(name string) bool {
	_, ok := g.preds[name]
	return ok
}

// Predecessors returns the direct runAfter predecessors of a task.
func (g *Graph) Predecessors(name string) []string {
	return append([]string(nil), g.preds[name]...)
}

// Finalize verifies that every predecessor edge points at a declared
// task, failing with UNKNOWN_PREDECESSOR otherwise.
func (g *Graph) Finalize() error {
	for _, name := range g.order {
		for _, pred := range g.preds[name] {
			if _, ok := g.preds[pred]; !ok {
				return errors.UnknownPredecessor(name, pred)
			}
		}
	}
	return nil
}

// Levels groups tasks into topological batches using Kahn's algorithm.
// Every task appears exactly once, strictly after all its predecessors'
// batches; tasks within a batch have no ordering constraints between
// them and may run in parallel. Batches are sorted by name so plans are
// deterministic. Fails with CYCLE_DETECTED if the graph is not a DAG.
func (g *Graph) Levels() ([][]string, error) {
	if err := g.Finalize(); err != nil {
		return nil, err
	}

	inDegree := make(map[string]int, len(g.order))
	dependents := make(map[string][]string)

	for _, name := range g.order {
		inDegree[name] = len(g.preds[name])
		for _, pred := range g.preds[name] {
			dependents[pred] = append(dependents[pred], name)
		}
	}

	var queue []string
	for _, name := range g.order {
		if inDegree[name] == 0 {
			queue = append(queue, name)
		}
	}

	var levels [][]string
	visited := 0

	for len(queue) > 0 {
		sort.Strings(queue)
		levels = append(levels, queue)
		visited += len(queue)

		var next []string
		for _, name := range queue {
			for _, dep := range dependents[name] {
				inDegree[dep]--
				if inDegree[dep] == 0 {
					next = append(next, dep)
				}
			}
		}
		queue = next
	}

	if visited != len(g.order) {
		var remaining []string
		for name, deg := range inDegree {
			if deg > 0 {
				remaining = append(remaining, name)
			}
		}
		sort.Strings(remaining)
		return nil, errors.CycleDetected(remaining)
	}

	return levels, nil
}

// Dependents returns the direct dependents of a task, sorted.
func (g *Graph) Dependents(name string) []string {
	var out []string
	for _, t := range g.order {
		for _, pred := range g.preds[t] {
			if pred == name {
				out = append(out, t)
				break
			}
		}
	}
	sort.Strings(out)
	return out
}

// TransitiveDependents returns every task reachable from name along
// dependency edges. Used to propagate a failure as skips.
func (g *Graph) TransitiveDependents(name string) map[string]bool {
	out := make(map[string]bool)
	frontier := []string{name}
	for len(frontier) > 0 {
		current := frontier[0]
		frontier = frontier[1:]
		for _, dep := range g.Dependents(current) {
			if !out[dep] {
				out[dep] = true
				frontier = append(frontier, dep)
			}
		}
	}
	return out
}
