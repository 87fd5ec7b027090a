// Package graph represents a pipeline's tasks and precedence edges and
// exposes a topological ordering as batches: groups of tasks whose
// predecessors are all satisfied and which may therefore run in parallel.
//
// Declaration is order-independent: a task may run after a task declared
// later in the file. Unknown predecessors are reported when the graph is
// finalized, cycles when an ordering is requested.
package graph
