// Package run plans and executes pipeline runs.
//
// A Plan is a fully validated, resolved instantiation of a pipeline:
// structural checks, template resolution, workspace binding and the
// topological batch ordering all happen at plan time, so execution only
// ever sees well-formed work. The Engine walks the batches, running the
// tasks of one batch concurrently through registered Executors. Task
// execution itself is opaque: executors are external collaborators
// looked up by task reference.
//
// Each task moves through Pending, Blocked, Running and one of the
// terminal states Succeeded, Failed or Skipped. A failed task marks all
// of its transitive dependents Skipped; nothing is retried.
package run
