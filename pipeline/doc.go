// Package pipeline defines the declarative pipeline schema: a named
// directed graph of tasks with parameters, workspaces and runAfter
// precedence edges, expressed as YAML.
//
// The package covers parsing, loading from files or directories, and
// structural validation (naming, uniqueness, parameter typing). Graph
// ordering, parameter substitution and workspace binding live in the
// graph, subst and workspace packages; the run package composes all of
// them into a full lint/plan/execute flow.
package pipeline
