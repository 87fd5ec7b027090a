// Package errors provides unified error handling for pipekit.
// It implements structured error types with machine-readable codes,
// HTTP status mapping, and retryable detection. The code taxonomy covers
// pipeline authoring errors (duplicate tasks, unknown predecessors,
// dependency cycles, unbound parameters, unknown workspaces) alongside
// the transport-level codes used by the HTTP surface.
package errors
