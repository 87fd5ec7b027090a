// Package server exposes the pipeline model and execution engine over
// HTTP, using Gin with optional h2c so additional handlers can share
// the port.
//
// # Routes
//
//   - GET  /                      service name and version
//   - GET  /health                service and component health
//   - GET  /v1/pipelines          pipeline definitions on disk
//   - POST /v1/pipelines/validate lint a pipeline definition
//   - POST /v1/pipelines/plan     resolve a definition into batches
//   - POST /v1/runs               execute a pipeline
//   - GET  /v1/runs               list runs, newest first
//   - GET  /v1/runs/:id           fetch one run
//
// Definitions are submitted inline as YAML under "pipeline" or by
// "name", resolved against the configured pipeline directories.
//
// # Middleware
//
// Built-in middleware (server/middleware):
//
//   - Recovery: panic recovery with structured logging
//   - RequestID: request ID generation and propagation
//   - RequestLogger: request logging with duration tracking
//   - CORS: cross-origin resource sharing
//   - SecurityHeaders: browser security headers
//   - BodySizeLimit: request body size limits
//   - Auth / RequireRole: JWT bearer authentication
//   - RateLimit: sliding-window rate limiting for run submission
package server
