// Package logger provides structured logging for pipekit built on zerolog.
// It exposes a small Logger wrapper with component tagging, standard field
// constants for pipeline runs (run_id, pipeline, task, batch) and a global
// logger for packages that have no injection point.
package logger
