// Package validation provides input validation for pipekit.
// It offers two complementary styles: a builder Validator that collects
// field errors while walking a pipeline definition, and tag-driven struct
// validation backed by go-playground/validator for config and request
// payloads. Both surface failures as errors.AppError values.
package validation
