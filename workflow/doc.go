// Package workflow models the linear CI job artifact that accompanies
// pipeline definitions: event triggers, a container image and a
// strictly sequential list of steps.
//
// Unlike the pipeline graph there is no ordering to compute. Steps run
// in declaration order through the same executor registry the run
// package uses, and the first failure skips the remainder of the job.
//
//	w, err := workflow.LoadFile("ci.yaml")
//	if w.Matches(workflow.EventPush, "main") {
//		jr, err := runner.RunJob(ctx, w, "build", registry)
//	}
package workflow
