// Package testutil provides shared test fixtures and fake executors for
// exercising the pipeline model and execution engine.
//
// Fixtures are complete pipeline definitions in YAML. WriteFixture puts
// one on disk under a test temp directory so loader and CLI paths can be
// tested against real files:
//
//	path := testutil.WriteFixture(t, "cd-pipeline", testutil.DeployPipelineYAML)
//
// RecordingExecutor captures execution order for assertions:
//
//	rec := testutil.NewRecordingExecutor()
//	reg := run.NewRegistry()
//	reg.Register("Task/git-clone", rec.Executor("git-clone"))
package testutil
