package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/kdemir/pipekit/testutil"
)

func runMain(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := Main(args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestMain_NoArgs(t *testing.T) {
	code, _, stderr := runMain(t)
	if code != 2 {
		t.Fatalf("expected exit 2, got %d", code)
	}
	if !strings.Contains(stderr, "Usage:") {
		t.Error("expected usage on stderr")
	}
}

func TestMain_UnknownCommand(t *testing.T) {
	code, _, _ := runMain(t, "frobnicate")
	if code != 2 {
		t.Fatalf("expected exit 2, got %d", code)
	}
}

func TestValidateCommand(t *testing.T) {
	path := testutil.WriteFixture(t, "cd-pipeline", testutil.DeployPipelineYAML)

	code, stdout, stderr := runMain(t, "validate", path)
	if code != 0 {
		t.Fatalf("expected exit 0, got %d: %s", code, stderr)
	}
	if !strings.Contains(stdout, "cd-pipeline: OK") {
		t.Errorf("unexpected output: %s", stdout)
	}
}

func TestValidateCommand_Cycle(t *testing.T) {
	path := testutil.WriteFixture(t, "cyclic", testutil.CyclicPipelineYAML)

	code, _, stderr := runMain(t, "validate", path)
	if code != 1 {
		t.Fatalf("expected exit 1, got %d", code)
	}
	if !strings.Contains(stderr, "cycle") {
		t.Errorf("expected cycle error, got: %s", stderr)
	}
}

func TestValidateCommand_MissingFile(t *testing.T) {
	code, _, _ := runMain(t, "validate", "/does/not/exist.yaml")
	if code != 1 {
		t.Fatalf("expected exit 1, got %d", code)
	}
}

func TestPlanCommand(t *testing.T) {
	path := testutil.WriteFixture(t, "cd-pipeline", testutil.DeployPipelineYAML)

	code, stdout, stderr := runMain(t, "plan", path, "-p", "repo-url=https://github.com/org/repo.git")
	if code != 0 {
		t.Fatalf("expected exit 0, got %d: %s", code, stderr)
	}
	if !strings.Contains(stdout, "clone") || !strings.Contains(stdout, "build") {
		t.Errorf("expected batches in output, got: %s", stdout)
	}
}

func TestPlanCommand_MissingParam(t *testing.T) {
	path := testutil.WriteFixture(t, "cd-pipeline", testutil.DeployPipelineYAML)

	code, _, _ := runMain(t, "plan", path)
	if code != 1 {
		t.Fatalf("expected exit 1 for missing repo-url, got %d", code)
	}
}

func TestRunCommand(t *testing.T) {
	path := testutil.WriteFixture(t, "cd-pipeline", testutil.DeployPipelineYAML)

	code, stdout, stderr := runMain(t, "run", path, "-p", "repo-url=https://github.com/org/repo.git")
	if code != 0 {
		t.Fatalf("expected exit 0, got %d: %s", code, stderr)
	}
	if !strings.Contains(stdout, "Succeeded") {
		t.Errorf("expected Succeeded tasks, got: %s", stdout)
	}
}

func TestVersionCommand(t *testing.T) {
	code, stdout, _ := runMain(t, "version")
	if code != 0 {
		t.Fatalf("expected exit 0, got %d", code)
	}
	if !strings.Contains(stdout, "pipekit") {
		t.Errorf("unexpected output: %s", stdout)
	}
}
