package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/kdemir/pipekit/logger"
	"github.com/kdemir/pipekit/pipeline"
	"github.com/kdemir/pipekit/run"
	"github.com/kdemir/pipekit/version"
)

// paramFlags collects repeated -p name=value flags.
type paramFlags map[string]pipeline.Value

func (p paramFlags) String() string { return fmt.Sprintf("%v", map[string]pipeline.Value(p)) }

func (p paramFlags) Set(s string) error {
	name, value, ok := strings.Cut(s, "=")
	if !ok || name == "" {
		return fmt.Errorf("expected name=value, got %q", s)
	}
	p[name] = pipeline.NewString(value)
	return nil
}

func cmdValidate(args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("validate", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("validate: expected exactly one pipeline file")
	}

	p, err := pipeline.LoadFile(fs.Arg(0))
	if err != nil {
		return err
	}
	if err := run.Lint(p); err != nil {
		return err
	}

	fmt.Fprintf(stdout, "%s: OK (%d tasks)\n", p.Metadata.Name, len(p.Spec.Tasks))
	return nil
}

func cmdPlan(args []string, stdout io.Writer) error {
	params := make(paramFlags)
	fs := flag.NewFlagSet("plan", flag.ContinueOnError)
	fs.Var(params, "p", "parameter value as name=value (repeatable)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("plan: expected exactly one pipeline file")
	}

	p, err := pipeline.LoadFile(fs.Arg(0))
	if err != nil {
		return err
	}
	plan, err := run.NewPlan(p, params)
	if err != nil {
		return err
	}

	out, err := yaml.Marshal(map[string]any{
		"pipeline": p.Metadata.Name,
		"batches":  plan.Batches,
	})
	if err != nil {
		return err
	}
	_, err = stdout.Write(out)
	return err
}

func cmdRun(args []string, stdout io.Writer) error {
	params := make(paramFlags)
	fs := flag.NewFlagSet("run", flag.ContinueOnError)
	fs.Var(params, "p", "parameter value as name=value (repeatable)")
	maxParallel := fs.Int("max-parallel", 0, "maximum concurrent tasks per batch (0 = unlimited)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("run: expected exactly one pipeline file")
	}

	p, err := pipeline.LoadFile(fs.Arg(0))
	if err != nil {
		return err
	}
	plan, err := run.NewPlan(p, params)
	if err != nil {
		return err
	}

	log := logger.GetGlobalLogger()
	engine := run.NewEngine(*maxParallel, log)
	r, err := engine.Execute(context.Background(), plan, localRegistry(plan, log))
	if err != nil {
		return err
	}

	for _, batch := range r.Batches {
		for _, name := range batch {
			tr := r.Tasks[name]
			fmt.Fprintf(stdout, "%-12s %s\n", tr.Status, name)
		}
	}
	fmt.Fprintf(stdout, "run %s: %s\n", r.ID, r.Status)
	if r.Status != run.RunSucceeded {
		return fmt.Errorf("run finished with status %s", r.Status)
	}
	return nil
}

// localRegistry registers a logging no-op executor for every task
// reference in the plan. Local runs exercise ordering and substitution,
// not the real task machinery.
func localRegistry(plan *run.Plan, log *logger.Logger) *run.Registry {
	reg := run.NewRegistry()
	for _, in := range plan.Inputs {
		key := in.Ref.Key()
		if _, ok := reg.Get(key); ok {
			continue
		}
		reg.Register(key, run.ExecutorFunc{
			ExecutorName: in.Ref.Name,
			Fn: func(_ context.Context, in run.TaskInput) error {
				fields := map[string]interface{}{logger.FieldTask: in.Task}
				for name, value := range in.Params {
					fields["param_"+name] = value.String()
				}
				log.Info("task executed", fields)
				return nil
			},
		})
	}
	return reg
}

func cmdVersion(stdout io.Writer) error {
	info := version.GetVersionInfo()
	fmt.Fprintf(stdout, "pipekit %s", info.Version)
	if info.GitCommit != "" {
		fmt.Fprintf(stdout, " (%s)", info.GitCommit)
	}
	fmt.Fprintln(stdout)
	return nil
}
