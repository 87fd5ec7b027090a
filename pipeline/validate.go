package pipeline

import (
	"fmt"

	"github.com/kdemir/pipekit/validation"
)

// Validate performs structural validation of the definition: identity,
// parameter declarations and typing, and task shape. Graph ordering,
// template references and workspace targets are checked by the graph,
// subst and workspace packages; run.Lint composes all of them.
func (p *Pipeline) Validate() error {
	v := validation.New()

	if p.APIVersion != "" && p.APIVersion != APIVersion {
		v.AddError("apiVersion", fmt.Sprintf("must be %q (got: %s)", APIVersion, p.APIVersion))
	}
	if p.Kind != "" && p.Kind != KindPipeline {
		v.AddError("kind", fmt.Sprintf("must be %q (got: %s)", KindPipeline, p.Kind))
	}
	v.Name("metadata.name", p.Metadata.Name)

	seenParams := make(map[string]bool)
	for i, ps := range p.Spec.Params {
		field := fmt.Sprintf("spec.params[%d]", i)
		v.Name(field+".name", ps.Name)
		v.Unique(field+".name", ps.Name, seenParams)
		v.OneOf(field+".type", string(ps.Type), string(ParamTypeString), string(ParamTypeArray))

		if ps.Default != nil && ps.Default.Type != ps.EffectiveType() {
			v.AddError(field+".default", fmt.Sprintf("must be of type %s", ps.EffectiveType()))
		}
	}

	seenWorkspaces := make(map[string]bool)
	for i, ws := range p.Spec.Workspaces {
		field := fmt.Sprintf("spec.workspaces[%d]", i)
		v.Name(field+".name", ws.Name)
		v.Unique(field+".name", ws.Name, seenWorkspaces)
	}

	if len(p.Spec.Tasks) == 0 {
		v.AddError("spec.tasks", "must declare at least one task")
	}

	for i, t := range p.Spec.Tasks {
		field := fmt.Sprintf("spec.tasks[%d]", i)
		v.Name(field+".name", t.Name)
		v.Required(field+".taskRef.name", t.TaskRef.Name)
		v.OneOf(field+".taskRef.kind", string(t.TaskRef.Kind), string(KindTask), string(KindClusterTask))
		v.Min(field+".retries", t.Retries, 0)

		seenRoles := make(map[string]bool)
		for j, wb := range t.Workspaces {
			wfield := fmt.Sprintf("%s.workspaces[%d]", field, j)
			v.Required(wfield+".name", wb.Name)
			v.Required(wfield+".workspace", wb.Workspace)
			v.Unique(wfield+".name", wb.Name, seenRoles)
		}

		seenTaskParams := make(map[string]bool)
		for j, tp := range t.Params {
			pfield := fmt.Sprintf("%s.params[%d]", field, j)
			v.Required(pfield+".name", tp.Name)
			v.Unique(pfield+".name", tp.Name, seenTaskParams)
		}

		for _, pred := range t.RunAfter {
			if pred == t.Name {
				v.AddError(field+".runAfter", fmt.Sprintf("task %q cannot run after itself", t.Name))
			}
		}
	}

	if err := v.Validate(); err != nil {
		return err
	}
	return nil
}

// EffectiveType returns the declared type, defaulting to string.
func (ps ParamSpec) EffectiveType() ParamType {
	if ps.Type == "" {
		return ParamTypeString
	}
	return ps.Type
}
