package subst

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/kdemir/pipekit/errors"
	"github.com/kdemir/pipekit/pipeline"
)

var (
	refPattern      = regexp.MustCompile(`\$\(([^)]*)\)`)
	paramRefPattern = regexp.MustCompile(`^params\.([a-z0-9]([-a-z0-9]*[a-z0-9])?)$`)
)

// Resolve substitutes every $(params.<name>) reference in template with
// its value from scope. A template that is exactly one reference may
// resolve to an array; a reference embedded in a longer string must name
// a string parameter.
func Resolve(template string, scope Scope) (pipeline.Value, error) {
	if name, ok := soleReference(template); ok {
		val, err := lookup(name, scope)
		if err != nil {
			return pipeline.Value{}, err
		}
		return val, nil
	}

	var resolveErr error
	resolved := refPattern.ReplaceAllStringFunc(template, func(match string) string {
		if resolveErr != nil {
			return match
		}
		name, err := referenceName(match)
		if err != nil {
			resolveErr = err
			return match
		}
		val, err := lookup(name, scope)
		if err != nil {
			resolveErr = err
			return match
		}
		if val.Type == pipeline.ParamTypeArray {
			resolveErr = errors.InvalidInput("params."+name, fmt.Sprintf("array parameter %q cannot be interpolated into a string", name))
			return match
		}
		return val.StringVal
	})
	if resolveErr != nil {
		return pipeline.Value{}, resolveErr
	}
	return pipeline.NewString(resolved), nil
}

// ResolveValue resolves a string or array value. Inside an array, an
// element that is exactly an array-parameter reference expands in place.
func ResolveValue(v pipeline.Value, scope Scope) (pipeline.Value, error) {
	if v.Type != pipeline.ParamTypeArray {
		return Resolve(v.StringVal, scope)
	}

	out := make([]string, 0, len(v.ArrayVal))
	for _, item := range v.ArrayVal {
		resolved, err := Resolve(item, scope)
		if err != nil {
			return pipeline.Value{}, err
		}
		if resolved.Type == pipeline.ParamTypeArray {
			out = append(out, resolved.ArrayVal...)
			continue
		}
		out = append(out, resolved.StringVal)
	}
	return pipeline.NewArray(out...), nil
}

// ResolvePipeline returns a deep copy of the pipeline with every task
// parameter value resolved against the supplied values. The input
// definition is not modified.
func ResolvePipeline(p *pipeline.Pipeline, supplied map[string]pipeline.Value) (*pipeline.Pipeline, error) {
	scope, err := NewScope(p.Spec.Params, supplied)
	if err != nil {
		return nil, err
	}

	out := *p
	out.Spec.Tasks = make([]pipeline.Task, len(p.Spec.Tasks))
	for i, t := range p.Spec.Tasks {
		resolved := t
		resolved.Params = make([]pipeline.Param, len(t.Params))
		for j, tp := range t.Params {
			val, err := ResolveValue(tp.Value, scope)
			if err != nil {
				return nil, fmt.Errorf("task %q, param %q: %w", t.Name, tp.Name, err)
			}
			resolved.Params[j] = pipeline.Param{Name: tp.Name, Value: val}
		}
		out.Spec.Tasks[i] = resolved
	}
	return &out, nil
}

// Check verifies that every template reference in the pipeline resolves
// against the declared parameters, without needing concrete values.
func Check(p *pipeline.Pipeline) error {
	scope := DeclarationScope(p.Spec.Params)
	for _, t := range p.Spec.Tasks {
		for _, tp := range t.Params {
			if _, err := ResolveValue(tp.Value, scope); err != nil {
				return fmt.Errorf("task %q, param %q: %w", t.Name, tp.Name, err)
			}
		}
	}
	return nil
}

// soleReference reports whether template consists of exactly one
// $(params.<name>) reference, returning the parameter name.
func soleReference(template string) (string, bool) {
	if !strings.HasPrefix(template, "$(") || !strings.HasSuffix(template, ")") {
		return "", false
	}
	match := refPattern.FindString(template)
	if match != template {
		return "", false
	}
	name, err := referenceName(template)
	if err != nil {
		return "", false
	}
	return name, true
}

// referenceName extracts the parameter name from a $(...) expression,
// rejecting anything outside the params family.
func referenceName(expr string) (string, error) {
	inner := strings.TrimSuffix(strings.TrimPrefix(expr, "$("), ")")
	m := paramRefPattern.FindStringSubmatch(inner)
	if m == nil {
		return "", errors.UnsupportedReference(expr)
	}
	return m[1], nil
}

func lookup(name string, scope Scope) (pipeline.Value, error) {
	val, ok := scope[name]
	if !ok {
		return pipeline.Value{}, errors.UnboundParameter(name)
	}
	return val, nil
}
