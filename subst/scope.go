package subst

import (
	"fmt"

	"github.com/kdemir/pipekit/errors"
	"github.com/kdemir/pipekit/pipeline"
)

// Scope maps parameter names to concrete values.
type Scope map[string]pipeline.Value

// NewScope builds a Scope from parameter declarations and caller-supplied
// values. Supplied values override defaults. A supplied value for an
// undeclared parameter, a type mismatch, or a declared parameter left
// without default and supplied value all fail.
func NewScope(specs []pipeline.ParamSpec, supplied map[string]pipeline.Value) (Scope, error) {
	declared := make(map[string]pipeline.ParamSpec, len(specs))
	for _, ps := range specs {
		declared[ps.Name] = ps
	}

	for name, val := range supplied {
		ps, ok := declared[name]
		if !ok {
			return nil, errors.InvalidInput("params."+name, fmt.Sprintf("parameter %q is not declared by the pipeline", name))
		}
		if val.Type != ps.EffectiveType() {
			return nil, errors.InvalidInput("params."+name, fmt.Sprintf("parameter %q expects type %s", name, ps.EffectiveType()))
		}
	}

	scope := make(Scope, len(specs))
	for _, ps := range specs {
		if val, ok := supplied[ps.Name]; ok {
			scope[ps.Name] = val
			continue
		}
		if ps.Default != nil {
			scope[ps.Name] = *ps.Default
			continue
		}
		return nil, errors.MissingField("params." + ps.Name)
	}
	return scope, nil
}

// DeclarationScope builds a Scope carrying placeholder values for every
// declared parameter. It is used to check that references resolve
// without requiring a run's concrete values.
func DeclarationScope(specs []pipeline.ParamSpec) Scope {
	scope := make(Scope, len(specs))
	for _, ps := range specs {
		if ps.EffectiveType() == pipeline.ParamTypeArray {
			scope[ps.Name] = pipeline.NewArray()
		} else {
			scope[ps.Name] = pipeline.NewString("")
		}
	}
	return scope
}
