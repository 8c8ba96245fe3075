// Package eval wraps the external CEL evaluator behind a narrow boundary.
//
// The harness never inspects evaluator internals; it hands an expression,
// declarations, and a container to Compile, then an activation to Evaluate,
// and sees only the resulting value or error. Compile and evaluation errors
// are the evaluator's error channel: the orchestrator captures and classifies
// them instead of propagating.
package eval

import (
	"github.com/google/cel-go/cel"
	"github.com/google/cel-go/common/types/ref"
)

// Options configures one compilation.
type Options struct {
	// Container is the namespace for relative name resolution.
	Container string
	// DisableCheck skips the type-check phase, leaving name and overload
	// resolution to evaluation time.
	DisableCheck bool
}

// Program is one compiled expression ready for evaluation.
type Program interface {
	// Evaluate runs the program against the activation and returns its value
	// or the evaluation error.
	Evaluate(activation map[string]any) (ref.Val, error)
}

// Evaluator compiles expressions against a set of declarations.
type Evaluator interface {
	Compile(expr string, decls []cel.EnvOption, opts Options) (Program, error)
}

// New returns the cel-go backed Evaluator.
func New() Evaluator {
	return celEvaluator{}
}

type celEvaluator struct{}

func (celEvaluator) Compile(expr string, decls []cel.EnvOption, opts Options) (Program, error) {
	envOpts := make([]cel.EnvOption, 0, len(decls)+1)
	if opts.Container != "" {
		envOpts = append(envOpts, cel.Container(opts.Container))
	}
	envOpts = append(envOpts, decls...)

	env, err := cel.NewEnv(envOpts...)
	if err != nil {
		return nil, err
	}

	var ast *cel.Ast
	if opts.DisableCheck {
		parsed, iss := env.Parse(expr)
		if iss != nil && iss.Err() != nil {
			return nil, iss.Err()
		}
		ast = parsed
	} else {
		checked, iss := env.Compile(expr)
		if iss != nil && iss.Err() != nil {
			return nil, iss.Err()
		}
		ast = checked
	}

	prg, err := env.Program(ast)
	if err != nil {
		return nil, err
	}
	return celProgram{prg: prg}, nil
}

type celProgram struct {
	prg cel.Program
}

func (p celProgram) Evaluate(activation map[string]any) (ref.Val, error) {
	if activation == nil {
		activation = map[string]any{}
	}
	out, _, err := p.prg.Eval(activation)
	if err != nil {
		return nil, err
	}
	return out, nil
}
