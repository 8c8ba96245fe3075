package scenario

import (
	"fmt"

	"github.com/google/cel-go/cel"

	"github.com/celconf/celconf/internal/classify"
	"github.com/celconf/celconf/internal/eval"
	"github.com/celconf/celconf/internal/typeenv"
)

// Evaluate runs the scenario's expression against the evaluator, exactly
// once per context.
//
// Compile-time and evaluation-time errors raised by the evaluator are
// expected outcomes: they are captured into the context and classified, and
// Evaluate returns nil. Any other failure — a bad type binding, a defect in
// the harness itself — is a fixture or translator bug and is returned to the
// caller instead of being captured.
func Evaluate(c *Context, ev eval.Evaluator) error {
	if c.evaluated {
		return fmt.Errorf("scenario context evaluated twice")
	}

	bindings := make([]typeenv.Binding, 0, len(c.TypeEnv)+2)
	bindings = append(bindings, c.TypeEnv...)
	bindings = append(bindings, eval.ContainerBindings(c.Container)...)

	decls, err := typeenv.Declarations(bindings)
	if err != nil {
		return err
	}

	// Variables bound in the activation but absent from the type environment
	// are declared dyn so the checker accepts them; the fixtures that omit
	// type_env rely on this.
	declared := make(map[string]bool, len(bindings))
	for _, b := range bindings {
		declared[b.Name] = true
	}
	activation := make(map[string]any, len(c.Bindings))
	for name, v := range c.Bindings {
		activation[name] = v
		if !declared[name] {
			decls = append(decls, cel.Variable(name, cel.DynType))
		}
	}
	for name, v := range typeenv.Activation(bindings) {
		activation[name] = v
	}

	c.evaluated = true

	prg, err := ev.Compile(c.Expression, decls, eval.Options{
		Container:    c.Container,
		DisableCheck: c.DisableCheck,
	})
	if err != nil {
		c.capture(err)
		return nil
	}

	out, err := prg.Evaluate(activation)
	if err != nil {
		c.capture(err)
		return nil
	}

	c.Result = out
	c.Category = classify.NoError
	return nil
}

// capture records an evaluator error, discarding any partial result.
func (c *Context) capture(err error) {
	c.Result = nil
	c.Err = err
	c.Category = classify.Classify(err)
}
