// Package scenario owns the per-scenario evaluation state, the evaluation
// orchestrator, and the outcome verifier.
//
// Each scenario allocates a fresh Context, feeds it through Evaluate exactly
// once, and verifies the captured outcome. Nothing survives the scenario;
// parallel runners are safe as long as every scenario owns its own Context.
package scenario

import (
	"github.com/google/cel-go/common/types/ref"

	"github.com/celconf/celconf/internal/classify"
	"github.com/celconf/celconf/internal/typeenv"
	"github.com/celconf/celconf/internal/value"
)

// Context is the explicit per-scenario state: the inputs accumulated from
// fixture steps, and the single evaluation outcome (a value or a classified
// error, never both).
type Context struct {
	Expression   string
	Container    string
	DisableCheck bool
	TypeEnv      []typeenv.Binding
	Bindings     map[string]ref.Val

	// Outcome of Evaluate. Exactly one of Result and Err is set afterwards;
	// both nil after evaluation is a defect the verifier surfaces.
	Result    ref.Val
	Err       error
	Category  classify.Category
	evaluated bool
}

// NewContext allocates a fresh scenario context.
func NewContext() *Context {
	return &Context{
		Bindings: make(map[string]ref.Val),
	}
}

// Bind adds a variable binding. A repeated name overwrites, matching the
// reducer semantics used throughout the fixture model.
func (c *Context) Bind(name string, v ref.Val) {
	c.Bindings[name] = v
}

// Declare appends type environment bindings.
func (c *Context) Declare(bindings ...typeenv.Binding) {
	c.TypeEnv = append(c.TypeEnv, bindings...)
}

// Evaluated reports whether Evaluate has run.
func (c *Context) Evaluated() bool {
	return c.evaluated
}

// Expectation is a fixture's expected outcome: a value, an explicit null, or
// an error. Absence of an expected value is modeled as explicit null by the
// fixture loader, never inferred here.
type Expectation struct {
	kind    expectKind
	node    value.Node
	errText string
}

type expectKind int

const (
	expectValue expectKind = iota
	expectNull
	expectError
)

// ExpectValue expects a successful evaluation equal to the translated node.
func ExpectValue(n value.Node) Expectation {
	return Expectation{kind: expectValue, node: n}
}

// ExpectNull expects a successful evaluation yielding the null value.
func ExpectNull() Expectation {
	return Expectation{kind: expectNull}
}

// ExpectError expects a captured evaluation error whose category matches the
// given text under the active policy.
func ExpectError(text string) Expectation {
	return Expectation{kind: expectError, errText: text}
}

// IsError reports whether the expectation is an error expectation.
func (e Expectation) IsError() bool {
	return e.kind == expectError
}

// ErrText returns the expected error text for error expectations.
func (e Expectation) ErrText() string {
	return e.errText
}
