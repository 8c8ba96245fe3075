// Package fixture loads YAML conformance suites from disk and converts them
// into the literal nodes, type bindings, and expectations the runner consumes.
package fixture

import (
	"github.com/celconf/celconf/internal/scenario"
	"github.com/celconf/celconf/internal/typeenv"
	"github.com/celconf/celconf/internal/value"
)

// DefaultQuote is the quote character assumed for expression escape
// normalization when a scenario does not name one.
const DefaultQuote byte = '"'

// Suite is one loaded fixture file: a named, ordered list of scenarios.
type Suite struct {
	Name      string
	Path      string
	Scenarios []Scenario
}

// Scenario is a single conformance check: an expression, the environment it
// compiles against, the values bound at evaluation, and the expected outcome.
type Scenario struct {
	Name         string
	Expr         string
	Quote        byte
	Container    string
	DisableCheck bool
	TypeEnv      []typeenv.Binding
	Bindings     []Binding
	Want         scenario.Expectation
}

// Binding names a runtime value supplied to the evaluation activation.
type Binding struct {
	Name  string
	Value value.Node
}
