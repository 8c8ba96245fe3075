package scenario

import (
	"fmt"

	"github.com/google/cel-go/common/types"

	"github.com/celconf/celconf/internal/classify"
	"github.com/celconf/celconf/internal/value"
	"github.com/celconf/celconf/pkg/celtest"
)

// Verify compares the context's captured outcome against the expectation.
// It returns a verification failure as an error, plus any non-fatal
// diagnostics (category mismatches under the any policy).
func Verify(c *Context, want Expectation, policy classify.Policy) (diags []string, err error) {
	if !c.evaluated {
		return nil, fmt.Errorf("scenario was never evaluated")
	}

	switch want.kind {
	case expectValue:
		return nil, verifyValue(c, want)
	case expectNull:
		return nil, verifyNull(c)
	case expectError:
		return verifyError(c, want.errText, policy)
	default:
		return nil, fmt.Errorf("unknown expectation kind %d", want.kind)
	}
}

func verifyValue(c *Context, want Expectation) error {
	if err := requireResult(c); err != nil {
		return err
	}
	expected, err := value.Translate(want.node)
	if err != nil {
		// A broken expected value is a fixture defect, not an evaluator
		// failure; surface it as-is.
		return fmt.Errorf("translate expected value: %w", err)
	}
	if d := celtest.Diff(expected, c.Result); d != "" {
		return fmt.Errorf("value mismatch: %s", d)
	}
	return nil
}

func verifyNull(c *Context) error {
	if err := requireResult(c); err != nil {
		return err
	}
	if d := celtest.Diff(types.NullValue, c.Result); d != "" {
		return fmt.Errorf("value mismatch: %s", d)
	}
	return nil
}

// requireResult asserts a value was captured. An error in its place is a
// hard failure with the captured error surfaced; neither value nor error
// means the orchestrator misbehaved, which is its own bug to report.
func requireResult(c *Context) error {
	if c.Err != nil {
		return fmt.Errorf("expected a value, evaluation failed: %v (category %s)", c.Err, c.Category)
	}
	if c.Result == nil {
		return fmt.Errorf("no result and no error captured; evaluation outcome lost")
	}
	return nil
}

func verifyError(c *Context, text string, policy classify.Policy) (diags []string, err error) {
	expected := classify.Message(text)
	actual := c.Category

	// An error must have occurred under either policy.
	if c.Err == nil {
		if c.Result != nil {
			return nil, fmt.Errorf("expected error %q, evaluation returned %s", text, celtest.Format(c.Result))
		}
		return nil, fmt.Errorf("expected error %q, but nothing was captured", text)
	}

	if expected != actual {
		if policy == classify.MatchExact {
			return nil, fmt.Errorf("error category mismatch: expected %s (%q), got %s (%v)", expected, text, actual, c.Err)
		}
		diags = append(diags, fmt.Sprintf("error category mismatch (tolerated): expected %s (%q), got %s (%v)", expected, text, actual, c.Err))
	}
	return diags, nil
}
