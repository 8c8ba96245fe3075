package classify

import "fmt"

// Policy selects how strictly expected and actual error categories must
// match.
type Policy int

const (
	// MatchAny (the default) only requires that an error occurred; a category
	// mismatch is a diagnostic, not a failure. Different evaluators
	// legitimately report different errors for the same expression.
	MatchAny Policy = iota
	// MatchExact requires category equality. Only useful when the suite is
	// known to be unambiguous.
	MatchExact
)

func (p Policy) String() string {
	switch p {
	case MatchAny:
		return "any"
	case MatchExact:
		return "exact"
	default:
		return fmt.Sprintf("policy(%d)", int(p))
	}
}

// ParsePolicy parses a policy name. The empty string selects the default.
func ParsePolicy(s string) (Policy, error) {
	switch s {
	case "", "any":
		return MatchAny, nil
	case "exact":
		return MatchExact, nil
	default:
		return MatchAny, fmt.Errorf("unknown match policy %q (want \"any\" or \"exact\")", s)
	}
}
