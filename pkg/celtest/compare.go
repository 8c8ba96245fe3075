// Package celtest provides public helpers for comparing CEL runtime values,
// for external tools and tests built on top of celconf.
package celtest

import (
	"fmt"

	"github.com/google/cel-go/common/types"
	"github.com/google/cel-go/common/types/ref"
)

// Equal reports whether two CEL values compare equal under CEL equality.
// A nil on either side is only equal to a nil on the other.
func Equal(a, b ref.Val) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Equal(b) == types.True
}

// Format renders a CEL value with its type for assertion messages,
// e.g. `5 (int)` or `"baz" (string)`.
func Format(v ref.Val) string {
	if v == nil {
		return "<nil>"
	}
	switch v.Type() {
	case types.StringType:
		return fmt.Sprintf("%q (string)", v.Value())
	case types.BytesType:
		return fmt.Sprintf("b%q (bytes)", v.Value())
	default:
		return fmt.Sprintf("%v (%s)", v.Value(), v.Type().TypeName())
	}
}

// Diff returns a human-readable difference description, or "" when the
// values are equal.
func Diff(expected, actual ref.Val) string {
	if Equal(expected, actual) {
		return ""
	}
	return fmt.Sprintf("expected %s, got %s", Format(expected), Format(actual))
}
