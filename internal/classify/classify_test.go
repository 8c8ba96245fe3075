package classify

import (
	"errors"
	"fmt"
	"testing"
)

func TestMessage_Identifiers(t *testing.T) {
	t.Parallel()
	categories := []Category{
		DivideByZero, ModulusByZero, NoSuchOverload,
		IntegerOverflow, UndeclaredReference, UnknownVariable,
	}
	for _, c := range categories {
		t.Run(c.String(), func(t *testing.T) {
			t.Parallel()
			if got := Message(c.String()); got != c {
				t.Errorf("Message(%q) = %v, want %v", c.String(), got, c)
			}
		})
	}
}

func TestMessage_Aliases(t *testing.T) {
	t.Parallel()
	tests := []struct {
		text string
		want Category
	}{
		{"division by zero", DivideByZero},
		{"divide by zero", DivideByZero},
		{"modulus by zero", ModulusByZero},
		{"no such overload", NoSuchOverload},
		{"no matching overload", NoSuchOverload},
		{"return error for overflow", IntegerOverflow},
		{"integer overflow", IntegerOverflow},
		{"unknown variable", UnknownVariable},
		{"unknown varaible", UnknownVariable}, // legacy fixture spelling
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			t.Parallel()
			if got := Message(tt.text); got != tt.want {
				t.Errorf("Message(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestMessage_AliasEquivalence(t *testing.T) {
	t.Parallel()

	if Message("division by zero") != Message("divide by zero") {
		t.Error("two divide-by-zero phrasings classify differently")
	}
	if Message("no such overload") != Message("no matching overload") {
		t.Error("two overload phrasings classify differently")
	}
}

func TestMessage_UndeclaredReferencePrefix(t *testing.T) {
	t.Parallel()
	suffixes := []string{
		"",
		" to 'x' (in container '')",
		" to 'foo.bar' (in container 'google.api.expr.test')",
		" nonsense trailing text",
	}
	for _, suffix := range suffixes {
		text := "undeclared reference" + suffix
		if got := Message(text); got != UndeclaredReference {
			t.Errorf("Message(%q) = %v, want UndeclaredReference", text, got)
		}
	}
}

func TestMessage_Unclassified(t *testing.T) {
	t.Parallel()
	for _, text := range []string{"", "something else entirely", "OVERFLOW"} {
		if got := Message(text); got != Unclassified {
			t.Errorf("Message(%q) = %v, want Unclassified", text, got)
		}
	}
}

func TestClassify(t *testing.T) {
	t.Parallel()

	if got := Classify(nil); got != NoError {
		t.Errorf("Classify(nil) = %v, want NoError", got)
	}
	if got := Classify(errors.New("division by zero")); got != DivideByZero {
		t.Errorf("Classify(division by zero) = %v, want DivideByZero", got)
	}
	if got := Classify(fmt.Errorf("wrapped: %w", errors.New("x"))); got != Unclassified {
		t.Errorf("Classify(unknown) = %v, want Unclassified", got)
	}
}

func TestClassify_EmbeddedPhrases(t *testing.T) {
	t.Parallel()

	// Checker and interpreter errors wrap the category phrase in positional
	// prefixes and symbol detail; classification must still find it.
	cases := []struct {
		text string
		want Category
	}{
		{"ERROR: <input>:1:3: found no matching overload for '_+_' applied to '(int, string)'", NoSuchOverload},
		{"ERROR: <input>:1:1: undeclared reference to 'x' (in container '')", UndeclaredReference},
		{"eval: divide by zero", DivideByZero},
		{"operation failed: modulus by zero", ModulusByZero},
		{"ERROR: <input>:1:10: integer overflow", IntegerOverflow},
	}
	for _, tc := range cases {
		if got := Classify(errors.New(tc.text)); got != tc.want {
			t.Errorf("Classify(%q) = %v, want %v", tc.text, got, tc.want)
		}
	}
}

func TestClassify_Totality(t *testing.T) {
	t.Parallel()

	// Every input lands in exactly one category; none may panic or return an
	// out-of-range value.
	inputs := []string{
		"division by zero", "no matching overload", "undeclared reference to 'a'",
		"garbage", "", "no_such_overload", "unknown varaible",
	}
	for _, text := range inputs {
		c := Message(text)
		if c.String() == fmt.Sprintf("category(%d)", int(c)) {
			t.Errorf("Message(%q) = unnamed category %d", text, int(c))
		}
		if c == NoError {
			t.Errorf("Message(%q) = NoError; only Classify(nil) may return it", text)
		}
	}
}

func TestParsePolicy(t *testing.T) {
	t.Parallel()
	tests := []struct {
		in      string
		want    Policy
		wantErr bool
	}{
		{"", MatchAny, false},
		{"any", MatchAny, false},
		{"exact", MatchExact, false},
		{"strict", MatchAny, true},
		{"Exact", MatchAny, true},
	}
	for _, tt := range tests {
		t.Run("input_"+tt.in, func(t *testing.T) {
			t.Parallel()
			got, err := ParsePolicy(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParsePolicy(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ParsePolicy(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestPolicy_String(t *testing.T) {
	t.Parallel()

	if MatchAny.String() != "any" || MatchExact.String() != "exact" {
		t.Errorf("Policy strings = %q, %q; want any, exact", MatchAny, MatchExact)
	}
}
