// Package classify buckets evaluator error messages into semantic categories.
//
// Independent CEL implementations do not agree on error wording, and the
// conformance fixtures themselves name the same failure in several ways.
// Worse, when a sub-expression raises more than one error, implementations
// disagree about which one is reported first ("2 / 0 > 4" keeps the division
// error, "1/0 != 0" keeps the overload error). Categories give both sides a
// stable identity; the match policy decides how strictly expected and actual
// categories must line up.
package classify

import (
	"fmt"
	"strings"
)

// Category is a coarse semantic bucket for an evaluation error. The message
// text is not part of an error's identity; only its category is.
type Category int

const (
	// NoError means no error occurred. Distinct from Unclassified.
	NoError Category = iota
	DivideByZero
	ModulusByZero
	NoSuchOverload
	IntegerOverflow
	UndeclaredReference
	UnknownVariable
	// Unclassified means an error occurred but its text matched nothing.
	Unclassified
)

var categoryNames = map[Category]string{
	NoError:             "no_error",
	DivideByZero:        "divide_by_zero",
	ModulusByZero:       "modulus_by_zero",
	NoSuchOverload:      "no_such_overload",
	IntegerOverflow:     "integer_overflow",
	UndeclaredReference: "undeclared_reference",
	UnknownVariable:     "unknown_variable",
	Unclassified:        "unclassified",
}

func (c Category) String() string {
	if name, ok := categoryNames[c]; ok {
		return name
	}
	return fmt.Sprintf("category(%d)", int(c))
}

// identifiers maps declared category identifiers back to categories, for the
// exact-match step of classification.
var identifiers = func() map[string]Category {
	m := make(map[string]Category, len(categoryNames))
	for c, name := range categoryNames {
		if c == NoError || c == Unclassified {
			continue
		}
		m[name] = c
	}
	return m
}()

// aliases covers the known cross-implementation phrasings seen in the
// conformance corpus. The misspelled "unknown varaible" appears verbatim in
// fixtures and is kept as a legacy alias alongside the corrected spelling.
var aliases = map[string]Category{
	"division by zero":          DivideByZero,
	"divide by zero":            DivideByZero,
	"modulus by zero":           ModulusByZero,
	"no such overload":          NoSuchOverload,
	"no matching overload":      NoSuchOverload,
	"return error for overflow": IntegerOverflow,
	"integer overflow":          IntegerOverflow,
	"unknown variable":          UnknownVariable,
	"unknown varaible":          UnknownVariable,
}

// undeclaredPrefix is the structural marker for failed symbol lookups. The
// suffix varies by symbol and container ("undeclared reference to 'x' (in
// container '')") and is ignored.
const undeclaredPrefix = "undeclared reference"

// Message classifies an error message. Every input maps to exactly one
// category; text that matches nothing is Unclassified, which signals an error
// occurred but could not be bucketed.
func Message(text string) Category {
	if c, ok := identifiers[text]; ok {
		return c
	}
	if c, ok := aliases[text]; ok {
		return c
	}
	if strings.HasPrefix(text, undeclaredPrefix) {
		return UndeclaredReference
	}
	return Unclassified
}

// phrases is the ordered substring fallback for actual evaluator errors,
// which wrap the category phrase in positional prefixes and symbol suffixes
// ("ERROR: <input>:1:3: found no matching overload for '_/_' ...").
var phrases = []struct {
	phrase   string
	category Category
}{
	{"division by zero", DivideByZero},
	{"divide by zero", DivideByZero},
	{"modulus by zero", ModulusByZero},
	{"no such overload", NoSuchOverload},
	{"no matching overload", NoSuchOverload},
	{"integer overflow", IntegerOverflow},
	{"return error for overflow", IntegerOverflow},
	{"unknown variable", UnknownVariable},
	{"unknown varaible", UnknownVariable},
}

// Classify classifies an error. A nil error is NoError. Exact matching is
// tried first; evaluator errors that embed a known phrase inside surrounding
// text fall back to an ordered substring scan.
func Classify(err error) Category {
	if err == nil {
		return NoError
	}
	text := err.Error()
	if c := Message(text); c != Unclassified {
		return c
	}
	if strings.Contains(text, undeclaredPrefix) {
		return UndeclaredReference
	}
	for _, p := range phrases {
		if strings.Contains(text, p.phrase) {
			return p.category
		}
	}
	return Unclassified
}
