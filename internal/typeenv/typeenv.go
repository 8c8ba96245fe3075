// Package typeenv builds CEL environment declarations from fixture type
// bindings.
//
// A binding names a variable and the type it should carry at compile time.
// Most bindings reference a single type name; map bindings carry a (key,
// value) identifier pair that is synthesized into a parameterized map type.
// The opaque kind is an explicit escape hatch: it supplies a pre-built
// runtime value (declared dyn) instead of a translated fixture node, which is
// how well-known test message stand-ins enter the environment without going
// through the translator.
package typeenv

import (
	"fmt"

	"github.com/google/cel-go/cel"
	"github.com/google/cel-go/common/types/ref"

	"github.com/celconf/celconf/internal/value"
)

// Kind distinguishes the binding variants.
type Kind int

const (
	// KindPrimitive resolves the single type identifier through the shared
	// type table.
	KindPrimitive Kind = iota
	// KindMapType synthesizes a parameterized map type from the (key, value)
	// identifier pair.
	KindMapType
	// KindOpaque declares the variable dyn and injects the pre-built Value
	// into the activation without translation.
	KindOpaque
)

// Binding declares the compile-time type of one variable.
type Binding struct {
	Name      string
	Kind      Kind
	TypeIdent []string // one identifier, or (key, value) for KindMapType
	Value     ref.Val  // pre-built stand-in for KindOpaque
}

// Primitive creates a plain type-reference binding.
func Primitive(name, typeIdent string) Binding {
	return Binding{Name: name, Kind: KindPrimitive, TypeIdent: []string{typeIdent}}
}

// MapOf creates a parameterized map-type binding.
func MapOf(name, keyIdent, valueIdent string) Binding {
	return Binding{Name: name, Kind: KindMapType, TypeIdent: []string{keyIdent, valueIdent}}
}

// Opaque creates a binding that injects a pre-built runtime value.
func Opaque(name string, v ref.Val) Binding {
	return Binding{Name: name, Kind: KindOpaque, Value: v}
}

// Declarations converts bindings into CEL environment options. Duplicate
// names overwrite in binding order. The named types are not checked for
// mutual consistency; that belongs to the evaluator at compile time.
func Declarations(bindings []Binding) ([]cel.EnvOption, error) {
	// Last-write-wins dedupe, preserving first-seen declaration order.
	var order []string
	byName := make(map[string]Binding, len(bindings))
	for _, b := range bindings {
		if _, seen := byName[b.Name]; !seen {
			order = append(order, b.Name)
		}
		byName[b.Name] = b
	}

	opts := make([]cel.EnvOption, 0, len(order))
	for _, name := range order {
		t, err := annotation(byName[name])
		if err != nil {
			return nil, fmt.Errorf("type binding %q: %w", name, err)
		}
		opts = append(opts, cel.Variable(name, t))
	}
	return opts, nil
}

// Activation collects the pre-built values of opaque bindings, keyed by
// variable name, for merging into the evaluation activation. Later bindings
// overwrite earlier ones, matching Declarations.
func Activation(bindings []Binding) map[string]ref.Val {
	vars := make(map[string]ref.Val)
	for _, b := range bindings {
		if b.Kind == KindOpaque && b.Value != nil {
			vars[b.Name] = b.Value
		}
	}
	return vars
}

func annotation(b Binding) (*cel.Type, error) {
	switch b.Kind {
	case KindPrimitive:
		if len(b.TypeIdent) != 1 {
			return nil, fmt.Errorf("want 1 type identifier, got %d", len(b.TypeIdent))
		}
		return value.TypeRef(b.TypeIdent[0])
	case KindMapType:
		if len(b.TypeIdent) != 2 {
			return nil, fmt.Errorf("map binding wants (key, value) identifiers, got %d", len(b.TypeIdent))
		}
		keyT, err := value.TypeRef(b.TypeIdent[0])
		if err != nil {
			return nil, err
		}
		valT, err := value.TypeRef(b.TypeIdent[1])
		if err != nil {
			return nil, err
		}
		return cel.MapType(keyT, valT), nil
	case KindOpaque:
		return cel.DynType, nil
	default:
		return nil, fmt.Errorf("unknown binding kind %d", b.Kind)
	}
}
