// Package value models fixture literals and translates them into CEL runtime
// values and types.
//
// A fixture literal is a tagged node: a scalar Value with a kind and a raw
// textual payload, or one of three aggregates (List, Map, Object), or a type
// reference. The node set is closed; translation dispatches exhaustively and
// an unrecognized kind or namespace is a translation defect, never a silent
// coercion.
package value

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/google/cel-go/cel"
	"github.com/google/cel-go/common/types"
	"github.com/google/cel-go/common/types/ref"
)

// Translation defects. These indicate fixture-authoring or programmer errors
// and are never recovered; the scenario that hit them aborts.
var (
	ErrUnknownKind          = errors.New("unknown value kind")
	ErrUnknownTypeName      = errors.New("unknown type name")
	ErrUnsupportedNamespace = errors.New("unsupported object namespace")
	ErrInvalidMapKey        = errors.New("invalid map key kind")
)

// DurationNamespace is the only object namespace the translator supports:
// the well-known protobuf Duration reconstructed from seconds and nanos.
const DurationNamespace = "type.googleapis.com/google.protobuf.Duration"

// Kind identifies the scalar payload of a Value node.
type Kind int

const (
	KindInt64 Kind = iota
	KindUint64
	KindDouble
	KindString
	KindBytes
	KindBool
	KindNull
	KindType
)

var kindNames = map[Kind]string{
	KindInt64:  "int64",
	KindUint64: "uint64",
	KindDouble: "double",
	KindString: "string",
	KindBytes:  "bytes",
	KindBool:   "bool",
	KindNull:   "null",
	KindType:   "type",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// ParseKind maps a fixture kind name to its Kind. The second result is false
// for names outside the closed set.
func ParseKind(name string) (Kind, bool) {
	for k, n := range kindNames {
		if n == name {
			return k, true
		}
	}
	return 0, false
}

// Node is a single fixture literal: a scalar Value, a List, a Map, or an
// Object. The variant set is closed.
type Node interface {
	node()
}

// Value is a scalar fixture literal. The payload is the raw textual form from
// the fixture; the translator parses it according to the kind.
type Value struct {
	Kind    Kind
	Payload string
}

// List is an ordered sequence of nodes. Order is significant and preserved.
type List struct {
	Elems []Node
}

// Entry is one key/value pair of a Map.
type Entry struct {
	Key   Node
	Value Node
}

// Map is an ordered collection of entry groups. The fixture format may repeat
// keys across groups; translation folds all groups into one runtime map with
// last-write-wins on duplicate keys.
type Map struct {
	Groups [][]Entry
}

// Field is one named sub-field of an Object, wrapping a scalar special value.
type Field struct {
	Name  string
	Value Value
}

// Object is a namespaced composite literal. Only DurationNamespace is
// supported; the field order is significant (seconds, then nanos).
type Object struct {
	Namespace string
	Fields    []Field
}

func (Value) node()  {}
func (List) node()   {}
func (Map) node()    {}
func (Object) node() {}

// typeTable maps fixture type names to CEL types. The CEL/protobuf names are
// not the same as the fixture's short names, so both spellings appear for the
// well-known types.
var typeTable = map[string]*cel.Type{
	"bool":      cel.BoolType,
	"bytes":     cel.BytesType,
	"double":    cel.DoubleType,
	"duration":  cel.DurationType,
	"int":       cel.IntType,
	"list":      cel.ListType(cel.DynType),
	"map":       cel.MapType(cel.DynType, cel.DynType),
	"null_type": cel.NullType,
	"string":    cel.StringType,
	"timestamp": cel.TimestampType,
	"uint":      cel.UintType,
	"type":      cel.TypeType,

	"google.protobuf.Duration":  cel.DurationType,
	"google.protobuf.Timestamp": cel.TimestampType,
}

// TypeRef resolves a fixture type name to a CEL type.
func TypeRef(name string) (*cel.Type, error) {
	t, ok := typeTable[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTypeName, name)
	}
	return t, nil
}

// Translate converts a fixture node into a CEL runtime value, recursively for
// aggregates.
func Translate(n Node) (ref.Val, error) {
	switch n := n.(type) {
	case Value:
		return translateScalar(n)
	case List:
		return translateList(n)
	case Map:
		return translateMap(n)
	case Object:
		return translateObject(n)
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnknownKind, n)
	}
}

func translateScalar(v Value) (ref.Val, error) {
	switch v.Kind {
	case KindInt64:
		i, err := strconv.ParseInt(v.Payload, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("int64 payload %q: %w", v.Payload, err)
		}
		return types.Int(i), nil
	case KindUint64:
		u, err := strconv.ParseUint(v.Payload, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("uint64 payload %q: %w", v.Payload, err)
		}
		return types.Uint(u), nil
	case KindDouble:
		// Two sentinel payloads; everything else is an ordinary decimal.
		switch v.Payload {
		case "inf":
			return types.Double(math.Inf(1)), nil
		case "-inf":
			return types.Double(math.Inf(-1)), nil
		}
		f, err := strconv.ParseFloat(v.Payload, 64)
		if err != nil {
			return nil, fmt.Errorf("double payload %q: %w", v.Payload, err)
		}
		return types.Double(f), nil
	case KindString:
		return types.String(v.Payload), nil
	case KindBytes:
		return types.Bytes([]byte(v.Payload)), nil
	case KindBool:
		b, err := strconv.ParseBool(v.Payload)
		if err != nil {
			return nil, fmt.Errorf("bool payload %q: %w", v.Payload, err)
		}
		return types.Bool(b), nil
	case KindNull:
		return types.NullValue, nil
	case KindType:
		return TypeRef(v.Payload)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownKind, v.Kind)
	}
}

func translateList(l List) (ref.Val, error) {
	elems := make([]ref.Val, 0, len(l.Elems))
	for i, n := range l.Elems {
		v, err := Translate(n)
		if err != nil {
			return nil, fmt.Errorf("list element %d: %w", i, err)
		}
		elems = append(elems, v)
	}
	return types.NewRefValList(types.DefaultTypeAdapter, elems), nil
}

func translateMap(m Map) (ref.Val, error) {
	entries := make(map[ref.Val]ref.Val)
	for _, group := range m.Groups {
		for _, e := range group {
			k, err := Translate(e.Key)
			if err != nil {
				return nil, fmt.Errorf("map key: %w", err)
			}
			if !hashableKey(k) {
				return nil, fmt.Errorf("%w: %s", ErrInvalidMapKey, k.Type().TypeName())
			}
			v, err := Translate(e.Value)
			if err != nil {
				return nil, fmt.Errorf("map value: %w", err)
			}
			// Duplicate translated keys overwrite: the fixture format may
			// repeat keys across groups.
			entries[k] = v
		}
	}
	return types.NewRefValMap(types.DefaultTypeAdapter, entries), nil
}

// hashableKey reports whether a translated key can index a runtime map.
// Bytes and aggregate keys have no Go hash identity; inserting one into the
// entry fold would panic instead of erroring, so they are rejected up front
// along with the other kinds CEL maps cannot key on.
func hashableKey(k ref.Val) bool {
	switch k.Type() {
	case types.BoolType, types.IntType, types.UintType, types.DoubleType, types.StringType:
		return true
	}
	return false
}

func translateObject(o Object) (ref.Val, error) {
	switch o.Namespace {
	case DurationNamespace:
		if len(o.Fields) != 2 {
			return nil, fmt.Errorf("%s: want 2 fields (seconds, nanos), got %d", o.Namespace, len(o.Fields))
		}
		seconds, err := fieldInt(o.Fields[0])
		if err != nil {
			return nil, err
		}
		nanos, err := fieldInt(o.Fields[1])
		if err != nil {
			return nil, err
		}
		d := time.Duration(seconds)*time.Second + time.Duration(nanos)*time.Nanosecond
		return types.Duration{Duration: d}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedNamespace, o.Namespace)
	}
}

func fieldInt(f Field) (int64, error) {
	i, err := strconv.ParseInt(f.Value.Payload, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("field %q payload %q: %w", f.Name, f.Value.Payload, err)
	}
	return i, nil
}
