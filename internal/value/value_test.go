package value

import (
	"errors"
	"testing"
	"time"

	"github.com/google/cel-go/cel"
	"github.com/google/cel-go/common/types"
	"github.com/google/cel-go/common/types/ref"
)

func mustTranslate(t *testing.T, n Node) ref.Val {
	t.Helper()
	v, err := Translate(n)
	if err != nil {
		t.Fatalf("Translate(%+v) failed: %v", n, err)
	}
	return v
}

func assertEqual(t *testing.T, got, want ref.Val) {
	t.Helper()
	if got.Equal(want) != types.True {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestTranslate_Scalars(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		node Value
		want ref.Val
	}{
		{"int64", Value{KindInt64, "-1"}, types.Int(-1)},
		{"int64 max", Value{KindInt64, "9223372036854775807"}, types.Int(9223372036854775807)},
		{"uint64", Value{KindUint64, "42"}, types.Uint(42)},
		{"double", Value{KindDouble, "1.5"}, types.Double(1.5)},
		{"double negative", Value{KindDouble, "-0.25"}, types.Double(-0.25)},
		{"string", Value{KindString, "hello"}, types.String("hello")},
		{"bytes", Value{KindBytes, "abc"}, types.Bytes([]byte("abc"))},
		{"bool true", Value{KindBool, "true"}, types.True},
		{"bool false", Value{KindBool, "false"}, types.False},
		{"null", Value{KindNull, ""}, types.NullValue},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assertEqual(t, mustTranslate(t, tt.node), tt.want)
		})
	}
}

func TestTranslate_DoubleSentinels(t *testing.T) {
	t.Parallel()

	pos := mustTranslate(t, Value{KindDouble, "inf"})
	neg := mustTranslate(t, Value{KindDouble, "-inf"})

	negated := pos.(types.Double) * -1
	if neg.Equal(negated) != types.True {
		t.Errorf("-inf (%v) is not the additive inverse of inf (%v)", neg, pos)
	}
	if pos.Equal(neg) == types.True {
		t.Error("inf and -inf compare equal")
	}
}

func TestTranslate_UnknownKind(t *testing.T) {
	t.Parallel()

	_, err := Translate(Value{Kind: Kind(99), Payload: "x"})
	if !errors.Is(err, ErrUnknownKind) {
		t.Errorf("Translate(kind 99) error = %v, want ErrUnknownKind", err)
	}
}

func TestTranslate_BadPayloads(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		node Value
	}{
		{"int64 not a number", Value{KindInt64, "abc"}},
		{"uint64 negative", Value{KindUint64, "-1"}},
		{"double garbage", Value{KindDouble, "one point five"}},
		{"bool garbage", Value{KindBool, "yes please"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if _, err := Translate(tt.node); err == nil {
				t.Errorf("Translate(%+v) = nil error, want parse failure", tt.node)
			}
		})
	}
}

func TestTypeRef(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		want *cel.Type
	}{
		{"bool", cel.BoolType},
		{"bytes", cel.BytesType},
		{"double", cel.DoubleType},
		{"duration", cel.DurationType},
		{"int", cel.IntType},
		{"null_type", cel.NullType},
		{"string", cel.StringType},
		{"timestamp", cel.TimestampType},
		{"uint", cel.UintType},
		{"type", cel.TypeType},
		{"google.protobuf.Duration", cel.DurationType},
		{"google.protobuf.Timestamp", cel.TimestampType},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := TypeRef(tt.name)
			if err != nil {
				t.Fatalf("TypeRef(%q) failed: %v", tt.name, err)
			}
			if !got.IsEquivalentType(tt.want) {
				t.Errorf("TypeRef(%q) = %v, want %v", tt.name, got, tt.want)
			}
		})
	}
}

func TestTypeRef_Aggregates(t *testing.T) {
	t.Parallel()

	listT, err := TypeRef("list")
	if err != nil {
		t.Fatalf("TypeRef(list) failed: %v", err)
	}
	if listT.Kind() != cel.ListType(cel.DynType).Kind() {
		t.Errorf("TypeRef(list) kind = %v, want list kind", listT.Kind())
	}

	mapT, err := TypeRef("map")
	if err != nil {
		t.Fatalf("TypeRef(map) failed: %v", err)
	}
	if mapT.Kind() != cel.MapType(cel.DynType, cel.DynType).Kind() {
		t.Errorf("TypeRef(map) kind = %v, want map kind", mapT.Kind())
	}
}

func TestTypeRef_Unknown(t *testing.T) {
	t.Parallel()

	if _, err := TypeRef("frobnicator"); !errors.Is(err, ErrUnknownTypeName) {
		t.Errorf("TypeRef(frobnicator) error = %v, want ErrUnknownTypeName", err)
	}

	_, err := Translate(Value{KindType, "frobnicator"})
	if !errors.Is(err, ErrUnknownTypeName) {
		t.Errorf("Translate(type frobnicator) error = %v, want ErrUnknownTypeName", err)
	}
}

func TestTranslate_TypeReference(t *testing.T) {
	t.Parallel()

	v := mustTranslate(t, Value{KindType, "int"})
	if v.Equal(cel.IntType) != types.True {
		t.Errorf("Translate(type int) = %v, want int type", v)
	}
}

func TestTranslate_List_PreservesOrder(t *testing.T) {
	t.Parallel()

	got := mustTranslate(t, List{Elems: []Node{
		Value{KindInt64, "1"},
		Value{KindInt64, "2"},
		Value{KindInt64, "3"},
	}})
	want := types.NewRefValList(types.DefaultTypeAdapter,
		[]ref.Val{types.Int(1), types.Int(2), types.Int(3)})
	assertEqual(t, got, want)

	permuted := types.NewRefValList(types.DefaultTypeAdapter,
		[]ref.Val{types.Int(3), types.Int(2), types.Int(1)})
	if got.Equal(permuted) == types.True {
		t.Error("list translation equals a permutation of itself")
	}
}

func TestTranslate_List_Nested(t *testing.T) {
	t.Parallel()

	got := mustTranslate(t, List{Elems: []Node{
		Value{KindString, "a"},
		List{Elems: []Node{Value{KindInt64, "1"}}},
	}})
	inner := types.NewRefValList(types.DefaultTypeAdapter, []ref.Val{types.Int(1)})
	want := types.NewRefValList(types.DefaultTypeAdapter, []ref.Val{types.String("a"), inner})
	assertEqual(t, got, want)
}

func TestTranslate_Map(t *testing.T) {
	t.Parallel()

	got := mustTranslate(t, Map{Groups: [][]Entry{{
		{Key: Value{KindString, "a"}, Value: Value{KindInt64, "1"}},
		{Key: Value{KindString, "b"}, Value: Value{KindInt64, "2"}},
	}}})
	want := types.NewRefValMap(types.DefaultTypeAdapter, map[ref.Val]ref.Val{
		types.String("a"): types.Int(1),
		types.String("b"): types.Int(2),
	})
	assertEqual(t, got, want)
}

func TestTranslate_Map_LastWriteWins(t *testing.T) {
	t.Parallel()

	// Same translated key twice, split across entry groups.
	got := mustTranslate(t, Map{Groups: [][]Entry{
		{{Key: Value{KindString, "k"}, Value: Value{KindInt64, "1"}}},
		{{Key: Value{KindString, "k"}, Value: Value{KindInt64, "2"}}},
	}})
	want := types.NewRefValMap(types.DefaultTypeAdapter, map[ref.Val]ref.Val{
		types.String("k"): types.Int(2),
	})
	assertEqual(t, got, want)
}

func TestTranslate_Map_UnhashableKey(t *testing.T) {
	t.Parallel()

	// Keys without a Go hash identity must fail translation, not panic the
	// entry fold.
	cases := []struct {
		name string
		key  Node
	}{
		{"bytes key", Value{KindBytes, "ab"}},
		{"list key", List{Elems: []Node{Value{KindInt64, "1"}}}},
		{"null key", Value{KindNull, ""}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			_, err := Translate(Map{Groups: [][]Entry{{
				{Key: tc.key, Value: Value{KindInt64, "1"}},
			}}})
			if !errors.Is(err, ErrInvalidMapKey) {
				t.Errorf("error = %v, want ErrInvalidMapKey", err)
			}
		})
	}
}

func TestTranslate_Object_Duration(t *testing.T) {
	t.Parallel()

	got := mustTranslate(t, Object{
		Namespace: DurationNamespace,
		Fields: []Field{
			{Name: "seconds", Value: Value{KindInt64, "5"}},
			{Name: "nanos", Value: Value{KindInt64, "500000000"}},
		},
	})
	want := types.Duration{Duration: 5500 * time.Millisecond}
	assertEqual(t, got, want)
}

func TestTranslate_Object_UnsupportedNamespace(t *testing.T) {
	t.Parallel()

	_, err := Translate(Object{Namespace: "type.googleapis.com/google.protobuf.Any"})
	if !errors.Is(err, ErrUnsupportedNamespace) {
		t.Errorf("error = %v, want ErrUnsupportedNamespace", err)
	}
}

func TestTranslate_Object_WrongFieldCount(t *testing.T) {
	t.Parallel()

	_, err := Translate(Object{
		Namespace: DurationNamespace,
		Fields:    []Field{{Name: "seconds", Value: Value{KindInt64, "5"}}},
	})
	if err == nil {
		t.Error("Translate(duration with 1 field) = nil error, want failure")
	}
}

func TestParseKind(t *testing.T) {
	t.Parallel()

	for k, name := range map[Kind]string{
		KindInt64: "int64", KindUint64: "uint64", KindDouble: "double",
		KindString: "string", KindBytes: "bytes", KindBool: "bool",
		KindNull: "null", KindType: "type",
	} {
		got, ok := ParseKind(name)
		if !ok || got != k {
			t.Errorf("ParseKind(%q) = %v, %v; want %v, true", name, got, ok, k)
		}
	}

	if _, ok := ParseKind("float32"); ok {
		t.Error("ParseKind(float32) = true, want false")
	}
}
