package celtest

import (
	"strings"
	"testing"

	"github.com/google/cel-go/common/types"
	"github.com/google/cel-go/common/types/ref"
)

func TestEqual(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		a, b ref.Val
		want bool
	}{
		{"equal ints", types.Int(5), types.Int(5), true},
		{"unequal ints", types.Int(5), types.Int(6), false},
		{"int vs uint", types.Int(5), types.Uint(5), true},
		{"strings", types.String("a"), types.String("a"), true},
		{"both nil", nil, nil, true},
		{"one nil", types.Int(1), nil, false},
		{"null values", types.NullValue, types.NullValue, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := Equal(tt.a, tt.b); got != tt.want {
				t.Errorf("Equal(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestFormat(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		v    ref.Val
		want string
	}{
		{"int", types.Int(5), "5 (int)"},
		{"string", types.String("baz"), `"baz" (string)`},
		{"bool", types.True, "true (bool)"},
		{"nil", nil, "<nil>"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := Format(tt.v); got != tt.want {
				t.Errorf("Format(%v) = %q, want %q", tt.v, got, tt.want)
			}
		})
	}
}

func TestDiff(t *testing.T) {
	t.Parallel()

	if d := Diff(types.Int(1), types.Int(1)); d != "" {
		t.Errorf("Diff(equal) = %q, want empty", d)
	}

	d := Diff(types.Int(1), types.String("x"))
	if !strings.Contains(d, "1 (int)") || !strings.Contains(d, `"x" (string)`) {
		t.Errorf("Diff = %q, want both sides formatted", d)
	}
}
