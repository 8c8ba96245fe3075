package escape

import "testing"

func TestNormalize(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name  string
		text  string
		quote byte
		want  string
	}{
		{"identity", `1 + 2`, '"', `1 + 2`},
		{"single escaped double quote", `\"baz\"`, '"', `"baz"`},
		{"single escaped single quote", `\'quux\'`, '\'', `'quux'`},
		{"other quote untouched", `\'baz\'`, '"', `\'baz\'`},
		{"newline escape untouched", `"a\nb"`, '"', `"a\nb"`},
		{"mixed", `"\"x\" + '\''"`, '"', `""x" + '\''"`},
		{"trailing backslash", `abc\`, '"', `abc\`},
		{"double backslash before quote", `\\"`, '"', `\"`},
		{"empty", ``, '"', ``},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := Normalize(tt.text, tt.quote); got != tt.want {
				t.Errorf("Normalize(%q, %q) = %q, want %q", tt.text, tt.quote, got, tt.want)
			}
		})
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	t.Parallel()
	texts := []string{
		`\"baz\" == \"quux\"`,
		`plain text`,
		`"already \n normal"`,
		`\'mixed\' and \"quotes\"`,
	}
	for _, quote := range []byte{'"', '\''} {
		for _, text := range texts {
			once := Normalize(text, quote)
			twice := Normalize(once, quote)
			if once != twice {
				t.Errorf("Normalize not idempotent for %q (quote %q): %q != %q", text, quote, once, twice)
			}
		}
	}
}
