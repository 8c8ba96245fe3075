package errors

import (
	stderrors "errors"
	"testing"
)

func TestCelconfError_Error(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		err  *CelconfError
		want string
	}{
		{
			name: "message only",
			err:  New("something failed"),
			want: "something failed",
		},
		{
			name: "suite only",
			err:  &CelconfError{Suite: "basic", Message: "load failed"},
			want: "[basic] load failed",
		},
		{
			name: "suite and scenario",
			err:  ScenarioError("basic", "self_eval_int", "value mismatch"),
			want: "[basic] self_eval_int: value mismatch",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCelconfError_ExitCode(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		kind ErrorKind
		want int
	}{
		{"runtime", KindRuntime, ExitRuntimeError},
		{"config", KindConfig, ExitConfigError},
		{"validation", KindValidation, ExitConfigError},
		{"fixture", KindFixture, ExitFixtureError},
		{"not found", KindNotFound, ExitRuntimeError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := &CelconfError{Kind: tt.kind, Message: "x"}
			if got := err.ExitCode(); got != tt.want {
				t.Errorf("ExitCode() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestGetExitCode(t *testing.T) {
	t.Parallel()

	if got := GetExitCode(nil); got != ExitSuccess {
		t.Errorf("GetExitCode(nil) = %d, want %d", got, ExitSuccess)
	}
	if got := GetExitCode(Config("bad config")); got != ExitConfigError {
		t.Errorf("GetExitCode(config error) = %d, want %d", got, ExitConfigError)
	}
	if got := GetExitCode(stderrors.New("plain")); got != ExitRuntimeError {
		t.Errorf("GetExitCode(plain error) = %d, want %d", got, ExitRuntimeError)
	}
}

func TestWrap_Unwrap(t *testing.T) {
	t.Parallel()

	cause := stderrors.New("root cause")
	wrapped := Wrap(cause, "context")

	if !stderrors.Is(wrapped, cause) {
		t.Error("errors.Is(wrapped, cause) = false, want true")
	}
	if wrapped.Message != "context" {
		t.Errorf("Message = %q, want %q", wrapped.Message, "context")
	}
}

func TestNotFound(t *testing.T) {
	t.Parallel()

	err := NotFound("suite", "nonexistent")
	want := "suite not found: nonexistent"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
	if err.Kind != KindNotFound {
		t.Errorf("Kind = %v, want KindNotFound", err.Kind)
	}
}
