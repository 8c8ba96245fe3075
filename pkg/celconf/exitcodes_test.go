package celconf_test

import (
	"testing"

	"github.com/celconf/celconf/internal/errors"
	"github.com/celconf/celconf/pkg/celconf"
)

// TestExitCodeValues verifies that exit code constants have the expected values.
func TestExitCodeValues(t *testing.T) {
	tests := []struct {
		name     string
		constant int
		expected int
	}{
		{"ExitSuccess", celconf.ExitSuccess, 0},
		{"ExitFailure", celconf.ExitFailure, 1},
		{"ExitConfigError", celconf.ExitConfigError, 2},
		{"ExitFixtureError", celconf.ExitFixtureError, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.constant != tt.expected {
				t.Errorf("celconf.%s = %d, want %d", tt.name, tt.constant, tt.expected)
			}
		})
	}
}

// TestExitCodeConsistency verifies that public exit code constants match
// the internal errors package constants. This prevents drift between
// the public API and internal implementation.
func TestExitCodeConsistency(t *testing.T) {
	tests := []struct {
		name     string
		public   int
		internal int
	}{
		{"Success", celconf.ExitSuccess, errors.ExitSuccess},
		{"Failure/RuntimeError", celconf.ExitFailure, errors.ExitRuntimeError},
		{"ConfigError", celconf.ExitConfigError, errors.ExitConfigError},
		{"FixtureError", celconf.ExitFixtureError, errors.ExitFixtureError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.public != tt.internal {
				t.Errorf("exit code mismatch: celconf constant = %d, errors constant = %d",
					tt.public, tt.internal)
			}
		})
	}
}
