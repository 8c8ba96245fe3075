// Package errors provides structured error types and exit codes for celconf.
package errors

import (
	"fmt"
)

// Exit codes returned by the celconf CLI.
const (
	ExitSuccess      = 0 // Success
	ExitRuntimeError = 1 // Runtime error (scenario failed, evaluator unavailable, etc.)
	ExitConfigError  = 2 // Configuration error (invalid config, invalid policy, etc.)
	ExitFixtureError = 3 // Fixture error (invalid suite file, translation defect, etc.)
)

// ErrorKind represents the type of error.
type ErrorKind int

const (
	KindRuntime ErrorKind = iota
	KindConfig
	KindNotFound
	KindValidation
	KindFixture
)

// CelconfError is the base error type for celconf.
type CelconfError struct {
	Kind     ErrorKind
	Message  string
	Suite    string // Suite name if applicable
	Scenario string // Scenario name if applicable
	Cause    error  // Underlying error
}

func (e *CelconfError) Error() string {
	if e.Suite != "" && e.Scenario != "" {
		return fmt.Sprintf("[%s] %s: %s", e.Suite, e.Scenario, e.Message)
	}
	if e.Suite != "" {
		return fmt.Sprintf("[%s] %s", e.Suite, e.Message)
	}
	return e.Message
}

func (e *CelconfError) Unwrap() error {
	return e.Cause
}

// ExitCode returns the appropriate exit code for this error.
func (e *CelconfError) ExitCode() int {
	switch e.Kind {
	case KindConfig, KindValidation:
		return ExitConfigError
	case KindFixture:
		return ExitFixtureError
	default:
		return ExitRuntimeError
	}
}

// New creates a new runtime error.
func New(message string) *CelconfError {
	return &CelconfError{
		Kind:    KindRuntime,
		Message: message,
	}
}

// Newf creates a new runtime error with formatting.
func Newf(format string, args ...interface{}) *CelconfError {
	return New(fmt.Sprintf(format, args...))
}

// Config creates a new configuration error.
func Config(message string) *CelconfError {
	return &CelconfError{
		Kind:    KindConfig,
		Message: message,
	}
}

// Configf creates a new configuration error with formatting.
func Configf(format string, args ...interface{}) *CelconfError {
	return Config(fmt.Sprintf(format, args...))
}

// Fixture creates a new fixture error.
func Fixture(message string) *CelconfError {
	return &CelconfError{
		Kind:    KindFixture,
		Message: message,
	}
}

// Fixturef creates a new fixture error with formatting.
func Fixturef(format string, args ...interface{}) *CelconfError {
	return Fixture(fmt.Sprintf(format, args...))
}

// Wrap wraps an error with additional context.
func Wrap(err error, message string) *CelconfError {
	return &CelconfError{
		Kind:    KindRuntime,
		Message: message,
		Cause:   err,
	}
}

// ScenarioError creates an error for a specific scenario.
func ScenarioError(suite, scenario, message string) *CelconfError {
	return &CelconfError{
		Kind:     KindRuntime,
		Suite:    suite,
		Scenario: scenario,
		Message:  message,
	}
}

// NotFound creates a not found error.
func NotFound(what, name string) *CelconfError {
	return &CelconfError{
		Kind:    KindNotFound,
		Message: fmt.Sprintf("%s not found: %s", what, name),
	}
}

// GetExitCode returns the exit code for an error.
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	if ce, ok := err.(*CelconfError); ok {
		return ce.ExitCode()
	}
	return ExitRuntimeError
}
