// Package celconf provides public constants and utilities for external tools
// integrating with celconf.
package celconf

// Exit codes returned by the celconf CLI.
// These constants allow external tools to check exit codes symbolically
// rather than using magic numbers.
const (
	// ExitSuccess indicates the command completed successfully.
	ExitSuccess = 0

	// ExitFailure indicates a runtime failure (one or more scenarios failed).
	ExitFailure = 1

	// ExitConfigError indicates a configuration error (invalid config, validation failure, etc.).
	ExitConfigError = 2

	// ExitFixtureError indicates a fixture error (unreadable suite, schema violation, etc.).
	ExitFixtureError = 3
)
