package config

import (
	"fmt"
	"path/filepath"
	"regexp"

	"github.com/celconf/celconf/internal/classify"
)

// Project name: must start with a lowercase letter; may contain lowercase,
// digits, and non-consecutive, non-trailing hyphens.
var projectNamePattern = regexp.MustCompile(`^[a-z][a-z0-9]*(-[a-z0-9]+)*$`)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Validate checks a configuration for errors and returns warnings for non-fatal issues.
// Note: warnings are reserved for future use (deprecated fields, migration hints, etc.)
func Validate(cfg *Config) (warnings []string, err error) {
	if err := ValidateProjectName(cfg.Project.Name); err != nil {
		return nil, err
	}

	if _, err := classify.ParsePolicy(cfg.Match); err != nil {
		return nil, &ValidationError{Field: "match", Message: err.Error()}
	}

	if cfg.Suites != nil {
		if err := validateSuites(cfg.Suites); err != nil {
			return nil, err
		}
	}

	return nil, nil
}

func validateSuites(s *SuitesConfig) error {
	if s.Pattern != "" {
		if _, err := filepath.Match(s.Pattern, "probe"); err != nil {
			return &ValidationError{
				Field:   "suites.pattern",
				Message: fmt.Sprintf("invalid glob pattern: %v", err),
			}
		}
	}
	return nil
}

// ValidateProjectName checks if a project name is valid.
// Returns a ValidationError if the name is empty, too long (>128 chars),
// or doesn't match the required pattern.
func ValidateProjectName(name string) error {
	if name == "" {
		return &ValidationError{Field: "project.name", Message: "is required"}
	}
	if len(name) > 128 {
		return &ValidationError{Field: "project.name", Message: "must be 128 characters or less"}
	}
	if !projectNamePattern.MatchString(name) {
		return &ValidationError{
			Field:   "project.name",
			Message: "must match pattern ^[a-z][a-z0-9]*(-[a-z0-9]+)*$ (lowercase letters, digits, non-consecutive hyphens)",
		}
	}
	return nil
}
