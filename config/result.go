package config

import (
	"fmt"
	"log/slog"
	"strings"

	"go.uber.org/multierr"
)

// Issue is an error or warning attached to a configuration field.
type Issue struct {
	// Key is the field path, e.g. "site_dir", "theme.locale" or "plugins[2]".
	Key string
	// Message is the human readable description.
	Message string
	// Err is the underlying error for failures; nil for warnings.
	Err error
}

// String returns the issue as "key: message".
func (i Issue) String() string {
	if i.Key == "" {
		return i.Message
	}

	return fmt.Sprintf("%s: %s", i.Key, i.Message)
}

type issueError struct {
	issue Issue
}

func (e *issueError) Error() string {
	return e.issue.String()
}

func (e *issueError) Unwrap() error {
	return e.issue.Err
}

// Result is the outcome of validating a Config.
type Result struct {
	Errors   []Issue
	Warnings []Issue
}

// Valid reports whether validation produced no errors.
func (r *Result) Valid() bool {
	return r == nil || len(r.Errors) == 0
}

// Err returns nil for a valid result, otherwise an error wrapping ErrInvalidConfig
// and every field failure.
func (r *Result) Err() error {
	if r.Valid() {
		return nil
	}

	var combined error
	for _, issue := range r.Errors {
		combined = multierr.Append(combined, &issueError{issue: issue})
	}

	return fmt.Errorf("%w: %w", ErrInvalidConfig, combined)
}

// ErrorsFor returns the errors attached to key.
func (r *Result) ErrorsFor(key string) []Issue {
	return filterIssues(r.Errors, key)
}

// WarningsFor returns the warnings attached to key.
func (r *Result) WarningsFor(key string) []Issue {
	return filterIssues(r.Warnings, key)
}

// Report formats every warning and error as a multi-line report.
func (r *Result) Report() string {
	var builder strings.Builder

	for _, warning := range r.Warnings {
		fmt.Fprintf(&builder, "WARNING - Config value '%s': %s\n", warning.Key, warning.Message)
	}

	for _, failure := range r.Errors {
		fmt.Fprintf(&builder, "ERROR - Config value '%s': %s\n", failure.Key, failure.Message)
	}

	switch len(r.Errors) {
	case 0:
	case 1:
		builder.WriteString("Aborted with 1 configuration error!\n")
	default:
		fmt.Fprintf(&builder, "Aborted with %d configuration errors!\n", len(r.Errors))
	}

	return builder.String()
}

// Log writes warnings and errors to logger.
func (r *Result) Log(logger *slog.Logger) {
	for _, warning := range r.Warnings {
		logger.Warn("configuration warning", slog.String("key", warning.Key), slog.String("message", warning.Message))
	}

	for _, failure := range r.Errors {
		logger.Error("configuration error", slog.String("key", failure.Key), slog.String("message", failure.Message))
	}
}

func filterIssues(issues []Issue, key string) []Issue {
	var result []Issue

	for _, issue := range issues {
		if issue.Key == key {
			result = append(result, issue)
		}
	}

	return result
}
