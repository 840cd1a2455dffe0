package config

import (
	"errors"
	"fmt"
	"strings"
)

// Kinds of field validation failures. A *ValidationError unwraps to one of these.
var (
	// ErrMissingRequired is returned when a required field has no value and no default.
	ErrMissingRequired = errors.New("required configuration not provided")
	// ErrTypeMismatch is returned when a value has the wrong type or shape.
	ErrTypeMismatch = errors.New("type mismatch")
	// ErrNotInChoices is returned when a value is outside its allowed set or range.
	ErrNotInChoices = errors.New("value not in choices")
	// ErrMalformedURL is returned when a URL cannot be parsed or lacks a scheme or host.
	ErrMalformedURL = errors.New("malformed URL")
	// ErrPathNotFound is returned when a filesystem path is expected to exist but does not.
	ErrPathNotFound = errors.New("path not found")
	// ErrSchemaViolation is returned when a value has the right type but a wrong structure.
	ErrSchemaViolation = errors.New("schema violation")
	// ErrPluginResolution is returned when a plugin or hook cannot be resolved or instantiated.
	ErrPluginResolution = errors.New("plugin resolution failed")
	// ErrPluginConfig is returned when a plugin rejects its own configuration.
	ErrPluginConfig = errors.New("plugin configuration invalid")
	// ErrDeprecatedRemoved is returned when a removed configuration option is set.
	ErrDeprecatedRemoved = errors.New("deprecated option removed")
	// ErrInvalidValue is returned for failures that do not fit any other kind.
	ErrInvalidValue = errors.New("invalid value")
)

// ErrInvalidConfig is returned when a validated document carries at least one error.
var ErrInvalidConfig = errors.New("invalid configuration")

// ErrAlreadyValidated is returned when a document is loaded into a Config that was already validated.
var ErrAlreadyValidated = errors.New("configuration already validated")

// ErrInvalidOption is returned when an option is constructed with invalid arguments.
var ErrInvalidOption = errors.New("invalid option definition")

// ValidationError is a failure of a single field. The message is user facing.
type ValidationError struct {
	Kind    error
	Message string
}

// Errorf creates a ValidationError of the given kind with a formatted message.
func Errorf(kind error, format string, args ...any) *ValidationError {
	return &ValidationError{
		Kind:    kind,
		Message: fmt.Sprintf(format, args...),
	}
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return e.Message
}

// Unwrap returns the kind of the failure.
func (e *ValidationError) Unwrap() error {
	return e.Kind
}

// ValidationErrors carries issues that are already keyed relative to the Config
// owning the failing field, e.g. "plugins[2].enabled". Options that validate
// nested documents return it so that the failing path survives the field boundary.
type ValidationErrors struct {
	Issues []Issue
}

// Error implements the error interface.
func (e *ValidationErrors) Error() string {
	if len(e.Issues) == 0 {
		return "no validation errors"
	}

	if len(e.Issues) == 1 {
		return e.Issues[0].String()
	}

	msgs := make([]string, 0, len(e.Issues))
	for _, issue := range e.Issues {
		msgs = append(msgs, issue.String())
	}

	return fmt.Sprintf("%d validation errors:\n  - %s", len(e.Issues), strings.Join(msgs, "\n  - "))
}

// issuesFor converts an error raised while validating key into keyed issues.
func issuesFor(key string, err error) []Issue {
	var nested *ValidationErrors
	if errors.As(err, &nested) && len(nested.Issues) > 0 {
		return nested.Issues
	}

	return []Issue{{Key: key, Message: err.Error(), Err: err}}
}
