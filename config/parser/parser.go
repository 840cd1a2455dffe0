package parser

import (
	"errors"
	"fmt"
	"strings"

	"github.com/0xalexb/hjarta-config/config"
)

// ErrEmptyData is returned when the input data is empty.
var ErrEmptyData = errors.New("empty data")

// ErrPathNotFound is returned when the specified path is not found in the document.
var ErrPathNotFound = errors.New("path not found")

// ErrNotMapping is returned when a mapping target receives a value that is not a mapping.
var ErrNotMapping = errors.New("document is not a mapping")

// ErrUnsupportedTarget is returned when a parser cannot decode into the target type.
var ErrUnsupportedTarget = errors.New("unsupported target")

// SplitPath splits a colon-separated path into its keys.
func SplitPath(path string) []string {
	if path == "" {
		return nil
	}

	return strings.Split(path, ":")
}

// Navigate returns the value at path in doc. An empty path returns doc.
func Navigate(doc map[string]any, path string) (any, error) {
	var current any = doc

	for _, key := range SplitPath(path) {
		mapping, ok := current.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrPathNotFound, path)
		}

		current, ok = mapping[key]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrPathNotFound, path)
		}
	}

	return current, nil
}

// Assign stores the normalized value in target, which must be a *map[string]any
// or a *any. A null document assigns an empty mapping.
func Assign(value any, target any) error {
	value = config.Normalize(value)

	switch typed := target.(type) {
	case *map[string]any:
		if value == nil {
			*typed = map[string]any{}

			return nil
		}

		mapping, ok := value.(map[string]any)
		if !ok {
			return fmt.Errorf("%w: got %T", ErrNotMapping, value)
		}

		*typed = mapping

		return nil
	case *any:
		*typed = value

		return nil
	default:
		return fmt.Errorf("%w: %T", ErrUnsupportedTarget, target)
	}
}

// IsDocumentTarget reports whether Assign accepts target.
func IsDocumentTarget(target any) bool {
	switch target.(type) {
	case *map[string]any, *any:
		return true
	default:
		return false
	}
}
