package options

import (
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/0xalexb/hjarta-config/config"
)

// Opt configures the default and required handling of an option.
type Opt func(*config.OptionallyRequired)

// Default sets the value used when the field is absent.
func Default(value any) Opt {
	return func(o *config.OptionallyRequired) {
		o.Default = config.Normalize(value)
	}
}

// Required makes an absent field without default a validation error.
func Required() Opt {
	return func(o *config.OptionallyRequired) {
		o.Required = true
	}
}

func newOptionallyRequired(opts []Opt) config.OptionallyRequired {
	var required config.OptionallyRequired

	for _, apply := range opts {
		apply(&required)
	}

	return required
}

// typeName describes the type of a decoded value for error messages.
func typeName(value any) string {
	switch value.(type) {
	case nil:
		return "null"
	case string:
		return "string"
	case bool:
		return "bool"
	case int:
		return "int"
	case float64:
		return "float"
	case []any:
		return "list"
	case map[string]any:
		return "dict"
	default:
		return fmt.Sprintf("%T", value)
	}
}

// formatValue renders a value the way it would be written in the document.
func formatValue(value any) string {
	switch typed := value.(type) {
	case nil:
		return "null"
	case string:
		return fmt.Sprintf("%q", typed)
	default:
		return fmt.Sprintf("%v", typed)
	}
}

func formatValues(values []any) string {
	parts := make([]string, len(values))
	for i, value := range values {
		parts[i] = formatValue(value)
	}

	return "[" + strings.Join(parts, ", ") + "]"
}

// asList returns value as a sequence.
func asList(value any) ([]any, bool) {
	if list, ok := value.([]any); ok {
		return list, true
	}

	if value == nil {
		return nil, false
	}

	reflected := reflect.ValueOf(value)
	if reflected.Kind() != reflect.Slice && reflected.Kind() != reflect.Array {
		return nil, false
	}

	list, ok := config.Normalize(value).([]any)

	return list, ok
}

func sortedKeys(mapping map[string]any) []string {
	keys := make([]string, 0, len(mapping))
	for key := range mapping {
		keys = append(keys, key)
	}

	sort.Strings(keys)

	return keys
}

// singleEntry returns the only key and value of a one-key mapping.
func singleEntry(mapping map[string]any) (string, any, bool) {
	if len(mapping) != 1 {
		return "", nil, false
	}

	for key, value := range mapping {
		return key, value, true
	}

	return "", nil, false
}
