package options

import (
	"strings"
	"unicode/utf8"

	"github.com/0xalexb/hjarta-config/config"
)

// Kind is a named type check with coercion.
type Kind struct {
	name   string
	coerce func(value any) (any, bool)
}

// NewKind creates a Kind. coerce returns the normalized value and whether value
// is of the kind.
func NewKind(name string, coerce func(value any) (any, bool)) Kind {
	return Kind{name: name, coerce: coerce}
}

// String returns the kind name.
func (k Kind) String() string {
	return k.name
}

// Match coerces value to the kind.
func (k Kind) Match(value any) (any, bool) {
	return k.coerce(config.Normalize(value))
}

// AnyOf matches the first of kinds that accepts the value.
func AnyOf(kinds ...Kind) Kind {
	names := make([]string, len(kinds))
	for i, kind := range kinds {
		names[i] = kind.name
	}

	return Kind{
		name: strings.Join(names, " or "),
		coerce: func(value any) (any, bool) {
			for _, kind := range kinds {
				if coerced, ok := kind.coerce(value); ok {
					return coerced, true
				}
			}

			return nil, false
		},
	}
}

//nolint:gochecknoglobals // predefined kinds are immutable
var (
	// String matches strings.
	String = NewKind("string", func(value any) (any, bool) {
		s, ok := value.(string)

		return s, ok
	})
	// Int matches integers.
	Int = NewKind("int", func(value any) (any, bool) {
		i, ok := value.(int)

		return i, ok
	})
	// Float matches floating point numbers.
	Float = NewKind("float", func(value any) (any, bool) {
		f, ok := value.(float64)

		return f, ok
	})
	// Number matches integers and floating point numbers.
	Number = AnyOf(Int, Float)
	// Bool matches booleans.
	Bool = NewKind("bool", func(value any) (any, bool) {
		b, ok := value.(bool)

		return b, ok
	})
	// List matches sequences.
	List = NewKind("list", func(value any) (any, bool) {
		l, ok := value.([]any)

		return l, ok
	})
	// Map matches mappings.
	Map = NewKind("dict", func(value any) (any, bool) {
		m, ok := value.(map[string]any)

		return m, ok
	})
)

// Type validates the type of a value, and optionally its length.
type Type struct {
	config.Base
	config.OptionallyRequired

	kind   Kind
	length int
}

// NewType creates a Type option for kind.
func NewType(kind Kind, opts ...Opt) *Type {
	return &Type{
		OptionallyRequired: newOptionallyRequired(opts),
		kind:               kind,
		length:             -1,
	}
}

// WithLength requires strings, lists and mappings to have exactly n elements.
func (t *Type) WithLength(n int) *Type {
	t.length = n

	return t
}

// Validate applies default and required handling, then Run.
func (t *Type) Validate(f *config.Field, value any) (any, error) {
	return t.Apply(value, func(value any) (any, error) {
		return t.Run(f, value)
	})
}

// Run checks the type and length of value.
func (t *Type) Run(_ *config.Field, value any) (any, error) {
	coerced, ok := t.kind.Match(value)
	if !ok {
		return nil, config.Errorf(config.ErrTypeMismatch,
			"Expected type: %s but received: %s", t.kind, typeName(value))
	}

	if t.length < 0 {
		return coerced, nil
	}

	length, hasLength := lengthOf(coerced)
	if !hasLength || length != t.length {
		return nil, config.Errorf(config.ErrTypeMismatch,
			"Expected type: %s with length %d but received: %s with length %d",
			t.kind, t.length, formatValue(coerced), length)
	}

	return coerced, nil
}

func lengthOf(value any) (int, bool) {
	switch typed := value.(type) {
	case string:
		return utf8.RuneCountInString(typed), true
	case []any:
		return len(typed), true
	case map[string]any:
		return len(typed), true
	default:
		return 0, false
	}
}
