package options

import (
	"strings"

	"github.com/0xalexb/hjarta-config/config"
)

// Nav validates a navigation tree: a list whose items are page strings or
// single-key mappings of a title to a page or a nested list.
//
// A nested mapping where a list is expected is accepted with a warning.
type Nav struct {
	config.Base
	config.OptionallyRequired
}

// NewNav creates a Nav option.
func NewNav(opts ...Opt) *Nav {
	return &Nav{OptionallyRequired: newOptionallyRequired(opts)}
}

// Validate applies default and required handling, then Run.
func (n *Nav) Validate(f *config.Field, value any) (any, error) {
	return n.Apply(value, func(value any) (any, error) {
		return n.Run(f, value)
	})
}

// Run validates the tree. An empty top-level list is reported as unset.
func (n *Nav) Run(f *config.Field, value any) (any, error) {
	value = config.Normalize(value)

	err := n.check(f, value, true)
	if err != nil {
		return nil, err
	}

	if list, ok := value.([]any); ok && len(list) == 0 {
		return nil, nil
	}

	return value, nil
}

func (n *Nav) check(f *config.Field, value any, top bool) error {
	switch typed := value.(type) {
	case []any:
		for _, item := range typed {
			err := n.checkItem(f, item)
			if err != nil {
				return err
			}
		}

		return nil
	case map[string]any:
		if top || len(typed) == 0 {
			break
		}

		f.Warnf("Expected nav to be a list, got %s", describeNavItem(value))

		for _, key := range sortedKeys(typed) {
			err := n.check(f, typed[key], false)
			if err != nil {
				return err
			}
		}

		return nil
	case string:
		if !top {
			return nil
		}
	}

	return config.Errorf(config.ErrTypeMismatch, "Expected nav to be a list, got %s", describeNavItem(value))
}

func (n *Nav) checkItem(f *config.Field, item any) error {
	switch typed := item.(type) {
	case string:
		return nil
	case map[string]any:
		_, sub, ok := singleEntry(typed)
		if !ok {
			return config.Errorf(config.ErrSchemaViolation,
				"Expected nav item to be a dict of size 1, got %s", describeNavItem(item))
		}

		return n.check(f, sub, false)
	default:
		return config.Errorf(config.ErrTypeMismatch,
			"Expected nav item to be a string or dict, got %s", describeNavItem(item))
	}
}

func describeNavItem(value any) string {
	switch typed := value.(type) {
	case map[string]any:
		if len(typed) > 0 {
			return "dict with keys (" + strings.Join(sortedKeys(typed), ", ") + ")"
		}
	case string, nil:
		return formatValue(value)
	}

	return "a " + typeName(value) + ": " + formatValue(value)
}
