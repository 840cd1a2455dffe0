package options

import (
	"github.com/0xalexb/hjarta-config/config"
)

// ExtensionChecker reports whether a Markdown extension can be loaded with
// the given options. *markdown.Registry implements it.
type ExtensionChecker interface {
	Check(name string, options map[string]any) error
}

// MarkdownExtensions validates a list or mapping of Markdown extension names.
//
// List items are names or single-key mappings of a name to its options. The
// builtins are always enabled and listed first; duplicates are dropped. The
// options of every configured extension are stored under configKey in
// post-validation, which is usually declared with NewPrivate.
type MarkdownExtensions struct {
	config.Base
	config.OptionallyRequired

	checker   ExtensionChecker
	builtins  []string
	configKey string
}

// NewMarkdownExtensions creates a MarkdownExtensions option. The default is an empty list.
func NewMarkdownExtensions(checker ExtensionChecker, builtins []string, configKey string, opts ...Opt) *MarkdownExtensions {
	return &MarkdownExtensions{
		OptionallyRequired: newOptionallyRequired(append([]Opt{Default([]any{})}, opts...)),
		checker:            checker,
		builtins:           builtins,
		configKey:          configKey,
	}
}

// Validate applies default and required handling, then Run.
func (m *MarkdownExtensions) Validate(f *config.Field, value any) (any, error) {
	return m.Apply(value, func(value any) (any, error) {
		return m.Run(f, value)
	})
}

// Run resolves the extension list and checks every extension.
//
//nolint:cyclop // list and mapping forms share the checks
func (m *MarkdownExtensions) Run(f *config.Field, value any) (any, error) {
	var (
		names   []string
		configs = map[string]any{}
	)

	add := func(name string, options any) error {
		if options == nil {
			names = append(names, name)

			return nil
		}

		mapping, ok := options.(map[string]any)
		if !ok {
			return config.Errorf(config.ErrTypeMismatch, "Invalid config options for Markdown Extension '%s'.", name)
		}

		if len(mapping) > 0 {
			configs[name] = mapping
		}

		names = append(names, name)

		return nil
	}

	switch typed := config.Normalize(value).(type) {
	case map[string]any:
		for _, name := range f.KeyOrder().Keys(f.Key(), typed) {
			err := add(name, typed[name])
			if err != nil {
				return nil, err
			}
		}
	case []any:
		for _, item := range typed {
			var err error

			switch entry := item.(type) {
			case string:
				err = add(entry, nil)
			case map[string]any:
				name, options, ok := singleEntry(entry)
				if !ok {
					return nil, config.Errorf(config.ErrSchemaViolation, "Invalid Markdown Extensions configuration")
				}

				err = add(name, options)
			default:
				return nil, config.Errorf(config.ErrSchemaViolation, "Invalid Markdown Extensions configuration")
			}

			if err != nil {
				return nil, err
			}
		}
	default:
		return nil, config.Errorf(config.ErrTypeMismatch, "Invalid Markdown Extensions configuration")
	}

	extensions := reduceList(append(append([]string{}, m.builtins...), names...))

	for _, name := range extensions {
		options, _ := configs[name].(map[string]any)

		err := m.checker.Check(name, options)
		if err != nil {
			return nil, config.Errorf(config.ErrInvalidValue, "Failed to load extension '%s'.\n%v", name, err)
		}
	}

	f.SetState(configs)

	result := make([]any, len(extensions))
	for i, name := range extensions {
		result[i] = name
	}

	return result, nil
}

// PostValidation stores the extension options under the config key.
func (m *MarkdownExtensions) PostValidation(f *config.Field) error {
	configs, ok := f.State().(map[string]any)
	if !ok {
		configs = map[string]any{}
	}

	f.Config().Set(m.configKey, configs)

	return nil
}

// reduceList drops duplicates, keeping the first occurrence.
func reduceList(items []string) []string {
	seen := make(map[string]bool, len(items))
	out := make([]string, 0, len(items))

	for _, item := range items {
		if seen[item] {
			continue
		}

		seen[item] = true

		out = append(out, item)
	}

	return out
}
