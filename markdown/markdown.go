package markdown

import (
	"bytes"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

var (
	// ErrUnknownExtension is returned for an extension name that is not registered.
	ErrUnknownExtension = errors.New("unknown markdown extension")
	// ErrUnsupportedOptions is returned when an extension is given options it does not accept.
	ErrUnsupportedOptions = errors.New("unsupported extension options")
)

// sample exercises the common block and inline constructs when an extension is checked.
const sample = "# Title\n\n| a | b |\n|---|---|\n| 1 | 2 |\n\n- [x] ~~done~~ https://example.com[^1]\n\n" +
	"Term\n: Definition \"quoted\" -- text...\n\n[^1]: Note.\n"

// Builder creates a goldmark extension from its options. options is nil when
// the extension is enabled without options.
type Builder func(options map[string]any) (goldmark.Extender, error)

// Registry maps extension names to builders. It is safe for concurrent use.
type Registry struct {
	mu       sync.RWMutex
	builders map[string]Builder
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{builders: make(map[string]Builder)}
}

// DefaultRegistry creates a Registry with the goldmark extensions.
func DefaultRegistry() *Registry {
	registry := NewRegistry()

	registry.Register("tables", Plain(extension.Table))
	registry.Register("strikethrough", Plain(extension.Strikethrough))
	registry.Register("linkify", Plain(extension.Linkify))
	registry.Register("tasklist", Plain(extension.TaskList))
	registry.Register("gfm", Plain(extension.GFM))
	registry.Register("definition_list", Plain(extension.DefinitionList))
	registry.Register("typographer", Plain(extension.Typographer))
	registry.Register("footnote", footnote)

	return registry
}

// Plain returns a Builder for an extension that takes no options.
func Plain(ext goldmark.Extender) Builder {
	return func(options map[string]any) (goldmark.Extender, error) {
		if len(options) > 0 {
			return nil, ErrUnsupportedOptions
		}

		return ext, nil
	}
}

func footnote(options map[string]any) (goldmark.Extender, error) {
	var opts []extension.FootnoteOption

	for key, value := range options {
		switch key {
		case "id_prefix":
			prefix, ok := value.(string)
			if !ok {
				return nil, fmt.Errorf("%w: id_prefix must be a string", ErrUnsupportedOptions)
			}

			opts = append(opts, extension.WithFootnoteIDPrefix([]byte(prefix)))
		default:
			return nil, fmt.Errorf("%w: %s", ErrUnsupportedOptions, key)
		}
	}

	return extension.NewFootnote(opts...), nil
}

// Register adds or replaces the builder of name.
func (r *Registry) Register(name string, builder Builder) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.builders[name] = builder
}

// Names returns the registered names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.builders))
	for name := range r.builders {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}

// Build creates the extension name configured with options.
func (r *Registry) Build(name string, options map[string]any) (goldmark.Extender, error) {
	r.mu.RLock()
	builder, ok := r.builders[name]
	r.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownExtension, name)
	}

	ext, err := builder(options)
	if err != nil {
		return nil, fmt.Errorf("building extension %s: %w", name, err)
	}

	return ext, nil
}

// Check builds the extension and renders a sample document with it.
func (r *Registry) Check(name string, options map[string]any) error {
	ext, err := r.Build(name, options)
	if err != nil {
		return err
	}

	var buf bytes.Buffer

	err = goldmark.New(goldmark.WithExtensions(ext)).Convert([]byte(sample), &buf)
	if err != nil {
		return fmt.Errorf("rendering with extension %s: %w", name, err)
	}

	return nil
}

// New creates a goldmark renderer with the named extensions. configs maps
// extension names to their options, as stored by the MarkdownExtensions option.
func (r *Registry) New(names []string, configs map[string]any) (goldmark.Markdown, error) {
	extenders := make([]goldmark.Extender, 0, len(names))

	for _, name := range names {
		options, _ := configs[name].(map[string]any)

		ext, err := r.Build(name, options)
		if err != nil {
			return nil, err
		}

		extenders = append(extenders, ext)
	}

	return goldmark.New(goldmark.WithExtensions(extenders...)), nil
}
