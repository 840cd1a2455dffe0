package options

import (
	"fmt"
	"reflect"
	"sync"

	"github.com/0xalexb/hjarta-config/config"
	"github.com/0xalexb/hjarta-config/plugin"
)

// Plugins validates a list or mapping of plugins into a *plugin.Collection.
//
// List items are plugin names or single-key mappings of a name to its
// options; a mapping maps names to options and is loaded in document order
// when the parser reports it, in name order otherwise. Options must be a
// mapping or null. A *plugin.Collection, the output of a previous
// validation, is accepted as is.
type Plugins struct {
	config.Base
	config.OptionallyRequired

	loader *plugin.Loader
}

// NewPlugins creates a Plugins option loading plugins with loader.
func NewPlugins(loader *plugin.Loader, opts ...Opt) *Plugins {
	return &Plugins{
		OptionallyRequired: newOptionallyRequired(opts),
		loader:             loader,
	}
}

// Validate applies default and required handling, then Run.
func (p *Plugins) Validate(f *config.Field, value any) (any, error) {
	return p.Apply(value, func(value any) (any, error) {
		return p.Run(f, value)
	})
}

// Run loads every configured plugin.
func (p *Plugins) Run(f *config.Field, value any) (any, error) {
	if validated, ok := value.(*plugin.Collection); ok {
		return validated, nil
	}

	collection := plugin.NewCollection()

	switch typed := config.Normalize(value).(type) {
	case map[string]any:
		for _, name := range f.KeyOrder().Keys(f.Key(), typed) {
			err := p.load(f, collection, name, typed[name])
			if err != nil {
				return nil, err
			}
		}
	case []any:
		for _, item := range typed {
			var (
				name    any = item
				options any
			)

			if mapping, isMapping := item.(map[string]any); isMapping {
				key, value, ok := singleEntry(mapping)
				if !ok {
					return nil, config.Errorf(config.ErrSchemaViolation, "Invalid Plugins configuration")
				}

				name, options = key, value
			}

			err := p.load(f, collection, name, options)
			if err != nil {
				return nil, err
			}
		}
	default:
		return nil, config.Errorf(config.ErrTypeMismatch, "Invalid Plugins configuration. Expected a list or dict.")
	}

	return collection, nil
}

func (p *Plugins) load(f *config.Field, collection *plugin.Collection, rawName, rawOptions any) error {
	name, ok := rawName.(string)
	if !ok {
		return config.Errorf(config.ErrTypeMismatch, "'%v' is not a valid plugin name.", rawName)
	}

	var options map[string]any

	if rawOptions != nil {
		options, ok = rawOptions.(map[string]any)
		if !ok {
			return config.Errorf(config.ErrTypeMismatch, "Invalid config options for the '%s' plugin.", name)
		}
	}

	instance, warnings, err := p.loader.Load(name, options, f.SourcePath())

	for _, warning := range warnings {
		f.Warn(warning.Message)
	}

	if err != nil {
		return err
	}

	collection.Set(name, instance)

	return nil
}

// Hooks validates a list of hook files into a *plugin.Collection. Each hook
// is named after its file and loaded with a plugin.UnitLoader. In
// post-validation the hooks are added to the plugins collection stored under
// pluginsKey; a plugin already registered under a hook's name is kept. The
// collection is created only when the schema does not declare pluginsKey, so
// a plugins field that failed validation stays unset.
type Hooks struct {
	*ListOfItems

	pluginsKey string
	units      plugin.UnitLoader

	mu    sync.Mutex
	cache map[hookKey]plugin.Plugin
}

type hookKey struct {
	name string
	path string
}

// NewHooks creates a Hooks option merging into the collection under pluginsKey.
func NewHooks(pluginsKey string, units plugin.UnitLoader) *Hooks {
	return &Hooks{
		ListOfItems: NewListOfItems(NewFile(true), Default([]any{})),
		pluginsKey:  pluginsKey,
		units:       units,
		cache:       make(map[hookKey]plugin.Plugin),
	}
}

// Validate applies default handling, then Run.
func (h *Hooks) Validate(f *config.Field, value any) (any, error) {
	if value == nil {
		value = []any{}
	}

	return h.Run(f, value)
}

// Run resolves the hook paths and loads every hook. A *plugin.Collection,
// the output of a previous validation, is accepted as is.
func (h *Hooks) Run(f *config.Field, value any) (any, error) {
	if validated, ok := value.(*plugin.Collection); ok {
		return validated, nil
	}

	names, _ := asList(value)

	resolved, err := h.ListOfItems.Run(f, value)
	if err != nil {
		return nil, err
	}

	paths, _ := resolved.([]any)
	collection := plugin.NewCollection()

	for i, path := range paths {
		name := fmt.Sprint(names[i])

		hook, err := h.load(name, fmt.Sprint(path))
		if err != nil {
			return nil, err
		}

		collection.Set(name, hook)
	}

	return collection, nil
}

func (h *Hooks) load(name, path string) (plugin.Plugin, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	key := hookKey{name: name, path: path}
	if hook, cached := h.cache[key]; cached {
		return hook, nil
	}

	hook, err := h.units.Load(name, path)
	if err != nil {
		return nil, config.Errorf(config.ErrPluginResolution, "Cannot load the hook '%s' from '%s': %v", name, path, err)
	}

	h.cache[key] = hook

	return hook, nil
}

// PostValidation merges the hooks into the plugins collection.
func (h *Hooks) PostValidation(f *config.Field) error {
	cfg := f.Config()

	hooks, ok := cfg.Get(f.Key()).(*plugin.Collection)
	if !ok || hooks.Len() == 0 {
		return nil
	}

	plugins, ok := cfg.Get(h.pluginsKey).(*plugin.Collection)
	if !ok {
		if cfg.Schema().Has(h.pluginsKey) {
			return nil
		}

		plugins = plugin.NewCollection()
		cfg.Set(h.pluginsKey, plugins)
	}

	for _, name := range hooks.Names() {
		hook, _ := hooks.Get(name)

		if plugins.Add(name, hook) {
			continue
		}

		if loaded, _ := plugins.Get(name); !sameInstance(loaded, hook) {
			f.Warnf("The hook '%s' is not loaded because a plugin with the same name is already loaded.", name)
		}
	}

	return nil
}

// sameInstance reports whether a and b are the same plugin value.
func sameInstance(a, b plugin.Plugin) bool {
	typ := reflect.TypeOf(a)
	if typ == nil || typ != reflect.TypeOf(b) || !typ.Comparable() {
		return false
	}

	return a == b
}
