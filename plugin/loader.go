package plugin

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/agext/levenshtein"

	"github.com/0xalexb/hjarta-config/config"
)

// maxSuggestionDistance is the largest edit distance for which an installed
// plugin is suggested in place of an unknown name.
const maxSuggestionDistance = 3

// Loader resolves, instantiates and configures plugins.
//
// Instances that implement Starter or Stopper are cached by name for the
// lifetime of the Loader, so that a configuration validated twice does not run
// a plugin's lifecycle twice. Other plugins are created anew on every Load.
// A Loader is safe for concurrent use. The lock covers resolution and the
// cache only, so a plugin may load nested plugins through the same Loader
// from its LoadConfig.
type Loader struct {
	resolver Resolver

	mu    sync.Mutex
	cache map[string]Plugin
}

// NewLoader creates a Loader for the plugins known to resolver.
func NewLoader(resolver Resolver) *Loader {
	return &Loader{
		resolver: resolver,
		cache:    make(map[string]Plugin),
	}
}

// Load returns the plugin registered under name configured with options.
//
// Resolution failures are *config.ValidationError of kind
// config.ErrPluginResolution, rejected options of kind config.ErrPluginConfig.
// The returned warnings are ready to be attached to the plugins field.
func (l *Loader) Load(name string, options map[string]any, sourcePath string) (Plugin, []config.Issue, error) {
	instance, err := l.instance(name)
	if err != nil {
		return nil, nil, err
	}

	if options == nil {
		options = map[string]any{}
	}

	errs, warnings := instance.LoadConfig(options, sourcePath)

	issues := make([]config.Issue, len(warnings))
	for i, warning := range warnings {
		issues[i] = config.Issue{
			Key:     warning.Key,
			Message: fmt.Sprintf("Plugin '%s' value: '%s'. Warning: %s", name, warning.Key, warning.Message),
		}
	}

	if len(errs) > 0 {
		lines := make([]string, len(errs))
		for i, failure := range errs {
			lines[i] = fmt.Sprintf("Plugin '%s' value: '%s'. Error: %s", name, failure.Key, failure.Message)
		}

		return nil, issues, config.Errorf(config.ErrPluginConfig, "%s", strings.Join(lines, "\n"))
	}

	return instance, issues, nil
}

// instance returns the cached instance of name or creates one.
func (l *Loader) instance(name string) (Plugin, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if instance, cached := l.cache[name]; cached {
		return instance, nil
	}

	return l.instantiate(name)
}

func (l *Loader) instantiate(name string) (Plugin, error) {
	factory, err := l.resolver.Resolve(name)
	if err != nil {
		if errors.Is(err, ErrNotInstalled) {
			return nil, config.Errorf(config.ErrPluginResolution,
				"The \"%s\" plugin is not installed%s", name, l.suggest(name))
		}

		return nil, config.Errorf(config.ErrPluginResolution, "Unable to resolve the \"%s\" plugin: %v", name, err)
	}

	instance, err := factory()
	if err != nil {
		return nil, config.Errorf(config.ErrPluginResolution, "Unable to create the \"%s\" plugin: %v", name, err)
	}

	if instance == nil {
		return nil, config.Errorf(config.ErrPluginResolution, "The \"%s\" plugin factory returned no plugin", name)
	}

	_, starts := instance.(Starter)
	_, stops := instance.(Stopper)

	if starts || stops {
		l.cache[name] = instance
	}

	return instance, nil
}

// suggest returns a "Did you mean" hint naming the closest installed plugin.
func (l *Loader) suggest(name string) string {
	var (
		best     string
		bestDist = maxSuggestionDistance + 1
	)

	for _, candidate := range l.resolver.Names() {
		dist := levenshtein.Distance(name, candidate, nil)
		if dist < bestDist {
			best, bestDist = candidate, dist
		}
	}

	if best == "" {
		return ""
	}

	return fmt.Sprintf(". Did you mean \"%s\"?", best)
}
