package plugin

import (
	"context"
	"errors"

	"github.com/0xalexb/hjarta-config/config"
)

var (
	// ErrEmptyName is returned when a plugin is registered without a name.
	ErrEmptyName = errors.New("plugin name is empty")
	// ErrDuplicate is returned when a plugin name is registered twice.
	ErrDuplicate = errors.New("plugin already registered")
	// ErrNotInstalled is returned by a Resolver for an unknown plugin name.
	ErrNotInstalled = errors.New("plugin not installed")
)

// Plugin is a named extension configured from the document.
//
// LoadConfig validates the plugin options and returns the failures and the
// warnings, each keyed by the option name inside the plugin configuration.
type Plugin interface {
	LoadConfig(options map[string]any, sourcePath string) (errs, warnings []config.Issue)
}

// Starter is implemented by plugins that need to run when the application starts.
type Starter interface {
	OnStartup(ctx context.Context) error
}

// Stopper is implemented by plugins that need to run when the application stops.
type Stopper interface {
	OnShutdown(ctx context.Context) error
}

// Factory creates a new plugin instance.
type Factory func() (Plugin, error)

// Resolver maps plugin names to factories. It is the boundary to whatever
// mechanism discovers the installed plugins.
type Resolver interface {
	Names() []string
	Resolve(name string) (Factory, error)
}

// UnitLoader loads a plugin from a file, e.g. a hook script.
type UnitLoader interface {
	Load(name, path string) (Plugin, error)
}

// Base is a Plugin that validates its options against its own Schema.
// Concrete plugins embed it and read their options with Config.
type Base struct {
	schema *config.Schema
	config *config.Config
}

// NewBase creates a Base validating options against schema.
func NewBase(schema *config.Schema) *Base {
	return &Base{schema: schema}
}

// LoadConfig validates options and keeps the resulting Config.
func (b *Base) LoadConfig(options map[string]any, sourcePath string) ([]config.Issue, []config.Issue) {
	cfg := config.NewConfig(b.schema, sourcePath)

	err := cfg.LoadDict(options)
	if err != nil {
		return []config.Issue{{Message: err.Error(), Err: err}}, nil
	}

	result := cfg.Validate()
	b.config = cfg

	return result.Errors, result.Warnings
}

// Config returns the options loaded last, or nil.
func (b *Base) Config() *config.Config {
	return b.config
}
