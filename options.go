package hjarta

import (
	"github.com/0xalexb/hjarta-config/config"

	"go.uber.org/fx"
)

// Options holds configuration settings for the application.
type Options struct {
	Modules    []fx.Option
	LogLevel   string
	LogFormat  string
	ConfigFile string
	Section    string
	Schema     *config.Schema
}

// Option defines a function type for applying configuration options.
type Option func(*Options)

// WithModules adds Fx modules to the application.
func WithModules(modules ...fx.Option) Option {
	return func(opts *Options) {
		opts.Modules = append(opts.Modules, modules...)
	}
}

// WithConfigFile sets the configuration file validated at startup.
// The format is picked from the extension: .yml, .yaml, .toml or .hcl.
func WithConfigFile(path string) Option {
	return func(opts *Options) {
		opts.ConfigFile = path
	}
}

// WithSchema sets the schema the configuration file is validated against.
func WithSchema(schema *config.Schema) Option {
	return func(opts *Options) {
		opts.Schema = schema
	}
}

// WithSection validates only the section at the colon-separated path,
// e.g. "site" or "tools:docs".
func WithSection(section string) Option {
	return func(opts *Options) {
		opts.Section = section
	}
}

// WithLogLevel sets the log level for the application.
// Valid levels are: "debug", "info", "warn", "error".
// If not set or invalid, defaults to "info".
func WithLogLevel(level string) Option {
	return func(opts *Options) {
		opts.LogLevel = level
	}
}

// WithLogFormat sets the log output format: "json" (default) or "text".
func WithLogFormat(format string) Option {
	return func(opts *Options) {
		opts.LogFormat = format
	}
}
