package hjarta

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/0xalexb/hjarta-config/config"
	filefetcher "github.com/0xalexb/hjarta-config/config/fetcher/file"
	hclparser "github.com/0xalexb/hjarta-config/config/parser/hcl"
	tomlparser "github.com/0xalexb/hjarta-config/config/parser/toml"
	yamlparser "github.com/0xalexb/hjarta-config/config/parser/yaml"
	"github.com/0xalexb/hjarta-config/plugin"

	"go.uber.org/fx"
)

var (
	// ErrNoConfigFile is returned when a schema is set without a configuration file.
	ErrNoConfigFile = errors.New("no configuration file")
	// ErrNoSchema is returned when a configuration file is set without a schema.
	ErrNoSchema = errors.New("no configuration schema")
	// ErrUnsupportedFormat is returned for a configuration file with an unknown extension.
	ErrUnsupportedFormat = errors.New("unsupported configuration format")
)

// configModule provides the validated *config.Config and binds the plugins
// it holds to the application lifecycle.
//
//nolint:ireturn // fx.Option is the standard return type for Fx modules
func configModule(options *Options) fx.Option {
	if options.ConfigFile == "" {
		return fx.Error(ErrNoConfigFile)
	}

	if options.Schema == nil {
		return fx.Error(ErrNoSchema)
	}

	newParser, err := parserFor(options.ConfigFile)
	if err != nil {
		return fx.Error(err)
	}

	return fx.Module("config",
		fx.Provide(
			fx.Annotate(
				newParser,
				fx.As(new(config.Parser)),
			),
		),
		fx.Provide(
			fx.Annotate(
				filefetcher.NewFetcher(options.ConfigFile),
				fx.As(new(config.DataFetcher)),
			),
		),
		fx.Provide(config.Provider(options.Schema, options.Section)),
		fx.Invoke(registerPlugins),
	)
}

// parserFor returns the parser constructor for the extension of path.
func parserFor(path string) (any, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yml", ".yaml":
		return yamlparser.NewParser, nil
	case ".toml":
		return tomlparser.NewParser, nil
	case ".hcl":
		return hclparser.NewParser, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
}

// registerPlugins starts and stops the plugins held by cfg with the application.
func registerPlugins(lifecycle fx.Lifecycle, cfg *config.Config) {
	plugins := lifecyclePlugins(cfg)
	if plugins.Len() == 0 {
		return
	}

	slog.Debug("registering plugin lifecycle", slog.Any("plugins", plugins.Names()))

	lifecycle.Append(fx.Hook{
		OnStart: plugins.Startup,
		OnStop:  plugins.Shutdown,
	})
}

// lifecyclePlugins collects the plugin collections of cfg in schema order.
// A plugin held by more than one collection under the same name runs once.
func lifecyclePlugins(cfg *config.Config) *plugin.Collection {
	merged := plugin.NewCollection()

	for _, key := range cfg.Schema().Keys() {
		collection, ok := cfg.Get(key).(*plugin.Collection)
		if !ok {
			continue
		}

		for _, name := range collection.Names() {
			p, _ := collection.Get(name)
			merged.Add(name, p)
		}
	}

	return merged
}
