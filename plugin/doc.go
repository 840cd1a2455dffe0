// Package plugin defines the contract of configuration plugins and the
// machinery that resolves, instantiates and configures them.
//
// A plugin is resolved by name through a Resolver, created by its Factory and
// configured with LoadConfig. Plugins that embed Base validate their options
// against their own config.Schema:
//
//	type sitemap struct {
//		*plugin.Base
//	}
//
//	registry := plugin.NewRegistry()
//	_ = registry.Register("sitemap", func() (plugin.Plugin, error) {
//		return &sitemap{Base: plugin.NewBase(config.NewSchema(
//			config.Define("enabled", options.NewType(options.Bool, options.Default(true))),
//		))}, nil
//	})
//
//	loader := plugin.NewLoader(registry)
//
// The loader is handed to the Plugins option, which returns a Collection of
// the configured plugins. Plugins implementing Starter or Stopper take part in
// the application lifecycle through Collection.Startup and Collection.Shutdown.
package plugin
