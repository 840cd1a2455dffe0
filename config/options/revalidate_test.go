package options_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/0xalexb/hjarta-config/config"
	"github.com/0xalexb/hjarta-config/config/options"
	"github.com/0xalexb/hjarta-config/plugin"
)

func siteSchema(t *testing.T) *config.Schema {
	t.Helper()

	theme := config.NewSchema(
		config.Define("name", options.NewType(options.String)),
		config.Define("locale", options.NewType(options.String, options.Default("en"))),
	)

	return config.NewSchema(
		config.Define("plugins", options.NewPlugins(newPluginLoader(t), options.Default([]any{"search"}))),
		config.Define("hooks", options.NewHooks("plugins", &fakeUnitLoader{})),
		config.Define("repo_url", options.NewURL()),
		config.Define("repo_name", options.NewRepoName("repo_url")),
		config.Define("edit_uri_template", options.NewEditURITemplate("")),
		config.Define("dev_addr", options.NewIPAddress(options.Default("127.0.0.1:8000"))),
		config.Define("theme", options.NewSubConfig(theme)),
		config.Define("nav", options.NewNav()),
	)
}

func TestSchema_RevalidatesOwnOutput(t *testing.T) {
	t.Parallel()

	_, source := hookTree(t)
	schema := siteSchema(t)

	first, result := validate(t, schema, source, map[string]any{
		"plugins":           []any{"search", map[string]any{"tags": map[string]any{"enabled": true}}, "server"},
		"hooks":             []any{"hook.lua"},
		"repo_url":          "https://github.com/example/docs",
		"edit_uri_template": "blob/main/docs/{path}",
		"dev_addr":          "[::1]:8001",
		"theme":             map[string]any{"name": "material"},
		"nav":               []any{"index.md", map[string]any{"About": "about.md"}},
	})
	require.True(t, result.Valid(), result.Report())

	second, result := validate(t, schema, source, first.ToMap())
	require.True(t, result.Valid(), result.Report())
	assert.Empty(t, result.Warnings)

	firstPlugins, ok := first.Get("plugins").(*plugin.Collection)
	require.True(t, ok)

	secondPlugins, ok := second.Get("plugins").(*plugin.Collection)
	require.True(t, ok)
	assert.Equal(t, []string{"search", "tags", "server", "hook.lua"}, secondPlugins.Names())
	assert.Equal(t, firstPlugins.Names(), secondPlugins.Names())

	template, ok := second.Get("edit_uri_template").(options.URITemplate)
	require.True(t, ok)
	assert.Equal(t, "blob/main/docs/{path}", template.String())

	assert.Equal(t, options.Address{Host: "::1", Port: 8001}, second.Get("dev_addr"))
	assert.Equal(t, "GitHub", second.Get("repo_name"))
	assert.Equal(t, first.ToMap()["theme"], second.ToMap()["theme"])
	assert.Equal(t, first.Get("nav"), second.Get("nav"))
}
