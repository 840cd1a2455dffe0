package plugin_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/0xalexb/hjarta-config/config"
	"github.com/0xalexb/hjarta-config/plugin"
)

func newBase() (plugin.Plugin, error) {
	return plugin.NewBase(config.NewSchema()), nil
}

func TestRegistry_Register(t *testing.T) {
	t.Parallel()

	registry := plugin.NewRegistry()

	require.NoError(t, registry.Register("search", newBase))
	require.NoError(t, registry.Register("blog", newBase))

	require.ErrorIs(t, registry.Register("search", newBase), plugin.ErrDuplicate)
	require.ErrorIs(t, registry.Register("", newBase), plugin.ErrEmptyName)

	assert.Equal(t, []string{"blog", "search"}, registry.Names())
}

func TestRegistry_Resolve(t *testing.T) {
	t.Parallel()

	registry := plugin.NewRegistry()
	require.NoError(t, registry.Register("search", newBase))

	factory, err := registry.Resolve("search")
	require.NoError(t, err)

	instance, err := factory()
	require.NoError(t, err)
	assert.IsType(t, &plugin.Base{}, instance)

	_, err = registry.Resolve("tags")
	require.ErrorIs(t, err, plugin.ErrNotInstalled)
	assert.EqualError(t, err, "plugin not installed: tags")
}
