package hjarta_test

import (
	"testing"

	hjarta "github.com/0xalexb/hjarta-config"
	"github.com/0xalexb/hjarta-config/config"

	"github.com/stretchr/testify/require"
	"go.uber.org/fx"
)

func TestWithLogLevel(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		level    string
		expected string
	}{
		{name: "debug level", level: "debug", expected: "debug"},
		{name: "warn level", level: "warn", expected: "warn"},
		{name: "empty level", level: "", expected: ""},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			var opts hjarta.Options

			hjarta.WithLogLevel(testCase.level)(&opts)

			require.Equal(t, testCase.expected, opts.LogLevel)
		})
	}
}

func TestWithLogFormat(t *testing.T) {
	t.Parallel()

	var opts hjarta.Options

	hjarta.WithLogFormat("text")(&opts)

	require.Equal(t, "text", opts.LogFormat)
}

func TestWithModules(t *testing.T) {
	t.Parallel()

	var opts hjarta.Options

	hjarta.WithModules(fx.Module("test1"))(&opts)
	require.Len(t, opts.Modules, 1)

	hjarta.WithModules(fx.Module("test2"), fx.Module("test3"))(&opts)
	require.Len(t, opts.Modules, 3)
}

func TestWithConfigOptions(t *testing.T) {
	t.Parallel()

	schema := config.NewSchema()

	var opts hjarta.Options

	hjarta.WithConfigFile("site.yml")(&opts)
	hjarta.WithSection("tools:docs")(&opts)
	hjarta.WithSchema(schema)(&opts)

	require.Equal(t, "site.yml", opts.ConfigFile)
	require.Equal(t, "tools:docs", opts.Section)
	require.Same(t, schema, opts.Schema)
}
