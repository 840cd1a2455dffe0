package config

import (
	"testing"

	"github.com/goccy/go-yaml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type port uint16

func TestNormalize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		value    any
		expected any
	}{
		{name: "scalar", value: "docs", expected: "docs"},
		{name: "nil", value: nil, expected: nil},
		{name: "sized integers", value: []any{int8(1), int64(2), uint8(3), uint64(4)}, expected: []any{1, 2, 3, 4}},
		{name: "float32", value: float32(0.5), expected: 0.5},
		{name: "any keys", value: map[any]any{1: "a", "b": true}, expected: map[string]any{"1": "a", "b": true}},
		{name: "named integer", value: port(8080), expected: port(8080)},
		{name: "typed slice", value: []string{"a", "b"}, expected: []any{"a", "b"}},
		{name: "typed map", value: map[string]int32{"a": 1}, expected: map[string]any{"a": 1}},
		{name: "bytes", value: []byte("raw"), expected: []byte("raw")},
		{
			name:     "nested",
			value:    map[string]any{"list": []any{map[any]any{"x": uint32(1)}}},
			expected: map[string]any{"list": []any{map[string]any{"x": 1}}},
		},
	}

	for _, testInfo := range tests {
		t.Run(testInfo.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, testInfo.expected, Normalize(testInfo.value))
		})
	}
}

func TestJoinKey(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "theme", JoinKey("", "theme"))
	assert.Equal(t, "theme", JoinKey("theme", ""))
	assert.Equal(t, "theme.name", JoinKey("theme", "name"))
	assert.Equal(t, "nav[0]", JoinKey("nav", "[0]"))
	assert.Equal(t, "nav[0].title", JoinKey(JoinKey("nav", "[0]"), "title"))
}

func TestClone(t *testing.T) {
	t.Parallel()

	original := map[string]any{"list": []any{map[string]any{"a": 1}}}

	cloned, ok := Clone(original).(map[string]any)
	require.True(t, ok)

	cloned["list"].([]any)[0].(map[string]any)["a"] = 2

	assert.Equal(t, map[string]any{"list": []any{map[string]any{"a": 1}}}, original)
	assert.Nil(t, cloneMap(nil))
}

func TestValue(t *testing.T) {
	t.Parallel()

	cfg := NewConfig(nil, "")
	cfg.Set("site_name", "Docs")
	cfg.Set("port", 8000)

	name, ok := Value[string](cfg, "site_name")
	require.True(t, ok)
	assert.Equal(t, "Docs", name)

	_, ok = Value[string](cfg, "port")
	assert.False(t, ok)

	_, ok = Value[int](cfg, "missing")
	assert.False(t, ok)
}

func TestConfig_MarshalYAML(t *testing.T) {
	t.Parallel()

	theme := NewConfig(nil, "")
	theme.Set("name", "mkdocs")

	cfg := NewConfig(nil, "")
	cfg.Set("site_name", "Docs")
	cfg.Set("theme", theme)
	cfg.Set("nav", []any{"index.md", map[string]any{"About": "about.md"}})
	cfg.Set("port", 8000)

	out, err := yaml.Marshal(cfg)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, yaml.Unmarshal(out, &decoded))

	assert.Equal(t, map[string]any{
		"site_name": "Docs",
		"theme":     map[string]any{"name": "mkdocs"},
		"nav":       []any{"index.md", map[string]any{"About": "about.md"}},
		"port":      8000,
	}, Normalize(decoded))
}
