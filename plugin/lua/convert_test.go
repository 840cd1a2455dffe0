package lua

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	lua "github.com/yuin/gopher-lua"
)

type label string

func (l label) String() string {
	return "label:" + string(l)
}

type opaque struct {
	id int
}

func TestToGo(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		script   string
		expected any
	}{
		{name: "nil", script: "return nil", expected: nil},
		{name: "bool", script: "return true", expected: true},
		{name: "integer", script: "return 3", expected: 3},
		{name: "float", script: "return 1.5", expected: 1.5},
		{name: "string", script: "return 'docs'", expected: "docs"},
		{name: "sequence", script: "return {1, 'a', true}", expected: []any{1, "a", true}},
		{name: "empty table", script: "return {}", expected: map[string]any{}},
		{name: "record", script: "return {name = 'x', size = 2}", expected: map[string]any{"name": "x", "size": 2}},
		{name: "sparse sequence", script: "return {[1] = 'a', [3] = 'c'}", expected: map[string]any{"1": "a", "3": "c"}},
		{
			name:     "nested",
			script:   "return {items = {{id = 1}, {id = 2}}}",
			expected: map[string]any{"items": []any{map[string]any{"id": 1}, map[string]any{"id": 2}}},
		},
		{name: "function", script: "return print", expected: nil},
	}

	for _, testInfo := range tests {
		t.Run(testInfo.name, func(t *testing.T) {
			t.Parallel()

			state := lua.NewState()
			defer state.Close()

			require.NoError(t, state.DoString(testInfo.script))
			assert.Equal(t, testInfo.expected, toGo(state.Get(-1)))
		})
	}
}

func TestToGo_Cycle(t *testing.T) {
	t.Parallel()

	state := lua.NewState()
	defer state.Close()

	require.NoError(t, state.DoString("local t = {name = 'loop'}; t.self = t; return t"))
	assert.Equal(t, map[string]any{"name": "loop", "self": nil}, toGo(state.Get(-1)))
}

func TestToLua(t *testing.T) {
	t.Parallel()

	state := lua.NewState()
	defer state.Close()

	value := map[string]any{
		"name":   "docs",
		"count":  int64(2),
		"ratio":  0.5,
		"draft":  false,
		"tags":   []any{"a", "b"},
		"theme":  map[string]any{"name": "mkdocs"},
		"label":  label("x"),
		"ports":  []int{80, 443},
		"small":  int8(4),
		"sizes":  map[string]int{"a": 1},
		"absent": nil,
	}

	assert.Equal(t, map[string]any{
		"name":  "docs",
		"count": 2,
		"ratio": 0.5,
		"draft": false,
		"tags":  []any{"a", "b"},
		"theme": map[string]any{"name": "mkdocs"},
		"label": "label:x",
		"ports": []any{80, 443},
		"small": 4,
		"sizes": map[string]any{"a": 1},
	}, toGo(toLua(state, value)))
}

func TestToLua_UserData(t *testing.T) {
	t.Parallel()

	state := lua.NewState()
	defer state.Close()

	value := opaque{id: 7}

	converted := toLua(state, value)
	require.IsType(t, &lua.LUserData{}, converted)
	assert.Equal(t, value, toGo(converted))
}
