package options_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/0xalexb/hjarta-config/config"
	"github.com/0xalexb/hjarta-config/config/options"
)

// validate loads doc into a Config bound to schema and validates it.
func validate(t *testing.T, schema *config.Schema, sourcePath string, doc map[string]any) (*config.Config, *config.Result) {
	t.Helper()

	cfg := config.NewConfig(schema, sourcePath)
	require.NoError(t, cfg.LoadDict(doc))

	return cfg, cfg.Validate()
}

// validateField validates a single-field document. An absent value is passed as doc == nil.
func validateField(t *testing.T, opt config.Option, doc map[string]any) (*config.Config, *config.Result) {
	t.Helper()

	if doc == nil {
		doc = map[string]any{}
	}

	return validate(t, config.NewSchema(config.Define("option", opt)), "", doc)
}

func messages(issues []config.Issue) []string {
	out := make([]string, len(issues))
	for i, issue := range issues {
		out[i] = issue.String()
	}

	return out
}

func TestType(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		option   *options.Type
		value    any
		absent   bool
		expected any
		errMsg   string
	}{
		{name: "string", option: options.NewType(options.String), value: "x", expected: "x"},
		{name: "int", option: options.NewType(options.Int), value: 5, expected: 5},
		{name: "sized int", option: options.NewType(options.Int), value: int64(5), expected: 5},
		{name: "float", option: options.NewType(options.Float), value: 1.5, expected: 1.5},
		{name: "number accepts int", option: options.NewType(options.Number), value: 2, expected: 2},
		{name: "bool", option: options.NewType(options.Bool), value: true, expected: true},
		{
			name:   "int rejects string",
			option: options.NewType(options.Int),
			value:  "a",
			errMsg: "Expected type: int but received: string",
		},
		{
			name:   "number rejects bool",
			option: options.NewType(options.Number),
			value:  false,
			errMsg: "Expected type: int or float but received: bool",
		},
		{
			name:     "length matches",
			option:   options.NewType(options.List).WithLength(2),
			value:    []any{1, 2},
			expected: []any{1, 2},
		},
		{
			name:   "length mismatch",
			option: options.NewType(options.List).WithLength(2),
			value:  []any{1},
			errMsg: "Expected type: list with length 2 but received: [1] with length 1",
		},
		{
			name:     "default",
			option:   options.NewType(options.String, options.Default("docs")),
			absent:   true,
			expected: "docs",
		},
		{
			name:   "required",
			option: options.NewType(options.String, options.Required()),
			absent: true,
			errMsg: "Required configuration not provided.",
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			doc := map[string]any{"option": testCase.value}
			if testCase.absent {
				doc = nil
			}

			cfg, result := validateField(t, testCase.option, doc)

			if testCase.errMsg != "" {
				assert.Equal(t, []string{"option: " + testCase.errMsg}, messages(result.Errors))
				assert.Empty(t, cfg.Keys())

				return
			}

			require.True(t, result.Valid(), result.Report())
			assert.Equal(t, testCase.expected, cfg.Get("option"))
		})
	}
}

func TestType_AbsentOptionalStaysAbsent(t *testing.T) {
	t.Parallel()

	cfg, result := validateField(t, options.NewType(options.String), nil)

	require.True(t, result.Valid())

	_, present := cfg.Lookup("option")
	assert.False(t, present)
}

func TestType_DefaultIsNotShared(t *testing.T) {
	t.Parallel()

	option := options.NewType(options.List, options.Default([]any{"a"}))

	first, _ := validateField(t, option, nil)
	second, _ := validateField(t, option, nil)

	list, ok := first.Get("option").([]any)
	require.True(t, ok)

	list[0] = "changed"

	assert.Equal(t, []any{"a"}, second.Get("option"))
}

func TestChoice(t *testing.T) {
	t.Parallel()

	choice := options.MustChoice([]string{"a", "b"}, options.Default("a"))

	cfg, result := validateField(t, choice, map[string]any{"option": "b"})
	require.True(t, result.Valid())
	assert.Equal(t, "b", cfg.Get("option"))

	cfg, result = validateField(t, choice, nil)
	require.True(t, result.Valid())
	assert.Equal(t, "a", cfg.Get("option"))

	_, result = validateField(t, choice, map[string]any{"option": "c"})
	assert.Equal(t, []string{`option: Expected one of: ["a", "b"] but received: "c"`}, messages(result.Errors))
	require.ErrorIs(t, result.Err(), config.ErrNotInChoices)

	assert.Equal(t, []any{"a", "b"}, choice.Choices())
}

func TestNewChoice_InvalidDefinitions(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name    string
		choices any
		opts    []options.Opt
	}{
		{name: "single string", choices: "ab"},
		{name: "empty", choices: []string{}},
		{name: "not a collection", choices: 5},
		{name: "default outside choices", choices: []string{"a"}, opts: []options.Opt{options.Default("z")}},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			_, err := options.NewChoice(testCase.choices, testCase.opts...)
			require.ErrorIs(t, err, config.ErrInvalidOption)
		})
	}

	assert.Panics(t, func() {
		options.MustChoice("ab")
	})
}

func TestOptional(t *testing.T) {
	t.Parallel()

	option := options.NewOptional(options.NewType(options.Int, options.Required()))

	cfg, result := validateField(t, option, nil)
	require.True(t, result.Valid())

	_, present := cfg.Lookup("option")
	assert.False(t, present)

	cfg, result = validateField(t, option, map[string]any{"option": 3})
	require.True(t, result.Valid())
	assert.Equal(t, 3, cfg.Get("option"))

	_, result = validateField(t, option, map[string]any{"option": "x"})
	assert.Equal(t, []string{"option: Expected type: int but received: string"}, messages(result.Errors))
}

func TestPrivate(t *testing.T) {
	t.Parallel()

	_, result := validateField(t, options.NewPrivate(), nil)
	require.True(t, result.Valid())

	_, result = validateField(t, options.NewPrivate(), map[string]any{"option": "set"})
	assert.Equal(t, []string{"option: For internal use only."}, messages(result.Errors))
}

func TestDeprecated_MovedTo(t *testing.T) {
	t.Parallel()

	schema := config.NewSchema(
		config.Define("old", options.NewDeprecated(options.MovedTo("new.key"))),
		config.Define("new", options.NewType(options.Map, options.Default(map[string]any{}))),
	)

	cfg, result := validate(t, schema, "", map[string]any{"old": 5})

	require.True(t, result.Valid())
	assert.Equal(t, map[string]any{"new": map[string]any{"key": 5}}, cfg.ToMap())
	assert.Equal(t, []string{
		"old: The configuration option 'old' has been deprecated and will be removed in a future release. Use 'new.key' instead.",
	}, messages(result.Warnings))
}

func TestDeprecated_MovedToKeepsSiblings(t *testing.T) {
	t.Parallel()

	schema := config.NewSchema(
		config.Define("google_analytics", options.NewDeprecated(options.MovedTo("theme.analytics.id"))),
		config.Define("theme", options.NewType(options.Map)),
	)

	cfg, result := validate(t, schema, "", map[string]any{
		"google_analytics": "UA-1",
		"theme":            map[string]any{"name": "mkdocs"},
	})

	require.True(t, result.Valid())
	assert.Equal(t, map[string]any{
		"name":      "mkdocs",
		"analytics": map[string]any{"id": "UA-1"},
	}, cfg.Get("theme"))
}

func TestDeprecated_Removed(t *testing.T) {
	t.Parallel()

	_, result := validateField(t, options.NewDeprecated(options.Removed()), map[string]any{"option": true})

	assert.Equal(t, []string{"option: The configuration option 'option' was removed."}, messages(result.Errors))
	require.ErrorIs(t, result.Err(), config.ErrDeprecatedRemoved)

	_, result = validateField(t, options.NewDeprecated(options.Removed()), nil)
	assert.True(t, result.Valid())
}

func TestDeprecated_MessageAndWrapping(t *testing.T) {
	t.Parallel()

	option := options.NewDeprecated(
		options.Message("'{}' is going away."),
		options.Wrapping(options.NewType(options.Int)),
	)

	cfg, result := validateField(t, option, map[string]any{"option": 2})
	require.True(t, result.Valid())
	assert.Equal(t, 2, cfg.Get("option"))
	assert.Equal(t, []string{"option: 'option' is going away."}, messages(result.Warnings))

	_, result = validateField(t, option, map[string]any{"option": "x"})
	assert.Equal(t, []string{"option: Expected type: int but received: string"}, messages(result.Errors))
}

type documentFetcher string

func (d documentFetcher) Fetch() ([]byte, error) {
	return []byte(d), nil
}
