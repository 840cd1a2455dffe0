package config

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockParser struct {
	parseFunc func(data []byte, target any, path string) error
}

func (m *mockParser) Parse(data []byte, target any, path string) error {
	return m.parseFunc(data, target, path)
}

type mockDataFetcher struct {
	fetchFunc func() ([]byte, error)
	source    string
}

func (m *mockDataFetcher) Fetch() ([]byte, error) {
	return m.fetchFunc()
}

type sourcedFetcher struct {
	mockDataFetcher
}

func (s *sourcedFetcher) Source() string {
	return s.source
}

// recorder is an Option that records the phases it runs through.
type recorder struct {
	name   string
	events *[]string

	preErr      error
	validateErr error
	postErr     error
	convert     func(any) any
	warn        string
}

func (r *recorder) PreValidation(f *Field) error {
	*r.events = append(*r.events, "pre:"+r.name)

	return r.preErr
}

func (r *recorder) Validate(f *Field, value any) (any, error) {
	*r.events = append(*r.events, "validate:"+r.name)

	if r.validateErr != nil {
		return nil, r.validateErr
	}

	if r.warn != "" {
		f.Warn(r.warn)
	}

	if r.convert != nil {
		return r.convert(value), nil
	}

	return value, nil
}

func (r *recorder) PostValidation(*Field) error {
	*r.events = append(*r.events, "post:"+r.name)

	return r.postErr
}

func documentParser(doc map[string]any) *mockParser {
	return &mockParser{
		parseFunc: func(_ []byte, target any, _ string) error {
			mapping, ok := target.(*map[string]any)
			if !ok {
				return errors.New("invalid target type")
			}

			*mapping = doc

			return nil
		},
	}
}

func staticFetcher() *mockDataFetcher {
	return &mockDataFetcher{
		fetchFunc: func() ([]byte, error) {
			return []byte("data"), nil
		},
	}
}

func TestProvider_Success(t *testing.T) {
	t.Parallel()

	var events []string

	schema := NewSchema(Define("name", &recorder{name: "name", events: &events}))
	provider := Provider(schema, "site")

	cfg, err := provider(documentParser(map[string]any{"name": "test"}), staticFetcher())
	require.NoError(t, err)

	assert.Equal(t, "test", cfg.Get("name"))
	assert.True(t, cfg.Validated())
	assert.Equal(t, []string{"pre:name", "validate:name", "post:name"}, events)
}

func TestProvider_SourcePath(t *testing.T) {
	t.Parallel()

	fetcher := &sourcedFetcher{mockDataFetcher: *staticFetcher()}
	fetcher.source = "/a/b/site.yml"

	cfg, err := Provider(NewSchema(), "")(documentParser(map[string]any{}), fetcher)
	require.NoError(t, err)

	assert.Equal(t, "/a/b/site.yml", cfg.SourcePath())
}

func TestProvider_Errors(t *testing.T) {
	t.Parallel()

	fetchErr := errors.New("fetch failed")
	parseErr := errors.New("parse failed")

	tests := []struct {
		name      string
		fetchFunc func() ([]byte, error)
		parseFunc func(data []byte, target any, path string) error
		wantErr   error
	}{
		{
			name: "fetch error",
			fetchFunc: func() ([]byte, error) {
				return nil, fetchErr
			},
			parseFunc: func(_ []byte, _ any, _ string) error {
				return nil
			},
			wantErr: fetchErr,
		},
		{
			name: "parse error",
			fetchFunc: func() ([]byte, error) {
				return []byte("data"), nil
			},
			parseFunc: func(_ []byte, _ any, _ string) error {
				return parseErr
			},
			wantErr: parseErr,
		},
		{
			name: "validation error",
			fetchFunc: func() ([]byte, error) {
				return []byte("data"), nil
			},
			parseFunc: func(_ []byte, target any, _ string) error {
				mapping, _ := target.(*map[string]any)
				*mapping = map[string]any{"name": "x"}

				return nil
			},
			wantErr: ErrInvalidConfig,
		},
	}

	for _, testInfo := range tests {
		t.Run(testInfo.name, func(t *testing.T) {
			t.Parallel()

			var events []string

			schema := NewSchema(Define("name", &recorder{
				name:        "name",
				events:      &events,
				validateErr: Errorf(ErrTypeMismatch, "Expected type: int but received: string"),
			}))

			parser := &mockParser{parseFunc: testInfo.parseFunc}
			fetcher := &mockDataFetcher{fetchFunc: testInfo.fetchFunc}

			cfg, err := Provider(schema, "site")(parser, fetcher)

			assert.Nil(t, cfg)
			require.ErrorIs(t, err, testInfo.wantErr)
		})
	}
}

func TestValidate_PhaseOrder(t *testing.T) {
	t.Parallel()

	var events []string

	cfg := NewConfig(NewSchema(
		Define("b", &recorder{name: "b", events: &events}),
		Define("a", &recorder{name: "a", events: &events}),
	), "")

	require.NoError(t, cfg.LoadDict(map[string]any{"a": 1, "b": 2}))

	result := cfg.Validate()

	require.True(t, result.Valid())
	assert.Equal(t, []string{
		"pre:b", "pre:a",
		"validate:b", "validate:a",
		"post:b", "post:a",
	}, events)
}

func TestValidate_FailedFieldSkipsLaterPhases(t *testing.T) {
	t.Parallel()

	var events []string

	cfg := NewConfig(NewSchema(
		Define("pre", &recorder{name: "pre", events: &events, preErr: Errorf(ErrInvalidValue, "bad pre")}),
		Define("run", &recorder{name: "run", events: &events, validateErr: Errorf(ErrInvalidValue, "bad run")}),
		Define("post", &recorder{name: "post", events: &events, postErr: Errorf(ErrInvalidValue, "bad post")}),
		Define("ok", &recorder{name: "ok", events: &events}),
	), "")

	require.NoError(t, cfg.LoadDict(map[string]any{"pre": 1, "run": 2, "post": 3, "ok": 4}))

	result := cfg.Validate()

	assert.Equal(t, []string{
		"pre:pre", "pre:run", "pre:post", "pre:ok",
		"validate:run", "validate:post", "validate:ok",
		"post:post", "post:ok",
	}, events)

	require.Len(t, result.Errors, 3)
	assert.Equal(t, "pre: bad pre", result.Errors[0].String())
	assert.Equal(t, "run: bad run", result.Errors[1].String())
	assert.Equal(t, "post: bad post", result.Errors[2].String())
	assert.Equal(t, []string{"ok"}, cfg.Keys())
}

func TestValidate_UnrecognisedKeys(t *testing.T) {
	t.Parallel()

	var events []string

	cfg := NewConfig(NewSchema(Define("known", &recorder{name: "known", events: &events})), "")
	require.NoError(t, cfg.LoadDict(map[string]any{"known": 1, "zeta": 2, "foo": 3}))

	result := cfg.Validate()

	require.True(t, result.Valid())
	require.Len(t, result.Warnings, 2)
	assert.Equal(t, Issue{Key: "foo", Message: "Unrecognised configuration name: foo"}, result.Warnings[0])
	assert.Equal(t, Issue{Key: "zeta", Message: "Unrecognised configuration name: zeta"}, result.Warnings[1])
	assert.Equal(t, map[string]any{"known": 1}, cfg.ToMap())
}

func TestValidate_WarningsAreScopedToFields(t *testing.T) {
	t.Parallel()

	var events []string

	shared := &recorder{name: "shared", events: &events, warn: "careful"}

	cfg := NewConfig(NewSchema(
		Define("first", shared),
		Define("second", shared),
	), "")
	require.NoError(t, cfg.LoadDict(map[string]any{"first": 1, "second": 2}))

	result := cfg.Validate()

	assert.Equal(t, []Issue{
		{Key: "first", Message: "careful"},
		{Key: "second", Message: "careful"},
	}, result.Warnings)
}

func TestValidate_AbsentNilStaysAbsent(t *testing.T) {
	t.Parallel()

	var events []string

	cfg := NewConfig(NewSchema(
		Define("absent", &recorder{name: "absent", events: &events}),
		Define("null", &recorder{name: "null", events: &events}),
	), "")
	require.NoError(t, cfg.LoadDict(map[string]any{"null": nil}))

	require.True(t, cfg.Validate().Valid())

	_, hasAbsent := cfg.Lookup("absent")
	_, hasNull := cfg.Lookup("null")

	assert.False(t, hasAbsent)
	assert.True(t, hasNull)
}

func TestValidate_RunsOnce(t *testing.T) {
	t.Parallel()

	var events []string

	cfg := NewConfig(NewSchema(Define("n", &recorder{
		name:    "n",
		events:  &events,
		convert: func(v any) any { return fmt.Sprint(v) + "!" },
	})), "")
	require.NoError(t, cfg.LoadDict(map[string]any{"n": "x"}))

	first := cfg.Validate()
	second := cfg.Validate()

	assert.Same(t, first, second)
	assert.Equal(t, "x!", cfg.Get("n"))
	assert.Len(t, events, 3)
	require.ErrorIs(t, cfg.LoadDict(map[string]any{"n": "y"}), ErrAlreadyValidated)
}

func TestLoadDict_CopiesInput(t *testing.T) {
	t.Parallel()

	doc := map[string]any{"nested": map[string]any{"a": 1}}

	cfg := NewConfig(nil, "")
	require.NoError(t, cfg.LoadDict(doc))
	require.NoError(t, cfg.LoadDict(map[string]any{"other": true}))

	nested, ok := cfg.Get("nested").(map[string]any)
	require.True(t, ok)

	nested["a"] = 2

	assert.Equal(t, map[string]any{"a": 1}, doc["nested"])
	assert.Len(t, cfg.UserConfigs(), 2)
	assert.Equal(t, []string{"nested", "other"}, cfg.Keys())
}

func TestLoad_Errors(t *testing.T) {
	t.Parallel()

	fetcher := &mockDataFetcher{
		fetchFunc: func() ([]byte, error) {
			return nil, errors.New("denied")
		},
	}

	err := NewConfig(nil, "").Load(documentParser(nil), fetcher, "")
	require.ErrorContains(t, err, "reading data error: denied")
}

func TestConfig_SetDelete(t *testing.T) {
	t.Parallel()

	cfg := NewConfig(nil, "")
	cfg.Set("a", 1)

	old, existed := cfg.Delete("a")
	assert.Equal(t, 1, old)
	assert.True(t, existed)

	_, existed = cfg.Delete("a")
	assert.False(t, existed)
}

func TestConfig_ToMapFlattensNestedConfigs(t *testing.T) {
	t.Parallel()

	nested := NewConfig(nil, "")
	nested.Set("locale", "en")

	cfg := NewConfig(nil, "")
	cfg.Set("theme", nested)
	cfg.Set("extra", []any{nested})

	assert.Equal(t, map[string]any{
		"theme": map[string]any{"locale": "en"},
		"extra": []any{map[string]any{"locale": "en"}},
	}, cfg.ToMap())
}
