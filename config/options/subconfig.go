package options

import "github.com/0xalexb/hjarta-config/config"

// SubConfig validates a nested mapping against its own Schema and returns the
// nested *config.Config.
//
// A typed sub-config propagates nested errors and warnings by default. A legacy
// sub-config, built from free-form entries, swallows them unless validation is
// enabled with WithValidation.
type SubConfig struct {
	config.Base

	schema   *config.Schema
	validate bool
}

// NewSubConfig creates a SubConfig validated against schema.
func NewSubConfig(schema *config.Schema) *SubConfig {
	return &SubConfig{schema: schema, validate: true}
}

// NewLegacySubConfig creates a SubConfig from free-form entries.
func NewLegacySubConfig(entries ...config.Entry) *SubConfig {
	return &SubConfig{schema: config.NewSchema(entries...), validate: false}
}

// WithValidation sets whether nested errors and warnings propagate.
func (s *SubConfig) WithValidation(enabled bool) *SubConfig {
	s.validate = enabled

	return s
}

// Validate is Run; an absent sub-config is validated as an empty mapping.
func (s *SubConfig) Validate(f *config.Field, value any) (any, error) {
	return s.Run(f, value)
}

// Run validates value as a nested document.
func (s *SubConfig) Run(f *config.Field, value any) (any, error) {
	var doc map[string]any

	switch typed := value.(type) {
	case nil:
		doc = map[string]any{}
	case map[string]any:
		doc = typed
	case *config.Config:
		doc = typed.ToMap()
	default:
		return nil, config.Errorf(config.ErrTypeMismatch,
			"The configuration is invalid. Expected a key-value mapping (dict) but received: %s", typeName(value))
	}

	nested := config.NewConfig(s.schema, f.SourcePath())
	nested.SetKeyOrder(f.KeyOrder().Sub(f.Key()))

	err := nested.LoadDict(doc)
	if err != nil {
		return nil, config.Errorf(config.ErrInvalidValue, "%v", err)
	}

	result := nested.Validate()

	if !s.validate {
		return nested, nil
	}

	for _, warning := range result.Warnings {
		f.AddWarnings(config.Issue{
			Key:     config.JoinKey(f.Key(), warning.Key),
			Message: warning.Message,
		})
	}

	if result.Valid() {
		return nested, nil
	}

	issues := make([]config.Issue, len(result.Errors))
	for i, failure := range result.Errors {
		issues[i] = config.Issue{
			Key:     config.JoinKey(f.Key(), failure.Key),
			Message: failure.Message,
			Err:     failure.Err,
		}
	}

	return nil, &config.ValidationErrors{Issues: issues}
}
