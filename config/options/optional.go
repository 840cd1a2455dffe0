package options

import "github.com/0xalexb/hjarta-config/config"

// Optional wraps an option so that an absent value is allowed and stays nil.
type Optional struct {
	option config.Option
}

// NewOptional wraps opt.
func NewOptional(opt config.Option) *Optional {
	return &Optional{option: opt}
}

// PreValidation delegates to the wrapped option.
func (o *Optional) PreValidation(f *config.Field) error {
	return o.option.PreValidation(f)
}

// Validate returns nil for nil, otherwise the wrapped option's result.
func (o *Optional) Validate(f *config.Field, value any) (any, error) {
	if value == nil {
		return nil, nil
	}

	return o.option.Validate(f, value)
}

// Run is Validate.
func (o *Optional) Run(f *config.Field, value any) (any, error) {
	return o.Validate(f, value)
}

// PostValidation delegates to the wrapped option.
func (o *Optional) PostValidation(f *config.Field) error {
	return o.option.PostValidation(f)
}

// Private rejects any value set by the user. The field is reserved for values
// derived by other options, e.g. extension configs stored by MarkdownExtensions.
type Private struct {
	config.Base
}

// NewPrivate creates a Private option.
func NewPrivate() *Private {
	return &Private{}
}

// Validate fails for any non-nil value.
func (p *Private) Validate(_ *config.Field, value any) (any, error) {
	if value != nil {
		return nil, config.Errorf(config.ErrInvalidValue, "For internal use only.")
	}

	return nil, nil
}
