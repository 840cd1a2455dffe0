package config

// Option validates and normalizes the value of a single configuration field.
//
// The Config calls the three methods in separate passes over its schema:
// every PreValidation first, then every Validate, then PostValidation for the
// fields that have not failed. Validate receives the raw value (nil when the
// key is absent) and returns the normalized value; it must not mutate the
// Config when it fails.
type Option interface {
	PreValidation(f *Field) error
	Validate(f *Field, value any) (any, error)
	PostValidation(f *Field) error
}

// Runner is implemented by options whose coercion can run without the
// default and required handling of Validate. List items are validated through it.
type Runner interface {
	Run(f *Field, value any) (any, error)
}

// Run coerces value with opt, bypassing default and required handling when opt is a Runner.
func Run(opt Option, f *Field, value any) (any, error) {
	runner, isRunner := opt.(Runner)
	if isRunner {
		return runner.Run(f, value)
	}

	return opt.Validate(f, value)
}

// Base implements Option with no-op hooks and a pass-through Validate.
// Concrete options embed it and override what they need.
type Base struct{}

// PreValidation does nothing.
func (Base) PreValidation(*Field) error {
	return nil
}

// Validate returns value unchanged.
func (Base) Validate(_ *Field, value any) (any, error) {
	return value, nil
}

// PostValidation does nothing.
func (Base) PostValidation(*Field) error {
	return nil
}

// OptionallyRequired layers default and required semantics on top of an
// option's coercion.
type OptionallyRequired struct {
	Default  any
	Required bool
}

// Apply resolves a nil value against the default and the required flag and
// calls run with the remaining value. run is never called with nil.
func (o OptionallyRequired) Apply(value any, run func(any) (any, error)) (any, error) {
	if value == nil {
		switch {
		case o.Default != nil:
			value = Clone(o.Default)
		case !o.Required:
			return nil, nil
		default:
			return nil, Errorf(ErrMissingRequired, "Required configuration not provided.")
		}
	}

	return run(value)
}
