package options

import (
	"fmt"
	"strings"

	"github.com/0xalexb/hjarta-config/config"
)

// Deprecated marks a field as deprecated or removed.
//
// When the field is set, pre-validation fails for a removed field and warns
// otherwise. If the field was moved, its raw value is moved to the new
// location, a dot-separated path whose intermediate mappings are created as
// needed. The value is validated by the wrapped option, which defaults to
// accepting anything.
type Deprecated struct {
	movedTo string
	message string
	removed bool
	option  config.Option
}

// DeprecatedOpt configures a Deprecated option.
type DeprecatedOpt func(*Deprecated)

// MovedTo sets the dot-separated key the value is moved to.
func MovedTo(key string) DeprecatedOpt {
	return func(d *Deprecated) {
		d.movedTo = key
	}
}

// Message overrides the warning or error message. "{}" is replaced by the field key.
func Message(message string) DeprecatedOpt {
	return func(d *Deprecated) {
		d.message = message
	}
}

// Removed makes setting the field a validation error.
func Removed() DeprecatedOpt {
	return func(d *Deprecated) {
		d.removed = true
	}
}

// Wrapping validates the value with opt.
func Wrapping(opt config.Option) DeprecatedOpt {
	return func(d *Deprecated) {
		d.option = opt
	}
}

// NewDeprecated creates a Deprecated option.
func NewDeprecated(opts ...DeprecatedOpt) *Deprecated {
	deprecated := &Deprecated{option: config.Base{}}

	for _, apply := range opts {
		apply(deprecated)
	}

	if deprecated.message == "" {
		if deprecated.removed {
			deprecated.message = "The configuration option '{}' was removed."
		} else {
			deprecated.message = "The configuration option '{}' has been deprecated and will be removed in a future release."
		}

		if deprecated.movedTo != "" {
			deprecated.message += fmt.Sprintf(" Use '%s' instead.", deprecated.movedTo)
		}
	}

	return deprecated
}

// PreValidation warns about or rejects a set value and moves it when configured.
func (d *Deprecated) PreValidation(f *config.Field) error {
	err := d.option.PreValidation(f)
	if err != nil {
		return err
	}

	cfg := f.Config()

	value := cfg.Get(f.Key())
	if value == nil {
		return nil
	}

	message := strings.ReplaceAll(d.message, "{}", f.Key())
	if d.removed {
		return config.Errorf(config.ErrDeprecatedRemoved, "%s", message)
	}

	f.Warn(message)

	if d.movedTo != "" {
		d.move(cfg, f.Key(), value)
	}

	return nil
}

// move stores value under movedTo and removes key. It gives up, leaving the
// value in place, when an intermediate level is not a mapping.
func (d *Deprecated) move(cfg *config.Config, key string, value any) {
	path := strings.Split(d.movedTo, ".")
	parents, target := path[:len(path)-1], path[len(path)-1]

	if len(parents) == 0 {
		cfg.Delete(key)
		cfg.Set(target, value)

		return
	}

	level := cfg.Get(parents[0])
	if level == nil {
		level = map[string]any{}
		cfg.Set(parents[0], level)
	}

	container, ok := level.(map[string]any)
	if !ok {
		return
	}

	for _, parent := range parents[1:] {
		next := container[parent]
		if next == nil {
			next = map[string]any{}
			container[parent] = next
		}

		container, ok = next.(map[string]any)
		if !ok {
			return
		}
	}

	container[target] = value

	cfg.Delete(key)
}

// Validate delegates to the wrapped option.
func (d *Deprecated) Validate(f *config.Field, value any) (any, error) {
	return d.option.Validate(f, value)
}

// Run delegates to the wrapped option.
func (d *Deprecated) Run(f *config.Field, value any) (any, error) {
	return config.Run(d.option, f, value)
}

// PostValidation delegates to the wrapped option.
func (d *Deprecated) PostValidation(f *config.Field) error {
	return d.option.PostValidation(f)
}
