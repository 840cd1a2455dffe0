package config

import "fmt"

// Field is the per-invocation context handed to every lifecycle phase of an
// Option. It binds the option to one key of one Config and buffers the
// warnings raised for that key. A Field lives for the three phases of a
// single validation and is never shared between keys.
type Field struct {
	config   *Config
	key      string
	state    any
	warnings []Issue
}

// NewField creates a Field for key in cfg.
func NewField(cfg *Config, key string) *Field {
	return &Field{
		config: cfg,
		key:    key,
	}
}

// Config returns the Config being validated.
func (f *Field) Config() *Config {
	return f.config
}

// Key returns the field key.
func (f *Field) Key() string {
	return f.key
}

// SourcePath returns the source location of the bound Config, or "".
func (f *Field) SourcePath() string {
	if f.config == nil {
		return ""
	}

	return f.config.SourcePath()
}

// KeyOrder returns the key order of the bound Config. Paths are full field
// keys, so the mapping of this field is found under Key.
func (f *Field) KeyOrder() KeyOrder {
	return f.config.KeyOrder()
}

// SetState stores a value computed in one phase for use in a later phase.
func (f *Field) SetState(state any) {
	f.state = state
}

// State returns the value stored with SetState.
func (f *Field) State() any {
	return f.state
}

// Warn records a warning for this field.
func (f *Field) Warn(message string) {
	f.warnings = append(f.warnings, Issue{Key: f.key, Message: message})
}

// Warnf records a formatted warning for this field.
func (f *Field) Warnf(format string, args ...any) {
	f.Warn(fmt.Sprintf(format, args...))
}

// AddWarnings records warnings that already carry their own keys.
func (f *Field) AddWarnings(issues ...Issue) {
	f.warnings = append(f.warnings, issues...)
}

// Warnings returns the warnings recorded so far.
func (f *Field) Warnings() []Issue {
	return f.warnings
}
