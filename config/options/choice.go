package options

import (
	"fmt"
	"reflect"

	"github.com/0xalexb/hjarta-config/config"
)

// Choice validates a value against a fixed set of allowed values.
type Choice struct {
	config.Base
	config.OptionallyRequired

	choices []any
}

// NewChoice creates a Choice option. choices must be a non-empty slice or array;
// a single string is rejected. A default must be one of the choices.
func NewChoice(choices any, opts ...Opt) (*Choice, error) {
	if _, isString := choices.(string); isString {
		return nil, fmt.Errorf("%w: expected a collection of choices, got %q", config.ErrInvalidOption, choices)
	}

	list, ok := asList(choices)
	if !ok || len(list) == 0 {
		return nil, fmt.Errorf("%w: expected a collection of choices, got %v", config.ErrInvalidOption, choices)
	}

	choice := &Choice{
		OptionallyRequired: newOptionallyRequired(opts),
		choices:            list,
	}

	if choice.Default != nil && !choice.contains(choice.Default) {
		return nil, fmt.Errorf("%w: %s is not one of %s",
			config.ErrInvalidOption, formatValue(choice.Default), formatValues(list))
	}

	return choice, nil
}

// MustChoice is like NewChoice but panics on invalid arguments.
// It is intended for schemas declared at package level.
func MustChoice(choices any, opts ...Opt) *Choice {
	choice, err := NewChoice(choices, opts...)
	if err != nil {
		panic(err)
	}

	return choice
}

// Choices returns the allowed values.
func (c *Choice) Choices() []any {
	return c.choices
}

// Validate applies default and required handling, then Run.
func (c *Choice) Validate(f *config.Field, value any) (any, error) {
	return c.Apply(value, func(value any) (any, error) {
		return c.Run(f, value)
	})
}

// Run checks that value is one of the choices.
func (c *Choice) Run(_ *config.Field, value any) (any, error) {
	value = config.Normalize(value)
	if !c.contains(value) {
		return nil, config.Errorf(config.ErrNotInChoices,
			"Expected one of: %s but received: %s", formatValues(c.choices), formatValue(value))
	}

	return value, nil
}

func (c *Choice) contains(value any) bool {
	for _, choice := range c.choices {
		if reflect.DeepEqual(choice, value) {
			return true
		}
	}

	return false
}
