package config

import (
	"fmt"
	"sort"
)

// Validate runs the three validation phases over the schema and returns the result.
//
// Pre-validation runs for every field, then validation, then post-validation for
// every field that has not failed. Each pass visits fields in schema order. A
// failure is recorded against its field and never stops the other fields.
// Keys that are not declared in the schema are reported as warnings and dropped.
//
// Validate runs once; later calls return the first result.
func (c *Config) Validate() *Result {
	if c.result != nil {
		return c.result
	}

	var (
		result = &Result{}
		keys   = c.schema.Keys()
		fields = make(map[string]*Field, len(keys))
		failed = make(map[string]bool, len(keys))
	)

	fail := func(key string, err error) {
		failed[key] = true

		delete(c.data, key)

		result.Errors = append(result.Errors, issuesFor(key, err)...)
	}

	for _, key := range keys {
		opt, _ := c.schema.Option(key)
		field := NewField(c, key)
		fields[key] = field

		err := opt.PreValidation(field)
		if err != nil {
			fail(key, err)
		}
	}

	unrecognised := c.unrecognisedKeys()

	for _, key := range keys {
		if failed[key] {
			continue
		}

		opt, _ := c.schema.Option(key)
		raw, present := c.data[key]

		value, err := opt.Validate(fields[key], raw)
		if err != nil {
			fail(key, err)

			continue
		}

		if value == nil && !present {
			continue
		}

		c.data[key] = value
	}

	for _, key := range unrecognised {
		delete(c.data, key)
	}

	for _, key := range keys {
		if failed[key] {
			continue
		}

		opt, _ := c.schema.Option(key)

		err := opt.PostValidation(fields[key])
		if err != nil {
			fail(key, err)
		}
	}

	for _, key := range keys {
		result.Warnings = append(result.Warnings, fields[key].Warnings()...)
	}

	for _, key := range unrecognised {
		result.Warnings = append(result.Warnings, Issue{
			Key:     key,
			Message: fmt.Sprintf("Unrecognised configuration name: %s", key),
		})
	}

	c.result = result

	return result
}

func (c *Config) unrecognisedKeys() []string {
	var keys []string

	for key := range c.data {
		if !c.schema.Has(key) {
			keys = append(keys, key)
		}
	}

	sort.Strings(keys)

	return keys
}
