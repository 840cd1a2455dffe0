package config

import (
	"fmt"
	"sort"
)

// Config is a configuration document bound to a Schema.
//
// A Config is loaded with one or more documents, validated once with Validate,
// and read-only afterwards. Before validation it holds the raw values, after
// validation the normalized ones.
type Config struct {
	schema      *Schema
	data        map[string]any
	sourcePath  string
	userConfigs []map[string]any
	order       KeyOrder
	result      *Result
}

// NewConfig creates an empty Config bound to schema. sourcePath is the location of
// the originating document and may be empty.
func NewConfig(schema *Schema, sourcePath string) *Config {
	if schema == nil {
		schema = NewSchema()
	}

	return &Config{
		schema:     schema,
		data:       make(map[string]any),
		sourcePath: sourcePath,
	}
}

// Schema returns the bound schema.
func (c *Config) Schema() *Schema {
	return c.schema
}

// SourcePath returns the location of the originating document, or "".
func (c *Config) SourcePath() string {
	return c.sourcePath
}

// LoadDict merges doc into the raw document. Keys of later documents win.
// The document is copied; the caller's maps are never modified.
func (c *Config) LoadDict(doc map[string]any) error {
	if c.result != nil {
		return ErrAlreadyValidated
	}

	doc = cloneMap(doc)
	c.userConfigs = append(c.userConfigs, doc)

	for key, value := range doc {
		c.data[key] = Clone(value)
	}

	return nil
}

// Load fetches and parses a document and merges it into the raw document.
func (c *Config) Load(parser Parser, fetcher DataFetcher, path string) error {
	data, err := fetcher.Fetch()
	if err != nil {
		return fmt.Errorf("reading data error: %w", err)
	}

	var doc map[string]any

	err = parser.Parse(data, &doc, path)
	if err != nil {
		return fmt.Errorf("parsing error: %w", err)
	}

	if orderer, ok := parser.(KeyOrderer); ok {
		order, orderErr := orderer.KeyOrder(data, path)
		if orderErr != nil {
			return fmt.Errorf("parsing error: %w", orderErr)
		}

		c.order = c.order.merge(order)
	}

	return c.LoadDict(doc)
}

// KeyOrder returns the document order of the mapping keys loaded so far.
func (c *Config) KeyOrder() KeyOrder {
	if c == nil {
		return nil
	}

	return c.order
}

// SetKeyOrder replaces the recorded key order, e.g. with the order of the
// enclosing document for a nested Config.
func (c *Config) SetKeyOrder(order KeyOrder) {
	c.order = order
}

// UserConfigs returns the documents loaded so far, in load order.
func (c *Config) UserConfigs() []map[string]any {
	return c.userConfigs
}

// Get returns the value of key, or nil.
func (c *Config) Get(key string) any {
	return c.data[key]
}

// Lookup returns the value of key and whether it is present.
func (c *Config) Lookup(key string) (any, bool) {
	value, ok := c.data[key]

	return value, ok
}

// Set sets the value of key.
func (c *Config) Set(key string, value any) {
	c.data[key] = value
}

// Delete removes key and returns its previous value.
func (c *Config) Delete(key string) (any, bool) {
	value, ok := c.data[key]
	delete(c.data, key)

	return value, ok
}

// Keys returns the present keys in sorted order.
func (c *Config) Keys() []string {
	keys := make([]string, 0, len(c.data))
	for key := range c.data {
		keys = append(keys, key)
	}

	sort.Strings(keys)

	return keys
}

// Data returns a shallow copy of the document.
func (c *Config) Data() map[string]any {
	out := make(map[string]any, len(c.data))
	for key, value := range c.data {
		out[key] = value
	}

	return out
}

// ToMap returns the document with nested Configs converted to plain mappings.
func (c *Config) ToMap() map[string]any {
	out, _ := plain(c.data).(map[string]any)

	return out
}

// MarshalYAML renders the document as a plain mapping.
func (c *Config) MarshalYAML() (any, error) {
	return c.ToMap(), nil
}

// Validated reports whether Validate has run.
func (c *Config) Validated() bool {
	return c.result != nil
}

// Result returns the validation result, or nil before Validate.
func (c *Config) Result() *Result {
	return c.result
}
