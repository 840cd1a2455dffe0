package options

import (
	"fmt"

	"github.com/0xalexb/hjarta-config/config"
)

// ListOfItems validates a homogeneous list. Each item goes through the full
// lifecycle of the item option, so list items behave exactly like fields of
// the same option: relative paths resolve, nested configs validate, warnings
// surface. Item failures are keyed "field[i]".
//
// An absent list is an error unless a default is set.
type ListOfItems struct {
	config.Base
	config.OptionallyRequired

	item config.Option
}

// NewListOfItems creates a ListOfItems option validating every item with item.
func NewListOfItems(item config.Option, opts ...Opt) *ListOfItems {
	return &ListOfItems{
		OptionallyRequired: newOptionallyRequired(opts),
		item:               item,
	}
}

// NewConfigItems validates a list of mappings that all follow the same free-form fields.
func NewConfigItems(entries ...config.Entry) *ListOfItems {
	return NewListOfItems(NewLegacySubConfig(entries...), Default([]any{}))
}

// NewListOfPaths validates a list of paths to existing files or directories.
func NewListOfPaths(opts ...Opt) *ListOfItems {
	return NewListOfItems(NewFilesystemObject(true), append([]Opt{Default([]any{})}, opts...)...)
}

// Validate substitutes the default for an absent list, then Run.
func (l *ListOfItems) Validate(f *config.Field, value any) (any, error) {
	if value == nil {
		if l.Required || l.Default == nil {
			return nil, config.Errorf(config.ErrMissingRequired, "Required configuration not provided.")
		}

		value = config.Clone(l.Default)
	}

	return l.Run(f, value)
}

// Run validates every item through a single-use Config keyed by position.
func (l *ListOfItems) Run(f *config.Field, value any) (any, error) {
	items, ok := asList(value)
	if !ok {
		return nil, config.Errorf(config.ErrTypeMismatch,
			"Expected a list of items, but a %s was given.", typeName(value))
	}

	if len(items) == 0 {
		return items, nil
	}

	var (
		schema = config.NewSchema()
		doc    = make(map[string]any, len(items))
		keys   = make([]string, len(items))
	)

	for i, item := range items {
		keys[i] = fmt.Sprintf("%s[%d]", f.Key(), i)
		schema.Add(keys[i], itemOption{option: l.item})
		doc[keys[i]] = item
	}

	synthetic := config.NewConfig(schema, f.SourcePath())
	synthetic.SetKeyOrder(f.KeyOrder())

	err := synthetic.LoadDict(doc)
	if err != nil {
		return nil, fmt.Errorf("loading list items: %w", err)
	}

	result := synthetic.Validate()
	f.AddWarnings(result.Warnings...)

	if !result.Valid() {
		return nil, &config.ValidationErrors{Issues: result.Errors}
	}

	normalized := make([]any, len(keys))
	for i, key := range keys {
		normalized[i] = synthetic.Get(key)
	}

	return normalized, nil
}

// itemOption validates list items with the coercion of the item option only;
// default and required handling applies to the list, not to its items.
type itemOption struct {
	option config.Option
}

func (o itemOption) PreValidation(f *config.Field) error {
	return o.option.PreValidation(f)
}

func (o itemOption) Validate(f *config.Field, value any) (any, error) {
	return config.Run(o.option, f, value)
}

func (o itemOption) PostValidation(f *config.Field) error {
	return o.option.PostValidation(f)
}
