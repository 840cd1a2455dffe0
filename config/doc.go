// Package config provides a schema-driven validation engine for configuration documents.
//
// A Schema is an ordered list of fields, each validated by an Option. A Config binds
// a Schema to a raw document (a map[string]any, usually decoded from YAML) and
// validates it in three passes, each visiting fields in schema order:
//   - PreValidation: may rewrite the raw document, e.g. move a deprecated key
//   - Validate: applies default/required handling and coerces the raw value
//   - PostValidation: enforces invariants across fields and derives values from siblings
//
// Failures are attached to the failing field and never stop other fields. Warnings
// never fail validation. Both are returned in a Result.
//
// The package keeps the Parser and DataFetcher extension points used to obtain
// the raw document:
//   - Parser: deserializes raw data, with path navigation support
//   - DataFetcher: retrieves raw config data (file, env, etc.)
//   - Sourcer: optionally reports where the data came from
//
// # Path Navigation
//
// The Provider function accepts a path parameter that allows targeting a specific
// section within configuration files. Paths use colon (:) as the separator:
//
//	"site:build"   -> config["site"]["build"]
//	""             -> entire document
//
// # Example
//
//	schema := config.NewSchema(
//	    config.Define("site_name", options.NewType(options.String, options.Required())),
//	    config.Define("docs_dir", options.NewDir(true, options.Default("docs"))),
//	)
//
//	provider := config.Provider(schema, "")
//	cfg, err := provider(yamlparser.NewParser(), fetcher)
package config
