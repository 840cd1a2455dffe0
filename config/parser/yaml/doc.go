// Package yaml provides a YAML parser implementation for the config package.
//
// This package uses github.com/goccy/go-yaml for YAML parsing with native
// PathString support for efficient path navigation. The parser converts
// colon-separated paths (e.g., "site:theme") to YAML path format
// (e.g., "$.site.theme") internally.
//
// Usage:
//
//	parser := yaml.NewParser()
//	var doc map[string]any
//	err := parser.Parse(data, &doc, "site")
//
// Documents decoded into a *map[string]any are normalized with
// config.Normalize, so integers arrive as int whatever width go-yaml chose.
//
// Path Conversion:
//   - Empty path "" -> unmarshal entire document
//   - Single key "key" -> "$.key"
//   - Nested path "site:theme" -> "$.site.theme"
package yaml
