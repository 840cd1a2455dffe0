// Package toml provides a TOML parser implementation for the config package,
// built on github.com/pelletier/go-toml/v2.
//
// Usage:
//
//	parser := toml.NewParser()
//	var doc map[string]any
//	err := parser.Parse(data, &doc, "site")
//
// Paths use the same colon-separated form as the YAML parser.
package toml
