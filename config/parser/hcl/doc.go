// Package hcl provides an HCL parser implementation for the config package,
// built on github.com/hashicorp/hcl/v2 and github.com/zclconf/go-cty.
//
// Usage:
//
//	parser := hcl.NewParser()
//	var doc map[string]any
//	err := parser.Parse(data, &doc, "")
//
// Only attribute documents are accepted; objects and tuples map to nested
// mappings and lists.
package hcl
