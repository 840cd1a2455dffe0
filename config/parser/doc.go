// Package parser holds what the document parsers share: sentinel errors,
// colon-separated path navigation and assignment of decoded documents to
// *map[string]any targets in the shapes config.Normalize produces.
package parser
