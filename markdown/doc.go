// Package markdown provides a registry of goldmark extensions addressable by
// name. It backs the MarkdownExtensions configuration option, which checks
// every configured extension with Registry.Check, and builds the renderer for
// a validated configuration with Registry.New.
package markdown
