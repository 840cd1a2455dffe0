package config

import (
	"fmt"
	"log/slog"
)

// Parser defines an interface for parsing configuration data into a target structure.
//
// The path parameter specifies a navigation path within the configuration data
// using colon (:) as the separator for nested keys, e.g. "tools:docs" selects
// the docs section of a shared project file. An empty path parses the entire
// document.
//
// Parser implementations are responsible for path navigation internally.
// Config.Load always passes a *map[string]any target.
type Parser interface {
	Parse(data []byte, target any, path string) error
}

// DataFetcher defines an interface for reading configuration data.
type DataFetcher interface {
	Fetch() ([]byte, error)
}

// Sourcer is implemented by fetchers that know where their data comes from.
// The source is used to resolve relative paths in the document.
type Sourcer interface {
	Source() string
}

// Provider returns a function that reads, parses and validates configuration data
// against schema. Warnings and errors are logged; an invalid document is returned
// as an error wrapping ErrInvalidConfig.
func Provider(schema *Schema, path string) func(Parser, DataFetcher) (*Config, error) {
	return func(parser Parser, dataSourcer DataFetcher) (*Config, error) {
		var sourcePath string

		sourcer, isSourcer := dataSourcer.(Sourcer)
		if isSourcer {
			sourcePath = sourcer.Source()
		}

		cfg := NewConfig(schema, sourcePath)

		err := cfg.Load(parser, dataSourcer, path)
		if err != nil {
			return nil, err
		}

		result := cfg.Validate()
		result.Log(slog.Default())

		if !result.Valid() {
			return nil, fmt.Errorf("validating error: %w", result.Err())
		}

		slog.Info("configuration validated",
			slog.String("path", path),
			slog.String("source", sourcePath),
			slog.Int("warnings", len(result.Warnings)),
		)

		return cfg, nil
	}
}
