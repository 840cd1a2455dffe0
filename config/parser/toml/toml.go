package toml

import (
	"fmt"

	"github.com/pelletier/go-toml/v2"

	"github.com/0xalexb/hjarta-config/config/parser"
)

// Parser implements config.Parser interface for TOML data.
type Parser struct{}

// NewParser creates a new TOML parser instance.
func NewParser() *Parser {
	return &Parser{}
}

// Parse parses TOML data and stores the table at path in target.
// The path parameter uses colon (:) as separator; an empty path selects the
// whole document.
//
// A *map[string]any or *any target receives the normalized table. Other
// targets are decoded by go-toml, through a re-encoding of the selected table
// when a path is given.
func (p *Parser) Parse(data []byte, target any, path string) error {
	if len(data) == 0 {
		return parser.ErrEmptyData
	}

	if path == "" && !parser.IsDocumentTarget(target) {
		err := toml.Unmarshal(data, target)
		if err != nil {
			return fmt.Errorf("unmarshal error: %w", err)
		}

		return nil
	}

	var doc map[string]any

	err := toml.Unmarshal(data, &doc)
	if err != nil {
		return fmt.Errorf("unmarshal error: %w", err)
	}

	value, err := parser.Navigate(doc, path)
	if err != nil {
		return err
	}

	if parser.IsDocumentTarget(target) {
		return parser.Assign(value, target)
	}

	table, ok := value.(map[string]any)
	if !ok {
		return fmt.Errorf("%w: %T at %q", parser.ErrUnsupportedTarget, value, path)
	}

	encoded, err := toml.Marshal(table)
	if err != nil {
		return fmt.Errorf("encoding %q: %w", path, err)
	}

	err = toml.Unmarshal(encoded, target)
	if err != nil {
		return fmt.Errorf("unmarshal error: %w", err)
	}

	return nil
}
