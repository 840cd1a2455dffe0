package yaml

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/0xalexb/hjarta-config/config"
	"github.com/0xalexb/hjarta-config/config/parser"
)

// ErrEmptyData is returned when the input data is empty.
var ErrEmptyData = parser.ErrEmptyData

// ErrPathNotFound is returned when the specified path is not found in the YAML document.
var ErrPathNotFound = parser.ErrPathNotFound

// Parser implements config.Parser interface for YAML data.
// It uses goccy/go-yaml PathString for efficient path navigation.
type Parser struct{}

// NewParser creates a new YAML parser instance.
func NewParser() *Parser {
	return &Parser{}
}

// Parse parses YAML data and unmarshals it into the target.
// The path parameter specifies a navigation path using colon (:) as separator.
// Empty path parses the entire document.
//
// A *map[string]any or *any target receives the normalized document; any
// other target is decoded by go-yaml directly.
func (p *Parser) Parse(data []byte, target any, path string) error {
	if len(data) == 0 {
		return ErrEmptyData
	}

	if !parser.IsDocumentTarget(target) {
		return p.decode(data, target, path)
	}

	var raw any

	err := p.decode(data, &raw, path)
	if err != nil {
		return err
	}

	err = parser.Assign(raw, target)
	if err != nil {
		return fmt.Errorf("assigning %q: %w", path, err)
	}

	return nil
}

func (p *Parser) decode(data []byte, target any, path string) error {
	if path == "" {
		err := yaml.Unmarshal(data, target)
		if err != nil {
			return fmt.Errorf("unmarshal error: %w", err)
		}

		return nil
	}

	yamlPath := convertToYAMLPath(path)

	pathObj, err := yaml.PathString(yamlPath)
	if err != nil {
		return fmt.Errorf("invalid path %q: %w", path, err)
	}

	reader := bytes.NewReader(data)

	err = pathObj.Read(reader, target)
	if err != nil {
		if isKeyNotFoundError(err) {
			return fmt.Errorf("%w: %s", ErrPathNotFound, path)
		}

		return fmt.Errorf("reading path %q: %w", path, err)
	}

	return nil
}

// KeyOrder returns the document order of every mapping below path.
// It implements config.KeyOrderer.
func (p *Parser) KeyOrder(data []byte, path string) (config.KeyOrder, error) {
	var raw any

	err := yaml.UnmarshalWithOptions(data, &raw, yaml.UseOrderedMap())
	if err != nil {
		return nil, fmt.Errorf("unmarshal error: %w", err)
	}

	for _, segment := range parser.SplitPath(path) {
		raw, err = orderedChild(raw, segment)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", ErrPathNotFound, path)
		}
	}

	order := make(config.KeyOrder)
	recordOrder(order, "", raw)

	return order, nil
}

func orderedChild(value any, key string) (any, error) {
	mapping, ok := value.(yaml.MapSlice)
	if !ok {
		return nil, parser.ErrNotMapping
	}

	for _, item := range mapping {
		if fmt.Sprint(item.Key) == key {
			return item.Value, nil
		}
	}

	return nil, ErrPathNotFound
}

func recordOrder(order config.KeyOrder, path string, value any) {
	switch typed := value.(type) {
	case yaml.MapSlice:
		keys := make([]string, len(typed))

		for i, item := range typed {
			keys[i] = fmt.Sprint(item.Key)
			recordOrder(order, config.JoinKey(path, keys[i]), item.Value)
		}

		order[path] = keys
	case []any:
		for i, item := range typed {
			recordOrder(order, config.JoinKey(path, fmt.Sprintf("[%d]", i)), item)
		}
	}
}

// convertToYAMLPath converts a colon-separated path to goccy/go-yaml PathString format.
// Examples:
//   - "key" -> "$.key"
//   - "site:theme" -> "$.site.theme"
func convertToYAMLPath(path string) string {
	return "$." + strings.Join(parser.SplitPath(path), ".")
}

// isKeyNotFoundError checks if the error indicates a key was not found.
func isKeyNotFoundError(err error) bool {
	return yaml.IsNotFoundNodeError(err)
}
