package hcl

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/gocty"

	"github.com/0xalexb/hjarta-config/config/parser"
)

// ErrUnsupportedType is returned for HCL values without a document equivalent.
var ErrUnsupportedType = errors.New("unsupported HCL value type")

// filename names the parsed data in diagnostics.
const filename = "config.hcl"

// Parser implements config.Parser interface for HCL attribute documents.
//
// A document is a body of attributes, e.g.
//
//	site_name = "Docs"
//	nav       = ["index.md", { About = "about.md" }]
//	theme     = { name = "material" }
//
// Blocks are not supported. Expressions are evaluated without variables or
// functions.
type Parser struct{}

// NewParser creates a new HCL parser instance.
func NewParser() *Parser {
	return &Parser{}
}

// Parse parses HCL data and stores the value at path in target, which must be
// a *map[string]any or a *any. The path parameter uses colon (:) as separator.
func (p *Parser) Parse(data []byte, target any, path string) error {
	if len(data) == 0 {
		return parser.ErrEmptyData
	}

	if !parser.IsDocumentTarget(target) {
		return fmt.Errorf("%w: %T", parser.ErrUnsupportedTarget, target)
	}

	file, diags := hclparse.NewParser().ParseHCL(data, filename)
	if diags.HasErrors() {
		return fmt.Errorf("parsing HCL: %w", diags)
	}

	attrs, diags := file.Body.JustAttributes()
	if diags.HasErrors() {
		return fmt.Errorf("reading attributes: %w", diags)
	}

	doc, err := decodeAttributes(attrs)
	if err != nil {
		return err
	}

	value, err := parser.Navigate(doc, path)
	if err != nil {
		return err
	}

	return parser.Assign(value, target)
}

func decodeAttributes(attrs hcl.Attributes) (map[string]any, error) {
	doc := make(map[string]any, len(attrs))

	for name, attr := range attrs {
		val, diags := attr.Expr.Value(nil)
		if diags.HasErrors() {
			return nil, fmt.Errorf("evaluating %s: %w", name, diags)
		}

		native, err := ctyToNative(val)
		if err != nil {
			return nil, fmt.Errorf("in attribute '%s': %w", name, err)
		}

		doc[name] = native
	}

	return doc, nil
}

// ctyToNative converts a cty.Value to the document shapes. Whole numbers that
// fit become int, other numbers float64.
func ctyToNative(v cty.Value) (any, error) {
	if v.IsNull() || !v.IsKnown() {
		return nil, nil
	}

	ty := v.Type()

	switch {
	case ty == cty.String:
		return v.AsString(), nil
	case ty == cty.Number:
		return numberToNative(v.AsBigFloat()), nil
	case ty == cty.Bool:
		var b bool

		err := gocty.FromCtyValue(v, &b)
		if err != nil {
			return nil, fmt.Errorf("converting bool: %w", err)
		}

		return b, nil
	case ty.IsListType() || ty.IsTupleType() || ty.IsSetType():
		slice := make([]any, 0, v.LengthInt())

		it := v.ElementIterator()
		for it.Next() {
			_, val := it.Element()

			native, err := ctyToNative(val)
			if err != nil {
				return nil, err
			}

			slice = append(slice, native)
		}

		return slice, nil
	case ty.IsObjectType() || ty.IsMapType():
		mapping := make(map[string]any, v.LengthInt())

		it := v.ElementIterator()
		for it.Next() {
			key, val := it.Element()

			native, err := ctyToNative(val)
			if err != nil {
				return nil, fmt.Errorf("in attribute '%s': %w", key.AsString(), err)
			}

			mapping[key.AsString()] = native
		}

		return mapping, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedType, ty.FriendlyName())
	}
}

func numberToNative(f *big.Float) any {
	if f.IsInt() {
		i, accuracy := f.Int64()
		if accuracy == big.Exact {
			return int(i)
		}
	}

	value, _ := f.Float64()

	return value
}
