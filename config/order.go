package config

import (
	"sort"
	"strings"
)

// KeyOrder records the document order of mapping keys. It is keyed by the
// path of each mapping: "" for the document, "theme" or "nav[0]" for nested
// mappings.
type KeyOrder map[string][]string

// KeyOrderer is implemented by parsers that can report the document order of
// mapping keys. Decoded documents are plain maps and lose it.
type KeyOrderer interface {
	KeyOrder(data []byte, path string) (KeyOrder, error)
}

// Sub returns the order of the mappings below key, with paths relative to key.
func (o KeyOrder) Sub(key string) KeyOrder {
	if len(o) == 0 {
		return nil
	}

	sub := make(KeyOrder)
	prefix := key + "."

	for path, keys := range o {
		switch {
		case path == key:
			sub[""] = keys
		case strings.HasPrefix(path, prefix):
			sub[path[len(prefix):]] = keys
		}
	}

	return sub
}

// Keys returns the keys of mapping, the mapping found at path: keys recorded
// for path first, in document order, then the others in sorted order.
func (o KeyOrder) Keys(path string, mapping map[string]any) []string {
	keys := make([]string, 0, len(mapping))
	seen := make(map[string]bool, len(mapping))

	for _, key := range o[path] {
		if _, ok := mapping[key]; ok && !seen[key] {
			keys = append(keys, key)
			seen[key] = true
		}
	}

	rest := make([]string, 0, len(mapping)-len(keys))

	for key := range mapping {
		if !seen[key] {
			rest = append(rest, key)
		}
	}

	sort.Strings(rest)

	return append(keys, rest...)
}

func (o KeyOrder) merge(other KeyOrder) KeyOrder {
	if o == nil {
		o = make(KeyOrder, len(other))
	}

	for path, keys := range other {
		o[path] = keys
	}

	return o
}
