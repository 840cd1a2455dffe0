package config

import (
	"fmt"
	"math"
	"reflect"
	"strings"
)

// JoinKey joins a parent field path and a child key: "a" + "b" is "a.b",
// "a" + "[0]" is "a[0]".
func JoinKey(parent, child string) string {
	switch {
	case parent == "":
		return child
	case child == "":
		return parent
	case strings.HasPrefix(child, "["):
		return parent + child
	default:
		return parent + "." + child
	}
}

// Normalize converts a decoded document into the shapes options expect:
// mappings become map[string]any, sequences []any, every integer type int
// and float32 float64.
//
//nolint:cyclop // one case per decoded shape
func Normalize(value any) any {
	switch typed := value.(type) {
	case nil, string, bool, int, float64:
		return value
	case map[string]any:
		out := make(map[string]any, len(typed))
		for key, item := range typed {
			out[key] = Normalize(item)
		}

		return out
	case map[any]any:
		out := make(map[string]any, len(typed))
		for key, item := range typed {
			out[fmt.Sprint(key)] = Normalize(item)
		}

		return out
	case []any:
		out := make([]any, len(typed))
		for i, item := range typed {
			out[i] = Normalize(item)
		}

		return out
	case int8, int16, int32, int64:
		return int(reflect.ValueOf(typed).Int())
	case uint, uint8, uint16, uint32, uint64:
		unsigned := reflect.ValueOf(typed).Uint()
		if unsigned <= math.MaxInt64 {
			return int(unsigned)
		}

		return value
	case float32:
		return float64(typed)
	}

	return normalizeReflect(value)
}

func normalizeReflect(value any) any {
	reflected := reflect.ValueOf(value)

	switch reflected.Kind() { //nolint:exhaustive // remaining kinds are returned as is
	case reflect.Slice, reflect.Array:
		if reflected.Type().Elem().Kind() == reflect.Uint8 {
			return value
		}

		out := make([]any, reflected.Len())
		for i := range out {
			out[i] = Normalize(reflected.Index(i).Interface())
		}

		return out
	case reflect.Map:
		out := make(map[string]any, reflected.Len())

		iter := reflected.MapRange()
		for iter.Next() {
			out[fmt.Sprint(iter.Key().Interface())] = Normalize(iter.Value().Interface())
		}

		return out
	default:
		return value
	}
}

// Clone returns a deep copy of mappings and sequences in value. Other values
// are returned as is.
func Clone(value any) any {
	switch typed := value.(type) {
	case map[string]any:
		return cloneMap(typed)
	case []any:
		out := make([]any, len(typed))
		for i, item := range typed {
			out[i] = Clone(item)
		}

		return out
	default:
		return value
	}
}

func cloneMap(src map[string]any) map[string]any {
	if src == nil {
		return nil
	}

	dst := make(map[string]any, len(src))
	for key, item := range src {
		dst[key] = Clone(item)
	}

	return dst
}

// Value returns the value of key in cfg as T.
func Value[T any](cfg *Config, key string) (T, bool) {
	var zero T

	raw, ok := cfg.Lookup(key)
	if !ok {
		return zero, false
	}

	typed, ok := raw.(T)
	if !ok {
		return zero, false
	}

	return typed, true
}

// plain converts nested Configs into plain mappings.
func plain(value any) any {
	switch typed := value.(type) {
	case *Config:
		return typed.ToMap()
	case map[string]any:
		out := make(map[string]any, len(typed))
		for key, item := range typed {
			out[key] = plain(item)
		}

		return out
	case []any:
		out := make([]any, len(typed))
		for i, item := range typed {
			out[i] = plain(item)
		}

		return out
	default:
		return value
	}
}
