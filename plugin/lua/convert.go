package lua

import (
	"fmt"
	"math"
	"reflect"

	lua "github.com/yuin/gopher-lua"
)

// toGo converts a Lua value to the normalized document shapes: integral
// numbers become int, sequences []any and other tables map[string]any.
func toGo(lv lua.LValue) any {
	return toGoVisited(lv, make(map[*lua.LTable]bool))
}

func toGoVisited(lv lua.LValue, visited map[*lua.LTable]bool) any {
	switch v := lv.(type) {
	case lua.LBool:
		return bool(v)
	case lua.LNumber:
		f := float64(v)
		if f == math.Trunc(f) && math.Abs(f) < math.MaxInt64 {
			return int(f)
		}

		return f
	case lua.LString:
		return string(v)
	case *lua.LTable:
		if visited[v] {
			return nil
		}

		visited[v] = true

		return tableToGo(v, visited)
	case *lua.LUserData:
		return v.Value
	default:
		return nil
	}
}

func tableToGo(t *lua.LTable, visited map[*lua.LTable]bool) any {
	maxN, count, isArray := 0, 0, true

	t.ForEach(func(k, _ lua.LValue) {
		count++

		kn, ok := k.(lua.LNumber)
		if !ok || float64(kn) != math.Trunc(float64(kn)) || kn < 1 {
			isArray = false

			return
		}

		if n := int(kn); n > maxN {
			maxN = n
		}
	})

	if isArray && maxN > 0 && count == maxN {
		arr := make([]any, maxN)
		for i := 1; i <= maxN; i++ {
			arr[i-1] = toGoVisited(t.RawGetInt(i), visited)
		}

		return arr
	}

	m := make(map[string]any, count)

	t.ForEach(func(k, v lua.LValue) {
		m[k.String()] = toGoVisited(v, visited)
	})

	return m
}

// toLua converts a Go value to a Lua value.
func toLua(state *lua.LState, value any) lua.LValue {
	switch v := value.(type) {
	case nil:
		return lua.LNil
	case lua.LValue:
		return v
	case bool:
		return lua.LBool(v)
	case int:
		return lua.LNumber(v)
	case int64:
		return lua.LNumber(v)
	case float64:
		return lua.LNumber(v)
	case string:
		return lua.LString(v)
	case fmt.Stringer:
		return lua.LString(v.String())
	case []any:
		t := state.NewTable()
		for i, item := range v {
			t.RawSetInt(i+1, toLua(state, item))
		}

		return t
	case map[string]any:
		t := state.NewTable()
		for key, item := range v {
			t.RawSetString(key, toLua(state, item))
		}

		return t
	default:
		return reflectToLua(state, value)
	}
}

func reflectToLua(state *lua.LState, value any) lua.LValue {
	rv := reflect.ValueOf(value)

	switch rv.Kind() { //nolint:exhaustive // other kinds become userdata
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return lua.LNumber(rv.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return lua.LNumber(rv.Uint())
	case reflect.Float32:
		return lua.LNumber(rv.Float())
	case reflect.Slice, reflect.Array:
		t := state.NewTable()
		for i := range rv.Len() {
			t.RawSetInt(i+1, toLua(state, rv.Index(i).Interface()))
		}

		return t
	case reflect.Map:
		t := state.NewTable()

		iter := rv.MapRange()
		for iter.Next() {
			t.RawSetString(fmt.Sprint(iter.Key().Interface()), toLua(state, iter.Value().Interface()))
		}

		return t
	default:
		ud := state.NewUserData()
		ud.Value = value

		return ud
	}
}
