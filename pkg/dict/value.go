package dict

import (
	"fmt"
	"math"
)

// normalize maps a caller-supplied scalar onto the stored representation.
// Signed integers become int64, unsigned integers become int64 when they
// fit and uint64 otherwise, float32 widens to float64. Numeric slices become
// []float64. Anything else is rejected.
func normalize(v any) (any, bool) {
	switch x := v.(type) {
	case bool, int64, uint64, float64, string:
		if u, ok := x.(uint64); ok && u <= math.MaxInt64 {
			return int64(u), true
		}
		return x, true
	case int:
		return int64(x), true
	case int8:
		return int64(x), true
	case int16:
		return int64(x), true
	case int32:
		return int64(x), true
	case uint:
		if uint64(x) > math.MaxInt64 {
			return uint64(x), true
		}
		return int64(x), true
	case uint8:
		return int64(x), true
	case uint16:
		return int64(x), true
	case uint32:
		return int64(x), true
	case float32:
		return float64(x), true
	case []float64:
		out := make([]float64, len(x))
		copy(out, x)
		return out, true
	default:
		return nil, false
	}
}

// kindName names the stored kind of a scalar for error messages. It also
// names the raw kinds seen while converting decoded data, so that a message
// like `expecting map, got string` works for both sides.
func kindName(v any) string {
	switch x := v.(type) {
	case nil:
		return "nil"
	case bool:
		return "bool"
	case int, int8, int16, int32, int64:
		return "int64"
	case uint, uint8, uint16, uint32, uint64:
		return "uint64"
	case float32, float64:
		return "float64"
	case string:
		return "string"
	case []float64:
		return "[]float64"
	case []byte:
		return "bin"
	case []any:
		return "array"
	case map[string]any:
		return "map"
	case map[any]any:
		return "map"
	case *Dictionary:
		if x.IsValue() {
			return kindName(x.value)
		}
		return "map"
	default:
		return fmt.Sprintf("%T", v)
	}
}

// FromValue builds a dictionary node from a decoded value: maps with string
// keys become map nodes, numeric arrays become []float64 values, scalars
// become value nodes. Nil, binary blobs, non-numeric arrays and maps with
// non-string keys fail with a TypeError or ErrUnsupportedType.
func FromValue(v any) (*Dictionary, error) {
	switch x := v.(type) {
	case map[string]any:
		out := New()
		for key, val := range x {
			child, err := FromValue(val)
			if err != nil {
				return nil, typeErrorAt(key, err)
			}
			if out.childs == nil {
				out.childs = make(map[string]*Dictionary, len(x))
			}
			out.childs[key] = child
		}
		return out, nil
	case map[any]any:
		out := New()
		for key, val := range x {
			name, ok := key.(string)
			if !ok {
				return nil, &TypeError{Expected: "string key", Actual: kindName(key)}
			}
			child, err := FromValue(val)
			if err != nil {
				return nil, typeErrorAt(name, err)
			}
			if out.childs == nil {
				out.childs = make(map[string]*Dictionary, len(x))
			}
			out.childs[name] = child
		}
		return out, nil
	case []any:
		fs := make([]float64, len(x))
		for i, elem := range x {
			f, ok := toFloat(elem)
			if !ok {
				return nil, &TypeError{Expected: "number", Actual: kindName(elem)}
			}
			fs[i] = f
		}
		return &Dictionary{value: fs}, nil
	case nil:
		return nil, &TypeError{Expected: "value", Actual: "nil"}
	case []byte:
		return nil, &TypeError{Expected: "value", Actual: "bin"}
	default:
		n, ok := normalize(v)
		if !ok {
			return nil, fmt.Errorf("%w: %T", ErrUnsupportedType, v)
		}
		return &Dictionary{value: n}, nil
	}
}

// FromMap builds a map node from a decoded value, failing with a TypeError
// when the value is not a map.
func FromMap(v any) (*Dictionary, error) {
	switch v.(type) {
	case map[string]any, map[any]any:
		return FromValue(v)
	default:
		return nil, &TypeError{Expected: "map", Actual: kindName(v)}
	}
}

func toFloat(v any) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, true
	case float32:
		return float64(x), true
	case int64:
		return float64(x), true
	case int:
		return float64(x), true
	case int8:
		return float64(x), true
	case int16:
		return float64(x), true
	case int32:
		return float64(x), true
	case uint64:
		return float64(x), true
	case uint:
		return float64(x), true
	case uint8:
		return float64(x), true
	case uint16:
		return float64(x), true
	case uint32:
		return float64(x), true
	default:
		return 0, false
	}
}
