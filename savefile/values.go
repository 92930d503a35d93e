package savefile

import (
	"encoding/json"
	"math"
	"reflect"
)

// Values handed to Set and Add come from Go callers as well as from decoded JSON and YAML
// documents, so numbers may arrive as any integer or float type (or json.Number) and
// sequences as any slice or array type.

// asBool accepts only Go booleans.
func asBool(v any) (bool, bool) {
	b, ok := v.(bool)
	return b, ok
}

// asInt64 accepts integers and integral finite floats.
func asInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int8:
		return int64(n), true
	case int16:
		return int64(n), true
	case int32:
		return int64(n), true
	case int64:
		return n, true
	case uint:
		if uint64(n) > math.MaxInt64 {
			return 0, false
		}
		return int64(n), true //nolint:gosec
	case uint8:
		return int64(n), true
	case uint16:
		return int64(n), true
	case uint32:
		return int64(n), true
	case uint64:
		if n > math.MaxInt64 {
			return 0, false
		}
		return int64(n), true
	case float32:
		return floatToInt64(float64(n))
	case float64:
		return floatToInt64(n)
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return i, true
		}
		f, err := n.Float64()
		if err != nil {
			return 0, false
		}
		return floatToInt64(f)
	default:
		return 0, false
	}
}

func floatToInt64(f float64) (int64, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, false
	}
	if f < math.MinInt64 || f >= math.MaxInt64 {
		return 0, false
	}

	return int64(f), true
}

// asInt32 accepts integral values within the int32 range.
func asInt32(v any) (int32, bool) {
	i, ok := asInt64(v)
	if !ok || i < math.MinInt32 || i > math.MaxInt32 {
		return 0, false
	}

	return int32(i), true
}

// asFloat64 accepts any finite number.
func asFloat64(v any) (float64, bool) {
	var f float64
	switch n := v.(type) {
	case float32:
		f = float64(n)
	case float64:
		f = n
	case json.Number:
		parsed, err := n.Float64()
		if err != nil {
			return 0, false
		}
		f = parsed
	default:
		i, ok := asInt64(v)
		if !ok {
			return 0, false
		}
		f = float64(i)
	}

	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}

	return f, true
}

// asFloat32 accepts finite numbers representable as a finite float32.
func asFloat32(v any) (float32, bool) {
	if f, ok := v.(float32); ok {
		if math.IsNaN(float64(f)) || math.IsInf(float64(f), 0) {
			return 0, false
		}
		return f, true
	}

	f, ok := asFloat64(v)
	if !ok || math.Abs(f) > math.MaxFloat32 {
		return 0, false
	}

	return float32(f), true
}

// asString accepts only Go strings.
func asString(v any) (string, bool) {
	s, ok := v.(string)
	return s, ok
}

// asSlice flattens any slice or array into its elements.
func asSlice(v any) ([]any, bool) {
	switch s := v.(type) {
	case []any:
		return s, true
	case nil:
		return nil, false
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, false
	}
	if rv.Kind() == reflect.Slice && rv.Type().Elem().Kind() == reflect.Uint8 {
		// []byte is a string in disguise, not a sequence of numbers.
		return nil, false
	}

	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}

	return out, true
}

// convertAll applies conv to every element of a sequence value.
func convertAll[T any](v any, conv func(any) (T, bool)) ([]T, bool) {
	items, ok := asSlice(v)
	if !ok {
		return nil, false
	}

	out := make([]T, len(items))
	for i, item := range items {
		if out[i], ok = conv(item); !ok {
			return nil, false
		}
	}

	return out, true
}

// asVector accepts a sequence of exactly width numbers.
func asVector(v any, width int) ([]float32, bool) {
	vec, ok := convertAll(v, asFloat32)
	if !ok || len(vec) != width {
		return nil, false
	}

	return vec, true
}
