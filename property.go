package dice

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"sort"

	"github.com/spf13/cast"
	"go.uber.org/zap"
)

// Property values are kept in a closed JSON-compatible set: nil, bool, int64,
// float64, string, []any and map[string]any. SetProperty normalizes into it
// and Property/LookupProperty coerce out of it.

// SetProperty stores value under key, overwriting any previous value.
// Values that cannot be represented as JSON are logged and dropped.
func (o *Object) SetProperty(key string, value any) {
	v, err := normalizeValue(value)
	if err != nil {
		logger.Warn("property value is not serializable",
			zap.String("object", o.ID), zap.String("key", key), zap.Error(err))
		return
	}
	if o.properties == nil {
		o.properties = make(map[string]any)
	}
	o.properties[key] = v
}

// HasProperty reports whether key is present in the property bag.
func (o *Object) HasProperty(key string) bool {
	_, ok := o.properties[key]
	return ok
}

// RemoveProperty deletes key from the property bag.
func (o *Object) RemoveProperty(key string) {
	delete(o.properties, key)
}

// RawProperty returns the normalized value stored under key.
func (o *Object) RawProperty(key string) (any, bool) {
	v, ok := o.properties[key]
	return v, ok
}

// PropertyKeys returns the property keys in sorted order.
func (o *Object) PropertyKeys() []string {
	keys := make([]string, 0, len(o.properties))
	for k := range o.properties {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Property returns the value under key coerced to T, or def when the key is
// absent or the stored value cannot be coerced.
func Property[T any](n Node, key string, def T) T {
	if v, ok := LookupProperty[T](n, key); ok {
		return v
	}
	return def
}

// LookupProperty returns the value under key coerced to T and whether both
// the lookup and the coercion succeeded.
func LookupProperty[T any](n Node, key string) (T, bool) {
	var zero T
	o := baseOf(n)
	if o == nil {
		return zero, false
	}
	raw, ok := o.properties[key]
	if !ok {
		return zero, false
	}
	return coerce[T](raw)
}

// coerce converts a normalized value to T. Numbers convert between numeric
// kinds (floats truncate toward zero); every other target goes through a JSON
// round trip, which rejects mismatched kinds.
func coerce[T any](raw any) (T, bool) {
	var out T
	if v, ok := raw.(T); ok {
		return v, true
	}

	var err error
	switch p := any(&out).(type) {
	case *int, *int8, *int16, *int32, *int64,
		*uint, *uint8, *uint16, *uint32, *uint64,
		*float32, *float64:
		if !isNumber(raw) {
			return out, false
		}
		err = castNumber(p, raw)
	default:
		var b []byte
		if b, err = json.Marshal(raw); err == nil {
			err = json.Unmarshal(b, p)
		}
	}
	if err != nil {
		var zero T
		return zero, false
	}
	return out, true
}

func castNumber(p any, raw any) (err error) {
	switch p := p.(type) {
	case *int:
		*p, err = cast.ToIntE(raw)
	case *int8:
		*p, err = cast.ToInt8E(raw)
	case *int16:
		*p, err = cast.ToInt16E(raw)
	case *int32:
		*p, err = cast.ToInt32E(raw)
	case *int64:
		*p, err = cast.ToInt64E(raw)
	case *uint:
		*p, err = cast.ToUintE(raw)
	case *uint8:
		*p, err = cast.ToUint8E(raw)
	case *uint16:
		*p, err = cast.ToUint16E(raw)
	case *uint32:
		*p, err = cast.ToUint32E(raw)
	case *uint64:
		*p, err = cast.ToUint64E(raw)
	case *float32:
		*p, err = cast.ToFloat32E(raw)
	case *float64:
		*p, err = cast.ToFloat64E(raw)
	}
	return err
}

func isNumber(v any) bool {
	switch v.(type) {
	case int64, float64:
		return true
	}
	return false
}

// normalizeValue converts v into the closed property value set.
func normalizeValue(v any) (any, error) {
	switch x := v.(type) {
	case nil, bool, string, int64:
		return x, nil
	case float64:
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return nil, fmt.Errorf("unsupported float value %v", x)
		}
		return x, nil
	case float32:
		return normalizeValue(float64(x))
	case int:
		return int64(x), nil
	case int8:
		return int64(x), nil
	case int16:
		return int64(x), nil
	case int32:
		return int64(x), nil
	case uint8:
		return int64(x), nil
	case uint16:
		return int64(x), nil
	case uint32:
		return int64(x), nil
	case uint:
		return normalizeUnsigned(uint64(x)), nil
	case uint64:
		return normalizeUnsigned(x), nil
	case json.Number:
		if i, err := x.Int64(); err == nil {
			return i, nil
		}
		f, err := x.Float64()
		if err != nil {
			return nil, err
		}
		return normalizeValue(f)
	case []any:
		out := make([]any, len(x))
		for i, e := range x {
			ne, err := normalizeValue(e)
			if err != nil {
				return nil, err
			}
			out[i] = ne
		}
		return out, nil
	case map[string]any:
		out := make(map[string]any, len(x))
		for k, e := range x {
			ne, err := normalizeValue(e)
			if err != nil {
				return nil, err
			}
			out[k] = ne
		}
		return out, nil
	default:
		// Structs, typed slices and maps: go through their JSON form.
		b, err := json.Marshal(x)
		if err != nil {
			return nil, err
		}
		var decoded any
		dec := json.NewDecoder(bytes.NewReader(b))
		dec.UseNumber()
		if err := dec.Decode(&decoded); err != nil {
			return nil, err
		}
		return normalizeValue(decoded)
	}
}

func normalizeUnsigned(u uint64) any {
	if u <= math.MaxInt64 {
		return int64(u)
	}
	return float64(u)
}
