package nucleus

import (
	"reflect"

	"github.com/jinzhu/copier"
)

// Props is the structured property bag carried by entities, components and
// systems. Values written into a Props are always deep copies of the caller's
// data, so later mutation of the source never aliases into a live object.
// Renderer handles (Node, Surface) and entities are the exception: they are
// stored by reference so they keep pointing at the live object.
type Props map[string]any

// Clone returns a deep copy of p. A nil Props clones to an empty one.
func (p Props) Clone() Props {
	out := make(Props, len(p))
	for k, v := range p {
		out[k] = cloneValue(v)
	}
	return out
}

// Merge returns a deep copy of p with every top-level key of next written over
// it. Nested values are replaced, not merged.
func (p Props) Merge(next Props) Props {
	out := p.Clone()
	for k, v := range next {
		out[k] = cloneValue(v)
	}
	return out
}

// Get returns the value stored under key, or fallback when it is absent or of
// a different type.
func Get[T any](p Props, key string, fallback T) T {
	if v, ok := p[key].(T); ok {
		return v
	}
	return fallback
}

func cloneValue(v any) any {
	switch val := v.(type) {
	case nil:
		return nil
	case Node, Surface, *Entity:
		return v
	case Props:
		return val.Clone()
	case map[string]any:
		return map[string]any(Props(val).Clone())
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = cloneValue(item)
		}
		return out
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Map, reflect.Struct, reflect.Array, reflect.Pointer:
	default:
		return v
	}
	if (rv.Kind() == reflect.Slice || rv.Kind() == reflect.Map || rv.Kind() == reflect.Pointer) && rv.IsNil() {
		return v
	}

	opt := copier.Option{DeepCopy: true, CaseSensitive: true}
	if rv.Kind() == reflect.Pointer {
		dst := reflect.New(rv.Elem().Type())
		if err := copier.CopyWithOption(dst.Interface(), rv.Elem().Interface(), opt); err != nil {
			return v
		}
		return dst.Interface()
	}

	dst := reflect.New(rv.Type())
	if err := copier.CopyWithOption(dst.Interface(), v, opt); err != nil {
		// copier refuses a few exotic kinds (funcs, channels inside structs);
		// those are stored by reference.
		return v
	}
	return dst.Elem().Interface()
}
