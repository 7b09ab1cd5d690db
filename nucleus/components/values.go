package components

import (
	"github.com/chewxy/math32"
	"github.com/plus3/nucleus/nucleus"
)

const degToRad = math32.Pi / 180

// Float reads a numeric prop as float32. YAML and JSON decoders produce int
// and float64, Go callers usually float32, so all of them are accepted.
func Float(p nucleus.Props, key string, fallback float32) float32 {
	if f, ok := toFloat(p[key]); ok {
		return f
	}
	return fallback
}

// Vector reads a vector prop. Accepted forms are nucleus.Vector3, a map with
// optional x, y and z keys and a list of up to three numbers. Missing
// components are zero.
func Vector(p nucleus.Props, key string) (nucleus.Vector3, bool) {
	return toVector(p[key])
}

func toFloat(v any) (float32, bool) {
	switch n := v.(type) {
	case float32:
		return n, true
	case float64:
		return float32(n), true
	case int:
		return float32(n), true
	case int64:
		return float32(n), true
	case int32:
		return float32(n), true
	case uint:
		return float32(n), true
	case uint64:
		return float32(n), true
	}
	return 0, false
}

func toVector(v any) (nucleus.Vector3, bool) {
	switch val := v.(type) {
	case nucleus.Vector3:
		return val, true
	case *nucleus.Vector3:
		if val == nil {
			return nucleus.Vector3{}, false
		}
		return *val, true
	case nucleus.Props:
		return vectorFromMap(val), true
	case map[string]any:
		return vectorFromMap(val), true
	case []any:
		var out nucleus.Vector3
		dst := []*float32{&out.X, &out.Y, &out.Z}
		for i := 0; i < len(val) && i < len(dst); i++ {
			*dst[i], _ = toFloat(val[i])
		}
		return out, true
	}
	return nucleus.Vector3{}, false
}

func vectorFromMap(m map[string]any) nucleus.Vector3 {
	x, _ := toFloat(m["x"])
	y, _ := toFloat(m["y"])
	z, _ := toFloat(m["z"])
	return nucleus.Vector3{X: x, Y: y, Z: z}
}

func radians(v nucleus.Vector3) nucleus.Vector3 {
	return nucleus.Vector3{X: v.X * degToRad, Y: v.Y * degToRad, Z: v.Z * degToRad}
}

// transformable returns the node of c when it supports transforms.
func transformable(c *nucleus.ComponentBase) (nucleus.Transformable, bool) {
	node, err := c.Node()
	if err != nil {
		return nil, false
	}
	t, ok := node.(nucleus.Transformable)
	return t, ok
}
