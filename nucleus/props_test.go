package nucleus_test

import (
	"testing"

	"github.com/plus3/nucleus/nucleus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type tint struct {
	R, G, B uint8
	Tags    []string
}

func TestPropsClone(t *testing.T) {
	t.Run("handles are kept by reference", func(t *testing.T) {
		mgr, surface := newTestScene()
		defer surface.Dispose()
		e, err := mgr.NewEntity(surface, nil)
		require.NoError(t, err)
		node := surface.NewNode("target", nil)

		p := nucleus.Props{"target": node, "surface": surface, "follow": e}
		out := p.Clone()

		assert.Same(t, node, out["target"])
		assert.Same(t, surface, out["surface"])
		assert.Same(t, e, out["follow"])

		target, err := mgr.NewEntity(surface, p)
		require.NoError(t, err)
		assert.Same(t, node, target.Props()["target"])
	})

	t.Run("nil clones to empty", func(t *testing.T) {
		var p nucleus.Props
		assert.Equal(t, nucleus.Props{}, p.Clone())
	})

	t.Run("nested values do not alias", func(t *testing.T) {
		color := &tint{R: 1, Tags: []string{"warm"}}
		src := nucleus.Props{
			"list":  []any{1, map[string]any{"k": "v"}},
			"ints":  []float64{1, 2},
			"tint":  color,
			"plain": tint{G: 2, Tags: []string{"cold"}},
		}

		out := src.Clone()

		src["list"].([]any)[1].(map[string]any)["k"] = "changed"
		src["ints"].([]float64)[0] = 42
		color.R = 9
		color.Tags[0] = "hot"
		src["plain"].(tint).Tags[0] = "frozen"

		assert.Equal(t, "v", out["list"].([]any)[1].(map[string]any)["k"])
		assert.Equal(t, []float64{1, 2}, out["ints"])
		assert.Equal(t, &tint{R: 1, Tags: []string{"warm"}}, out["tint"])
		assert.Equal(t, tint{G: 2, Tags: []string{"cold"}}, out["plain"])
	})

	t.Run("scalars pass through", func(t *testing.T) {
		src := nucleus.Props{"n": 1, "s": "x", "b": true, "f": 0.5}
		assert.Equal(t, src, src.Clone())
	})
}

func TestPropsMerge(t *testing.T) {
	base := nucleus.Props{"a": 1, "nested": nucleus.Props{"x": 1, "y": 2}}

	merged := base.Merge(nucleus.Props{"b": 2, "nested": nucleus.Props{"x": 3}})

	assert.Equal(t, nucleus.Props{"a": 1, "b": 2, "nested": nucleus.Props{"x": 3}}, merged)
	assert.Equal(t, nucleus.Props{"a": 1, "nested": nucleus.Props{"x": 1, "y": 2}}, base)
}

func TestPropsGet(t *testing.T) {
	p := nucleus.Props{"speed": 2.5, "name": "spinner"}

	assert.Equal(t, 2.5, nucleus.Get(p, "speed", 1.0))
	assert.Equal(t, 1.0, nucleus.Get(p, "missing", 1.0))
	assert.Equal(t, 7, nucleus.Get(p, "name", 7))
	assert.Equal(t, "spinner", nucleus.Get(p, "name", ""))
}
