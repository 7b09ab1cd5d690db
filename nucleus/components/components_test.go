package components_test

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/plus3/nucleus/nucleus"
	"github.com/plus3/nucleus/nucleus/components"
	"github.com/plus3/nucleus/renderer/headless"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEntity(t *testing.T, props nucleus.Props) (*nucleus.Entity, *headless.Node, *headless.Surface) {
	t.Helper()
	mgr := nucleus.NewManager()
	surface := headless.NewSurface()
	e, err := mgr.NewEntity(surface, props)
	require.NoError(t, err)
	node, err := e.Node()
	require.NoError(t, err)
	return e, node.(*headless.Node), surface
}

func TestSpinning(t *testing.T) {
	t.Run("default spins clockwise", func(t *testing.T) {
		e, node, surface := newEntity(t, nil)
		require.NoError(t, e.MountComponent(components.NewSpinning(nil)))

		surface.Render(1.0 / 60)
		surface.Render(1.0 / 60)

		assert.InDelta(t, 0.01, node.Rotation().Y, 1e-6)
	})

	t.Run("counter clockwise uses the absolute speed", func(t *testing.T) {
		e, node, surface := newEntity(t, nil)
		spin := components.NewSpinning(nucleus.Props{"clockwise": false, "speed": -0.5})
		require.NoError(t, e.MountComponent(spin))

		surface.Render(1.0 / 60)

		assert.InDelta(t, -0.5, node.Rotation().Y, 1e-6)
	})

	t.Run("speed can be changed while mounted", func(t *testing.T) {
		e, node, surface := newEntity(t, nil)
		spin := components.NewSpinning(nil)
		require.NoError(t, e.MountComponent(spin))

		spin.UpdateProps(nucleus.Props{"speed": 1})
		surface.Render(1.0 / 60)

		assert.InDelta(t, 1, node.Rotation().Y, 1e-6)
	})
}

func TestSpinControl(t *testing.T) {
	e, node, surface := newEntity(t, nil)
	control := components.NewSpinControl(nucleus.Props{"multiplier": 2})
	require.NoError(t, e.Context().Registrar().RegisterSystem(control))

	spin := components.NewSpinning(nucleus.Props{"speed": 0.25})
	require.NoError(t, e.MountComponent(spin))
	assert.Equal(t, 1, control.Members())

	surface.Render(1.0 / 60)
	assert.InDelta(t, 0.5, node.Rotation().Y, 1e-6)
	assert.Equal(t, int64(1), control.Frames())

	control.UpdateProps(nucleus.Props{"paused": true})
	surface.Render(1.0 / 60)
	assert.InDelta(t, 0.5, node.Rotation().Y, 1e-6)
	assert.Equal(t, int64(1), control.Frames())

	control.UpdateProps(nucleus.Props{"paused": false, "multiplier": "fast"})
	assert.True(t, control.Paused())

	require.NoError(t, e.UnmountComponent(spin, true))
	assert.Equal(t, 0, control.Members())
}

func TestTransform(t *testing.T) {
	t.Run("applies entity props on mount", func(t *testing.T) {
		e, node, _ := newEntity(t, nucleus.Props{
			"position": map[string]any{"x": 1, "y": 2, "z": 3},
			"rotation": []any{0, 90, 0},
		})

		require.NoError(t, e.MountComponent(components.NewTransform()))

		assert.Equal(t, nucleus.Vector3{X: 1, Y: 2, Z: 3}, node.Position())
		assert.InDelta(t, math32.Pi/2, node.Rotation().Y, 1e-6)
		assert.Equal(t, nucleus.Vector3{X: 1, Y: 1, Z: 1}, node.Scaling())
	})

	t.Run("follows entity updates", func(t *testing.T) {
		e, node, _ := newEntity(t, nil)
		require.NoError(t, e.MountComponent(components.NewTransform()))

		require.NoError(t, e.UpdateProps(nucleus.Props{"scaling": nucleus.Vector3{X: 2, Y: 2, Z: 2}}))
		assert.Equal(t, nucleus.Vector3{X: 2, Y: 2, Z: 2}, node.Scaling())

		node.SetScaling(nucleus.Vector3{X: 5})
		require.NoError(t, e.UpdateProps(nucleus.Props{"scaling": nucleus.Vector3{X: 2, Y: 2, Z: 2}}))
		assert.Equal(t, nucleus.Vector3{X: 5}, node.Scaling())
	})
}

func TestGizmo(t *testing.T) {
	t.Run("owns three axis nodes", func(t *testing.T) {
		e, node, surface := newEntity(t, nil)
		gizmo := components.NewGizmo(nucleus.Props{"size": 2})
		require.NoError(t, e.MountComponent(gizmo))

		assert.Len(t, gizmo.Nodes(), 3)
		assert.Len(t, node.Children(), 3)
		assert.Equal(t, 4, surface.NodeCount())
		x := gizmo.Axes()[0].(*headless.Node)
		assert.Equal(t, nucleus.Vector3{X: 2}, x.Position())
	})

	t.Run("disable removes the markers and enable rebuilds them", func(t *testing.T) {
		e, node, _ := newEntity(t, nil)
		gizmo := components.NewGizmo(nil)
		require.NoError(t, e.MountComponent(gizmo))
		before := gizmo.Axes()

		gizmo.Disable()
		assert.Empty(t, node.Children())
		assert.True(t, before[0].IsDisposed())
		assert.Nil(t, gizmo.Axes()[0])

		gizmo.Enable()
		assert.Len(t, node.Children(), 3)
		assert.NotSame(t, before[0], gizmo.Axes()[0])
	})

	t.Run("resizing rebuilds the markers", func(t *testing.T) {
		e, node, _ := newEntity(t, nil)
		gizmo := components.NewGizmo(nil)
		require.NoError(t, e.MountComponent(gizmo))

		gizmo.UpdateProps(nucleus.Props{"size": 3})

		assert.Len(t, gizmo.Nodes(), 3)
		assert.Len(t, node.Children(), 3)
		z := gizmo.Axes()[2].(*headless.Node)
		assert.Equal(t, nucleus.Vector3{Z: 3}, z.Position())
	})

	t.Run("entity disposal frees the markers", func(t *testing.T) {
		e, _, surface := newEntity(t, nil)
		require.NoError(t, e.MountComponent(components.NewGizmo(nil)))

		e.Dispose(true)
		assert.Equal(t, 0, surface.NodeCount())
	})
}

func TestValues(t *testing.T) {
	p := nucleus.Props{
		"i":    3,
		"f":    1.5,
		"v":    nucleus.Vector3{X: 1},
		"list": []any{1.0, 2},
		"bad":  "x",
	}

	assert.Equal(t, float32(3), components.Float(p, "i", 0))
	assert.Equal(t, float32(1.5), components.Float(p, "f", 0))
	assert.Equal(t, float32(7), components.Float(p, "bad", 7))

	v, ok := components.Vector(p, "list")
	assert.True(t, ok)
	assert.Equal(t, nucleus.Vector3{X: 1, Y: 2}, v)

	_, ok = components.Vector(p, "bad")
	assert.False(t, ok)
}
