package nucleus_test

import (
	"testing"

	"github.com/plus3/nucleus/nucleus"
	"github.com/plus3/nucleus/renderer/headless"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEntityMounting(t *testing.T) {
	t.Run("has a node once constructed", func(t *testing.T) {
		mgr, surface := newTestScene()
		e, err := mgr.NewEntity(surface, nil)
		require.NoError(t, err)

		node, err := e.Node()
		require.NoError(t, err)
		assert.False(t, node.IsDisposed())
		assert.Nil(t, node.Parent())
		assert.Equal(t, e.Key(), node.Name())
	})

	t.Run("child entity node is parented to the parent node", func(t *testing.T) {
		mgr, surface := newTestScene()
		root, err := mgr.NewEntity(surface, nil, nucleus.WithKey("root"))
		require.NoError(t, err)
		child, err := mgr.NewEntity(root, nil, nucleus.WithKey("child"))
		require.NoError(t, err)

		rootNode, _ := root.Node()
		childNode, _ := child.Node()
		assert.Same(t, rootNode, childNode.Parent())
		assert.Same(t, root, child.Parent())
		assert.Equal(t, []*nucleus.Entity{child}, root.Children(true))
	})

	t.Run("adopts an existing node", func(t *testing.T) {
		mgr, surface := newTestScene()
		node := surface.NewNode("external", nil)

		e, err := mgr.NewEntity(node, nil)
		require.NoError(t, err)
		got, _ := e.Node()
		assert.Same(t, node, got)

		_, err = mgr.NewEntity(node, nil)
		assert.ErrorIs(t, err, nucleus.ErrAlreadyAssociated)
	})

	t.Run("rejects disposed mounting points", func(t *testing.T) {
		mgr, surface := newTestScene()
		parent, err := mgr.NewEntity(surface, nil)
		require.NoError(t, err)
		parent.Dispose(true)

		_, err = mgr.NewEntity(parent, nil)
		assert.ErrorIs(t, err, nucleus.ErrDisposedMountingPoint)

		node := surface.NewNode("gone", nil)
		node.Dispose(true)
		_, err = mgr.NewEntity(node, nil)
		assert.ErrorIs(t, err, nucleus.ErrDisposedMountingPoint)

		surface.Dispose()
		_, err = mgr.NewEntity(surface, nil)
		assert.ErrorIs(t, err, nucleus.ErrDisposedMountingPoint)
	})

	t.Run("rejects unknown mounting points", func(t *testing.T) {
		mgr, _ := newTestScene()
		_, err := mgr.NewEntity("scene", nil)
		assert.ErrorIs(t, err, nucleus.ErrInvalidMountingPoint)
	})

	t.Run("custom node from OnMount", func(t *testing.T) {
		mgr, surface := newTestScene()
		var custom *headless.Node
		e, err := mgr.NewEntity(surface, nil, nucleus.WithHooks(nucleus.EntityHooks{
			OnMount: func(e *nucleus.Entity, s nucleus.Surface, parent nucleus.Node) nucleus.Node {
				custom = surface.NewNode("custom", nil)
				custom.SetAsset(&headless.Asset{Name: "box"})
				return custom
			},
		}))
		require.NoError(t, err)

		node, _ := e.Node()
		assert.Same(t, custom, node)
	})

	t.Run("DidMount sees its own entity through For", func(t *testing.T) {
		mgr, surface := newTestScene()
		var found *nucleus.Entity
		e, err := mgr.NewEntity(surface, nil, nucleus.WithHooks(nucleus.EntityHooks{
			DidMount: func(e *nucleus.Entity) {
				node, _ := e.Node()
				found, _ = mgr.For(node)
			},
		}))
		require.NoError(t, err)
		assert.Same(t, e, found)
		assert.Len(t, e.Context().Entities(), 1)
	})
}

func TestEntityFor(t *testing.T) {
	mgr, surface := newTestScene()
	parentNode := surface.NewNode("parent", nil)
	childNode := surface.NewNode("child", parentNode)

	parent, err := mgr.NewEntity(parentNode, nil)
	require.NoError(t, err)

	first, err := mgr.For(childNode)
	require.NoError(t, err)
	second, err := mgr.For(childNode)
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Same(t, parent, first.Parent())

	again, err := mgr.For(parentNode)
	require.NoError(t, err)
	assert.Same(t, parent, again)
}

func TestEntityDispose(t *testing.T) {
	t.Run("node access fails after dispose", func(t *testing.T) {
		mgr, surface := newTestScene()
		e, err := mgr.NewEntity(surface, nucleus.Props{"a": 1}, nucleus.WithKey("gone"))
		require.NoError(t, err)
		node, _ := e.Node()

		e.Dispose(true)

		assert.True(t, e.IsDisposed())
		assert.True(t, node.IsDisposed())
		_, err = e.Node()
		assert.ErrorIs(t, err, nucleus.ErrDisposed)
		assert.Empty(t, e.Components())
		assert.Empty(t, e.Context().Entities())
		assert.Nil(t, e.Props())
		assert.Equal(t, "gone", e.Key())
	})

	t.Run("dispose is idempotent", func(t *testing.T) {
		mgr, surface := newTestScene()
		disposeCount := 0
		e, err := mgr.NewEntity(surface, nil, nucleus.WithHooks(nucleus.EntityHooks{
			OnDispose: func(*nucleus.Entity) { disposeCount++ },
		}))
		require.NoError(t, err)

		e.Dispose(true)
		e.Dispose(true)
		assert.Equal(t, 1, disposeCount)
	})

	t.Run("direct node disposal funnels through the entity", func(t *testing.T) {
		mgr, surface := newTestScene()
		disposeCount := 0
		e, err := mgr.NewEntity(surface, nil, nucleus.WithHooks(nucleus.EntityHooks{
			OnDispose: func(*nucleus.Entity) { disposeCount++ },
		}))
		require.NoError(t, err)
		c := NewFakeComponent(nil)
		require.NoError(t, e.MountComponent(c))

		node, _ := e.Node()
		node.Dispose(true)

		assert.True(t, e.IsDisposed())
		assert.Equal(t, 1, disposeCount)
		assert.Equal(t, 1, c.WillUnmountCount)
		assert.False(t, c.IsMounted())

		e.Dispose(true)
		assert.Equal(t, 1, disposeCount)
	})

	t.Run("disposing a parent disposes its children", func(t *testing.T) {
		mgr, surface := newTestScene()
		root, _ := mgr.NewEntity(surface, nil)
		child, _ := mgr.NewEntity(root, nil)
		grandchild, _ := mgr.NewEntity(child, nil)

		root.Dispose(true)

		assert.True(t, child.IsDisposed())
		assert.True(t, grandchild.IsDisposed())
		assert.Equal(t, 0, surface.NodeCount())
	})

	t.Run("disposeAssets is propagated to the node", func(t *testing.T) {
		mgr, surface := newTestScene()
		keep := &headless.Asset{Name: "keep"}
		free := &headless.Asset{Name: "free"}

		a, _ := mgr.NewEntity(surface, nil)
		b, _ := mgr.NewEntity(surface, nil)
		nodeA, _ := a.Node()
		nodeB, _ := b.Node()
		nodeA.(*headless.Node).SetAsset(keep)
		nodeB.(*headless.Node).SetAsset(free)

		a.Dispose(false)
		b.Dispose(true)

		assert.False(t, keep.IsDisposed())
		assert.True(t, free.IsDisposed())
	})

	t.Run("failing component does not stop the others from unmounting", func(t *testing.T) {
		mgr, surface := newTestScene()
		e, _ := mgr.NewEntity(surface, nil)
		bad := NewFakeComponent(nil)
		bad.PanicOnWillUnmount = true
		good := &NodeOwner{}
		require.NoError(t, e.MountComponent(bad))
		require.NoError(t, e.MountComponent(good))

		assert.NotPanics(t, func() { e.Dispose(true) })
		assert.Equal(t, 1, good.WillUnmountCount)
		assert.False(t, good.IsMounted())
		assert.False(t, bad.IsMounted())
	})

	t.Run("disposed entity stops ticking", func(t *testing.T) {
		mgr, surface := newTestScene()
		e, _ := mgr.NewEntity(surface, nil)
		c := NewFakeComponent(nil)
		require.NoError(t, e.MountComponent(c))

		surface.Render(1.0 / 60)
		e.Dispose(true)
		surface.Render(1.0 / 60)

		assert.Equal(t, 1, c.TickCount)
		assert.Equal(t, 0, surface.Stats().Subscribers)
	})
}

func TestEntityProps(t *testing.T) {
	t.Run("update merges over old props", func(t *testing.T) {
		mgr, surface := newTestScene()
		var old nucleus.Props
		updates := 0
		e, err := mgr.NewEntity(surface, nucleus.Props{"a": 1, "b": "x"}, nucleus.WithHooks(nucleus.EntityHooks{
			OnPropsUpdated: func(e *nucleus.Entity, o nucleus.Props) {
				updates++
				old = o
			},
		}))
		require.NoError(t, err)

		require.NoError(t, e.UpdateProps(nucleus.Props{"b": "y", "c": true}))

		assert.Equal(t, 1, updates)
		assert.Equal(t, nucleus.Props{"a": 1, "b": "x"}, old)
		assert.Equal(t, nucleus.Props{"a": 1, "b": "y", "c": true}, e.Props())
	})

	t.Run("veto leaves props untouched", func(t *testing.T) {
		mgr, surface := newTestScene()
		updates := 0
		e, err := mgr.NewEntity(surface, nucleus.Props{"a": 1}, nucleus.WithHooks(nucleus.EntityHooks{
			WillPropsUpdate: func(*nucleus.Entity, nucleus.Props) bool { return false },
			OnPropsUpdated:  func(*nucleus.Entity, nucleus.Props) { updates++ },
		}))
		require.NoError(t, err)
		c := NewFakeComponent(nil)
		require.NoError(t, e.MountComponent(c))

		require.NoError(t, e.UpdateProps(nucleus.Props{"a": 2}))

		assert.Equal(t, nucleus.Props{"a": 1}, e.Props())
		assert.Equal(t, 0, updates)
		assert.Equal(t, 0, c.EntityWillUpdate)
		assert.Equal(t, 0, c.EntityUpdated)
	})

	t.Run("update on a disposed entity fails", func(t *testing.T) {
		mgr, surface := newTestScene()
		e, _ := mgr.NewEntity(surface, nil)
		e.Dispose(true)
		assert.ErrorIs(t, e.UpdateProps(nucleus.Props{"a": 1}), nucleus.ErrDisposed)
	})

	t.Run("construction props are deep copied", func(t *testing.T) {
		mgr, surface := newTestScene()
		list := []int{1, 2, 3}
		nested := nucleus.Props{"list": list}
		props := nucleus.Props{"nested": nested}

		e, err := mgr.NewEntity(surface, props)
		require.NoError(t, err)

		list[0] = 99
		nested["extra"] = true
		props["added"] = 1

		got := e.Props()
		assert.Equal(t, nucleus.Props{"nested": nucleus.Props{"list": []int{1, 2, 3}}}, got)
	})

	t.Run("child props update reaches its components", func(t *testing.T) {
		mgr, surface := newTestScene()
		root, _ := mgr.NewEntity(surface, nil)

		var olds []nucleus.Props
		child, err := mgr.NewEntity(root, nil, nucleus.WithHooks(nucleus.EntityHooks{
			OnPropsUpdated: func(e *nucleus.Entity, old nucleus.Props) { olds = append(olds, old) },
		}))
		require.NoError(t, err)
		x := NewFakeComponent(nil)
		require.NoError(t, child.MountComponent(x))

		require.NoError(t, child.UpdateProps(nucleus.Props{"a": 1}))

		require.Len(t, olds, 1)
		assert.Equal(t, nucleus.Props{}, olds[0])
		assert.Equal(t, 1, x.EntityWillUpdate)
		assert.Equal(t, 1, x.EntityUpdated)
		assert.Equal(t, nucleus.Props{"a": 1}, x.LastEntityNextProps)
		assert.Equal(t, nucleus.Props{}, x.LastEntityOldProps)
	})
}

func TestEntityTick(t *testing.T) {
	t.Run("components tick in mount order before the entity", func(t *testing.T) {
		mgr, surface := newTestScene()
		var trace []string
		e, err := mgr.NewEntity(surface, nil, nucleus.WithHooks(nucleus.EntityHooks{
			OnBeforeRender: func(*nucleus.Entity, float64) { trace = append(trace, "entity:tick") },
		}))
		require.NoError(t, err)

		a := NewFakeComponent(nil)
		a.Name, a.Trace = "a", &trace
		b := &OtherComponent{Trace: &trace}
		require.NoError(t, e.MountComponent(a))
		require.NoError(t, e.MountComponent(b))
		trace = nil

		surface.Render(1.0 / 60)

		assert.Equal(t, []string{"a:tick", "other:tick", "entity:tick"}, trace)
	})

	t.Run("a panicking component does not stop the frame", func(t *testing.T) {
		mgr, surface := newTestScene()
		entityTicks := 0
		e, _ := mgr.NewEntity(surface, nil, nucleus.WithHooks(nucleus.EntityHooks{
			OnBeforeRender: func(*nucleus.Entity, float64) { entityTicks++ },
		}))
		bad := NewFakeComponent(nil)
		bad.PanicOnTick = true
		var trace []string
		other := &OtherComponent{Trace: &trace}
		require.NoError(t, e.MountComponent(bad))
		require.NoError(t, e.MountComponent(other))

		assert.NotPanics(t, func() { surface.Render(1.0 / 60) })
		assert.Equal(t, 1, bad.TickCount)
		assert.Equal(t, []string{"other:tick"}, trace)
		assert.Equal(t, 1, entityTicks)
	})

	t.Run("disabled components do not tick", func(t *testing.T) {
		mgr, surface := newTestScene()
		e, _ := mgr.NewEntity(surface, nil)
		c := NewFakeComponent(nil)
		require.NoError(t, e.MountComponent(c))
		c.Disable()

		surface.Render(1.0 / 60)
		assert.Equal(t, 0, c.TickCount)

		c.Enable()
		surface.Render(1.0 / 60)
		assert.Equal(t, 1, c.TickCount)
	})
}

func TestSurfaceTeardown(t *testing.T) {
	mgr, surface := newTestScene()
	root, _ := mgr.NewEntity(surface, nil)
	child, _ := mgr.NewEntity(root, nil)
	c := NewFakeComponent(nil)
	require.NoError(t, child.MountComponent(c))
	system := NewFakeSystem()
	ctx := root.Context()
	require.NoError(t, ctx.Registrar().RegisterSystem(system))

	surface.Dispose()

	assert.True(t, root.IsDisposed())
	assert.True(t, child.IsDisposed())
	assert.Equal(t, 1, c.WillUnmountCount)
	assert.Equal(t, 1, system.DisposeCount)
	assert.False(t, system.IsInitialized())
	assert.True(t, ctx.IsDisposed())
	assert.Empty(t, mgr.Contexts())
}
