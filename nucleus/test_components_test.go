package nucleus_test

import (
	"testing"

	"github.com/plus3/nucleus/nucleus"
	"github.com/plus3/nucleus/renderer/headless"
)

// FakeComponent records every hook it receives.
type FakeComponent struct {
	nucleus.ComponentBase

	DidMountCount       int
	WillUnmountCount    int
	WillUpdateCount     int
	OnUpdatedCount      int
	EntityWillUpdate    int
	EntityUpdated       int
	TickCount           int
	VetoProps           bool
	LastOldProps        nucleus.Props
	LastEntityOldProps  nucleus.Props
	LastEntityNextProps nucleus.Props
	Trace               *[]string
	Name                string
	PanicOnTick         bool
	PanicOnWillUnmount  bool
}

func NewFakeComponent(props nucleus.Props) *FakeComponent {
	c := &FakeComponent{}
	nucleus.InitComponent(c, props)
	return c
}

func (c *FakeComponent) trace(event string) {
	if c.Trace != nil {
		*c.Trace = append(*c.Trace, c.Name+":"+event)
	}
}

func (c *FakeComponent) DidMount() {
	c.DidMountCount++
	c.trace("didMount")
}

func (c *FakeComponent) WillUnmount() {
	c.WillUnmountCount++
	c.trace("willUnmount")
	if c.PanicOnWillUnmount {
		panic("willUnmount failure")
	}
}

func (c *FakeComponent) WillPropsUpdate(next nucleus.Props) bool {
	c.WillUpdateCount++
	return !c.VetoProps
}

func (c *FakeComponent) OnPropsUpdated(old nucleus.Props) {
	c.OnUpdatedCount++
	c.LastOldProps = old
}

func (c *FakeComponent) OnEntityPropsWillUpdate(old, next nucleus.Props) {
	c.EntityWillUpdate++
	c.LastEntityNextProps = next
}

func (c *FakeComponent) OnEntityPropsUpdated(old nucleus.Props) {
	c.EntityUpdated++
	c.LastEntityOldProps = old
}

func (c *FakeComponent) OnBeforeRender(dt float64) {
	c.TickCount++
	c.trace("tick")
	if c.PanicOnTick {
		panic("tick failure")
	}
}

// OtherComponent is a second concrete type with default hooks.
type OtherComponent struct {
	nucleus.ComponentBase
	Trace *[]string
}

func (c *OtherComponent) OnBeforeRender(dt float64) {
	if c.Trace != nil {
		*c.Trace = append(*c.Trace, "other:tick")
	}
}

// NodeOwner creates one auxiliary node each time it mounts.
type NodeOwner struct {
	nucleus.ComponentBase
	Created          []*headless.Node
	WillUnmountCount int
}

func (c *NodeOwner) DidMount() {
	node, _ := c.Node()
	surface := node.Surface().(*headless.Surface)
	aux := surface.NewNode("aux", node.(*headless.Node))
	aux.SetAsset(&headless.Asset{Name: "aux-mesh"})
	c.AddNode(aux)
	c.Created = append(c.Created, aux)
}

func (c *NodeOwner) WillUnmount() {
	c.WillUnmountCount++
}

// FakeSystem serves FakeComponent.
type FakeSystem struct {
	nucleus.SystemBase

	InitCount       int
	DisposeCount    int
	TickCount       int
	WillUpdateCount int
	OnUpdatedCount  int
	Mounted         []nucleus.Component
	Unmounted       []nucleus.Component
	VetoProps       bool
}

func NewFakeSystem() *FakeSystem {
	s := &FakeSystem{}
	nucleus.InitSystem(s, nucleus.ComponentTypeFor[*FakeComponent]())
	return s
}

func (s *FakeSystem) OnInit()                          { s.InitCount++ }
func (s *FakeSystem) OnDispose()                       { s.DisposeCount++ }
func (s *FakeSystem) OnBeforeRender(dt float64)        { s.TickCount++ }
func (s *FakeSystem) OnPropsUpdated(old nucleus.Props) { s.OnUpdatedCount++ }

func (s *FakeSystem) WillPropsUpdate(next nucleus.Props) bool {
	s.WillUpdateCount++
	return !s.VetoProps
}

func (s *FakeSystem) OnComponentDidMount(c nucleus.Component) {
	s.Mounted = append(s.Mounted, c)
}

func (s *FakeSystem) OnComponentWillUnmount(c nucleus.Component) {
	s.Unmounted = append(s.Unmounted, c)
}

func newTestScene() (*nucleus.Manager, *headless.Surface) {
	return nucleus.NewManager(), headless.NewSurface()
}

// newSurfaceOnDefaultManager returns a surface whose context lives on the
// package default manager. The surface is disposed when the test ends.
func newSurfaceOnDefaultManager(t *testing.T) *headless.Surface {
	t.Helper()
	surface := headless.NewSurface()
	t.Cleanup(surface.Dispose)
	return surface
}
