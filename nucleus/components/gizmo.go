package components

import "github.com/plus3/nucleus/nucleus"

// Gizmo draws three axis markers under its node. The markers are auxiliary
// nodes owned by the component, so disabling the gizmo removes them.
//
// Props:
//   - size (number, default 1): distance of each marker from the origin
type Gizmo struct {
	nucleus.ComponentBase

	axes [3]nucleus.Node
}

var axisNames = [3]string{"gizmo-x", "gizmo-y", "gizmo-z"}

func NewGizmo(props nucleus.Props) *Gizmo {
	g := &Gizmo{}
	nucleus.InitComponent(g, props)
	return g
}

// Axes returns the current axis marker nodes. They are nil while the gizmo is
// unmounted or disabled.
func (g *Gizmo) Axes() [3]nucleus.Node {
	return g.axes
}

func (g *Gizmo) DidMount() {
	g.build()
}

func (g *Gizmo) WillUnmount() {
	g.axes = [3]nucleus.Node{}
}

func (g *Gizmo) OnPropsUpdated(old nucleus.Props) {
	if Float(old, "size", 1) == Float(g.Props(), "size", 1) {
		return
	}
	for _, axis := range g.axes {
		if axis != nil {
			g.DisposeNode(axis, true)
		}
	}
	g.build()
}

func (g *Gizmo) build() {
	node, err := g.Node()
	if err != nil {
		return
	}
	ctx, err := g.Context()
	if err != nil {
		return
	}

	size := Float(g.Props(), "size", 1)
	offsets := [3]nucleus.Vector3{{X: size}, {Y: size}, {Z: size}}
	for i, name := range axisNames {
		axis := g.AddNode(ctx.Surface().CreateNode(name, node))
		if t, ok := axis.(nucleus.Transformable); ok {
			t.SetPosition(offsets[i])
		}
		g.axes[i] = axis
	}
}
