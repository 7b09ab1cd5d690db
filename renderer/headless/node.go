package headless

import (
	"slices"

	"github.com/plus3/nucleus/nucleus"
)

// Asset stands in for the GPU resources (mesh data, materials) a renderer
// attaches to a node.
type Asset struct {
	Name     string
	disposed bool
}

// Dispose frees the asset.
func (a *Asset) Dispose() {
	a.disposed = true
}

// IsDisposed reports whether the asset has been freed.
func (a *Asset) IsDisposed() bool {
	return a.disposed
}

// Node is an in-memory transform node.
type Node struct {
	id       nucleus.NodeID
	name     string
	surface  *Surface
	parent   *Node
	children []*Node
	asset    *Asset

	position nucleus.Vector3
	rotation nucleus.Vector3
	scaling  nucleus.Vector3

	disposing bool
	disposed  bool
}

var (
	_ nucleus.Node          = (*Node)(nil)
	_ nucleus.Transformable = (*Node)(nil)
)

func (n *Node) ID() nucleus.NodeID { return n.id }

func (n *Node) Name() string { return n.name }

// Parent returns the parent node, or nil for a root node.
func (n *Node) Parent() nucleus.Node {
	if n.parent == nil {
		return nil
	}
	return n.parent
}

// Children returns the child nodes in creation order.
func (n *Node) Children() []nucleus.Node {
	out := make([]nucleus.Node, len(n.children))
	for i, child := range n.children {
		out[i] = child
	}
	return out
}

func (n *Node) Surface() nucleus.Surface { return n.surface }

func (n *Node) IsDisposed() bool { return n.disposed }

// SetParent moves the node under parent, or to the surface root when parent
// is nil.
func (n *Node) SetParent(parent *Node) {
	n.detach()
	n.parent = parent
	if parent != nil {
		parent.children = append(parent.children, n)
	} else {
		n.surface.roots = append(n.surface.roots, n)
	}
}

// SetAsset attaches an asset to the node.
func (n *Node) SetAsset(a *Asset) {
	n.asset = a
}

// Asset returns the attached asset, or nil.
func (n *Node) Asset() *Asset {
	return n.asset
}

func (n *Node) Position() nucleus.Vector3     { return n.position }
func (n *Node) SetPosition(v nucleus.Vector3) { n.position = v }
func (n *Node) Rotation() nucleus.Vector3     { return n.rotation }
func (n *Node) SetRotation(v nucleus.Vector3) { n.rotation = v }
func (n *Node) Scaling() nucleus.Vector3      { return n.scaling }
func (n *Node) SetScaling(v nucleus.Vector3)  { n.scaling = v }

// WorldPosition returns the position of the node with every ancestor
// translation applied. Rotation and scaling are ignored.
func (n *Node) WorldPosition() nucleus.Vector3 {
	p := n.position
	for a := n.parent; a != nil; a = a.parent {
		p.X += a.position.X
		p.Y += a.position.Y
		p.Z += a.position.Z
	}
	return p
}

// Dispose notifies the surface dispose hooks, then disposes the descendants,
// the asset when disposeAssets is set, and the node itself.
func (n *Node) Dispose(disposeAssets bool) {
	if n.disposed || n.disposing {
		return
	}
	n.disposing = true

	n.surface.nodeDispose.each(func(fn func(nucleus.Node, bool)) {
		fn(n, disposeAssets)
	})

	for _, child := range slices.Clone(n.children) {
		child.Dispose(disposeAssets)
	}
	if disposeAssets && n.asset != nil {
		n.asset.Dispose()
	}

	n.detach()
	delete(n.surface.nodes, n.id)
	n.disposed = true
	n.disposing = false
}

func (n *Node) detach() {
	if n.parent != nil {
		if i := slices.Index(n.parent.children, n); i >= 0 {
			n.parent.children = slices.Delete(n.parent.children, i, i+1)
		}
		n.parent = nil
		return
	}
	if i := slices.Index(n.surface.roots, n); i >= 0 {
		n.surface.roots = slices.Delete(n.surface.roots, i, i+1)
	}
}
