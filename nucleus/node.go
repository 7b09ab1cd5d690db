package nucleus

// NodeID identifies a renderer node. IDs are unique within one Surface.
type NodeID uint64

// FrameFunc is invoked once per rendered frame with the elapsed time in seconds.
type FrameFunc func(dt float64)

// Node is the renderer-native transform handle underlying an Entity.
type Node interface {
	ID() NodeID
	Name() string
	Parent() Node
	Children() []Node
	Surface() Surface
	IsDisposed() bool
	// Dispose frees the node and its descendants. A call made while the node
	// is already disposing must return without doing anything.
	Dispose(disposeAssets bool)
}

// Surface is the render root that nodes live in. It owns the frame loop.
type Surface interface {
	// CreateNode creates an empty transform node. A nil parent places the
	// node at the root of the surface.
	CreateNode(name string, parent Node) Node
	IsDisposed() bool

	// OnBeforeRender subscribes fn to the per-frame event. Callbacks run in
	// subscription order.
	OnBeforeRender(fn FrameFunc) (cancel func())
	// OnNodeDispose subscribes fn to node disposal. It fires before the node
	// and its descendants are torn down.
	OnNodeDispose(fn func(node Node, disposeAssets bool)) (cancel func())
	// OnDispose subscribes fn to the disposal of the surface itself.
	OnDispose(fn func()) (cancel func())
}

// Vector3 is a renderer-agnostic three component vector.
type Vector3 struct {
	X, Y, Z float32
}

// Transformable is implemented by nodes exposing a local transform.
type Transformable interface {
	Position() Vector3
	SetPosition(Vector3)
	Rotation() Vector3
	SetRotation(Vector3)
	Scaling() Vector3
	SetScaling(Vector3)
}
