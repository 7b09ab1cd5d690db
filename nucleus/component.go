package nucleus

import (
	"reflect"

	"go.uber.org/zap"
)

// ComponentType is the stable type token used to index components and
// systems: the dynamic type of the concrete component value.
type ComponentType = reflect.Type

// TypeOf returns the type token of c.
func TypeOf(c Component) ComponentType {
	return reflect.TypeOf(c)
}

// ComponentTypeFor returns the type token of the component type T, which is
// normally a pointer to a struct embedding ComponentBase.
func ComponentTypeFor[T Component]() ComponentType {
	return reflect.TypeFor[T]()
}

// Component is a unit of behavior or appearance mounted to one Entity.
// Implementations embed ComponentBase, which supplies the default (no-op)
// hooks, and override the hooks they need.
type Component interface {
	AsComponent() *ComponentBase

	// DidMount runs when the component is mounted or re-enabled.
	DidMount()
	// WillUnmount runs when the component is unmounted or disabled.
	WillUnmount()
	// OnEnabled runs when a mounted component is enabled. The default runs
	// DidMount again.
	OnEnabled()
	// OnDisabled runs when a mounted component is disabled. The default
	// runs WillUnmount. Owned nodes are disposed afterwards either way.
	OnDisabled()
	// WillPropsUpdate may veto an update of the component props.
	WillPropsUpdate(next Props) bool
	// OnPropsUpdated runs after the component props were updated.
	OnPropsUpdated(old Props)
	// OnEntityPropsWillUpdate runs before the owning entity merges new props.
	OnEntityPropsWillUpdate(old, next Props)
	// OnEntityPropsUpdated runs after the owning entity merged new props.
	OnEntityPropsUpdated(old Props)
	// OnBeforeRender runs once per frame while mounted and enabled.
	OnBeforeRender(dt float64)
}

// ComponentBase holds the lifecycle state of a component.
type ComponentBase struct {
	this     Component
	props    Props
	disabled bool
	mounted  bool
	entity   *Entity
	system   System
	nodes    []Node
}

// InitComponent binds c to its embedded base and sets its initial props,
// which are deep copied.
func InitComponent(c Component, props Props) {
	b := c.AsComponent()
	b.this = c
	b.props = props.Clone()
}

// MountTo mounts c to target, which is an *Entity or a Node. A Node is
// resolved to its entity through the context of its surface, whichever
// manager created it; the entity is created if the node has none. c is
// returned for chaining.
func MountTo[C Component](c C, target MountingPoint) (C, error) {
	var e *Entity
	switch v := target.(type) {
	case *Entity:
		e = v
	case Node:
		ctx, err := DefaultManager.ContextFor(v)
		if err != nil {
			return c, err
		}
		if e, err = ctx.manager.For(v); err != nil {
			return c, err
		}
	default:
		return c, ErrInvalidMountingPoint
	}
	return c, e.MountComponent(c)
}

// AsComponent implements Component.
func (b *ComponentBase) AsComponent() *ComponentBase { return b }

func (b *ComponentBase) DidMount()                               {}
func (b *ComponentBase) WillUnmount()                            {}
func (b *ComponentBase) WillPropsUpdate(next Props) bool         { return true }
func (b *ComponentBase) OnPropsUpdated(old Props)                {}
func (b *ComponentBase) OnEntityPropsWillUpdate(old, next Props) {}
func (b *ComponentBase) OnEntityPropsUpdated(old Props)          {}
func (b *ComponentBase) OnBeforeRender(dt float64)               {}

// OnEnabled re-runs DidMount.
func (b *ComponentBase) OnEnabled() {
	if b.this != nil {
		b.this.DidMount()
	}
}

// OnDisabled runs WillUnmount.
func (b *ComponentBase) OnDisabled() {
	if b.this != nil {
		b.this.WillUnmount()
	}
}

// Props returns the component props. The map must not be modified.
func (b *ComponentBase) Props() Props {
	return b.props
}

// IsEnabled reports whether the component is enabled.
func (b *ComponentBase) IsEnabled() bool {
	return !b.disabled
}

// IsMounted reports whether the component is mounted to an entity.
func (b *ComponentBase) IsMounted() bool {
	return b.mounted
}

// Entity returns the owning entity.
func (b *ComponentBase) Entity() (*Entity, error) {
	if !b.mounted {
		return nil, ErrNotMounted
	}
	return b.entity, nil
}

// Node returns the node of the owning entity.
func (b *ComponentBase) Node() (Node, error) {
	if !b.mounted {
		return nil, ErrNotMounted
	}
	return b.entity.Node()
}

// System returns the system registered for the component type. It is nil
// when no system is registered.
func (b *ComponentBase) System() (System, error) {
	if !b.mounted {
		return nil, ErrNotMounted
	}
	return b.system, nil
}

// Context returns the surface context of the owning entity.
func (b *ComponentBase) Context() (*Context, error) {
	if !b.mounted {
		return nil, ErrNotMounted
	}
	return b.entity.ctx, nil
}

// Enable enables the component. A mounted component runs OnEnabled.
func (b *ComponentBase) Enable() {
	if !b.disabled {
		return
	}
	b.disabled = false
	if b.mounted {
		b.this.OnEnabled()
	}
}

// Disable disables the component. A mounted component runs OnDisabled and
// loses every node it owns; it stays mounted and can be enabled again.
func (b *ComponentBase) Disable() {
	if b.disabled {
		return
	}
	b.disabled = true
	if b.mounted {
		b.this.OnDisabled()
		b.disposeNodes(true)
	}
}

// UpdateProps merges props over the component props. While mounted and
// enabled, WillPropsUpdate may veto the change and OnPropsUpdated runs after
// it; otherwise the props are applied silently.
func (b *ComponentBase) UpdateProps(props Props) {
	next := props.Clone()
	if !b.mounted || b.disabled {
		b.props = b.props.Merge(next)
		return
	}
	if !b.this.WillPropsUpdate(next) {
		return
	}
	old := b.props.Clone()
	b.props = b.props.Merge(next)
	b.this.OnPropsUpdated(old)
}

// AddNode hands ownership of node to the component. Owned nodes are disposed
// when the component is disabled or unmounted.
func (b *ComponentBase) AddNode(node Node) Node {
	b.nodes = append(b.nodes, node)
	return node
}

// DisposeNode disposes an owned node and drops it from the component.
func (b *ComponentBase) DisposeNode(node Node, disposeAssets bool) {
	for i, n := range b.nodes {
		if n == node {
			b.nodes = append(b.nodes[:i], b.nodes[i+1:]...)
			break
		}
	}
	node.Dispose(disposeAssets)
}

// Nodes returns the nodes owned by the component.
func (b *ComponentBase) Nodes() []Node {
	return b.nodes
}

func (b *ComponentBase) disposeNodes(disposeAssets bool) {
	nodes := b.nodes
	b.nodes = nil
	for _, n := range nodes {
		if !n.IsDisposed() {
			n.Dispose(disposeAssets)
		}
	}
}

func (b *ComponentBase) internalMount(this Component, e *Entity, system System) error {
	if b.mounted {
		return ErrAlreadyMounted
	}

	b.this = this
	if b.props == nil {
		b.props = Props{}
	}
	b.entity = e
	b.system = system
	b.mounted = true

	if !b.disabled {
		this.DidMount()
	}
	if system != nil {
		system.OnComponentDidMount(this)
	}
	if b.disabled {
		this.OnDisabled()
		b.disposeNodes(true)
	}
	return nil
}

func (b *ComponentBase) internalUnmount(disposeAssets bool) error {
	if !b.mounted {
		return ErrNotMounted
	}

	logger := b.entity.ctx.logger
	if b.system != nil {
		safeCall(logger, "system unmount hook panicked", func() { b.system.OnComponentWillUnmount(b.this) },
			zap.Stringer("component", TypeOf(b.this)))
	}
	if !b.disabled {
		safeCall(logger, "component unmount hook panicked", b.this.WillUnmount,
			zap.Stringer("component", TypeOf(b.this)))
	}
	b.disposeNodes(disposeAssets)

	b.entity = nil
	b.system = nil
	b.mounted = false
	return nil
}
