package nucleus

import (
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// EntityHooks are the optional override points of an Entity. Every field may
// be left nil.
type EntityHooks struct {
	// OnMount creates the node of the entity. The default creates an empty
	// node named after the entity key under parent.
	OnMount func(e *Entity, surface Surface, parent Node) Node
	// DidMount runs once the entity is fully constructed.
	DidMount func(e *Entity)
	// WillPropsUpdate may veto a props update by returning false.
	WillPropsUpdate func(e *Entity, next Props) bool
	// OnPropsUpdated runs after an accepted update with the previous props.
	OnPropsUpdated func(e *Entity, old Props)
	// OnBeforeRender runs every frame after the components of the entity.
	OnBeforeRender func(e *Entity, dt float64)
	// OnDispose runs first when the entity is disposed.
	OnDispose func(e *Entity)
}

// EntityOption configures an entity at construction.
type EntityOption func(*Entity)

// WithKey sets the entity key. The key names the node the entity creates.
func WithKey(key string) EntityOption {
	return func(e *Entity) {
		e.key = key
	}
}

// WithHooks installs the given lifecycle hooks.
func WithHooks(hooks EntityHooks) EntityOption {
	return func(e *Entity) {
		e.hooks = hooks
	}
}

// Entity is a node in the scene tree. It exclusively owns one renderer Node
// and the components mounted to it.
type Entity struct {
	ctx        *Context
	seq        uint64
	key        string
	node       Node
	props      Props
	hooks      EntityHooks
	components *componentCollection

	cancelFrame func()
	disposing   bool
	disposed    bool
}

// NewEntity constructs an entity on the default manager.
func NewEntity(mp MountingPoint, props Props, opts ...EntityOption) (*Entity, error) {
	return DefaultManager.NewEntity(mp, props, opts...)
}

// For returns the entity of node on the default manager, creating one if
// the node has none.
func For(node Node) (*Entity, error) {
	return DefaultManager.For(node)
}

// NewEntity constructs an entity attached to mp. A Surface or *Entity mounting
// point gets a freshly created node; a Node mounting point is adopted and must
// not already belong to an entity.
func (m *Manager) NewEntity(mp MountingPoint, props Props, opts ...EntityOption) (*Entity, error) {
	ctx, err := m.ContextFor(mp)
	if err != nil {
		return nil, err
	}

	e := &Entity{
		ctx:   ctx,
		props: props.Clone(),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.key == "" {
		e.key = uuid.NewString()
	}

	switch v := mp.(type) {
	case *Entity:
		e.node = e.createNode(v.node)
	case Surface:
		e.node = e.createNode(nil)
	case Node:
		if _, ok := ctx.lookup(v.ID()); ok {
			return nil, fmt.Errorf("%w: node %d", ErrAlreadyAssociated, v.ID())
		}
		e.node = v
	}

	e.mount()
	return e, nil
}

// For returns the entity associated with node. When none exists, one is
// created around the node; repeated calls return the same instance.
func (m *Manager) For(node Node) (*Entity, error) {
	if node == nil {
		return nil, ErrInvalidMountingPoint
	}
	ctx, err := m.ContextFor(node)
	if err != nil {
		return nil, err
	}
	if e, ok := ctx.lookup(node.ID()); ok {
		return e, nil
	}
	return m.NewEntity(node, nil)
}

func (e *Entity) createNode(parent Node) Node {
	if e.hooks.OnMount != nil {
		if node := e.hooks.OnMount(e, e.ctx.surface, parent); node != nil {
			return node
		}
	}
	return e.ctx.surface.CreateNode(e.key, parent)
}

func (e *Entity) mount() {
	// The association goes in first so that lookups from inside the mount
	// hooks resolve to this entity instead of creating a second one.
	e.ctx.associate(e)
	e.ctx.registrar.registerEntity(e)

	e.components = newComponentCollection()
	e.components.mount(e, e.ctx.registrar)

	e.cancelFrame = e.ctx.surface.OnBeforeRender(e.tick)

	if e.hooks.DidMount != nil {
		e.hooks.DidMount(e)
	}
}

// Key returns the entity key. It stays readable after Dispose so that logs
// and hooks can still name the entity.
func (e *Entity) Key() string {
	return e.key
}

// Context returns the surface context of the entity. It stays readable after
// Dispose; the context reports its own disposal through IsDisposed.
func (e *Entity) Context() *Context {
	return e.ctx
}

// Node returns the renderer node owned by the entity.
func (e *Entity) Node() (Node, error) {
	if e.disposed || e.node == nil {
		return nil, ErrDisposed
	}
	return e.node, nil
}

// Props returns the current props, or nil once the entity is disposed. The
// returned map must not be modified; use UpdateProps instead.
func (e *Entity) Props() Props {
	if e.disposed {
		return nil
	}
	return e.props
}

// IsDisposed reports whether the entity has been disposed.
func (e *Entity) IsDisposed() bool {
	return e.disposed
}

// Parent returns the entity owning the nearest ancestor node, or nil.
func (e *Entity) Parent() *Entity {
	if e.disposed || e.node == nil {
		return nil
	}
	for n := e.node.Parent(); n != nil; n = n.Parent() {
		if p, ok := e.ctx.lookup(n.ID()); ok {
			return p
		}
	}
	return nil
}

// Children returns the entities of the child nodes. With directOnly false all
// descendants are returned, depth first. Child nodes that have no entity yet
// get one.
func (e *Entity) Children(directOnly bool) []*Entity {
	if e.disposed || e.node == nil {
		return nil
	}

	var out []*Entity
	var walk func(n Node)
	walk = func(n Node) {
		for _, child := range n.Children() {
			if child.IsDisposed() {
				continue
			}
			ce, err := e.ctx.manager.For(child)
			if err != nil {
				continue
			}
			out = append(out, ce)
			if !directOnly {
				walk(child)
			}
		}
	}
	walk(e.node)
	return out
}

// UpdateProps merges props over the current props. The WillPropsUpdate hook
// may veto the update, in which case nothing changes.
func (e *Entity) UpdateProps(props Props) error {
	if e.disposed {
		return ErrDisposed
	}

	next := props.Clone()
	if e.hooks.WillPropsUpdate != nil && !e.hooks.WillPropsUpdate(e, next) {
		return nil
	}

	old := e.props.Clone()
	e.components.propsWillUpdate(old, next)
	e.props = e.props.Merge(next)

	if e.hooks.OnPropsUpdated != nil {
		e.hooks.OnPropsUpdated(e, old)
	}
	e.components.propsUpdated(old)
	return nil
}

// MountComponent mounts c to the entity.
func (e *Entity) MountComponent(c Component) error {
	if e.disposed {
		return ErrDisposed
	}
	return e.components.mountComponent(c)
}

// UnmountComponent removes c from the entity.
func (e *Entity) UnmountComponent(c Component, disposeAssets bool) error {
	if e.disposed {
		return ErrDisposed
	}
	return e.components.unmountComponent(c, disposeAssets)
}

// GetComponent returns the component of type t, or nil.
func (e *Entity) GetComponent(t ComponentType) Component {
	if e.components == nil {
		return nil
	}
	return e.components.get(t)
}

// HasComponent reports whether a component of type t is mounted.
func (e *Entity) HasComponent(t ComponentType) bool {
	return e.GetComponent(t) != nil
}

// Components returns the components of the entity in mount order.
func (e *Entity) Components() []Component {
	if e.components == nil {
		return nil
	}
	return e.components.list()
}

// ComponentOf returns the component of type T mounted to e.
func ComponentOf[T Component](e *Entity) (T, bool) {
	c, ok := e.GetComponent(ComponentTypeFor[T]()).(T)
	return c, ok
}

// Dispose tears the entity down: components are unmounted, the frame
// subscription is removed and the node is disposed. It is a no-op on an
// already disposed entity.
func (e *Entity) Dispose(disposeAssets bool) {
	if e.disposed || e.disposing {
		return
	}
	e.disposing = true

	if e.hooks.OnDispose != nil {
		safeCall(e.ctx.logger, "entity dispose hook panicked", func() { e.hooks.OnDispose(e) },
			zap.String("entity", e.key))
	}

	e.components.unmountAll(disposeAssets)

	e.cancelFrame()
	e.cancelFrame = nil

	node := e.node
	e.ctx.dissociate(node.ID())
	e.ctx.registrar.unregisterEntity(e)

	e.node = nil
	node.Dispose(disposeAssets)

	e.props = nil
	e.disposed = true
	e.disposing = false
}

func (e *Entity) tick(dt float64) {
	if e.disposed || e.disposing {
		return
	}

	for _, c := range e.components.list() {
		base := c.AsComponent()
		if !base.mounted || base.disabled {
			continue
		}
		safeCall(e.ctx.logger, "component frame hook panicked", func() { c.OnBeforeRender(dt) },
			zap.String("entity", e.key), zap.Stringer("component", TypeOf(c)))
	}

	if e.hooks.OnBeforeRender != nil {
		safeCall(e.ctx.logger, "entity frame hook panicked", func() { e.hooks.OnBeforeRender(e, dt) },
			zap.String("entity", e.key))
	}
}
