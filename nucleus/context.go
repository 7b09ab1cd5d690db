package nucleus

import (
	"fmt"
	"slices"
	"sync"

	"github.com/kamstrup/intmap"
	"go.uber.org/zap"
)

// MountingPoint is the target an Entity attaches to at construction. It must
// be a Surface, a Node or an *Entity.
type MountingPoint any

// ManagerOption configures a Manager.
type ManagerOption func(*Manager)

// WithLogger sets the logger inherited by every Context of the manager.
func WithLogger(logger *zap.Logger) ManagerOption {
	return func(m *Manager) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// Manager creates surface contexts. A context is created the first time a
// surface is used as a mounting point and is dropped when the surface is
// disposed. Contexts are shared by all managers: a surface first reached
// through one manager resolves to the same context from every other one, and
// that first manager owns it.
type Manager struct {
	mu     sync.Mutex
	logger *zap.Logger
}

// surfaces holds the one context of every live surface.
var surfaces = struct {
	sync.Mutex
	contexts map[Surface]*Context
}{contexts: make(map[Surface]*Context)}

// DefaultManager backs the package-level NewEntity and For functions.
var DefaultManager = NewManager()

// NewManager creates an empty surface manager.
func NewManager(opts ...ManagerOption) *Manager {
	m := &Manager{
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// SetLogger replaces the logger used for contexts created from now on.
func (m *Manager) SetLogger(logger *zap.Logger) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if logger != nil {
		m.logger = logger
	}
}

// ContextFor returns the context of the surface behind mp, creating it on
// first use.
func (m *Manager) ContextFor(mp MountingPoint) (*Context, error) {
	switch v := mp.(type) {
	case *Entity:
		if v == nil {
			return nil, ErrInvalidMountingPoint
		}
		if v.disposed || v.ctx.disposed {
			return nil, ErrDisposedMountingPoint
		}
		return v.ctx, nil
	case Surface:
		return m.contextForSurface(v)
	case Node:
		if v.IsDisposed() {
			return nil, ErrDisposedMountingPoint
		}
		return m.contextForSurface(v.Surface())
	default:
		return nil, fmt.Errorf("%w: got %T", ErrInvalidMountingPoint, mp)
	}
}

// Contexts returns the live contexts owned by m in no particular order.
func (m *Manager) Contexts() []*Context {
	surfaces.Lock()
	defer surfaces.Unlock()
	var out []*Context
	for _, ctx := range surfaces.contexts {
		if ctx.manager == m {
			out = append(out, ctx)
		}
	}
	return out
}

func (m *Manager) contextForSurface(surface Surface) (*Context, error) {
	if surface == nil {
		return nil, ErrInvalidMountingPoint
	}

	surfaces.Lock()
	defer surfaces.Unlock()

	if ctx, ok := surfaces.contexts[surface]; ok {
		return ctx, nil
	}
	if surface.IsDisposed() {
		return nil, ErrDisposedMountingPoint
	}

	m.mu.Lock()
	logger := m.logger
	m.mu.Unlock()

	ctx := newContext(m, surface, logger.With(zap.String("surface", fmt.Sprintf("%p", surface))))
	surfaces.contexts[surface] = ctx
	ctx.logger.Debug("context created")
	return ctx, nil
}

func forget(ctx *Context) {
	surfaces.Lock()
	defer surfaces.Unlock()
	if surfaces.contexts[ctx.surface] == ctx {
		delete(surfaces.contexts, ctx.surface)
	}
}

// Context is the per-surface state shared by all entities, components and
// systems living on one surface.
type Context struct {
	manager   *Manager
	surface   Surface
	logger    *zap.Logger
	registrar *SystemRegistrar

	// byNode is the Node -> Entity side-table.
	byNode *intmap.Map[NodeID, *Entity]

	cancelNodeDispose func()
	cancelDispose     func()
	disposed          bool
}

func newContext(m *Manager, surface Surface, logger *zap.Logger) *Context {
	ctx := &Context{
		manager: m,
		surface: surface,
		logger:  logger,
		byNode:  intmap.New[NodeID, *Entity](64),
	}
	ctx.registrar = newSystemRegistrar(ctx)
	ctx.cancelNodeDispose = surface.OnNodeDispose(ctx.onNodeDispose)
	ctx.cancelDispose = surface.OnDispose(ctx.teardown)
	return ctx
}

// Surface returns the render surface of the context.
func (c *Context) Surface() Surface {
	return c.surface
}

// Manager returns the manager that created the context.
func (c *Context) Manager() *Manager {
	return c.manager
}

// Registrar returns the system registrar of the context.
func (c *Context) Registrar() *SystemRegistrar {
	return c.registrar
}

// Logger returns the context logger.
func (c *Context) Logger() *zap.Logger {
	return c.logger
}

// IsDisposed reports whether the surface of the context has been torn down.
func (c *Context) IsDisposed() bool {
	return c.disposed
}

// Entities returns every live entity of the surface in construction order.
func (c *Context) Entities() []*Entity {
	return c.registrar.liveEntities()
}

// Roots returns the live entities that have no parent entity.
func (c *Context) Roots() []*Entity {
	all := c.Entities()
	return slices.DeleteFunc(all, func(e *Entity) bool {
		return e.Parent() != nil
	})
}

// lookup returns the entity associated with id, if any.
func (c *Context) lookup(id NodeID) (*Entity, bool) {
	return c.byNode.Get(id)
}

func (c *Context) associate(e *Entity) {
	c.byNode.Put(e.node.ID(), e)
}

func (c *Context) dissociate(id NodeID) {
	c.byNode.Del(id)
}

func (c *Context) onNodeDispose(node Node, disposeAssets bool) {
	if e, ok := c.lookup(node.ID()); ok {
		e.Dispose(disposeAssets)
	}
}

func (c *Context) teardown() {
	if c.disposed {
		return
	}

	for _, e := range c.Entities() {
		e.Dispose(true)
	}
	c.registrar.dispose()

	c.cancelNodeDispose()
	c.cancelDispose()
	c.disposed = true
	forget(c)
	c.logger.Debug("context disposed")
}
