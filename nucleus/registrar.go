package nucleus

import (
	"fmt"
	"slices"

	"github.com/kamstrup/intmap"
	"go.uber.org/zap"
)

// SystemRegistrar maps component types to their system on one surface.
type SystemRegistrar struct {
	ctx     *Context
	order   []System
	systems map[ComponentType]System
	cancels map[System]func()

	// entities tracks every live entity of the surface by construction
	// sequence so that a late system can be back-filled into components.
	entities *intmap.Map[uint64, *Entity]
	nextSeq  uint64
}

func newSystemRegistrar(ctx *Context) *SystemRegistrar {
	return &SystemRegistrar{
		ctx:      ctx,
		systems:  make(map[ComponentType]System),
		cancels:  make(map[System]func()),
		entities: intmap.New[uint64, *Entity](64),
	}
}

// GetSystem returns the system registered for t, or nil.
func (r *SystemRegistrar) GetSystem(t ComponentType) System {
	return r.systems[t]
}

// Systems returns the registered systems in registration order.
func (r *SystemRegistrar) Systems() []System {
	return slices.Clone(r.order)
}

// RegisterSystems registers each system in turn, stopping at the first error.
func (r *SystemRegistrar) RegisterSystems(systems ...System) error {
	for _, s := range systems {
		if err := r.RegisterSystem(s); err != nil {
			return err
		}
	}
	return nil
}

// RegisterSystem initializes s, subscribes it to the frame loop and assigns
// it to every already mounted component of its type.
func (r *SystemRegistrar) RegisterSystem(s System) error {
	if r.ctx.disposed || r.ctx.surface.IsDisposed() {
		return ErrDisposedMountingPoint
	}
	base := s.AsSystem()
	if base.componentType == nil {
		return ErrInvalidSystem
	}
	if _, ok := r.systems[base.componentType]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateSystemType, base.componentType)
	}

	r.systems[base.componentType] = s
	r.order = append(r.order, s)

	base.internalInit(r.ctx)
	r.cancels[s] = r.ctx.surface.OnBeforeRender(func(dt float64) {
		safeCall(r.ctx.logger, "system frame hook panicked", func() { s.OnBeforeRender(dt) },
			zap.Stringer("system", base.componentType))
	})

	for _, e := range r.liveEntities() {
		c := e.GetComponent(base.componentType)
		if c == nil || !c.AsComponent().mounted {
			continue
		}
		c.AsComponent().system = s
		s.OnComponentDidMount(c)
	}

	r.ctx.logger.Debug("system registered", zap.Stringer("componentType", base.componentType))
	return nil
}

// UnregisterSystem unsubscribes s from the frame loop, disposes it and
// clears it from the components it was serving.
func (r *SystemRegistrar) UnregisterSystem(s System) error {
	base := s.AsSystem()
	if r.systems[base.componentType] != s {
		return ErrNotRegistered
	}

	delete(r.systems, base.componentType)
	if i := slices.Index(r.order, s); i >= 0 {
		r.order = slices.Delete(r.order, i, i+1)
	}
	r.release(s)

	r.ctx.logger.Debug("system unregistered", zap.Stringer("componentType", base.componentType))
	return nil
}

func (r *SystemRegistrar) release(s System) {
	if cancel, ok := r.cancels[s]; ok {
		cancel()
		delete(r.cancels, s)
	}

	base := s.AsSystem()
	for _, e := range r.liveEntities() {
		if c := e.GetComponent(base.componentType); c != nil && c.AsComponent().system == s {
			c.AsComponent().system = nil
		}
	}

	safeCall(r.ctx.logger, "system dispose hook panicked", base.internalDispose,
		zap.Stringer("system", base.componentType))
}

func (r *SystemRegistrar) dispose() {
	systems := r.order
	r.order = nil
	clear(r.systems)
	for _, s := range systems {
		r.release(s)
	}
}

func (r *SystemRegistrar) registerEntity(e *Entity) {
	r.nextSeq++
	e.seq = r.nextSeq
	r.entities.Put(e.seq, e)
}

func (r *SystemRegistrar) unregisterEntity(e *Entity) {
	r.entities.Del(e.seq)
}

func (r *SystemRegistrar) liveEntities() []*Entity {
	out := make([]*Entity, 0, r.entities.Len())
	r.entities.ForEach(func(_ uint64, e *Entity) bool {
		out = append(out, e)
		return true
	})
	slices.SortFunc(out, func(a, b *Entity) int {
		switch {
		case a.seq < b.seq:
			return -1
		case a.seq > b.seq:
			return 1
		}
		return 0
	})
	return out
}
