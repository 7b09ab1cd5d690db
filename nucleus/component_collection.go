package nucleus

import (
	"fmt"
	"slices"

	"go.uber.org/zap"
)

// componentCollection is the per-entity registry of components. It keeps
// mount order for frame and props fan-out and allows one instance per type.
type componentCollection struct {
	entity    *Entity
	registrar *SystemRegistrar
	mounted   bool

	order  []Component
	byType map[ComponentType]Component
}

func newComponentCollection() *componentCollection {
	return &componentCollection{
		byType: make(map[ComponentType]Component),
	}
}

// mount binds the collection and mounts every queued component. Calling it
// again is a no-op.
func (cc *componentCollection) mount(e *Entity, registrar *SystemRegistrar) {
	if cc.mounted {
		return
	}
	cc.entity = e
	cc.registrar = registrar
	cc.mounted = true

	for _, c := range cc.order {
		if c.AsComponent().mounted {
			continue
		}
		if err := c.AsComponent().internalMount(c, e, registrar.GetSystem(TypeOf(c))); err != nil {
			e.ctx.logger.Error("queued component failed to mount", zap.Error(err),
				zap.Stringer("component", TypeOf(c)))
		}
	}
}

func (cc *componentCollection) mountComponent(c Component) error {
	t := TypeOf(c)
	if _, ok := cc.byType[t]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateComponentType, t)
	}
	if c.AsComponent().mounted {
		return ErrAlreadyMounted
	}

	cc.byType[t] = c
	cc.order = append(cc.order, c)

	if cc.mounted {
		if err := c.AsComponent().internalMount(c, cc.entity, cc.registrar.GetSystem(t)); err != nil {
			cc.remove(c)
			return err
		}
	}
	return nil
}

func (cc *componentCollection) unmountComponent(c Component, disposeAssets bool) error {
	t := TypeOf(c)
	if cc.byType[t] != c {
		return ErrNotMounted
	}
	cc.remove(c)
	return c.AsComponent().internalUnmount(disposeAssets)
}

// unmountAll unmounts every component, in mount order. A failing component
// does not stop the others from being unmounted.
func (cc *componentCollection) unmountAll(disposeAssets bool) {
	components := cc.order
	cc.order = nil
	clear(cc.byType)

	for _, c := range components {
		if !c.AsComponent().mounted {
			continue
		}
		if err := c.AsComponent().internalUnmount(disposeAssets); err != nil {
			cc.entity.ctx.logger.Error("component failed to unmount", zap.Error(err),
				zap.Stringer("component", TypeOf(c)))
		}
	}
}

func (cc *componentCollection) remove(c Component) {
	delete(cc.byType, TypeOf(c))
	if i := slices.Index(cc.order, c); i >= 0 {
		cc.order = slices.Delete(cc.order, i, i+1)
	}
}

func (cc *componentCollection) get(t ComponentType) Component {
	return cc.byType[t]
}

// list returns a snapshot of the components in mount order.
func (cc *componentCollection) list() []Component {
	return slices.Clone(cc.order)
}

func (cc *componentCollection) propsWillUpdate(old, next Props) {
	for _, c := range cc.list() {
		if c.AsComponent().IsEnabled() {
			c.OnEntityPropsWillUpdate(old, next)
		}
	}
}

func (cc *componentCollection) propsUpdated(old Props) {
	for _, c := range cc.list() {
		if c.AsComponent().IsEnabled() {
			c.OnEntityPropsUpdated(old)
		}
	}
}
